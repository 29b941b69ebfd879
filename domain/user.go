package domain

import (
	"errors"
)

const (
	RouteMain  = "Main"
	RouteLogin = "Login"
)

var (
	MessageSuccessSignup     = "account created successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessLogout     = "logout successful"
	MessageSuccessGetProfile = "profile retrieved successfully"
	MessageSuccessStartRoute = "start route resolved"

	MessageFailedSignup     = "failed to create account"
	MessageFailedLogin      = "please fill in all fields"
	MessageFailedLogout     = "failed to logout"
	MessageFailedGetProfile = "failed to retrieve profile"

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account already exists on this device")
)

type (
	SignupRequest struct {
		Name     string `json:"name" validate:"required,max=80"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Route string `json:"route"`
	}

	ProfileResponse struct {
		Name      string `json:"name"`
		FirstName string `json:"first_name"`
		Initial   string `json:"initial"`
		Email     string `json:"email"`
	}

	StartRouteResponse struct {
		Route string `json:"route"`
	}
)
