package user

import (
	"EatBefore/domain"
	"EatBefore/entities"
	"EatBefore/pkg/jwt"
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultName      = "User Name"
	defaultFirstName = "User"
)

type (
	UserService interface {
		Signup(ctx context.Context, req domain.SignupRequest) (domain.LoginResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context) error
		Me(ctx context.Context) (domain.ProfileResponse, error)
		StartRoute(ctx context.Context) (domain.StartRouteResponse, error)
		ValidateSession(ctx context.Context, token string) (string, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		logger         zerolog.Logger
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, logger zerolog.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		logger:         logger.With().Str("component", "user-service").Logger(),
	}
}

func (s *userService) Signup(ctx context.Context, req domain.SignupRequest) (domain.LoginResponse, error) {
	existing, err := s.userRepository.GetAccount(ctx)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	// One account per device; it is never replaced through signup.
	if existing != nil {
		return domain.LoginResponse{}, domain.ErrAccountExists
	}
	email := normalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	account := &entities.Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepository.SaveAccount(ctx, account); err != nil {
		return domain.LoginResponse{}, err
	}
	if err := s.userRepository.SetValue(ctx, NameKey, account.Name); err != nil {
		return domain.LoginResponse{}, err
	}

	s.logger.Info().Str("email", email).Msg("local account created")

	return s.startSession(ctx, email)
}

// Login accepts any credentials while no local account exists, the way the
// demo build always did. Once an account exists the password must match.
func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	account, err := s.userRepository.GetAccount(ctx)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if account != nil {
		if account.Email != email {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
	}

	return s.startSession(ctx, email)
}

func (s *userService) startSession(ctx context.Context, email string) (domain.LoginResponse, error) {
	token, err := s.jwtService.GenerateToken(email)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if err := s.userRepository.SetValue(ctx, TokenKey, token); err != nil {
		return domain.LoginResponse{}, err
	}
	if err := s.userRepository.SetValue(ctx, EmailKey, email); err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		Route: domain.RouteMain,
	}, nil
}

func (s *userService) Logout(ctx context.Context) error {
	return s.userRepository.DeleteValue(ctx, TokenKey)
}

func (s *userService) Me(ctx context.Context) (domain.ProfileResponse, error) {
	name, err := s.userRepository.GetValue(ctx, NameKey)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	email, err := s.userRepository.GetValue(ctx, EmailKey)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	profile := domain.ProfileResponse{
		Name:      defaultName,
		FirstName: defaultFirstName,
		Email:     email,
	}
	if name = strings.TrimSpace(name); name != "" {
		profile.Name = name
		profile.FirstName = strings.Fields(name)[0]
	}
	profile.Initial = string([]rune(profile.Name)[:1])

	return profile, nil
}

func (s *userService) StartRoute(ctx context.Context) (domain.StartRouteResponse, error) {
	token, err := s.userRepository.GetValue(ctx, TokenKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read session token, sending user to login")
		return domain.StartRouteResponse{Route: domain.RouteLogin}, nil
	}
	if token == "" {
		return domain.StartRouteResponse{Route: domain.RouteLogin}, nil
	}
	if _, err := s.jwtService.GetEmailByToken(token); err != nil {
		return domain.StartRouteResponse{Route: domain.RouteLogin}, nil
	}
	return domain.StartRouteResponse{Route: domain.RouteMain}, nil
}

// ValidateSession accepts only the token of the current session; a token
// from before the last logout is rejected even if it has not expired.
func (s *userService) ValidateSession(ctx context.Context, token string) (string, error) {
	email, err := s.jwtService.GetEmailByToken(token)
	if err != nil {
		return "", err
	}

	stored, err := s.userRepository.GetValue(ctx, TokenKey)
	if err != nil {
		return "", err
	}
	if stored == "" || stored != token {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
