package handlers

import (
	"EatBefore/domain"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGroceryService struct {
	mock.Mock
}

func (m *MockGroceryService) AddGroceryItem(ctx context.Context, req domain.AddGroceryItemRequest) (domain.GroceryItemResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.GroceryItemResponse), args.Error(1)
}

func (m *MockGroceryService) GetGroceryItems(ctx context.Context, filter domain.GroceryFilter) ([]domain.GroceryItemResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroceryItemResponse), args.Error(1)
}

func (m *MockGroceryService) GetGroceryItemByID(ctx context.Context, id string) (domain.GroceryItemResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.GroceryItemResponse), args.Error(1)
}

func (m *MockGroceryService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStatsResponse), args.Error(1)
}

func (m *MockGroceryService) GetTiers() []domain.TierResponse {
	args := m.Called()
	return args.Get(0).([]domain.TierResponse)
}

func (m *MockGroceryService) CreateDraft(ctx context.Context) (domain.DraftResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DraftResponse), args.Error(1)
}

func (m *MockGroceryService) GetDraft(ctx context.Context, id string) (domain.DraftResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DraftResponse), args.Error(1)
}

func (m *MockGroceryService) UpdateDraft(ctx context.Context, id string, req domain.UpdateDraftRequest) (domain.DraftResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.DraftResponse), args.Error(1)
}

func (m *MockGroceryService) RecognizeDraft(ctx context.Context, id string, req domain.RecognizeDraftRequest) (domain.DraftResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.DraftResponse), args.Error(1)
}

func (m *MockGroceryService) SaveDraft(ctx context.Context, id string) (domain.GroceryItemResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.GroceryItemResponse), args.Error(1)
}

func (m *MockGroceryService) DiscardDraft(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, req domain.SignupRequest) (domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.LoginResponse), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.LoginResponse), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUserService) Me(ctx context.Context) (domain.ProfileResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ProfileResponse), args.Error(1)
}

func (m *MockUserService) StartRoute(ctx context.Context) (domain.StartRouteResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StartRouteResponse), args.Error(1)
}

func (m *MockUserService) ValidateSession(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) GetFavorites(ctx context.Context) ([]domain.GroceryItemResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroceryItemResponse), args.Error(1)
}

func (m *MockFavoriteService) AddFavorite(ctx context.Context, req domain.AddFavoriteRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFavoriteService) RemoveFavorite(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
