package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"mapup/internal/backend"
	"mapup/internal/model"
)

// MockBackend is a mock implementation of backend.Client.
type MockBackend struct {
	mock.Mock
}

var _ backend.Client = (*MockBackend)(nil)

func (m *MockBackend) Login(ctx context.Context, username, password string) (*backend.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.LoginResult), args.Error(1)
}

func (m *MockBackend) CreateUser(ctx context.Context, req backend.CreateUserRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBackend) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockBackend) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) FileData(ctx context.Context) ([]model.StockRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StockRecord), args.Error(1)
}

func (m *MockBackend) UploadFile(ctx context.Context, filename string, content io.Reader) error {
	args := m.Called(ctx, filename, content)
	return args.Error(0)
}
