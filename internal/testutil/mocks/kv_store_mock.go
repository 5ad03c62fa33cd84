package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockKeyValueStore is a mock implementation of repository.KeyValueStore
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	args := m.Called(ctx, scope, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueStore) Set(ctx context.Context, scope, key, value string) error {
	args := m.Called(ctx, scope, key, value)
	return args.Error(0)
}

func (m *MockKeyValueStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
