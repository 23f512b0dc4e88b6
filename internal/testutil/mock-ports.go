package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	ports "model-resolution-router/internal/core/ports/output"
)

// MockConfigStore is a mock of ConfigStore.
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) Get(ctx context.Context, siteKey string) ([]byte, error) {
	args := m.Called(ctx, siteKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAssetFetcher is a mock of AssetFetcher.
type MockAssetFetcher struct {
	mock.Mock
}

func (m *MockAssetFetcher) Fetch(ctx context.Context, page string) (*ports.Asset, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Asset), args.Error(1)
}
