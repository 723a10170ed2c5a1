package smocks

import (
	"context"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// LinkRepoMock мок services.LinkRepository.
type LinkRepoMock struct {
	mock.Mock
}

func (m *LinkRepoMock) Get(ctx context.Context, shortID string) (*models.Link, error) {
	args := m.Called(ctx, shortID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) Exists(ctx context.Context, shortID string) (bool, error) {
	args := m.Called(ctx, shortID)
	return args.Bool(0), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) UpdateFields(
	ctx context.Context,
	shortID string,
	fields repositories.LinkUpdate,
) (*models.Link, error) {
	args := m.Called(ctx, shortID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) RenameWithTombstone(ctx context.Context, oldID, newID string) (*models.Link, error) {
	args := m.Called(ctx, oldID, newID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}
