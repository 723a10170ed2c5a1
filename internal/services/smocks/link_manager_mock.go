package smocks

import (
	"context"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/services"

	"github.com/stretchr/testify/mock"
)

// LinkManagerMock мок сервисного слоя для тестов контроллеров.
type LinkManagerMock struct {
	mock.Mock
}

func (m *LinkManagerMock) Create(
	ctx context.Context,
	params services.CreateLinkParams,
) (*models.Link, string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.String(1), args.Error(2) //nolint:wrapcheck,errcheck
}

func (m *LinkManagerMock) Update(
	ctx context.Context,
	shortID string,
	editToken string,
	params services.UpdateLinkParams,
) (*models.Link, error) {
	args := m.Called(ctx, shortID, editToken, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkManagerMock) ChangeAlias(
	ctx context.Context,
	shortID string,
	editToken string,
	newShortID string,
) (*models.Link, error) {
	args := m.Called(ctx, shortID, editToken, newShortID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkManagerMock) Retire(ctx context.Context, shortID string, editToken string) (*models.Link, error) {
	args := m.Called(ctx, shortID, editToken)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkManagerMock) ResolveForRedirect(
	ctx context.Context,
	shortID string,
	now time.Time,
) (services.RedirectDecision, error) {
	args := m.Called(ctx, shortID, now)
	return args.Get(0).(services.RedirectDecision), args.Error(1) //nolint:wrapcheck,errcheck
}
