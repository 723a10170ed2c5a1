package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/tinylink/internal/db/memory"
	"github.com/fsdevblog/tinylink/internal/repositories/memstore"
	"github.com/fsdevblog/tinylink/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

// LinkLifecycleSuite прогоняет жизненный цикл ссылки через настоящий
// in-memory репозиторий, без моков.
type LinkLifecycleSuite struct {
	suite.Suite
	repo    *memstore.LinkRepo
	service *services.LinkService
	ctx     context.Context
}

func (s *LinkLifecycleSuite) SetupTest() {
	s.repo = memstore.NewLinkRepo(memory.NewMemStorage(), logrus.New())
	s.service = services.NewLinkService(s.repo, services.LinkServiceConfig{
		TokenPepper:           "lifecycle-pepper",
		PermanentCacheSeconds: 60,
	})
	s.ctx = context.Background()
}

func (s *LinkLifecycleSuite) TestCreateResolveRoundTrip() {
	created, token, err := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/x",
		CustomShortID: "roundtrip",
		RedirectCode:  301,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(token)

	resolved, resErr := s.service.Resolve(s.ctx, "roundtrip")
	s.Require().NoError(resErr)
	s.Equal(created.TargetURL, resolved.TargetURL)
	s.Equal(301, resolved.RedirectCode)

	decision, redErr := s.service.ResolveForRedirect(s.ctx, "roundtrip", time.Now().UTC())
	s.Require().NoError(redErr)
	s.Equal(services.OutcomeRedirect, decision.Outcome)
	s.Equal("https://example.com/x", decision.TargetURL)
	s.Equal("public, max-age=60, immutable", decision.CacheControl)
}

func (s *LinkLifecycleSuite) TestDuplicateCustomIdentifier() {
	first, _, err := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/first",
		CustomShortID: "dup",
	})
	s.Require().NoError(err)

	_, _, secondErr := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/second",
		CustomShortID: "dup",
	})
	s.Require().ErrorIs(secondErr, services.ErrConflict)

	// Первая запись не пострадала.
	resolved, resErr := s.service.Resolve(s.ctx, "dup")
	s.Require().NoError(resErr)
	s.Equal(first.TargetURL, resolved.TargetURL)
}

func (s *LinkLifecycleSuite) TestRetireThenGone() {
	_, token, err := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/x",
		CustomShortID: "retired",
	})
	s.Require().NoError(err)

	_, retireErr := s.service.Retire(s.ctx, "retired", token)
	s.Require().NoError(retireErr)

	// Существовавший идентификатор дает Gone, не Missing.
	decision, redErr := s.service.ResolveForRedirect(s.ctx, "retired", time.Now().UTC())
	s.Require().NoError(redErr)
	s.Equal(services.OutcomeGone, decision.Outcome)

	// Никогда не существовавший — Missing.
	decision, redErr = s.service.ResolveForRedirect(s.ctx, "neverwas", time.Now().UTC())
	s.Require().NoError(redErr)
	s.Equal(services.OutcomeMissing, decision.Outcome)

	// Tombstone навсегда занимает идентификатор.
	_, _, conflictErr := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/y",
		CustomShortID: "retired",
	})
	s.ErrorIs(conflictErr, services.ErrConflict)
}

func (s *LinkLifecycleSuite) TestChangeAlias() {
	created, token, err := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/x",
		CustomShortID: "oldalias",
		RedirectCode:  308,
	})
	s.Require().NoError(err)

	renamed, aliasErr := s.service.ChangeAlias(s.ctx, "oldalias", token, "newalias")
	s.Require().NoError(aliasErr)
	s.Equal("newalias", renamed.ShortIdentifier)
	s.Equal(created.CreatedAt, renamed.CreatedAt)

	// Старый алиас — Gone, новый редиректит на исходную цель.
	now := time.Now().UTC()
	decision, redErr := s.service.ResolveForRedirect(s.ctx, "oldalias", now)
	s.Require().NoError(redErr)
	s.Equal(services.OutcomeGone, decision.Outcome)

	decision, redErr = s.service.ResolveForRedirect(s.ctx, "newalias", now)
	s.Require().NoError(redErr)
	s.Equal(services.OutcomeRedirect, decision.Outcome)
	s.Equal("https://example.com/x", decision.TargetURL)
	s.Equal(308, decision.Code)

	// Токен не ротируется: тот же токен управляет новым алиасом.
	target := "https://example.com/moved"
	updated, updErr := s.service.Update(s.ctx, "newalias", token, services.UpdateLinkParams{TargetURL: &target})
	s.Require().NoError(updErr)
	s.Equal(target, updated.TargetURL)
}

func (s *LinkLifecycleSuite) TestUnauthorizedUpdateLeavesRecordIntact() {
	_, _, err := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/x",
		CustomShortID: "guarded",
	})
	s.Require().NoError(err)

	target := "https://example.com/hijacked"
	_, updErr := s.service.Update(s.ctx, "guarded", "not-the-token", services.UpdateLinkParams{TargetURL: &target})
	s.Require().ErrorIs(updErr, services.ErrUnauthorized)

	resolved, resErr := s.service.Resolve(s.ctx, "guarded")
	s.Require().NoError(resErr)
	s.Equal("https://example.com/x", resolved.TargetURL)
}

func (s *LinkLifecycleSuite) TestExpiryIsReadTimeOverlay() {
	expiresAt := time.Now().UTC().Add(-time.Minute)
	_, _, err := s.service.Create(s.ctx, services.CreateLinkParams{
		TargetURL:     "https://example.com/x",
		CustomShortID: "expired",
		ExpiresAt:     &expiresAt,
	})
	s.Require().NoError(err)

	decision, redErr := s.service.ResolveForRedirect(s.ctx, "expired", time.Now().UTC())
	s.Require().NoError(redErr)
	s.Equal(services.OutcomeGone, decision.Outcome)

	// Запись в хранилище не мутирована: Active остался true.
	resolved, resErr := s.service.Resolve(s.ctx, "expired")
	s.Require().NoError(resErr)
	s.True(resolved.Active)
}

func TestLinkLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LinkLifecycleSuite))
}
