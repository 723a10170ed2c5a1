package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fsdevblog/tinylink/internal/config"
	"github.com/fsdevblog/tinylink/internal/services"
	"github.com/fsdevblog/tinylink/internal/services/smocks"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RedirectControllerSuite struct {
	suite.Suite
	serviceMock *smocks.LinkManagerMock
	router      *gin.Engine
}

func (s *RedirectControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.serviceMock = new(smocks.LinkManagerMock)
	appConf := config.Config{
		ServerAddress: ":80",
		BaseURL:       &url.URL{Scheme: "http", Host: "test.com"},
		Logger:        logrus.New(),
	}
	s.router = SetupRouter(RouterParams{
		LinkService: s.serviceMock,
		AppConf:     &appConf,
	})
}

func (s *RedirectControllerSuite) resolve(shortID string) *http.Response {
	res := s.makeRequestTo(http.MethodGet, "/"+shortID)
	return res
}

func (s *RedirectControllerSuite) makeRequestTo(method, path string) *http.Response {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w.Result()
}

func (s *RedirectControllerSuite) TestRedirect() {
	tests := []struct {
		name             string
		decision         services.RedirectDecision
		wantStatus       int
		wantLocation     string
		wantCacheControl string
	}{
		{
			name: "permanent redirect is cacheable",
			decision: services.RedirectDecision{
				Outcome:      services.OutcomeRedirect,
				TargetURL:    "https://example.com/a",
				Code:         http.StatusMovedPermanently,
				CacheControl: "public, max-age=86400, immutable",
			},
			wantStatus:       http.StatusMovedPermanently,
			wantLocation:     "https://example.com/a",
			wantCacheControl: "public, max-age=86400, immutable",
		},
		{
			name: "temporary redirect is not cacheable",
			decision: services.RedirectDecision{
				Outcome:      services.OutcomeRedirect,
				TargetURL:    "https://example.com/b",
				Code:         http.StatusFound,
				CacheControl: "no-store",
			},
			wantStatus:       http.StatusFound,
			wantLocation:     "https://example.com/b",
			wantCacheControl: "no-store",
		},
		{
			name:       "tombstone answers gone",
			decision:   services.RedirectDecision{Outcome: services.OutcomeGone},
			wantStatus: http.StatusGone,
		},
		{
			name:       "unknown identifier answers not found",
			decision:   services.RedirectDecision{Outcome: services.OutcomeMissing},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.serviceMock.On("ResolveForRedirect", mock.Anything, "abc123", mock.AnythingOfType("time.Time")).
				Return(tt.decision, nil).Once()

			res := s.resolve("abc123")
			defer res.Body.Close()

			s.Equal(tt.wantStatus, res.StatusCode)
			if tt.wantLocation != "" {
				s.Equal(tt.wantLocation, res.Header.Get("Location"))
			}
			if tt.wantCacheControl != "" {
				s.Equal(tt.wantCacheControl, res.Header.Get("Cache-Control"))
			}
		})
	}
}

func (s *RedirectControllerSuite) TestRedirect_HeadMethod() {
	s.serviceMock.On("ResolveForRedirect", mock.Anything, "abc123", mock.AnythingOfType("time.Time")).
		Return(services.RedirectDecision{
			Outcome:      services.OutcomeRedirect,
			TargetURL:    "https://example.com/a",
			Code:         http.StatusPermanentRedirect,
			CacheControl: "public, max-age=86400, immutable",
		}, nil).Once()

	res := s.makeRequestTo(http.MethodHead, "/abc123")
	defer res.Body.Close()

	s.Equal(http.StatusPermanentRedirect, res.StatusCode)
	s.Equal("https://example.com/a", res.Header.Get("Location"))
}

func (s *RedirectControllerSuite) TestRedirect_ServiceError() {
	s.serviceMock.On("ResolveForRedirect", mock.Anything, "abc123", mock.AnythingOfType("time.Time")).
		Return(services.RedirectDecision{}, services.ErrUnknown).Once()

	res := s.resolve("abc123")
	defer res.Body.Close()

	s.Equal(http.StatusInternalServerError, res.StatusCode)
}

func TestRedirectControllerSuite(t *testing.T) {
	suite.Run(t, new(RedirectControllerSuite))
}
