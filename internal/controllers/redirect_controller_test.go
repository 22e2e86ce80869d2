package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shrtr-be/internal/models"
	"shrtr-be/internal/service"
)

// stubLinkService returns canned resolve results
type stubLinkService struct {
	target string
	err    error
}

func (s *stubLinkService) Create(context.Context, string, *models.CreateLinkRequest) (*models.LinkResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLinkService) List(context.Context, string) ([]*models.LinkResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLinkService) Get(context.Context, string, string) (*models.LinkResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLinkService) Delete(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (s *stubLinkService) Metrics(context.Context, string, string, time.Time, time.Time) ([]*models.LinkMetricResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLinkService) Resolve(context.Context, string, time.Time) (string, error) {
	return s.target, s.err
}

func performRedirect(svc service.LinkService, shortCode string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/:shortCode", NewRedirectController(svc).Redirect)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/"+shortCode, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRedirect_Found(t *testing.T) {
	w := performRedirect(&stubLinkService{target: "https://example.com"}, "abc12345")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Location"))
}

func TestRedirect_NotFound(t *testing.T) {
	w := performRedirect(&stubLinkService{err: service.ErrNotFound}, "doesnotexist")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestRedirect_RateLimited(t *testing.T) {
	w := performRedirect(&stubLinkService{err: service.ErrRateLimited}, "abc12345")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestRedirect_StoreFailure(t *testing.T) {
	w := performRedirect(&stubLinkService{err: errors.New("connection refused")}, "abc12345")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
