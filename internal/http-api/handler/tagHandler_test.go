package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"libris/internal/errs"
	"libris/internal/http-api/dto"
	"libris/internal/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTagService mocks the TagService interface
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) GetAll(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagService) Create(ctx context.Context, label string) (*models.Tag, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Envelope {
	var env dto.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGetTags_EnvelopeShape(t *testing.T) {
	mockService := new(MockTagService)
	h := NewTagHandler(mockService)
	router := setupRouter()
	router.GET("/api/tags/get_tags", h.GetTags)

	mockService.On("GetAll", mock.Anything).Return([]models.Tag{
		{ID: "t1", Label: "Horror", Slug: "horror", Status: true},
	}, nil)

	req, _ := http.NewRequest("GET", "/api/tags/get_tags", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "tags retrieved", env.Message)
	assert.NotNil(t, env.Body)
}

func TestNewTag_Success(t *testing.T) {
	mockService := new(MockTagService)
	h := NewTagHandler(mockService)
	router := setupRouter()
	router.POST("/api/tags/new_tag", h.NewTag)

	mockService.On("Create", mock.Anything, "Horror").
		Return(&models.Tag{ID: "t1", Label: "Horror", Slug: "horror"}, nil)

	body, _ := json.Marshal(dto.TagDTO{Tag: "Horror"})
	req, _ := http.NewRequest("POST", "/api/tags/new_tag", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	mockService.AssertExpectations(t)
}

func TestNewTag_Conflict(t *testing.T) {
	mockService := new(MockTagService)
	h := NewTagHandler(mockService)
	router := setupRouter()
	router.POST("/api/tags/new_tag", h.NewTag)

	mockService.On("Create", mock.Anything, "Horror").
		Return(nil, errs.Conflict("a tag with this slug already exists"))

	body, _ := json.Marshal(dto.TagDTO{Tag: "Horror"})
	req, _ := http.NewRequest("POST", "/api/tags/new_tag", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "a tag with this slug already exists", env.Message)
}

func TestNewTag_MissingBody(t *testing.T) {
	mockService := new(MockTagService)
	h := NewTagHandler(mockService)
	router := setupRouter()
	router.POST("/api/tags/new_tag", h.NewTag)

	req, _ := http.NewRequest("POST", "/api/tags/new_tag", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteTag_NotFound(t *testing.T) {
	mockService := new(MockTagService)
	h := NewTagHandler(mockService)
	router := setupRouter()
	router.DELETE("/api/tags/delete_tag/:idTag", h.DeleteTag)

	mockService.On("Delete", mock.Anything, "missing").Return(errs.NotFound("tag does not exist"))

	req, _ := http.NewRequest("DELETE", "/api/tags/delete_tag/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "tag does not exist", env.Message)
}

func TestDeleteTag_StoreUnavailable(t *testing.T) {
	mockService := new(MockTagService)
	h := NewTagHandler(mockService)
	router := setupRouter()
	router.DELETE("/api/tags/delete_tag/:idTag", h.DeleteTag)

	mockService.On("Delete", mock.Anything, "t1").Return(assert.AnError)

	req, _ := http.NewRequest("DELETE", "/api/tags/delete_tag/t1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "service temporarily unavailable", env.Message)
}
