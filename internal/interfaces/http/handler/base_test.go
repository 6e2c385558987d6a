package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDContextKey, "ctx-id")
			},
			expectedID: "ctx-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
			},
			expectedID: "header-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDContextKey, "ctx-id")
				c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.SuccessWithMeta(c, []int{1, 2}, 45, 2, 20)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Created(c, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found sentinel",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "insufficient stock",
			err:        shared.NewDomainError("INSUFFICIENT_STOCK", "Batch holds 2, requested 5"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrCodeInsufficientStock,
		},
		{
			name:       "locked record",
			err:        shared.ErrLockedRecord,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrCodeLockedRecord,
		},
		{
			name:       "invalid transition",
			err:        shared.ErrInvalidTransition,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrCodeInvalidTransition,
		},
		{
			name:       "invalid quantity maps to bad input",
			err:        shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidInput,
		},
		{
			name:       "plain error becomes internal",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(t)
			c.Set(middleware.RequestIDContextKey, "req-1")

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestHandleDomainErrorHidesInternalDetail(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.HandleDomainError(c, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	resp := decodeResponse(t, w)
	assert.NotContains(t, resp.Error.Message, "10.0.0.5")
}

func TestBindListFilterDefaults(t *testing.T) {
	c, _ := newTestContext(t)

	filter, err := bindListFilter(c)

	require.NoError(t, err)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
	assert.Equal(t, "created_at", filter.OrderBy)
	assert.Equal(t, "desc", filter.OrderDir)
	assert.False(t, filter.IncludeArchived)
}

func TestBindListFilterOverrides(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/?page=3&page_size=50&order_by=name&order_dir=asc&search=flour&include_archived=true", nil)

	filter, err := bindListFilter(c)

	require.NoError(t, err)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.PageSize)
	assert.Equal(t, "name", filter.OrderBy)
	assert.Equal(t, "asc", filter.OrderDir)
	assert.Equal(t, "flour", filter.Search)
	assert.True(t, filter.IncludeArchived)
}

func TestBindListFilterRejectsBadValues(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page_size=500", nil)

	_, err := bindListFilter(c)
	assert.Error(t, err)
}
