package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/serenecare/internal/http/middlewarectx"
	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/session"
)

type DailyLogServiceMock struct {
	mock.Mock
}

func (m *DailyLogServiceMock) List(ctx context.Context, userID int64, limit, offset int) ([]*models.DailyLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DailyLog), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	sess := session.Session{
		Token:    "tok",
		UserID:   42,
		Username: "ivan",
		Role:     models.RolePatient,
	}

	entries := []*models.DailyLog{
		{ID: 2, UserID: 42, PainLevel: 3},
		{ID: 1, UserID: 42, PainLevel: 5},
	}

	tests := []struct {
		name           string
		url            string
		withSession    bool
		setupMocks     func(*DailyLogServiceMock)
		wantStatusCode int
		wantCount      float64
		wantError      string
	}{
		{
			name:        "default pagination",
			url:         "/dailylogs",
			withSession: true,
			setupMocks: func(m *DailyLogServiceMock) {
				m.On("List", mock.Anything, int64(42), 10, 0).Return(entries, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		{
			name:        "explicit pagination",
			url:         "/dailylogs?limit=5&offset=10",
			withSession: true,
			setupMocks: func(m *DailyLogServiceMock) {
				m.On("List", mock.Anything, int64(42), 5, 10).Return([]*models.DailyLog{}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name:           "no session in context",
			url:            "/dailylogs",
			withSession:    false,
			setupMocks:     func(m *DailyLogServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:        "service error",
			url:         "/dailylogs",
			withSession: true,
			setupMocks: func(m *DailyLogServiceMock) {
				m.On("List", mock.Anything, int64(42), 10, 0).Return(nil, assert.AnError).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(DailyLogServiceMock)
			tt.setupMocks(serviceMock)
			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withSession {
				ctx = middlewarectx.WithSession(ctx, sess)
			}
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			err := json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.NoError(t, err)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			} else {
				data := resp["data"].(map[string]any)
				assert.Equal(t, tt.wantCount, data["list_count"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
