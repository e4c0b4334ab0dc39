package middlewarectx_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/serenecare/internal/http/middlewarectx"
	"github.com/magabrotheeeer/serenecare/internal/lib/jwt"
	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/session"
)

type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) Get(token string) (session.Session, bool, error) {
	args := m.Called(token)
	return args.Get(0).(session.Session), args.Bool(1), args.Error(2)
}

func (m *SessionStoreMock) Clear(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, role string, userID int64) (string, error) {
	args := m.Called(username, role, userID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSessionMiddleware(t *testing.T) {
	validSession := session.Session{
		Token:    "validtoken",
		UserID:   42,
		Username: "ivan",
		Email:    "ivan@example.com",
		Role:     models.RolePatient,
	}

	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*SessionStoreMock, *JwtMakerMock)
		wantStatusCode int
		wantLocation   string
		wantCalled     bool
	}{
		{
			name:           "no token redirects to login",
			authHeader:     "",
			setupMocks:     func(store *SessionStoreMock, maker *JwtMakerMock) {},
			wantStatusCode: http.StatusSeeOther,
			wantLocation:   "/login",
			wantCalled:     false,
		},
		{
			name:           "non-bearer header redirects to login",
			authHeader:     "Basic sometoken",
			setupMocks:     func(store *SessionStoreMock, maker *JwtMakerMock) {},
			wantStatusCode: http.StatusSeeOther,
			wantLocation:   "/login",
			wantCalled:     false,
		},
		{
			name:       "invalid token gets 401 and session cleared",
			authHeader: "Bearer badtoken",
			setupMocks: func(store *SessionStoreMock, maker *JwtMakerMock) {
				maker.On("ParseToken", "badtoken").Return(nil, errors.New("token is invalid"))
				store.On("Clear", "badtoken").Return(nil)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "revoked session gets 401 and cleanup",
			authHeader: "Bearer validtoken",
			setupMocks: func(store *SessionStoreMock, maker *JwtMakerMock) {
				maker.On("ParseToken", "validtoken").Return(&jwt.CustomClaims{Username: "ivan"}, nil)
				store.On("Get", "validtoken").Return(session.Session{}, false, nil)
				store.On("Clear", "validtoken").Return(nil)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "store failure gets 500",
			authHeader: "Bearer validtoken",
			setupMocks: func(store *SessionStoreMock, maker *JwtMakerMock) {
				maker.On("ParseToken", "validtoken").Return(&jwt.CustomClaims{Username: "ivan"}, nil)
				store.On("Get", "validtoken").Return(session.Session{}, false, errors.New("redis down"))
			},
			wantStatusCode: http.StatusInternalServerError,
			wantCalled:     false,
		},
		{
			name:       "valid session passes through",
			authHeader: "Bearer validtoken",
			setupMocks: func(store *SessionStoreMock, maker *JwtMakerMock) {
				maker.On("ParseToken", "validtoken").Return(&jwt.CustomClaims{Username: "ivan"}, nil)
				store.On("Get", "validtoken").Return(validSession, true, nil)
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(SessionStoreMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(store, maker)

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				sess, ok := middlewarectx.SessionFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, validSession, sess)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.SessionMiddleware(store, maker, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/dailylogs", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			store.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	patientSession := session.Session{
		Token:    "t1",
		UserID:   42,
		Username: "ivan",
		Role:     models.RolePatient,
	}

	tests := []struct {
		name           string
		sess           *session.Session
		role           models.Role
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "matching role passes",
			sess:           &patientSession,
			role:           models.RolePatient,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "other role is forbidden",
			sess:           &patientSession,
			role:           models.RoleDoctor,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "missing session gets 401",
			sess:           nil,
			role:           models.RolePatient,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.RequireRole(tt.role, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodPost, "/api/chats/start", nil)
			if tt.sess != nil {
				req = req.WithContext(middlewarectx.WithSession(req.Context(), *tt.sess))
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
