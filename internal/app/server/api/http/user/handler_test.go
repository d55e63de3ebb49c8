package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/user"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, id uuid.UUID) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, req user.CreateRequest) (user.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id uuid.UUID, patch user.Patch) (user.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

func setup(t *testing.T) (humatest.TestAPI, *MockService) {
	t.Helper()
	_, api := humatest.New(t)
	svc := &MockService{}
	NewHandler(svc, slog.Default(), nil).SetupRoutes(api)
	return api, svc
}

func TestHandler_find(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		path       string
		setup      func(*MockService)
		wantStatus int
	}{
		{
			name: "found",
			path: "/user/k/" + id.String(),
			setup: func(m *MockService) {
				m.On("Find", mock.Anything, id).Return(user.User{ID: id, UserName: "ann"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing",
			path: "/user/k/" + id.String(),
			setup: func(m *MockService) {
				m.On("Find", mock.Anything, id).Return(user.User{}, user.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id",
			path:       "/user/k/not-a-uuid",
			setup:      func(*MockService) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store failure",
			path: "/user/k/" + id.String(),
			setup: func(m *MockService) {
				m.On("Find", mock.Anything, id).Return(user.User{}, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := setup(t)
			tt.setup(svc)

			resp := api.Get(tt.path)

			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantStatus == http.StatusNotFound {
				assert.Contains(t, resp.Body.String(), "User Not Found")
			}
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, resp.Body.String(), "connection reset")
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_create(t *testing.T) {
	req := user.CreateRequest{UserName: "ann", Email: "ann@example.com", Password: "pw"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusOK},
		{name: "email taken", err: user.ErrEmailTaken, wantStatus: http.StatusConflict},
		{name: "invalid", err: fmt.Errorf("%w: bad email", user.ErrInvalidInput), wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := setup(t)
			svc.On("Create", mock.Anything, req).Return(user.User{ID: uuid.New(), UserName: "ann"}, tt.err)

			resp := api.Post("/user/k", req)

			assert.Equal(t, tt.wantStatus, resp.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_update(t *testing.T) {
	api, svc := setup(t)
	id := uuid.New()
	name := "anna"
	patch := user.Patch{UserName: &name}
	svc.On("Update", mock.Anything, id, patch).Return(user.User{ID: id, UserName: name}, nil)

	resp := api.Put("/user/k/"+id.String(), map[string]any{"userName": name})

	require.Equal(t, http.StatusOK, resp.Code)
	var got user.User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, name, got.UserName)
	svc.AssertExpectations(t)
}

func TestHandler_delete(t *testing.T) {
	api, svc := setup(t)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil).Once()
	svc.On("Delete", mock.Anything, id).Return(user.ErrNotFound).Once()

	resp := api.Delete("/user/k/" + id.String())
	require.Equal(t, http.StatusOK, resp.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["affected"])

	resp = api.Delete("/user/k/" + id.String())
	assert.Equal(t, http.StatusNotFound, resp.Code)
	svc.AssertExpectations(t)
}

func TestHandler_login(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "accepted", wantStatus: http.StatusCreated},
		{name: "wrong password", err: user.ErrInvalidCredentials, wantStatus: http.StatusBadRequest},
		{name: "unknown email", err: user.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := setup(t)
			svc.On("Authenticate", mock.Anything, "ann@example.com", "pw").Return(user.User{ID: id}, tt.err)

			resp := api.Post("/login/k", map[string]any{"email": "ann@example.com", "password": "pw"})

			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.err == nil {
				var body LoginResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, "Ok", body.Status)
				assert.Equal(t, id, body.UserID)
			}
			svc.AssertExpectations(t)
		})
	}
}
