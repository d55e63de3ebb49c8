package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/crypto"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// Update hands the stored user configured via Return to apply, the way
// a real repository would after locking the row.
func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, apply func(*User) error) (User, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return User{}, err
	}
	u := args.Get(0).(User)
	if err := apply(&u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, NewValidator(), slog.Default())
}

func storedUser(t *testing.T, email, password string) User {
	t.Helper()
	creds, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return User{
		ID:       uuid.New(),
		UserName: "a",
		Email:    email,
		Password: creds.Hash,
		Salt:     creds.Salt,
	}
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.ID != uuid.Nil &&
			u.Email == "a@x.com" &&
			u.Password != "" && u.Password != "p" &&
			u.Salt != ""
	})).Return(nil)

	u, err := service.Create(context.Background(), CreateRequest{UserName: "a", Email: "  A@x.com ", Password: "p"})
	require.NoError(t, err)

	assert.Equal(t, "a", u.UserName)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, "p", u.Password)
	assert.True(t, crypto.VerifyHex("p", crypto.Credentials{Hash: u.Password, Salt: u.Salt}))
	assert.False(t, u.CreatedAt.IsZero())

	mockRepo.AssertExpectations(t)
}

func TestService_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{name: "blank user name", req: CreateRequest{UserName: "  ", Email: "a@x.com", Password: "p"}},
		{name: "bad email", req: CreateRequest{UserName: "a", Email: "not-an-email", Password: "p"}},
		{name: "empty password", req: CreateRequest{UserName: "a", Email: "a@x.com", Password: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo)

			_, err := service.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_EmailTaken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(ErrEmailTaken)

	_, err := service.Create(context.Background(), CreateRequest{UserName: "a", Email: "a@x.com", Password: "p"})
	assert.Equal(t, ErrEmailTaken, err)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))

	_, err := service.Create(context.Background(), CreateRequest{UserName: "a", Email: "a@x.com", Password: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

func TestService_Find(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Get", mock.Anything, id).Return(User{ID: id, UserName: "a"}, nil)

		u, err := newTestService(mockRepo).Find(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Get", mock.Anything, id).Return(User{}, ErrNotFound)

		_, err := newTestService(mockRepo).Find(context.Background(), id)
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	existing := storedUser(t, "a@x.com", "old")
	existing.ID = id

	t.Run("renames without touching credentials", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Update", mock.Anything, id).Return(existing, nil)

		name := "renamed"
		u, err := newTestService(mockRepo).Update(context.Background(), id, Patch{UserName: &name})
		require.NoError(t, err)

		assert.Equal(t, "renamed", u.UserName)
		assert.Equal(t, existing.Email, u.Email)
		assert.Equal(t, existing.Password, u.Password)
		assert.Equal(t, existing.Salt, u.Salt)
	})

	t.Run("password change re-salts", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Update", mock.Anything, id).Return(existing, nil)

		password := "new"
		u, err := newTestService(mockRepo).Update(context.Background(), id, Patch{Password: &password})
		require.NoError(t, err)

		assert.NotEqual(t, existing.Salt, u.Salt)
		assert.NotEqual(t, existing.Password, u.Password)
		assert.True(t, crypto.VerifyHex("new", crypto.Credentials{Hash: u.Password, Salt: u.Salt}))
		assert.False(t, crypto.VerifyHex("old", crypto.Credentials{Hash: u.Password, Salt: u.Salt}))
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Update", mock.Anything, id).Return(User{}, ErrNotFound)

		name := "x"
		_, err := newTestService(mockRepo).Update(context.Background(), id, Patch{UserName: &name})
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("invalid email is rejected before the store", func(t *testing.T) {
		mockRepo := new(MockRepository)

		email := "nope"
		_, err := newTestService(mockRepo).Update(context.Background(), id, Patch{Email: &email})
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	mockRepo := new(MockRepository)
	mockRepo.On("Delete", mock.Anything, id).Return(ErrNotFound).Once()
	mockRepo.On("Delete", mock.Anything, id).Return(nil).Once()

	service := newTestService(mockRepo)
	assert.Equal(t, ErrNotFound, service.Delete(context.Background(), id))
	assert.NoError(t, service.Delete(context.Background(), id))
}

func TestService_Authenticate(t *testing.T) {
	u := storedUser(t, "a@x.com", "p")

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		repoErr  error
		wantErr  error
	}{
		{name: "valid credentials", email: "a@x.com", password: "p", found: true},
		{name: "email is case insensitive", email: "A@X.COM", password: "p", found: true},
		{name: "wrong password", email: "a@x.com", password: "q", found: true, wantErr: ErrInvalidCredentials},
		{name: "empty password", email: "a@x.com", password: "", found: true, wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "b@x.com", password: "p", repoErr: ErrNotFound, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			if tt.found {
				mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(u, nil)
			} else {
				mockRepo.On("FindByEmail", mock.Anything, tt.email).Return(User{}, tt.repoErr)
			}

			got, err := newTestService(mockRepo).Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Equal(t, User{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.ID, got.ID)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Authenticate_StoreError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(User{}, errors.New("connection reset"))

	_, err := newTestService(mockRepo).Authenticate(context.Background(), "a@x.com", "p")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}
