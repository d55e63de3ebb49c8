package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"timetrack/internal/domain/user"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Category), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]Category), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Category), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, apply func(*Category) error) (Category, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return Category{}, err
	}
	c := args.Get(0).(Category)
	if err := apply(&c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOwners struct {
	mock.Mock
}

func (m *MockOwners) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("attaches the owner", func(t *testing.T) {
		repo, owners := new(MockRepository), new(MockOwners)
		owners.On("Get", mock.Anything, userID).Return(user.User{ID: userID}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Category) bool {
			return c.UserID == userID && c.ID != uuid.Nil && c.Name == "work" && c.Color == "#ff0000"
		})).Return(nil)

		c, err := NewService(repo, owners, slog.Default()).Create(context.Background(), userID, CreateRequest{Name: "work", Color: "#ff0000"})
		require.NoError(t, err)
		assert.Equal(t, userID, c.UserID)
		assert.NotNil(t, c.Times)
		assert.Empty(t, c.Times)
		repo.AssertExpectations(t)
	})

	t.Run("unknown owner", func(t *testing.T) {
		repo, owners := new(MockRepository), new(MockOwners)
		owners.On("Get", mock.Anything, userID).Return(user.User{}, user.ErrNotFound)

		_, err := NewService(repo, owners, slog.Default()).Create(context.Background(), userID, CreateRequest{Name: "work", Color: "red"})
		assert.Equal(t, ErrUserNotFound, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank name", func(t *testing.T) {
		repo, owners := new(MockRepository), new(MockOwners)

		_, err := NewService(repo, owners, slog.Default()).Create(context.Background(), userID, CreateRequest{Name: " ", Color: "red"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		owners.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("owner lookup failure", func(t *testing.T) {
		repo, owners := new(MockRepository), new(MockOwners)
		owners.On("Get", mock.Anything, userID).Return(user.User{}, errors.New("timeout"))

		_, err := NewService(repo, owners, slog.Default()).Create(context.Background(), userID, CreateRequest{Name: "work", Color: "red"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	existing := Category{ID: id, Name: "work", Color: "red", UserID: owner}

	t.Run("merges supplied fields only", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", mock.Anything, id).Return(existing, nil)

		color := "blue"
		c, err := NewService(repo, new(MockOwners), slog.Default()).Update(context.Background(), id, Patch{Color: &color})
		require.NoError(t, err)
		assert.Equal(t, "work", c.Name)
		assert.Equal(t, "blue", c.Color)
		assert.Equal(t, owner, c.UserID)
	})

	t.Run("rejects blanking the name", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", mock.Anything, id).Return(existing, nil)

		name := ""
		_, err := NewService(repo, new(MockOwners), slog.Default()).Update(context.Background(), id, Patch{Name: &name})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", mock.Anything, id).Return(Category{}, ErrNotFound)

		_, err := NewService(repo, new(MockOwners), slog.Default()).Update(context.Background(), id, Patch{})
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestService_FindAndDelete(t *testing.T) {
	id := uuid.New()

	repo := new(MockRepository)
	repo.On("Get", mock.Anything, id).Return(Category{}, ErrNotFound)
	repo.On("Delete", mock.Anything, id).Return(ErrNotFound)

	service := NewService(repo, new(MockOwners), slog.Default())

	_, err := service.Find(context.Background(), id)
	assert.Equal(t, ErrNotFound, err)
	assert.Equal(t, ErrNotFound, service.Delete(context.Background(), id))
}

func TestService_ListByUser(t *testing.T) {
	userID := uuid.New()

	repo := new(MockRepository)
	repo.On("ListByUser", mock.Anything, userID).Return([]Category{}, nil)

	categories, err := NewService(repo, new(MockOwners), slog.Default()).ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, categories)
}
