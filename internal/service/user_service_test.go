package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/trkr/internal/error_values"
	"github.com/limbo/trkr/internal/service"
	"github.com/limbo/trkr/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func init() {
	service.InitValidator()
}

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateUserExistsError
	stateUserNotFoundError
)

var (
	testUserID   = uuid.New()
	testUserName = "test_user"
	testPassword = "password123"
)

type usersRepoMock struct {
	state    mockState
	passHash string
}

func (urmock *usersRepoMock) Create(ctx context.Context, user *entity.User) error {
	switch urmock.state {
	case stateUserExistsError:
		return errorvalues.ErrUserExists
	case stateDBError:
		return errors.New("db error")
	default:
		urmock.passHash = user.PasswordHash
		return nil
	}
}

func (urmock *usersRepoMock) FindByName(ctx context.Context, name string) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFoundError:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return &entity.User{ID: testUserID, Name: name, PasswordHash: urmock.passHash}, nil
	}
}

func (urmock *usersRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFoundError:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return &entity.User{ID: uid, Name: testUserName, PasswordHash: urmock.passHash}, nil
	}
}

func (urmock *usersRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	switch urmock.state {
	case stateUserNotFoundError:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func TestRegister(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess}
	s := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := s.Register(ctx, &service.RegisterRequest{Name: testUserName, Password: testPassword})
		assert.NoError(t, err)
		assert.Equal(t, testUserID, user.ID)
		assert.Equal(t, testUserName, user.Name)
		// Hash, never the plaintext
		assert.NotEqual(t, testPassword, user.PasswordHash)
	})
	t.Run("invalid name", func(t *testing.T) {
		_, err := s.Register(ctx, &service.RegisterRequest{Name: "1bad", Password: testPassword})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("short password", func(t *testing.T) {
		_, err := s.Register(ctx, &service.RegisterRequest{Name: testUserName, Password: "short"})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("duplicate user", func(t *testing.T) {
		mock.state = stateUserExistsError
		_, err := s.Register(ctx, &service.RegisterRequest{Name: testUserName, Password: testPassword})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.Register(ctx, &service.RegisterRequest{Name: testUserName, Password: testPassword})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	hash, err := service.Hash(testPassword)
	if err != nil {
		t.Fatal(err)
	}
	mock := &usersRepoMock{state: stateSuccess, passHash: hash}
	s := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := s.Login(ctx, testUserName, testPassword)
		assert.NoError(t, err)
		assert.Equal(t, testUserID, user.ID)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, testUserName, "not-the-password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("unknown user", func(t *testing.T) {
		mock.state = stateUserNotFoundError
		_, err := s.Login(ctx, testUserName, testPassword)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := s.Login(ctx, testUserName, testPassword)
		assert.Error(t, err)
	})
}

func TestGetByID(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess}
	s := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := s.GetByID(ctx, testUserID)
		assert.NoError(t, err)
		assert.Equal(t, testUserID, user.ID)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateUserNotFoundError
		_, err := s.GetByID(ctx, testUserID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	hash, err := service.Hash(testPassword)
	if err != nil {
		t.Fatal(err)
	}
	mock := &usersRepoMock{state: stateSuccess, passHash: hash}
	s := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("wrong password", func(t *testing.T) {
		err := s.DeleteAccount(ctx, testUserID, "not-the-password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("success", func(t *testing.T) {
		err := s.DeleteAccount(ctx, testUserID, testPassword)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateUserNotFoundError
		err := s.DeleteAccount(ctx, testUserID, testPassword)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
