package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mapup/internal/backend"
	apperrors "mapup/internal/errors"
	"mapup/internal/form"
	"mapup/internal/logging"
	"mapup/internal/model"
)

func sampleUsers() []model.User {
	return []model.User{
		{ID: "41", Username: "alice", Role: model.RoleUser},
		{ID: "42", Username: "bob", Role: model.RoleManager},
		{ID: "43", Username: "carol", Role: model.RoleAdmin},
	}
}

func newUserService(mb *MockBackend) UserService {
	return NewUserService(mb, form.NewValidator(), logging.Nop())
}

func TestUserService_List(t *testing.T) {
	mb := new(MockBackend)
	mb.On("ListUsers", mock.Anything).Return(sampleUsers(), nil).Once()
	mb.On("ListUsers", mock.Anything).Return(nil, errors.New("boom")).Once()
	svc := newUserService(mb)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())

	_, err = svc.List(context.Background())
	assert.Error(t, err)
	mb.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		err     error
		wantErr error
		called  bool
	}{
		{name: "backend confirms", id: "42", called: true},
		{name: "backend fails", id: "42", err: apperrors.ErrBackend, wantErr: apperrors.ErrBackend, called: true},
		{name: "empty id", id: "", wantErr: apperrors.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := new(MockBackend)
			if tt.called {
				mb.On("DeleteUser", mock.Anything, tt.id).Return(tt.err)
			}

			err := newUserService(mb).Delete(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tt.called {
				mb.AssertExpectations(t)
			} else {
				mb.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUserService_Create(t *testing.T) {
	valid := form.CreateUserForm{
		FullName: "Sudhakar Swain",
		Username: "sudhakar27",
		Email:    "sudhakar@mapup.ai",
		Password: "password1",
	}

	t.Run("invalid form never reaches the backend", func(t *testing.T) {
		mb := new(MockBackend)
		f := valid
		f.Email = "a@b"
		f.Password = "short"

		errs, err := newUserService(mb).Create(context.Background(), f)
		assert.True(t, IsInvalidUser(err))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, map[string]string{
			"email":    "Invalid email",
			"password": "Password must be at least 8 characters",
		}, errs)
		mb.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("posts with default role", func(t *testing.T) {
		mb := new(MockBackend)
		mb.On("CreateUser", mock.Anything, backend.CreateUserRequest{
			FullName: valid.FullName,
			Username: valid.Username,
			Email:    valid.Email,
			Password: valid.Password,
			Role:     model.RoleUser,
		}).Return(nil)

		errs, err := newUserService(mb).Create(context.Background(), valid)
		require.NoError(t, err)
		assert.Empty(t, errs)
		mb.AssertExpectations(t)
	})

	t.Run("backend rejection", func(t *testing.T) {
		mb := new(MockBackend)
		mb.On("CreateUser", mock.Anything, mock.Anything).Return(&backend.APIError{Status: 409, Message: "exists"})

		errs, err := newUserService(mb).Create(context.Background(), valid)
		assert.Error(t, err)
		assert.False(t, IsInvalidUser(err))
		assert.Empty(t, errs)
	})
}

func TestUserService_Find(t *testing.T) {
	mb := new(MockBackend)
	mb.On("ListUsers", mock.Anything).Return(sampleUsers(), nil)
	svc := newUserService(mb)

	u, err := svc.Find(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "42", u.ID)

	_, err = svc.Find(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserTable(t *testing.T) {
	users := make([]model.User, 12)
	for i := range users {
		users[i] = model.User{ID: string(rune('a' + i))}
	}
	list := NewUserList(users)

	tbl := NewUserTable(list, 0, 1)
	assert.Equal(t, DefaultUserPageSize, tbl.RowsPerPage())
	assert.Equal(t, 3, tbl.TotalPages())

	tbl = NewUserTable(list, 10, 2)
	assert.Equal(t, 2, tbl.CurrentPage())
	assert.Len(t, tbl.Visible(), 2)

	tbl = NewUserTable(list, 15, 9)
	assert.Equal(t, 1, tbl.CurrentPage())
	assert.Len(t, tbl.Visible(), 12)

	assert.Equal(t, []int{5, 10, 15}, tbl.PageSizes())
	assert.Equal(t, 5, NormalizeUserPageSize(7))
}

func TestUserList_Empty(t *testing.T) {
	var list *UserList
	assert.Equal(t, []model.User{}, list.Users())
	assert.Equal(t, 0, list.Len())
	assert.Equal(t, []model.User{}, NewUserList(nil).Users())
}
