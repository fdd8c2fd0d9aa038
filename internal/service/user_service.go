package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"mapup/internal/backend"
	apperrors "mapup/internal/errors"
	"mapup/internal/form"
	"mapup/internal/logging"
	"mapup/internal/model"
	"mapup/internal/paging"
)

// UserPageSizes are the selectable user table page sizes.
var UserPageSizes = []int{5, 10, 15}

// DefaultUserPageSize is used when no or an unsupported page size is requested.
const DefaultUserPageSize = 5

// ErrInvalidUser is returned by Create when the form fails validation.
var ErrInvalidUser = fmt.Errorf("%w: invalid user form", apperrors.ErrValidation)

// UserService exposes user-list operations against the backend.
type UserService interface {
	List(ctx context.Context) (*UserList, error)
	Delete(ctx context.Context, id string) error
	Edit(ctx context.Context, id string)
	Create(ctx context.Context, f form.CreateUserForm) (map[string]string, error)
	Find(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	client    backend.Client
	validator *form.Validator
	log       logging.Logger
}

// NewUserService builds a UserService on top of the backend client.
func NewUserService(client backend.Client, validator *form.Validator, log logging.Logger) UserService {
	return &userService{client: client, validator: validator, log: log}
}

func (s *userService) List(ctx context.Context) (*UserList, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	return NewUserList(users), nil
}

// Delete asks the backend to remove id. Callers reload the list afterwards,
// so a failed delete leaves the shown rows untouched.
func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrUserNotFound
	}
	if err := s.client.DeleteUser(ctx, id); err != nil {
		s.log.Error(ctx, "delete user", "id", id, "error", err)
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	s.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// Edit is not wired to the backend yet.
func (s *userService) Edit(ctx context.Context, id string) {
	s.log.Info(ctx, "edit user requested", "id", id)
}

// Create validates f and posts it. The returned map holds per-field
// messages when validation fails, in which case nothing is sent.
func (s *userService) Create(ctx context.Context, f form.CreateUserForm) (map[string]string, error) {
	f.Normalize()
	if errs := s.validator.CreateUser(f); len(errs) > 0 {
		return errs, ErrInvalidUser
	}

	err := s.client.CreateUser(ctx, backend.CreateUserRequest{
		FullName: f.FullName,
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
	})
	if err != nil {
		s.log.Error(ctx, "create user", "username", f.Username, "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info(ctx, "user created", "username", f.Username, "role", f.Role)
	return nil, nil
}

func (s *userService) Find(ctx context.Context, username string) (*model.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// UserList is the fetched user list held for one page view.
type UserList struct {
	users []model.User
}

// NewUserList copies users into a list. A nil slice yields an empty list.
func NewUserList(users []model.User) *UserList {
	return &UserList{users: slices.Clone(users)}
}

// Users returns the current records.
func (l *UserList) Users() []model.User {
	if l == nil || l.users == nil {
		return []model.User{}
	}
	return l.users
}

// Len returns the number of users.
func (l *UserList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.users)
}

// UserTable pages a UserList.
type UserTable struct {
	*paging.Table[model.User]
}

// NewUserTable shows page (1-based) of list with the given page size.
// Unsupported sizes fall back to DefaultUserPageSize.
func NewUserTable(list *UserList, pageSize, page int) *UserTable {
	t := paging.New(list.Users(), NormalizeUserPageSize(pageSize), nil)
	if page > 1 {
		t.SetPage(min(page, t.TotalPages()))
	}
	return &UserTable{Table: t}
}

// PageSizes lists the selectable page sizes.
func (t *UserTable) PageSizes() []int {
	return UserPageSizes
}

// NormalizeUserPageSize maps n onto a supported page size.
func NormalizeUserPageSize(n int) int {
	if slices.Contains(UserPageSizes, n) {
		return n
	}
	return DefaultUserPageSize
}

// IsInvalidUser reports whether err came from form validation.
func IsInvalidUser(err error) bool {
	return errors.Is(err, ErrInvalidUser)
}
