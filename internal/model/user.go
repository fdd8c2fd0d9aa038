package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the closed set of roles a dashboard user can have.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Roles lists every role in the order the creation dialog offers them.
var Roles = []Role{RoleUser, RoleManager, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User is a dashboard account as listed by the backend.
type User struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	CreatedBy   string `json:"createdBy"`
	CreatedDate string `json:"createdDate"`
	LastLogin   string `json:"lastLogin"`
}

type userWire struct {
	ID          json.RawMessage `json:"id"`
	MongoID     json.RawMessage `json:"_id"`
	FullName    string          `json:"fullName"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Role        Role            `json:"role"`
	CreatedBy   string          `json:"createdBy"`
	CreatedDate string          `json:"createdDate"`
	LastLogin   string          `json:"lastLogin"`
}

// UnmarshalJSON accepts "id" or "_id", as a string or a number.
func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	raw := w.ID
	if len(raw) == 0 || string(raw) == "null" {
		raw = w.MongoID
	}
	id, err := rawID(raw)
	if err != nil {
		return err
	}
	*u = User{
		ID:          id,
		FullName:    w.FullName,
		Username:    w.Username,
		Email:       w.Email,
		Role:        w.Role,
		CreatedBy:   w.CreatedBy,
		CreatedDate: w.CreatedDate,
		LastLogin:   w.LastLogin,
	}
	return nil
}

func rawID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("user id: %w", err)
	}
	return n.String(), nil
}

// CreatedDay formats CreatedDate for the user table.
func (u User) CreatedDay() string {
	return FormatDate(u.CreatedDate)
}

// LastLoginAt formats LastLogin for the profile card; empty when unknown.
func (u User) LastLoginAt() string {
	if u.LastLogin == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, u.LastLogin)
	if err != nil {
		return u.LastLogin
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
