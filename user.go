package knowledgehub

import (
	"context"
)

type User struct {
	ID       int    `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	Role     string `json:"role" yaml:"role"`
}

// IsZero reports whether u is the empty user, i.e. nobody is signed in.
func (u User) IsZero() bool {
	return u.ID == 0
}

// AuthResponse is the payload returned by the signup and login endpoints.
type AuthResponse struct {
	ID       int    `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	Role     string `json:"role" yaml:"role"`
	Token    string `json:"token" yaml:"token"`
}

// User returns the projection of the response that is kept in the session.
func (r AuthResponse) User() User {
	return User{
		ID:       r.ID,
		Username: r.Username,
		Email:    r.Email,
		Role:     r.Role,
	}
}

// Valid reports whether the response can open a session.
func (r AuthResponse) Valid() bool {
	return r.Token != "" && r.ID != 0
}

type Session struct {
	Token string
	User  User
}

type SignupRequest struct {
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

type AuthService interface {
	Signup(context.Context, SignupRequest) (AuthResponse, error)
	Login(context.Context, LoginRequest) (AuthResponse, error)
	Logout(context.Context) error
	Me(context.Context) (User, error)
}

// KeyValueStore is the durable storage the session is persisted in. Get
// reports false when the key is not set.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
}
