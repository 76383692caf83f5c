// Package views holds the view-models of the client. A front-end drives them
// and renders their state; they report through a Notifier and move the user
// around through a Navigator.
package views

import (
	"context"

	"github.com/bobinette/knowledgehub"
)

// Notifier shows short-lived messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Navigator moves the user to another client route.
type Navigator interface {
	Navigate(path string)
}

// Session is the read side of the session service.
type Session interface {
	Current() (knowledgehub.User, bool)
	Ready() bool
}

// Authenticator opens sessions.
type Authenticator interface {
	Session

	Login(ctx context.Context, email, password string) (knowledgehub.AuthResponse, error)
	Signup(ctx context.Context, username, email, password string) (knowledgehub.AuthResponse, error)
}
