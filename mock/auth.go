package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
)

// AuthService is an in-memory AuthService. Accounts are keyed by email, the
// token of an account is "token-<id>".
type AuthService struct {
	// LoginResponse and SignupResponse, when set, are returned as is.
	LoginResponse  *knowledgehub.AuthResponse
	SignupResponse *knowledgehub.AuthResponse

	LoginErr  error
	SignupErr error
	LogoutErr error
	MeErr     error

	mu       sync.Mutex
	accounts map[string]account
	maxID    int
	current  knowledgehub.User
	logouts  int
}

type account struct {
	user     knowledgehub.User
	password string
}

func (s *AuthService) Signup(ctx context.Context, req knowledgehub.SignupRequest) (knowledgehub.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SignupErr != nil {
		return knowledgehub.AuthResponse{}, s.SignupErr
	}
	if s.SignupResponse != nil {
		return *s.SignupResponse, nil
	}

	if s.accounts == nil {
		s.accounts = make(map[string]account)
	}
	if _, ok := s.accounts[req.Email]; ok {
		return knowledgehub.AuthResponse{}, errors.New(
			"error in call: 400 Bad Request",
			errors.BadRequest(),
			errors.WithBody([]byte(`{"message":"Email already in use"}`)),
		)
	}

	s.maxID++
	user := knowledgehub.User{ID: s.maxID, Username: req.Username, Email: req.Email, Role: "USER"}
	s.accounts[req.Email] = account{user: user, password: req.Password}
	s.current = user
	return response(user), nil
}

func (s *AuthService) Login(ctx context.Context, req knowledgehub.LoginRequest) (knowledgehub.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoginErr != nil {
		return knowledgehub.AuthResponse{}, s.LoginErr
	}
	if s.LoginResponse != nil {
		return *s.LoginResponse, nil
	}

	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		return knowledgehub.AuthResponse{}, errors.New("error in call: 401 Unauthorized", errors.Unauthorized())
	}
	s.current = acc.user
	return response(acc.user), nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logouts++
	if s.LogoutErr != nil {
		return s.LogoutErr
	}
	s.current = knowledgehub.User{}
	return nil
}

func (s *AuthService) Me(ctx context.Context) (knowledgehub.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.MeErr != nil {
		return knowledgehub.User{}, s.MeErr
	}
	if s.current.IsZero() {
		return knowledgehub.User{}, errors.New("error in call: 401 Unauthorized", errors.Unauthorized())
	}
	return s.current, nil
}

// SetCurrent changes the user returned by Me.
func (s *AuthService) SetCurrent(user knowledgehub.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = user
}

func (s *AuthService) Logouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logouts
}

func response(user knowledgehub.User) knowledgehub.AuthResponse {
	return knowledgehub.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Token:    fmt.Sprintf("token-%d", user.ID),
	}
}
