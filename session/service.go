package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/log"
)

const (
	TokenKey = "kp_token"
	UserKey  = "kp_user"
)

// Service holds the signed-in session. It is the only writer of the session
// keys: the in-memory session and the storage are updated together on every
// transition.
type Service struct {
	storage knowledgehub.KeyValueStore
	auth    knowledgehub.AuthService
	logger  log.Logger

	mu      sync.RWMutex
	current knowledgehub.Session
	ready   bool
}

func NewService(storage knowledgehub.KeyValueStore, auth knowledgehub.AuthService, logger log.Logger) *Service {
	return &Service{
		storage: storage,
		auth:    auth,
		logger:  logger,
	}
}

// Restore hydrates the session from storage. A partial or unparsable state is
// cleared and the service starts signed out.
func (s *Service) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, hasToken, err := s.storage.Get(TokenKey)
	if err != nil {
		return errors.New("could not read session token", errors.WithCause(err))
	}
	data, hasUser, err := s.storage.Get(UserKey)
	if err != nil {
		return errors.New("could not read session user", errors.WithCause(err))
	}

	s.current = knowledgehub.Session{}
	s.ready = true

	if !hasToken && !hasUser {
		return nil
	}

	var user knowledgehub.User
	if hasToken && hasUser && token != "" {
		if err := json.Unmarshal([]byte(data), &user); err != nil {
			s.logger.Warnf("corrupt session user, clearing session: %v", err)
			user = knowledgehub.User{}
		}
	}

	if user.IsZero() {
		s.logger.Warnf("incomplete session in storage, clearing it")
		if err := s.storage.Delete(TokenKey, UserKey); err != nil {
			return errors.New("could not clear session", errors.WithCause(err))
		}
		return nil
	}

	s.current = knowledgehub.Session{Token: token, User: user}
	return nil
}

// Ready reports whether Restore has completed.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Service) Login(ctx context.Context, email, password string) (knowledgehub.AuthResponse, error) {
	res, err := s.auth.Login(ctx, knowledgehub.LoginRequest{Email: email, Password: password})
	if err != nil {
		return knowledgehub.AuthResponse{}, err
	}

	if err := s.open(res); err != nil {
		return knowledgehub.AuthResponse{}, err
	}
	return res, nil
}

func (s *Service) Signup(ctx context.Context, username, email, password string) (knowledgehub.AuthResponse, error) {
	res, err := s.auth.Signup(ctx, knowledgehub.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return knowledgehub.AuthResponse{}, err
	}

	if err := s.open(res); err != nil {
		return knowledgehub.AuthResponse{}, err
	}
	return res, nil
}

// open persists the session carried by res and sets it in memory.
func (s *Service) open(res knowledgehub.AuthResponse) error {
	if !res.Valid() {
		return errors.New("authentication response has no token or user id", errors.BadGateway())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := res.User()
	if err := s.persist(res.Token, user); err != nil {
		return err
	}

	s.current = knowledgehub.Session{Token: res.Token, User: user}
	s.ready = true
	return nil
}

// persist saves token and user. A failed save signs out, in memory and in
// storage. The lock must be held.
func (s *Service) persist(token string, user knowledgehub.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.storage.Set(TokenKey, token); err != nil {
		return s.drop(errors.New("could not save session token", errors.WithCause(err)))
	}
	if err := s.storage.Set(UserKey, string(data)); err != nil {
		return s.drop(errors.New("could not save session user", errors.WithCause(err)))
	}
	return nil
}

// drop clears the session after a failed save and returns cause. The lock
// must be held.
func (s *Service) drop(cause error) error {
	s.current = knowledgehub.Session{}
	if err := s.storage.Delete(TokenKey, UserKey); err != nil {
		s.logger.Errorf("could not clear session after a failed save: %v", err)
		return errors.New(fmt.Sprintf("%v, and could not clear session", cause), errors.WithCause(err))
	}
	return cause
}

// Logout tells the server the session is over, then clears it locally
// whatever the server answered.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Debugf("server logout failed: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = knowledgehub.Session{}
	if err := s.storage.Delete(TokenKey, UserKey); err != nil {
		return errors.New("could not clear session", errors.WithCause(err))
	}
	return nil
}

// Refresh fetches the signed-in user from the server and saves it. A failed
// call leaves the session untouched, a failed save signs out.
func (s *Service) Refresh(ctx context.Context) (knowledgehub.User, error) {
	current, ok := s.Current()
	if !ok {
		return knowledgehub.User{}, errors.New("not signed in", errors.Unauthorized())
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		return knowledgehub.User{}, err
	}
	if user.IsZero() {
		return knowledgehub.User{}, errors.New("current user response has no id", errors.BadGateway())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Signed out while the call was in flight.
	if s.current.User.ID != current.ID {
		return knowledgehub.User{}, errors.New("session changed during refresh")
	}

	if err := s.persist(s.current.Token, user); err != nil {
		return knowledgehub.User{}, err
	}
	s.current.User = user
	return user, nil
}

// Current returns a copy of the signed-in user, and false when nobody is.
func (s *Service) Current() (knowledgehub.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.User, !s.current.User.IsZero()
}

// Token returns the token of the current session, empty when signed out.
func (s *Service) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token, nil
}
