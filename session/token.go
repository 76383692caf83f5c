package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/errors"
)

// StorageTokens reads the bearer token straight from storage, so that every
// request uses whatever session is persisted at the time it is sent.
type StorageTokens struct {
	Storage knowledgehub.KeyValueStore
}

func (t StorageTokens) Token() (string, error) {
	token, _, err := t.Storage.Get(TokenKey)
	if err != nil {
		return "", errors.New("could not read session token", errors.WithCause(err))
	}
	return token, nil
}

// TokenExpiry decodes the exp claim of the session token. The signature is
// not checked: the result is for display only. It returns false when the
// token carries no expiry.
func (s *Service) TokenExpiry() (time.Time, bool, error) {
	token, _ := s.Token()
	if token == "" {
		return time.Time{}, false, errors.New("not signed in", errors.Unauthorized())
	}

	return Expiry(token)
}

func Expiry(token string) (time.Time, bool, error) {
	claims := jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false, errors.New("could not decode token", errors.WithCause(err))
	}

	if claims.ExpiresAt == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(claims.ExpiresAt, 0), true, nil
}
