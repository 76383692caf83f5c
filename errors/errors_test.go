package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCode(t *testing.T) {
	tts := []struct {
		err      error
		code     int
		expected *myError
	}{
		{
			err:  errors.New("simple error"),
			code: 404,
			expected: &myError{
				msg:  "simple error",
				code: 404,
			},
		},
		{
			err: &myError{
				msg:  "custom error",
				code: 200,
				body: []byte(`{}`),
			},
			code: 501,
			expected: &myError{
				msg:  "custom error",
				code: 501,
				body: []byte(`{}`),
			},
		},
		{
			err: &myError{
				msg:   "keep cause",
				code:  125,
				cause: &myError{msg: "I am the cause"},
			},
			code: 305,
			expected: &myError{
				msg:   "keep cause",
				code:  305,
				cause: &myError{msg: "I am the cause"},
			},
		},
		{
			// nil input should give nil output
			err:      nil,
			code:     305,
			expected: nil,
		},
	}

	for i, tt := range tts {
		err, _ := WithCode(tt.code)(tt.err).(*myError)
		assertErrors(t, tt.expected, err, fmt.Sprintf("%d WithCode", i))
	}
}

func TestWithCause(t *testing.T) {
	tts := []struct {
		err      error
		cause    error
		expected *myError
	}{
		{
			err:   errors.New("simple error"),
			cause: errors.New("I am the cause"),
			expected: &myError{
				msg:   "simple error",
				code:  500,
				cause: &myError{msg: "I am the cause", code: DefaultCode},
			},
		},
		{
			err:   errors.New("simple error"),
			cause: &myError{msg: "forward code", code: 401},
			expected: &myError{
				msg:   "simple error",
				code:  401,
				cause: &myError{msg: "forward code", code: 401},
			},
		},
		{
			err:   &myError{msg: "custom error", code: 200},
			cause: &myError{msg: "custom cause", code: 300},
			expected: &myError{
				msg:   "custom error",
				code:  200,
				cause: &myError{msg: "custom cause", code: 300},
			},
		},
		{
			// nil input should give nil output
			err:      nil,
			cause:    errors.New("The cause is ignored if the wrapper is nil"),
			expected: nil,
		},
	}

	for i, tt := range tts {
		err, _ := WithCause(tt.cause)(tt.err).(*myError)
		assertErrors(t, tt.expected, err, fmt.Sprintf("%d WithCause", i))
	}
}

func TestNew_Enrichers(t *testing.T) {
	err := New("error in call", WithCode(422), WithBody([]byte(`{"message":"nope"}`)))

	e, ok := err.(Error)
	if assert.True(t, ok, "should implement Error") {
		assert.Equal(t, 422, e.Code())
		assert.Equal(t, "error in call", e.Message())
		assert.Equal(t, `{"message":"nope"}`, string(e.Body()))
		assert.Nil(t, e.Cause(), "no cause was given")
	}

	assert.Equal(t, 422, Code(err))
	assert.Equal(t, 0, Code(errors.New("plain")))
}

func assertErrors(t *testing.T, exp *myError, got *myError, name string) {
	if exp == nil {
		assert.Nil(t, got, "%s - expected nil", name)
		return
	}

	if !assert.NotNil(t, got, "%s - expected non-nil", name) {
		return
	}

	assert.Equal(t, exp.code, got.code, "%s - code", name)
	assert.Equal(t, exp.msg, got.msg, "%s - msg", name)
	assert.Equal(t, exp.body, got.body, "%s - body", name)

	assertErrors(t, exp.cause, got.cause, name)
}
