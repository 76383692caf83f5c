package views

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bobinette/knowledgehub/errors"
)

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldConfirm  = "confirmPassword"

	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

var emailRegexp = regexp.MustCompile(`\S+@\S+\.\S+`)

func validateEmail(errs errors.Fields, email string) {
	if email == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailRegexp.MatchString(email) {
		errs[FieldEmail] = "Invalid email address"
	}
}

// fields is the state shared by the login and signup forms.
type fields struct {
	mu      sync.Mutex
	values  map[string]string
	errs    errors.Fields
	loading bool
}

func (f *fields) set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[field] = value
	delete(f.errs, field)
}

func (f *fields) get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Errors returns a copy of the current field errors.
func (f *fields) Errors() errors.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := errors.Fields{}
	for k, v := range f.errs {
		errs[k] = v
	}
	return errs
}

func (f *fields) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// start records errs and, when there are none, marks the form as loading.
// It reports whether the form can be sent.
func (f *fields) start(errs errors.Fields) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(errs) > 0 {
		f.errs = errs
		return false, errs
	}
	if f.loading {
		return false, errors.New("already submitting", errors.BadRequest())
	}
	f.errs = errors.Fields{}
	f.loading = true
	return true, nil
}

func (f *fields) done() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
}

type LoginForm struct {
	fields

	auth      Authenticator
	notifier  Notifier
	navigator Navigator
}

func NewLoginForm(auth Authenticator, notifier Notifier, navigator Navigator) *LoginForm {
	return &LoginForm{
		auth:      auth,
		notifier:  notifier,
		navigator: navigator,
	}
}

func (f *LoginForm) SetEmail(v string)    { f.set(FieldEmail, v) }
func (f *LoginForm) SetPassword(v string) { f.set(FieldPassword, v) }

func (f *LoginForm) Validate() errors.Fields {
	errs := errors.Fields{}
	validateEmail(errs, f.get(FieldEmail))
	if f.get(FieldPassword) == "" {
		errs[FieldPassword] = "Password is required"
	}
	return errs
}

// Submit signs in and goes home.
func (f *LoginForm) Submit(ctx context.Context) error {
	ok, err := f.start(f.Validate())
	if !ok {
		return err
	}
	defer f.done()

	if _, err := f.auth.Login(ctx, f.get(FieldEmail), f.get(FieldPassword)); err != nil {
		f.notifier.Error(errors.UserMessage(err, "Invalid email or password"))
		return err
	}

	f.notifier.Success("Welcome back!")
	f.navigator.Navigate(RouteHome.Pattern)
	return nil
}

type SignupForm struct {
	fields

	auth      Authenticator
	notifier  Notifier
	navigator Navigator
}

func NewSignupForm(auth Authenticator, notifier Notifier, navigator Navigator) *SignupForm {
	return &SignupForm{
		auth:      auth,
		notifier:  notifier,
		navigator: navigator,
	}
}

func (f *SignupForm) SetUsername(v string) { f.set(FieldUsername, v) }
func (f *SignupForm) SetEmail(v string)    { f.set(FieldEmail, v) }
func (f *SignupForm) SetPassword(v string) { f.set(FieldPassword, v) }
func (f *SignupForm) SetConfirm(v string)  { f.set(FieldConfirm, v) }

// Strength rates the password typed so far.
func (f *SignupForm) Strength() Strength {
	return PasswordStrength(f.get(FieldPassword))
}

func (f *SignupForm) Validate() errors.Fields {
	errs := errors.Fields{}

	username := f.get(FieldUsername)
	switch n := utf8.RuneCountInString(username); {
	case strings.TrimSpace(username) == "":
		errs[FieldUsername] = "Username is required"
	case n < MinUsernameLength:
		errs[FieldUsername] = "Username must be at least 3 characters"
	case n > MaxUsernameLength:
		errs[FieldUsername] = "Username too long (max 50)"
	}

	validateEmail(errs, f.get(FieldEmail))

	password := f.get(FieldPassword)
	if password == "" {
		errs[FieldPassword] = "Password is required"
	} else if utf8.RuneCountInString(password) < MinPasswordLength {
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	if password != f.get(FieldConfirm) {
		errs[FieldConfirm] = "Passwords do not match"
	}
	return errs
}

// Submit creates the account, signs in and goes home.
func (f *SignupForm) Submit(ctx context.Context) error {
	ok, err := f.start(f.Validate())
	if !ok {
		return err
	}
	defer f.done()

	_, err = f.auth.Signup(ctx, f.get(FieldUsername), f.get(FieldEmail), f.get(FieldPassword))
	if err != nil {
		f.notifier.Error(errors.UserMessage(err, "Signup failed. Please try again."))
		return err
	}

	f.notifier.Success("Account created! Welcome to KnowledgeHub")
	f.navigator.Navigate(RouteHome.Pattern)
	return nil
}

type Strength int

const (
	StrengthNone Strength = iota
	StrengthTooShort
	StrengthWeak
	StrengthFair
	StrengthStrong
)

var strengthLabels = map[Strength]string{
	StrengthNone:     "",
	StrengthTooShort: "Too short",
	StrengthWeak:     "Weak",
	StrengthFair:     "Fair",
	StrengthStrong:   "Strong",
}

func (s Strength) String() string {
	return strengthLabels[s]
}

// Percent is the filling of the strength meter.
func (s Strength) Percent() int {
	switch s {
	case StrengthTooShort:
		return 25
	case StrengthWeak:
		return 45
	case StrengthFair:
		return 65
	case StrengthStrong:
		return 100
	}
	return 0
}

var digitRegexp = regexp.MustCompile(`\d`)

func PasswordStrength(password string) Strength {
	n := utf8.RuneCountInString(password)
	switch {
	case n == 0:
		return StrengthNone
	case n < 6:
		return StrengthTooShort
	case n < 8:
		return StrengthWeak
	case n < 12 || !digitRegexp.MatchString(password):
		return StrengthFair
	}
	return StrengthStrong
}
