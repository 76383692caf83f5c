package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobinette/knowledgehub/errors"
	"github.com/bobinette/knowledgehub/views"
)

var (
	authEmail    string
	authPassword string
	authUsername string
	authConfirm  string
	whoamiRemote bool
)

func init() {
	LoginCommand.Flags().StringVar(&authEmail, "email", "", "email of the account")
	LoginCommand.Flags().StringVar(&authPassword, "password", "", "password, read from stdin when empty")

	SignupCommand.Flags().StringVar(&authUsername, "username", "", "username, 3 to 50 characters")
	SignupCommand.Flags().StringVar(&authEmail, "email", "", "email of the account")
	SignupCommand.Flags().StringVar(&authPassword, "password", "", "password, read from stdin when empty")
	SignupCommand.Flags().StringVar(&authConfirm, "confirm", "", "password confirmation, defaults to the password")

	WhoamiCommand.Flags().BoolVar(&whoamiRemote, "remote", false, "fetch the user from the server")

	RootCmd.AddCommand(&LoginCommand)
	RootCmd.AddCommand(&SignupCommand)
	RootCmd.AddCommand(&LogoutCommand)
	RootCmd.AddCommand(&WhoamiCommand)
}

// readPassword reads a line from the command input when password is empty.
func readPassword(cmd *cobra.Command, password string) (string, error) {
	if password != "" {
		return password, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var authFieldOrder = []string{
	views.FieldUsername,
	views.FieldEmail,
	views.FieldPassword,
	views.FieldConfirm,
}

// fieldErrors prints the validation errors carried by err, after notice when
// the view did not print one already. err is marked as reported.
func fieldErrors(err error, notice string, order []string) error {
	fields, ok := err.(errors.Fields)
	if !ok {
		return reported(err)
	}
	if notice != "" {
		app.Notifier.Error(notice)
	}
	app.Notifier.renderer.Fields(fields, order...)
	return reported(err)
}

var LoginCommand = cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Long:  "Sign in and keep the session for the next commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd, authPassword)
		if err != nil {
			return err
		}

		form := views.NewLoginForm(app.Session, app.Notifier, app.Navigator)
		form.SetEmail(authEmail)
		form.SetPassword(password)
		if err := form.Submit(cmd.Context()); err != nil {
			return fieldErrors(err, "Please fix the errors before submitting", authFieldOrder)
		}

		return showCurrentUser(false)
	},
}

var SignupCommand = cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long:  "Create an account and sign in with it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd, authPassword)
		if err != nil {
			return err
		}
		confirm := authConfirm
		if !cmd.Flags().Changed("confirm") {
			confirm = password
		}

		form := views.NewSignupForm(app.Session, app.Notifier, app.Navigator)
		form.SetUsername(authUsername)
		form.SetEmail(authEmail)
		form.SetPassword(password)
		form.SetConfirm(confirm)
		if s := form.Strength(); s != views.StrengthNone {
			app.Notifier.Info("Password strength: " + s.String())
		}

		if err := form.Submit(cmd.Context()); err != nil {
			return fieldErrors(err, "Please fix the errors before submitting", authFieldOrder)
		}

		return showCurrentUser(false)
	},
}

var LogoutCommand = cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long:  "Sign out and forget the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := app.Session.Current(); !ok {
			app.Notifier.Info("Not signed in")
			return nil
		}

		if err := app.Session.Logout(cmd.Context()); err != nil {
			return err
		}
		app.Notifier.Success("Signed out")
		return nil
	},
}

var WhoamiCommand = cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  "Show the signed-in user, as remembered or as the server sees it with --remote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := app.Session.Current(); !ok {
			app.Notifier.Error("Not signed in")
			return reported(errors.New("not signed in", errors.Unauthorized()))
		}

		if whoamiRemote {
			if _, err := app.Session.Refresh(cmd.Context()); err != nil {
				app.Notifier.Error(errors.UserMessage(err, "Could not fetch the current user"))
				return reported(err)
			}
		}
		return showCurrentUser(true)
	},
}

type userOutput struct {
	ID        int        `json:"id" yaml:"id"`
	Username  string     `json:"username" yaml:"username"`
	Email     string     `json:"email" yaml:"email"`
	Role      string     `json:"role" yaml:"role"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

func showCurrentUser(withExpiry bool) error {
	user, ok := app.Session.Current()
	if !ok {
		return nil
	}

	var expiry time.Time
	if withExpiry {
		exp, ok, err := app.Session.TokenExpiry()
		if err != nil {
			app.Logger.Debugf("could not read token expiry: %v", err)
		} else if ok {
			expiry = exp
		}
	}

	if app.Structured() {
		out := userOutput{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}
		if !expiry.IsZero() {
			out.ExpiresAt = &expiry
		}
		return app.Encode(out)
	}

	app.Renderer.User(user, expiry)
	return nil
}
