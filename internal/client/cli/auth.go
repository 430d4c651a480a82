package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up form and creates an account. The user
// still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	_, err = a.session.SignUp(ctx, validation.SignUpInput{
		FullName:        fullName,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		return describeAuthError(err)
	}

	fmt.Fprintln(a.out, "Account created, you can log in now")
	return nil
}

// Login prompts for credentials and opens a session. An unreachable server
// switches the app to offline mode.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return describeAuthError(err)
	}

	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func describeAuthError(err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return errors.New(joinMessages(verrs))
	case errors.Is(err, client.ErrUnauthorized):
		return errors.New("invalid email or password")
	case errors.Is(err, client.ErrConflict):
		return errors.New("an account with this email already exists")
	case errors.Is(err, client.ErrUnavailable):
		return errors.New("server unavailable, try again later")
	}
	return err
}

func joinMessages(verrs validation.Errors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}
