package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/healthmate/cli/internal/common"
	"github.com/healthmate/cli/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new account.
// A successful registration also signs the user in, matching the backend's
// register response which carries a token.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	reg := models.Registration{Name: name, Email: email, Password: string(password)}

	ageText, err := getSimpleText(a.reader, "Enter age (optional)", os.Stdout)
	if err != nil {
		return err
	}
	if ageText != "" {
		age, convErr := strconv.Atoi(ageText)
		if convErr != nil {
			printlnFn("Age must be a number.")
			return convErr
		}
		reg.Age = age
	}

	if res := a.store.Register(ctx, reg); !res.Success {
		printlnFn(res.Error)
		return nil
	}

	printlnFn("Account created. You are now signed in.")
	return nil
}

// Login prompts for credentials and authenticates through the session store.
// Failures are reported to the user, not returned: a wrong password is a
// normal outcome of this screen.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.store.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if !res.Success {
		printlnFn(res.Error)
		return nil
	}

	if u := a.store.User(); u != nil {
		printlnFn(fmt.Sprintf("Welcome, %s!", u.Name))
	}
	return nil
}

// Logout ends the session and clears persisted credentials.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout()
	printlnFn("Logged out.")
	return nil
}
