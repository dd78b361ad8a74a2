package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/healthmate/cli/internal/models"
)

// Profile shows the signed-in user's details and offers an in-place edit.
// Leaving a field empty keeps its current value.
func (a *App) Profile(ctx context.Context) error {
	u := a.store.User()
	if u == nil {
		printlnFn("No profile available.")
		return nil
	}

	printlnFn(fmt.Sprintf("Name:  %s", u.Name))
	printlnFn(fmt.Sprintf("Email: %s", u.Email))
	if u.Age > 0 {
		printlnFn(fmt.Sprintf("Age:   %d", u.Age))
	}
	if u.Phone != "" {
		printlnFn(fmt.Sprintf("Phone: %s", u.Phone))
	}

	answer, err := getSimpleText(a.reader, "Edit profile? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}

	var upd models.ProfileUpdate

	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	upd.Name = name

	ageText, err := getSimpleText(a.reader, "New age (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if ageText != "" {
		age, convErr := strconv.Atoi(ageText)
		if convErr != nil {
			printlnFn("Age must be a number.")
			return convErr
		}
		upd.Age = age
	}

	phone, err := getSimpleText(a.reader, "New phone (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	upd.Phone = phone

	if res := a.store.UpdateProfile(ctx, upd); !res.Success {
		printlnFn(res.Error)
		return nil
	}

	printlnFn("Profile updated.")
	return nil
}
