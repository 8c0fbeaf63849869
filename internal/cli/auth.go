package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shindearyan179/notesnap/internal/auth"
	"github.com/shindearyan179/notesnap/internal/common"
)

// reportAuthError translates sentinel errors into user-facing messages.
func reportAuthError(err error) {
	switch {
	case errors.Is(err, common.ErrorDuplicateUsername):
		fmt.Println("That username is already taken.")
	case errors.Is(err, common.ErrorDuplicateEmail):
		fmt.Println("That email is already in use.")
	case errors.Is(err, common.ErrorValidation):
		fmt.Println("Invalid input. Usernames are 3-50 characters (letters, digits, - and _); passwords need at least 8 characters with an upper-case letter, a lower-case letter, a digit and a special character.")
	case errors.Is(err, common.ErrorInvalidCredentials):
		fmt.Println("Invalid username or password.")
	case errors.Is(err, common.ErrorRateLimited):
		fmt.Println("Too many attempts. Try again later.")
	default:
		fmt.Println("Something went wrong. Try again later.")
	}
}

// requireLogin checks the stored session against the server. A revoked or
// expired session drops the local login state.
func (a *App) requireLogin(ctx context.Context) bool {
	if !a.isLoggedIn() {
		fmt.Println("You need to log in first.")
		return false
	}

	ok, err := a.auth.ValidateSession(ctx, a.user.ID, a.token)
	if err != nil {
		fmt.Println("Something went wrong. Try again later.")
		return false
	}
	if !ok {
		a.user = nil
		a.token = ""
		fmt.Println("Session expired. Log in again.")
		return false
	}
	return true
}

func (a *App) Register(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Choose a password: ", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	question, err := GetSimpleText(a.reader, "Security question (used for password recovery)", os.Stdout)
	if err != nil {
		return err
	}
	answer, err := GetSimpleText(a.reader, "Answer", os.Stdout)
	if err != nil {
		return err
	}

	info, err := a.auth.Register(ctx, auth.RegisterInput{
		Username:         username,
		Email:            email,
		Password:         string(password),
		SecurityQuestion: question,
		SecurityAnswer:   answer,
	}, a.origin())
	if err != nil {
		reportAuthError(err)
		return err
	}

	fmt.Printf("Account %s created. You can log in now.\n", info.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password: ", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	info, token, err := a.auth.Login(ctx, username, string(password), a.origin())
	if err != nil {
		reportAuthError(err)
		return err
	}

	a.user = info
	a.token = token
	fmt.Printf("Welcome, %s!\n", info.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	if err := a.auth.Logout(ctx, a.user.ID, a.token, a.origin()); err != nil {
		reportAuthError(err)
		return err
	}

	a.user = nil
	a.token = ""
	fmt.Println("Logged out.")
	return nil
}

// ResetPassword runs the recovery flow: look up the account, show its
// security question, and set a new password when the answer matches.
func (a *App) ResetPassword(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}

	record, err := a.auth.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		reportAuthError(err)
		return err
	}

	question := "Security answer"
	if record != nil {
		question = record.SecurityQuestion
	}
	answer, err := GetSimpleText(a.reader, question, os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("New password: ", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.auth.ResetPassword(ctx, username, answer, string(password), a.origin())
	if err != nil {
		reportAuthError(err)
		return err
	}
	if !ok {
		fmt.Println("Could not reset the password.")
		return nil
	}

	fmt.Println("Password updated. You can log in now.")
	return nil
}

func (a *App) UpdateQuestion(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	question, err := GetSimpleText(a.reader, "New security question", os.Stdout)
	if err != nil {
		return err
	}
	answer, err := GetSimpleText(a.reader, "Answer", os.Stdout)
	if err != nil {
		return err
	}

	ok, err := a.auth.UpdateSecurityQuestion(ctx, a.user.Username, question, answer, a.origin())
	if err != nil {
		reportAuthError(err)
		return err
	}
	if !ok {
		fmt.Println("Could not update the security question.")
		return nil
	}

	fmt.Println("Security question updated.")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.requireLogin(ctx) {
		return nil
	}

	confirm, err := GetSimpleText(a.reader,
		fmt.Sprintf("This permanently deletes the account and all its notes. Type %q to confirm", a.user.Username),
		os.Stdout)
	if err != nil {
		return err
	}
	if confirm != a.user.Username {
		fmt.Println("Aborted.")
		return nil
	}

	ok, err := a.auth.DeleteAccount(ctx, a.user.Username, a.origin())
	if err != nil {
		reportAuthError(err)
		return err
	}
	if !ok {
		fmt.Println("Could not delete the account.")
		return nil
	}

	a.user = nil
	a.token = ""
	fmt.Println("Account deleted.")
	return nil
}
