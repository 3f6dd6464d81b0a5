package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vidtube/vidtube/internal/client/services"
	"github.com/vidtube/vidtube/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates a new account via
// the session manager. Avatar and cover image are optional local paths; an
// empty answer skips them.
//
// On success the session is already authenticated and the credential pair
// persisted. The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
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

	input := services.RegisterInput{
		FullName: fullName,
		Username: userName,
		Email:    email,
		Password: string(password),
	}

	if input.Avatar, err = a.promptFile("Avatar image path (empty to skip)"); err != nil {
		return err
	}
	if input.CoverImage, err = a.promptFile("Cover image path (empty to skip)"); err != nil {
		return err
	}

	user, err := a.session.Register(ctx, input)
	if err != nil {
		// the session manager already queued the failure notification
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", user.Username))
	return nil
}

// promptFile asks for a local path and loads the file content. An empty
// answer returns a zero FileUpload.
func (a *App) promptFile(prompt string) (services.FileUpload, error) {
	path, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return services.FileUpload{}, err
	}
	if path == "" {
		return services.FileUpload{}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return services.FileUpload{}, err
	}
	return services.FileUpload{Name: filepath.Base(path), Content: content}, nil
}

// Login prompts for credentials and authenticates via the session manager.
// The identifier may be a username or an email address.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username or email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s", user.Username))
	return nil
}

// Logout ends the session. The local state is always cleared, even when the
// server call fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the authenticated profile.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		printlnFn("Not logged in")
		return nil
	}
	u := snap.User
	printlnFn(fmt.Sprintf("%s <%s> (%s)", u.FullName, u.Email, u.Username))
	return nil
}
