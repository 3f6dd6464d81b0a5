package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vidtube/vidtube/internal/client/services"
	"github.com/vidtube/vidtube/internal/client/session"
	"github.com/vidtube/vidtube/internal/common"
)

// UpdateProfile prompts for new account details (empty answers keep the
// current values), patches them on the server and shallow-merges the result
// into the in-memory session.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	fullName, err := getSimpleText(a.reader, "New full name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	bio, err := getSimpleText(a.reader, "New bio (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	if fullName == "" && email == "" && bio == "" {
		printlnFn("Nothing to update")
		return nil
	}

	input := services.UpdateAccountInput{FullName: fullName, Email: email, Bio: bio}
	user, err := a.users.UpdateAccount(ctx, input)
	if err != nil {
		return a.fail(ctx, err)
	}

	patch := session.UserPatch{}
	if fullName != "" {
		patch.FullName = &user.FullName
	}
	if email != "" {
		patch.Email = &user.Email
	}
	if bio != "" {
		patch.Bio = &user.Bio
	}
	a.session.UpdateUser(patch)

	a.notifications.Success("Profile updated")
	return nil
}

// ChangePassword prompts for the current and new passwords and changes them
// on the server.
func (a *App) ChangePassword(ctx context.Context) error {
	printlnFn("Current password")
	oldPassword, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	printlnFn("New password")
	newPassword, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.users.ChangePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Password changed")
	return nil
}

// Avatar uploads a new avatar image from a local file.
func (a *App) Avatar(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	upload := services.FileUpload{Name: filepath.Base(path), Content: content}
	user, err := a.users.UpdateAvatar(ctx, upload)
	if err != nil {
		return a.fail(ctx, err)
	}

	a.session.UpdateUser(session.UserPatch{Avatar: &user.Avatar})
	printlnFn("Avatar updated")
	return nil
}

// Cover uploads a new channel cover image from a local file.
func (a *App) Cover(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	upload := services.FileUpload{Name: filepath.Base(path), Content: content}
	user, err := a.users.UpdateCoverImage(ctx, upload)
	if err != nil {
		return a.fail(ctx, err)
	}

	a.session.UpdateUser(session.UserPatch{CoverImage: &user.CoverImage})
	printlnFn("Cover image updated")
	return nil
}

// Channel prints a channel's public profile.
func (a *App) Channel(ctx context.Context, username string) error {
	profile, err := a.users.ChannelProfile(ctx, username)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("%s (%s) — %d subscribers, following %d",
		profile.FullName, profile.Username, profile.SubscriberCount, profile.SubscribedToCount))
	if profile.IsSubscribed {
		printlnFn("You are subscribed to this channel")
	}
	return nil
}
