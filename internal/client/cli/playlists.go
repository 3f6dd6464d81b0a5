package cli

import (
	"context"
	"fmt"
	"os"
)

// ListPlaylists prints the authenticated user's playlists.
func (a *App) ListPlaylists(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		printlnFn("Not logged in")
		return nil
	}

	playlists, err := a.playlists.ByUser(ctx, snap.User.ID)
	if err != nil {
		return a.fail(ctx, err)
	}

	for _, p := range playlists {
		printlnFn(fmt.Sprintf("%s  %s (%d videos)", p.ID, p.Name, len(p.Videos)))
	}
	return nil
}

// ShowPlaylist prints one playlist and its videos.
func (a *App) ShowPlaylist(ctx context.Context, playlistID string) error {
	p, err := a.playlists.Get(ctx, playlistID)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("%s — %s", p.Name, p.Description))
	for _, v := range p.Videos {
		printlnFn(formatVideo(v))
	}
	return nil
}

// CreatePlaylist prompts for a name and description and creates the playlist.
func (a *App) CreatePlaylist(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter playlist name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.playlists.Create(ctx, name, description)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Created:", p.ID)
	return nil
}

// UpdatePlaylist prompts for a new name and description and patches the
// playlist. The server requires both fields, so empty answers keep the
// current values by resending them.
func (a *App) UpdatePlaylist(ctx context.Context, playlistID string) error {
	current, err := a.playlists.Get(ctx, playlistID)
	if err != nil {
		return a.fail(ctx, err)
	}

	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	if name == "" {
		name = current.Name
	}
	if description == "" {
		description = current.Description
	}

	p, err := a.playlists.Update(ctx, playlistID, name, description)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Updated:", p.Name)
	return nil
}

// AddToPlaylist adds a video to a playlist.
func (a *App) AddToPlaylist(ctx context.Context, playlistID, videoID string) error {
	p, err := a.playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("%s now has %d videos", p.Name, len(p.Videos)))
	return nil
}

// RemoveFromPlaylist removes a video from a playlist.
func (a *App) RemoveFromPlaylist(ctx context.Context, playlistID, videoID string) error {
	p, err := a.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("%s now has %d videos", p.Name, len(p.Videos)))
	return nil
}

// DeletePlaylist removes a playlist entirely.
func (a *App) DeletePlaylist(ctx context.Context, playlistID string) error {
	if err := a.playlists.Delete(ctx, playlistID); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Playlist deleted")
	return nil
}
