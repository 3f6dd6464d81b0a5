package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vidtube/vidtube/internal/client/models"
	"github.com/vidtube/vidtube/internal/client/services"
	"github.com/vidtube/vidtube/internal/filex"
	"github.com/vidtube/vidtube/internal/netx"
)

// ListVideos prints one page of the catalog, optionally filtered by a
// search query.
func (a *App) ListVideos(ctx context.Context, query string) error {
	page, err := a.videos.List(ctx, services.ListVideosOptions{Query: query})
	if err != nil {
		return a.fail(ctx, err)
	}

	for _, v := range page.Videos {
		printlnFn(formatVideo(v))
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d videos)", page.Page, page.TotalPages, page.Total))
	return nil
}

func formatVideo(v models.Video) string {
	owner := ""
	if v.Owner != nil {
		owner = " by " + v.Owner.Username
	}
	return fmt.Sprintf("%s  %s%s (%d views)", v.ID, v.Title, owner, v.Views)
}

// ShowVideo prints the full details of one video.
func (a *App) ShowVideo(ctx context.Context, id string) error {
	v, err := a.videos.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(formatVideo(*v))
	if v.Description != "" {
		printlnFn(v.Description)
	}
	printlnFn("File:", v.VideoFile)
	return nil
}

// Upload prompts for the video details and publishes it. The video file is
// required, the thumbnail optional.
func (a *App) Upload(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	input := services.PublishVideoInput{Title: title, Description: description}

	if input.VideoFile, err = a.promptFile("Video file path"); err != nil {
		return err
	}
	if input.VideoFile.Name == "" {
		printlnFn("A video file is required")
		return nil
	}
	if input.Thumbnail, err = a.promptFile("Thumbnail path (empty to skip)"); err != nil {
		return err
	}

	v, err := a.videos.Publish(ctx, input)
	if err != nil {
		return a.fail(ctx, err)
	}

	a.notifications.Success("Video published")
	printlnFn("Published:", v.ID)
	return nil
}

// EditVideo prompts for a new title and description (empty answers keep the
// current values) and patches the video.
func (a *App) EditVideo(ctx context.Context, id string) error {
	title, err := getSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	if title == "" && description == "" {
		printlnFn("Nothing to update")
		return nil
	}

	v, err := a.videos.Update(ctx, id, services.UpdateVideoInput{Title: title, Description: description})
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Updated:", v.Title)
	return nil
}

// DeleteVideo removes one of the user's own videos.
func (a *App) DeleteVideo(ctx context.Context, id string) error {
	if err := a.videos.Delete(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Video deleted")
	return nil
}

// Download saves a video's media file under ./downloads. The media URL
// points at the CDN, not the API, so the transfer bypasses the
// authenticated pipeline.
func (a *App) Download(ctx context.Context, id string) error {
	v, err := a.videos.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	dir, err := filex.EnsureSubDir("downloads")
	if err != nil {
		return a.fail(ctx, err)
	}

	name := filepath.Base(v.VideoFile)
	if name == "." || name == "/" {
		name = v.ID + ".mp4"
	}
	path := filepath.Join(dir, name)

	if err := netx.DownloadToFile(ctx, v.VideoFile, path); err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Saved to", path)
	return nil
}

// History prints the watch history of the authenticated user.
func (a *App) History(ctx context.Context) error {
	videos, err := a.users.WatchHistory(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	for _, v := range videos {
		printlnFn(formatVideo(v))
	}
	return nil
}

// fail logs a command failure and shows it to the user.
func (a *App) fail(ctx context.Context, err error) error {
	a.logger.Error(ctx, "command failed", "error", err)
	printlnFn("Error:", err.Error())
	return err
}
