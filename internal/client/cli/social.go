package cli

import (
	"context"
	"fmt"
	"os"
)

// Comments prints a video's comment thread.
func (a *App) Comments(ctx context.Context, videoID string) error {
	comments, err := a.comments.ByVideo(ctx, videoID)
	if err != nil {
		return a.fail(ctx, err)
	}

	for _, c := range comments {
		author := "?"
		if c.Owner != nil {
			author = c.Owner.Username
		}
		printlnFn(fmt.Sprintf("%s  %s: %s", c.ID, author, c.Content))
	}
	return nil
}

// AddComment prompts for the comment text and posts it.
func (a *App) AddComment(ctx context.Context, videoID string) error {
	content, err := getSimpleText(a.reader, "Enter comment", os.Stdout)
	if err != nil {
		return err
	}
	if content == "" {
		printlnFn("Empty comment, nothing sent")
		return nil
	}

	c, err := a.comments.Create(ctx, videoID, content)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Posted:", c.ID)
	return nil
}

// DeleteComment removes one of the user's own comments.
func (a *App) DeleteComment(ctx context.Context, commentID string) error {
	if err := a.comments.Delete(ctx, commentID); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Comment deleted")
	return nil
}

// Like marks a video as liked by the current user.
func (a *App) Like(ctx context.Context, videoID string) error {
	if err := a.likes.LikeVideo(ctx, videoID); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Liked")
	return nil
}

// Unlike removes the user's like from a video.
func (a *App) Unlike(ctx context.Context, videoID string) error {
	if err := a.likes.UnlikeVideo(ctx, videoID); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Like removed")
	return nil
}

// Likes prints a video's like count and whether the user has liked it.
func (a *App) Likes(ctx context.Context, videoID string) error {
	status, err := a.likes.VideoLikes(ctx, videoID)
	if err != nil {
		return a.fail(ctx, err)
	}

	if status.IsLiked {
		printlnFn(fmt.Sprintf("%d likes (including yours)", status.LikeCount))
	} else {
		printlnFn(fmt.Sprintf("%d likes", status.LikeCount))
	}
	return nil
}
