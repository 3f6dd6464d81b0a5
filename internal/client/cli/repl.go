package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Cover(ctx context.Context, path string) error
	Channel(ctx context.Context, username string) error
	ListVideos(ctx context.Context, query string) error
	ShowVideo(ctx context.Context, id string) error
	Upload(ctx context.Context) error
	EditVideo(ctx context.Context, id string) error
	DeleteVideo(ctx context.Context, id string) error
	Download(ctx context.Context, id string) error
	History(ctx context.Context) error
	ListPlaylists(ctx context.Context) error
	ShowPlaylist(ctx context.Context, playlistID string) error
	CreatePlaylist(ctx context.Context) error
	UpdatePlaylist(ctx context.Context, playlistID string) error
	AddToPlaylist(ctx context.Context, playlistID, videoID string) error
	RemoveFromPlaylist(ctx context.Context, playlistID, videoID string) error
	DeletePlaylist(ctx context.Context, playlistID string) error
	ListSubscriptions(ctx context.Context) error
	Subscribers(ctx context.Context, channelID string) error
	Subscribe(ctx context.Context, channelID string) error
	Unsubscribe(ctx context.Context, channelID string) error
	SubscriptionStatus(ctx context.Context, channelID string) error
	SubscriptionStats(ctx context.Context) error
	Feed(ctx context.Context) error
	Comments(ctx context.Context, videoID string) error
	AddComment(ctx context.Context, videoID string) error
	DeleteComment(ctx context.Context, commentID string) error
	Like(ctx context.Context, videoID string) error
	Unlike(ctx context.Context, videoID string) error
	Likes(ctx context.Context, videoID string) error
	Notifications() error
	Dismiss(id string) error
}

// runREPL starts a simple read–eval–print loop for the VidTube CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                 — show available commands
//	  - videos [query]       — list (optionally search) videos
//	  - video <id>           — show one video
//	  - download <id>        — save a video file locally
//	  - channel <username>   — show a channel's public profile
//	  - comments <id>        — list a video's comment thread
//	  - likes <id>           — show a video's like count
//	  - subscribers <ch>     — list a channel's subscribers
//	  - notices              — show pending notifications
//	  - dismiss <id>         — remove one notification
//	  - exit | quit          — leave the program
//
//	Not logged in:
//	  - register             — create an account
//	  - login                — authenticate
//
//	Logged in:
//	  - whoami               — show the authenticated profile
//	  - profile              — update account details
//	  - passwd               — change the password
//	  - avatar <path>        — upload a new avatar image
//	  - cover <path>         — upload a new cover image
//	  - upload               — publish a new video
//	  - video-edit <id>      — edit one of your videos
//	  - video-del <id>       — delete one of your videos
//	  - history              — watch history
//	  - playlists            — list own playlists
//	  - plshow <pl>          — show a playlist and its videos
//	  - plcreate             — create a playlist
//	  - plupdate <pl>        — rename or re-describe a playlist
//	  - pladd <pl> <video>   — add a video to a playlist
//	  - plrm <pl> <video>    — remove a video from a playlist
//	  - pldel <pl>           — delete a playlist
//	  - subs                 — list subscriptions
//	  - sub <channel>        — subscribe to a channel
//	  - unsub <channel>      — unsubscribe from a channel
//	  - substatus <channel>  — check whether you are subscribed
//	  - substats             — subscriber counts for your channel
//	  - feed                 — videos from subscribed channels
//	  - comment <id>         — comment on a video
//	  - comment-del <id>     — delete one of your comments
//	  - like <id>            — like a video
//	  - unlike <id>          — remove your like from a video
//	  - logout               — log out
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vt> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: videos [query], video <id>, download <id>, channel <username>, comments <id>, likes <id>, subscribers <channel>, notices, dismiss <id>, exit")
			if a.isLoggedIn() {
				printlnFn("Account: whoami, profile, passwd, avatar, cover, upload, video-edit, video-del, history, playlists, plshow, plcreate, plupdate, pladd, plrm, pldel, subs, sub, unsub, substatus, substats, feed, comment, comment-del, like, unlike, logout")
			} else {
				printlnFn("Account: register, login")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.UpdateProfile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <path>")
				continue
			}
			_ = a.Avatar(ctx, args[0])

		case "cover":
			if len(args) == 0 {
				printlnFn("Usage: cover <path>")
				continue
			}
			_ = a.Cover(ctx, args[0])

		case "channel":
			if len(args) == 0 {
				printlnFn("Usage: channel <username>")
				continue
			}
			_ = a.Channel(ctx, args[0])

		case "v", "videos":
			_ = a.ListVideos(ctx, strings.Join(args, " "))

		case "video":
			if len(args) == 0 {
				printlnFn("Usage: video <id>")
				continue
			}
			_ = a.ShowVideo(ctx, args[0])

		case "upload":
			_ = a.Upload(ctx)

		case "video-edit":
			if len(args) == 0 {
				printlnFn("Usage: video-edit <id>")
				continue
			}
			_ = a.EditVideo(ctx, args[0])

		case "video-del":
			if len(args) == 0 {
				printlnFn("Usage: video-del <id>")
				continue
			}
			_ = a.DeleteVideo(ctx, args[0])

		case "download":
			if len(args) == 0 {
				printlnFn("Usage: download <id>")
				continue
			}
			_ = a.Download(ctx, args[0])

		case "history":
			_ = a.History(ctx)

		case "playlists":
			_ = a.ListPlaylists(ctx)

		case "plshow":
			if len(args) == 0 {
				printlnFn("Usage: plshow <playlistId>")
				continue
			}
			_ = a.ShowPlaylist(ctx, args[0])

		case "plcreate":
			_ = a.CreatePlaylist(ctx)

		case "plupdate":
			if len(args) == 0 {
				printlnFn("Usage: plupdate <playlistId>")
				continue
			}
			_ = a.UpdatePlaylist(ctx, args[0])

		case "pladd":
			if len(args) < 2 {
				printlnFn("Usage: pladd <playlistId> <videoId>")
				continue
			}
			_ = a.AddToPlaylist(ctx, args[0], args[1])

		case "plrm":
			if len(args) < 2 {
				printlnFn("Usage: plrm <playlistId> <videoId>")
				continue
			}
			_ = a.RemoveFromPlaylist(ctx, args[0], args[1])

		case "pldel":
			if len(args) == 0 {
				printlnFn("Usage: pldel <playlistId>")
				continue
			}
			_ = a.DeletePlaylist(ctx, args[0])

		case "subs":
			_ = a.ListSubscriptions(ctx)

		case "subscribers":
			if len(args) == 0 {
				printlnFn("Usage: subscribers <channelId>")
				continue
			}
			_ = a.Subscribers(ctx, args[0])

		case "sub":
			if len(args) == 0 {
				printlnFn("Usage: sub <channelId>")
				continue
			}
			_ = a.Subscribe(ctx, args[0])

		case "unsub":
			if len(args) == 0 {
				printlnFn("Usage: unsub <channelId>")
				continue
			}
			_ = a.Unsubscribe(ctx, args[0])

		case "substatus":
			if len(args) == 0 {
				printlnFn("Usage: substatus <channelId>")
				continue
			}
			_ = a.SubscriptionStatus(ctx, args[0])

		case "substats":
			_ = a.SubscriptionStats(ctx)

		case "feed":
			_ = a.Feed(ctx)

		case "comments":
			if len(args) == 0 {
				printlnFn("Usage: comments <videoId>")
				continue
			}
			_ = a.Comments(ctx, args[0])

		case "comment":
			if len(args) == 0 {
				printlnFn("Usage: comment <videoId>")
				continue
			}
			_ = a.AddComment(ctx, args[0])

		case "comment-del":
			if len(args) == 0 {
				printlnFn("Usage: comment-del <commentId>")
				continue
			}
			_ = a.DeleteComment(ctx, args[0])

		case "like":
			if len(args) == 0 {
				printlnFn("Usage: like <videoId>")
				continue
			}
			_ = a.Like(ctx, args[0])

		case "unlike":
			if len(args) == 0 {
				printlnFn("Usage: unlike <videoId>")
				continue
			}
			_ = a.Unlike(ctx, args[0])

		case "likes":
			if len(args) == 0 {
				printlnFn("Usage: likes <videoId>")
				continue
			}
			_ = a.Likes(ctx, args[0])

		case "notices":
			_ = a.Notifications()

		case "dismiss":
			if len(args) == 0 {
				printlnFn("Usage: dismiss <id>")
				continue
			}
			_ = a.Dismiss(args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
