package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vidtube/vidtube/internal/client/api"
	"github.com/vidtube/vidtube/internal/client/config"
	"github.com/vidtube/vidtube/internal/client/notify"
	"github.com/vidtube/vidtube/internal/client/repositories/tokens"
	"github.com/vidtube/vidtube/internal/client/services"
	"github.com/vidtube/vidtube/internal/client/session"
	"github.com/vidtube/vidtube/internal/client/storage"
	"github.com/vidtube/vidtube/internal/filex"
	"github.com/vidtube/vidtube/internal/logging"
)

// App is the assembled client: one instance owns the session, the
// notification queue and every API service. It is constructed once in main
// and passed by reference.
type App struct {
	config        *config.Config
	logger        logging.Logger
	session       *session.Manager
	notifications *notify.Center

	users         services.UserService
	videos        services.VideoService
	playlists     services.PlaylistService
	subscriptions services.SubscriptionService
	likes         services.LikeService
	comments      services.CommentService

	reader *bufio.Reader
}

// NewApp wires the full client from configuration: local database, token
// repository, API client, services and the session manager.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(newSlog(c.LogLevel))

	dbPath := c.DatabasePath
	if dbPath == "" {
		dir, err := filex.EnsureSubDir(".vidtube")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, "client.db")
	}

	db, err := storage.InitDatabase(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	repo := tokens.NewSQLiteRepository(db)

	apiClient, err := api.New(api.Options{
		BaseURL:         c.APIBaseURL,
		RefreshTokenURL: c.RefreshTokenURL,
		Timeout:         c.RequestTimeout,
		Tokens:          repo,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	notifications := notify.NewCenter()
	auth := services.NewAuthService(apiClient)
	manager := session.NewManager(auth, apiClient, repo, notifications, logger)

	// a mid-request refresh failure ends the session; surface it and drop
	// the in-memory state
	apiClient.OnSessionExpired(func() {
		notifications.Warning("Your session has expired, please log in again")
		manager.Expire()
	})

	return &App{
		config:        c,
		logger:        logger,
		session:       manager,
		notifications: notifications,
		users:         services.NewUserService(apiClient),
		videos:        services.NewVideoService(apiClient),
		playlists:     services.NewPlaylistService(apiClient),
		subscriptions: services.NewSubscriptionService(apiClient),
		likes:         services.NewLikeService(apiClient),
		comments:      services.NewCommentService(apiClient),
		reader:        bufio.NewReader(os.Stdin),
	}, nil
}

func newSlog(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// Run restores the session and starts the REPL. It blocks until the user
// exits or the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Bootstrap(ctx); err != nil {
		a.logger.Error(ctx, "session bootstrap failed", "error", err)
	}

	printlnFn("VidTube CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().State == session.StateAuthenticated
}

// status renders the prompt suffix: the user name when authenticated plus
// a pending-notification marker.
func (a *App) status() string {
	s := ""
	if snap := a.session.Snapshot(); snap.User != nil {
		s = snap.User.Username
	}
	if n := len(a.notifications.List()); n > 0 {
		s = fmt.Sprintf("%s [%d!]", s, n)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
