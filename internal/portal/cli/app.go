// Package cli is the interactive front end of the campusdesk client: a small
// REPL over the portal services. It formats and dispatches only; all state
// lives in the services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/admin"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/chat"
	"github.com/dmitrijs2005/campusdesk/internal/portal/config"
	"github.com/dmitrijs2005/campusdesk/internal/portal/events"
	"github.com/dmitrijs2005/campusdesk/internal/portal/files"
	"github.com/dmitrijs2005/campusdesk/internal/portal/notes"
	"github.com/dmitrijs2005/campusdesk/internal/portal/profile"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/dmitrijs2005/campusdesk/internal/portal/session"
	"github.com/dmitrijs2005/campusdesk/internal/portal/syncer"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	session *session.Manager
	syncer  *syncer.Syncer
	notes   *notes.Service
	events  *events.Service
	chat    chat.Store
	watcher *chat.Watcher
	files   *files.LocalStore
	profile *profile.Service
	admin   *admin.Service

	reader  *bufio.Reader
	current *session.Session

	// stopSync cancels the background loops started at login.
	stopSync context.CancelFunc
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, store, err := cache.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		return nil, err
	}

	apiClient := remote.NewHTTPClient(c.APIBaseURL, c.AnonKey, nil)

	sy := syncer.New(store, apiClient, log,
		syncer.WithIntervals(c.EventRefreshInterval, c.AnnouncementRefreshInterval))
	sy.Start(ctx)

	localChat := chat.NewLocalStore(store, log)

	app := &App{
		config:  c,
		log:     log,
		db:      db,
		session: session.NewManager(store, log),
		syncer:  sy,
		notes:   notes.NewService(store, apiClient, log),
		events:  events.NewService(sy, apiClient, log),
		chat:    chat.NewRemoteStore(localChat, apiClient, log),
		watcher: chat.NewWatcher(store, log, chat.WithWatchInterval(c.ChatPollInterval)),
		files:   files.NewLocalStore(store, log, c.FileQuotaBytes),
		profile: profile.NewService(store, apiClient, log),
		reader:  bufio.NewReader(os.Stdin),
	}

	storage, err := files.NewObjectStorage(ctx, files.ObjectStorageConfig{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	})
	if err != nil {
		// Material uploads need object storage; everything else works without.
		log.Warn(ctx, "object storage unavailable, material uploads disabled", "error", err)
		storage = nil
	}
	app.admin = admin.NewService(apiClient, storage, log)

	return app, nil
}

// Run restores a persisted session if any, then hands off to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if s, err := a.session.Current(ctx); err == nil {
		a.current = s
		a.startBackground(ctx)
	}

	a.Root(ctx)
	a.stopBackground()
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}

func (a *App) isAdmin() bool {
	return a.current != nil && a.current.Admin
}

// startBackground launches the merge loops and the chat watcher for the
// current session. Admin sessions get the watcher only.
func (a *App) startBackground(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	a.stopSync = cancel

	go a.syncer.Run(runCtx, a.isAdmin())
	go a.watcher.Run(runCtx)

	if !a.isAdmin() {
		a.notes.Hydrate(runCtx, a.current.StudentID)
	}
}

func (a *App) stopBackground() {
	if a.stopSync != nil {
		a.stopSync()
		a.stopSync = nil
	}
}
