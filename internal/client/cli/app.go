package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/client/cache"
	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/config"
	"github.com/dmitrijs2005/taskboard/internal/client/notify"
	"github.com/dmitrijs2005/taskboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
	"github.com/dmitrijs2005/taskboard/internal/client/session"
	"github.com/dmitrijs2005/taskboard/internal/filex"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/netx"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	client   client.Client
	session  *session.Provider
	store    *cache.Store
	tasks    services.TaskService
	profiles services.ProfileService
	logger   logging.Logger
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer

	mu   sync.Mutex
	mode Mode
	// rows of the last printed task table; commands accept their numbers
	shown []models.Task
}

// NewApp opens the local session store, dials the server and wires the
// client core together.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stderr, slog.LevelWarn)

	if err := filex.EnsureParentDir(c.LocalDBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewTaskBoardClientService(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := cache.New(c.CacheSize)
	if err != nil {
		_ = db.Close()
		_ = apiClient.Close()
		return nil, err
	}

	n := notify.Multi{notify.NewWriter(os.Stdout, true), notify.NewLog(logger)}

	a := newApp(c, apiClient, metadata.NewSQLiteRepository(db), store, n, netx.DefaultClient, logger)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, api client.Client, meta metadata.Repository, store *cache.Store,
	n notify.Notifier, doer netx.HTTPDoer, logger logging.Logger) *App {
	a := &App{
		config:   c,
		client:   api,
		session:  session.NewProvider(api, meta, logger),
		store:    store,
		tasks:    services.NewTaskService(api, store, n),
		profiles: services.NewProfileService(api, store, n, doer),
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	a.session.Subscribe(func(s models.Session, _ bool) {
		a.store.SetOwner(s.UserID)
		a.mu.Lock()
		a.shown = nil
		a.mu.Unlock()
	})
	// row numbers of a listing die with the data it was printed from
	a.store.Subscribe(func(k cache.Key) {
		if k.Kind != cache.KindTasks || !a.tasks.Peek(k.Owner).Stale {
			return
		}
		a.mu.Lock()
		a.shown = nil
		a.mu.Unlock()
	})
	return a
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) owner() string {
	s, _ := a.session.Current()
	return s.UserID
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

// Run resumes a saved session, starts the connectivity watcher and blocks
// in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	a.resume(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to taskboard (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) close() {
	if err := a.client.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing connection failed", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) resume(ctx context.Context) {
	ok, err := a.session.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "restoring session failed", "error", err)
		return
	}
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = a.session.Verify(ctx, func(ctx context.Context) error {
		_, err := a.tasks.List(ctx, a.owner())
		return err
	})
	switch {
	case err == nil:
		s, _ := a.session.Current()
		fmt.Fprintf(a.out, "Welcome back, %s\n", s.Email)
		a.setMode(ModeOnline)
	case !a.isLoggedIn():
		fmt.Fprintln(a.out, "Saved session expired, please log in")
	default:
		a.logger.Warn(ctx, "session check failed", "error", err)
		a.setMode(ModeOffline)
	}
}

func (a *App) getStatus() string {
	s := ""
	if cur, ok := a.session.Current(); ok {
		s = cur.Email + " "
	}
	s += string(a.Mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode when reachability changes.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.client.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
