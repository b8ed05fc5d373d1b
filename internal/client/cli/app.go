package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/curriculoxpress/cxpress/internal/client/api"
	"github.com/curriculoxpress/cxpress/internal/client/cache"
	"github.com/curriculoxpress/cxpress/internal/client/config"
	"github.com/curriculoxpress/cxpress/internal/client/reconcile"
	"github.com/curriculoxpress/cxpress/internal/client/resources"
	"github.com/curriculoxpress/cxpress/internal/client/session"
	"github.com/curriculoxpress/cxpress/internal/client/storage"
	"github.com/curriculoxpress/cxpress/internal/logging"

	_ "modernc.org/sqlite"
)

// App owns the full client object graph for one REPL process.
type App struct {
	config     *config.Config
	storage    storage.Store
	session    *session.Store
	api        *api.HTTPClient
	services   *resources.Services
	reconciler *reconcile.Reconciler
	log        logging.Logger
	reader     *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.NewZapProduction(c.LogLevel)
	if err != nil {
		return nil, err
	}

	st, err := storage.Open(ctx, c.Storage, c.DataDir)
	if err != nil {
		log.Error(ctx, "error opening token storage", "error", err)
		return nil, err
	}

	sess := session.NewStore(st, log)
	apiClient := api.New(c.BaseURL, sess, c.RequestTimeout, log)
	ch := cache.New()
	svcs := resources.New(apiClient, ch)

	return &App{
		config:     c,
		storage:    st,
		session:    sess,
		api:        apiClient,
		services:   svcs,
		reconciler: reconcile.New(svcs.Curriculums, ch, log),
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and drops into the REPL. Blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Restore(ctx)
	a.Root(ctx)
}

func (a *App) Close() {
	if err := a.storage.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing token storage", "error", err)
	}
	if z, ok := a.log.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}
