package app

import (
	"context"
	"net/http"

	"github.com/phamm25/ai-chatbot/internal/dataset/cache"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgconfig"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkglog"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgroutine"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	configPath string
	config     pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager

	// resources
	cache *cache.Layered

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	// closed in reverse registration order on Stop
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// New builds the application. An empty configPath falls back to CONFIG_PATH,
// then to the default location.
func New(configPath string) *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:        ctx,
		cancel:     cancel,
		configPath: configPath,
	}

	app.initConfig()
	app.initLibraries()
	app.initResources()
	app.initHTTPServer()
	app.initModules()

	return app
}
