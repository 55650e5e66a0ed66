// Package web composes the PropertyChain admin web service: the Fiber app,
// templates, static assets, access logging, the authentication and security
// middleware chain and all page handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	fiberlogger "github.com/propertychain/propertychain-admin/internal/logger/adapter/fiber"
	"github.com/propertychain/propertychain-admin/internal/security"
	"github.com/propertychain/propertychain-admin/internal/web/handler"
	activityhandler "github.com/propertychain/propertychain-admin/internal/web/handler/admin/activity"
	"github.com/propertychain/propertychain-admin/internal/web/handler/admin/section"
	sessionshandler "github.com/propertychain/propertychain-admin/internal/web/handler/admin/sessions"
	settingshandler "github.com/propertychain/propertychain-admin/internal/web/handler/admin/settings"
	usershandler "github.com/propertychain/propertychain-admin/internal/web/handler/admin/users"
	"github.com/propertychain/propertychain-admin/internal/web/handler/dashboard"
	"github.com/propertychain/propertychain-admin/internal/web/handler/login"
	"github.com/propertychain/propertychain-admin/internal/web/handler/logout"
	"github.com/propertychain/propertychain-admin/internal/web/handler/sessionstatus"
	"github.com/propertychain/propertychain-admin/internal/web/handler/twofactor"
	"github.com/propertychain/propertychain-admin/internal/web/middleware/auth"
	"github.com/propertychain/propertychain-admin/internal/web/middleware/guard"
)

// Service represents the web service.
type Service struct {
	App      *fiber.App
	Registry *security.Registry

	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the admin service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "PropertyChain-Admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config: cfg.Log,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// authentication middleware: unauthenticated requests go to /login
	app.Use(auth.Middleware)

	// security context registry shared by the guard middleware and handlers
	registry := security.NewRegistry()

	// security middleware: inactivity guard, two-factor gate, route access
	app.Use(guard.New(registry))

	// init web service
	service := &Service{
		cfg:      cfg,
		App:      app,
		Registry: registry,
		db:       db,
	}

	// init handlers (they register their own routes)
	handlers := []struct {
		name string
		svc  handler.Service
	}{
		{"login", &login.Handler},
		{"logout", &logout.Handler},
		{"twofactor", &twofactor.Handler},
		{"session-status", &sessionstatus.Handler},
		{"dashboard", &dashboard.Handler},
		{"activity", &activityhandler.Handler},
		{"sessions", &sessionshandler.Handler},
		{"users", &usershandler.Handler},
		{"settings", &settingshandler.Handler},
		{"sections", &section.Handler},
	}

	for _, h := range handlers {
		if err := h.svc.Init(app, cfg, db, registry); err != nil {
			log.Fatal().Err(err).Str("handler", h.name).Msg("failed to init handler")
		}
	}

	// redirect root to dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	return service
}
