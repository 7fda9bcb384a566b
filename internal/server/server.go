package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/handlers"
	"portfolio/internal/mailer"
	"portfolio/internal/metrics"
	"portfolio/internal/middlewares"
	"portfolio/internal/repositories"
	"portfolio/internal/routes"
	"portfolio/internal/services"
	"portfolio/internal/templates"
)

// Deps is everything the router needs. Tests build it from in-memory fakes.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Projects *services.ProjectService
	Sessions *services.SessionService
	Contacts *services.ContactService
	Checks   map[string]handlers.Pinger
	Gatherer prometheus.Gatherer
}

// NewServer connects to Postgres and Redis, prepares the schema and the admin
// account, and returns a configured server. cleanup closes the connections and
// must be called after the server stops.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*http.Server, func(), error) {
	pool, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	rdb, err := database.ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("closing redis client", zap.Error(err))
		}
		pool.Close()
	}

	if err := database.RunMigrations(ctx, pool, logger); err != nil {
		cleanup()
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Dependency injection
	projectRepo := repositories.NewProjectRepository(pool)
	adminRepo := repositories.NewAdminRepository(pool)
	contactRepo := repositories.NewContactRepository(pool)
	sessionRepo := repositories.NewSessionRepository(rdb)

	authService := services.NewAuthService(adminRepo, logger)
	if err := authService.Bootstrap(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("bootstrapping admin account: %w", err)
	}

	var mail services.Mailer
	if cfg.Mail.MailEnabled() {
		mail = mailer.NewSMTPMailer(cfg.Mail)
	} else {
		logger.Warn("mail settings incomplete, contact notifications will only be logged")
		mail = mailer.NewLogMailer(logger)
	}

	router, err := NewRouter(Deps{
		Config:   cfg,
		Logger:   logger,
		Projects: services.NewProjectService(projectRepo, m, logger),
		Sessions: services.NewSessionService(sessionRepo, authService, cfg.Session.Secret, cfg.Session.TTL, m, logger),
		Contacts: services.NewContactService(contactRepo, mail, cfg.Mail.Sender, m, logger),
		Checks: map[string]handlers.Pinger{
			"postgres": pool,
			"redis":    handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Gatherer: reg,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, cleanup, nil
}

func NewRouter(deps Deps) (*gin.Engine, error) {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger(deps.Logger))
	if origins := deps.Config.Server.CORSOrigins; len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.SetHTMLTemplate(tmpl)

	page := handlers.NewPage(deps.Sessions, deps.Logger)
	session := middlewares.Session(deps.Sessions, middlewares.SessionOptions{
		CookieName: deps.Config.Session.CookieName,
		Secure:     deps.Config.Session.Secure,
	}, deps.Logger)

	routes.RegisterRoutes(router, session, routes.Handlers{
		Page:    page,
		Auth:    handlers.NewAuthHandler(page, deps.Projects, deps.Contacts),
		Project: handlers.NewProjectHandler(page, deps.Projects),
		Contact: handlers.NewContactHandler(page, deps.Contacts),
		Health:  handlers.NewHealthHandler(deps.Checks),
	}, deps.Gatherer)

	return router, nil
}
