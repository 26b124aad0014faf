// Package server is the composition root: it wires the database, the
// services, the admin controllers and the routes, and owns the server
// lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvasiliades/portfolio-api/internal/admin"
	"github.com/mvasiliades/portfolio-api/internal/auth"
	"github.com/mvasiliades/portfolio-api/internal/handler"
	"github.com/mvasiliades/portfolio-api/internal/middleware"
	sqliteRepo "github.com/mvasiliades/portfolio-api/internal/repository/sqlite"
	"github.com/mvasiliades/portfolio-api/internal/service"
)

// Config holds server configuration, loaded from the environment in
// cmd/server.
type Config struct {
	Port   int
	DBPath string

	// Admin surface. If JWTSecret or AdminPasswordHash is empty the
	// admin and auth routes are not mounted; the public site still
	// serves.
	JWTSecret         string
	AdminPasswordHash string

	// Optional GitHub OAuth login, restricted to GitHubAllowedLogin.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
	GitHubAllowedLogin string
}

// Server owns the router and the database connection. The connection
// is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, services,
// controllers, handlers, routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())

	portfolioSvc := service.NewPortfolio(
		s.db.Projects(),
		s.db.BlogPosts(),
		s.db.Certificates(),
		s.db.Testimonials(),
		s.logger,
	)
	portfolioHandler := handler.NewPortfolioHandler(portfolioSvc, s.logger)

	s.router.Get("/healthz", portfolioHandler.HandleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/projects", portfolioHandler.HandleProjects)
		r.Get("/posts", portfolioHandler.HandlePosts)
		r.Get("/posts/{slug}", portfolioHandler.HandlePostBySlug)
		r.Post("/posts/{slug}/like", portfolioHandler.HandleLikePost)
		r.Get("/certificates", portfolioHandler.HandleCertificates)
		r.Get("/testimonials", portfolioHandler.HandleTestimonials)
	})

	if s.config.JWTSecret == "" || s.config.AdminPasswordHash == "" {
		s.logger.Warn("JWT_SECRET or ADMIN_PASSWORD_HASH not set, admin surface disabled")
		return nil
	}

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	var github *auth.GitHubProvider
	if s.config.GitHubClientID != "" && s.config.GitHubClientSecret != "" {
		github = auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
	}

	authHandler := handler.NewAuthHandler(
		tokens,
		auth.NewPasswordService(),
		s.config.AdminPasswordHash,
		github,
		s.config.GitHubAllowedLogin,
		s.logger,
	)

	s.router.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.With(auth.RequireAuth(tokens)).Get("/me", authHandler.HandleMe)
	})

	if github != nil {
		s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
		s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
	}

	// One validator instance shared by all controllers.
	validate := validator.New(validator.WithRequiredStructEnabled())

	projects := admin.NewController(admin.ProjectDescriptor(), s.db.Projects(), validate, s.logger)
	posts := admin.NewController(admin.BlogPostDescriptor(), s.db.BlogPosts(), validate, s.logger)
	certificates := admin.NewController(admin.CertificateDescriptor(), s.db.Certificates(), validate, s.logger)
	testimonials := admin.NewController(admin.TestimonialDescriptor(), s.db.Testimonials(), validate, s.logger)

	// Warm the stores so the first admin list is served from memory.
	// Failures are not fatal; a later refresh recovers.
	warmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := projects.Refresh(warmCtx); err != nil {
		s.logger.Warn("initial project store load failed", slog.String("error", err.Error()))
	}
	if err := posts.Refresh(warmCtx); err != nil {
		s.logger.Warn("initial blog post store load failed", slog.String("error", err.Error()))
	}
	if err := certificates.Refresh(warmCtx); err != nil {
		s.logger.Warn("initial certificate store load failed", slog.String("error", err.Error()))
	}
	if err := testimonials.Refresh(warmCtx); err != nil {
		s.logger.Warn("initial testimonial store load failed", slog.String("error", err.Error()))
	}

	s.router.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Route("/projects", handler.NewResource(projects, handler.DecodeProject, s.logger).Mount)
		r.Route("/posts", handler.NewResource(posts, handler.DecodeBlogPost, s.logger).Mount)
		r.Route("/certificates", handler.NewResource(certificates, handler.DecodeCertificate, s.logger).Mount)
		r.Route("/testimonials", func(r chi.Router) {
			handler.NewResource(testimonials, handler.DecodeTestimonial, s.logger).Mount(r)
			r.Put("/{id}/approval", handler.NewApprovalHandler(portfolioSvc, testimonials))
		})
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests,
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
