// Package rest exposes the identity, task and statistics operations over a
// JSON HTTP API built on gin.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type UserService interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	Authenticate(token string) (string, error)
}

type TaskService interface {
	List(ctx context.Context, userID string) ([]*models.Task, error)
	Create(ctx context.Context, userID string, in services.CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, userID, taskID string, in services.UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type PerformanceService interface {
	Get(ctx context.Context, userID string) (services.Performance, error)
}

// Deps are the services behind the routes. Health is optional; when set, a
// failing check turns /api/health into a 503.
type Deps struct {
	Users       UserService
	Tasks       TaskService
	Performance PerformanceService
	Health      func(ctx context.Context) error
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	users           UserService
	tasks           TaskService
	performance     PerformanceService
	health          func(ctx context.Context) error
	metrics         *Metrics
	router          *gin.Engine
}

// NewServer builds the router. Metrics are registered on reg and served from
// gatherer at /metrics.
func NewServer(address string, shutdownTimeout time.Duration, l logging.Logger, d Deps, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Server, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	s := &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		users:           d.Users,
		tasks:           d.Tasks,
		performance:     d.Performance,
		health:          d.Health,
		metrics:         NewMetrics(reg),
	}
	s.router = s.routes(gatherer)
	return s, nil
}

func (s *Server) routes(gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	private := api.Group("", s.authenticate)
	private.GET("/todos", s.handleListTasks)
	private.POST("/todos", s.handleCreateTask)
	private.PUT("/todos/:id", s.handleUpdateTask)
	private.DELETE("/todos/:id", s.handleDeleteTask)
	private.GET("/performance", s.handlePerformance)

	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
