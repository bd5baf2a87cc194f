// Package server assembles the task backend: storage, auth, HTTP API,
// gRPC health and background jobs.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"

	platformgrpc "github.com/louisbranch/weathertask/internal/platform/grpc"
	platformstorage "github.com/louisbranch/weathertask/internal/platform/storage"
	"github.com/louisbranch/weathertask/internal/platform/timeouts"
	"github.com/louisbranch/weathertask/internal/services/tasks/api/httpapi"
	"github.com/louisbranch/weathertask/internal/services/tasks/heartbeat"
	"github.com/louisbranch/weathertask/internal/services/tasks/password"
	"github.com/louisbranch/weathertask/internal/services/tasks/seed"
	"github.com/louisbranch/weathertask/internal/services/tasks/service"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage/sqlstore"
	"github.com/louisbranch/weathertask/internal/services/tasks/token"
)

// HealthService is the gRPC health name reported for the task API.
const HealthService = "weathertask.v1.Tasks"

// Config holds the resolved runtime settings.
type Config struct {
	HTTPAddr string
	// HealthAddr is the gRPC health listen address; empty disables it.
	HealthAddr           string
	DBDriver             string
	DBDSN                string
	JWTSecret            string
	CORSOrigins          []string
	HeartbeatInterval    time.Duration
	SeedDemo             bool
	EnforceTaskOwnership bool
	BcryptCost           int
}

// Server owns the listeners and the store for one process.
type Server struct {
	httpListener   net.Listener
	httpServer     *http.Server
	healthListener net.Listener
	grpcServer     *gogrpc.Server
	health         *health.Server
	store          *sqlstore.Store
	heartbeat      *heartbeat.Job
}

// New opens storage, wires services and binds listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dialect, err := platformstorage.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := token.NewService(cfg.JWTSecret, nil)
	if err != nil {
		return nil, err
	}

	store, err := sqlstore.Open(ctx, dialect, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}

	if cfg.SeedDemo {
		outcome, err := seed.EnsureDemoAccount(ctx, store, hasher)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		log.Printf("demo account %s", outcome)
	}

	accounts, err := service.NewAccounts(store, hasher, tokens)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	tasks, err := service.NewTasks(store, store, service.WithOwnershipEnforcement(cfg.EnforceTaskOwnership))
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if !cfg.EnforceTaskOwnership {
		log.Printf("task ownership checks disabled: any account may update or delete any task")
	}
	handler, err := httpapi.New(httpapi.Config{
		Accounts:       accounts,
		Tasks:          tasks,
		Tokens:         tokens,
		AllowedOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
	}

	s := &Server{
		httpListener: httpListener,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:     store,
		heartbeat: heartbeat.New(cfg.HeartbeatInterval),
	}

	if addr := strings.TrimSpace(cfg.HealthAddr); addr != "" {
		healthListener, err := net.Listen("tcp", addr)
		if err != nil {
			_ = httpListener.Close()
			_ = store.Close()
			return nil, fmt.Errorf("listen on health addr %s: %w", addr, err)
		}
		s.healthListener = healthListener
		s.grpcServer = platformgrpc.NewServer()
		s.health = platformgrpc.RegisterHealth(s.grpcServer, HealthService)
	}
	return s, nil
}

// HTTPAddr returns the bound HTTP address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// HealthAddr returns the bound gRPC health address, or "" when disabled.
func (s *Server) HealthAddr() string {
	if s == nil || s.healthListener == nil {
		return ""
	}
	return s.healthListener.Addr().String()
}

// Run builds and serves a server until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve blocks until ctx ends or a listener fails, then shuts down.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.closeStore()

	s.heartbeat.Start(serverCtx)

	log.Printf("weathertask HTTP server listening at %v", s.httpListener.Addr())
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()

	// A nil channel never fires when health is disabled.
	var grpcErr chan error
	if s.grpcServer != nil {
		log.Printf("weathertask health server listening at %v", s.healthListener.Addr())
		grpcErr = make(chan error, 1)
		go func() {
			grpcErr <- s.grpcServer.Serve(s.healthListener)
		}()
	}

	handleGRPCErr := func(err error) error {
		if err == nil || errors.Is(err, gogrpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
	handleHTTPErr := func(err error) error {
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}

	shutdownGRPC := func() {
		if s.grpcServer == nil {
			return
		}
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	shutdownHTTP := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown HTTP server: %v", err)
		}
	}

	select {
	case <-ctx.Done():
		log.Printf("weathertask shutting down")
		shutdownGRPC()
		shutdownHTTP()
		if err := handleHTTPErr(<-httpErr); err != nil {
			return err
		}
		if grpcErr != nil {
			return handleGRPCErr(<-grpcErr)
		}
		return nil
	case err := <-httpErr:
		shutdownGRPC()
		if grpcErr != nil {
			if handled := handleGRPCErr(<-grpcErr); handled != nil {
				return handled
			}
		}
		return handleHTTPErr(err)
	case err := <-grpcErr:
		shutdownHTTP()
		<-httpErr
		return handleGRPCErr(err)
	}
}

func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close task store: %v", err)
	}
}
