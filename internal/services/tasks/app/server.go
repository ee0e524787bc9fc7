// Package server wires the tasks service: storage, services, and HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tasktrail/tasktrail/internal/services/tasks/api/httpapi"
	"github.com/tasktrail/tasktrail/internal/services/tasks/service"
	"github.com/tasktrail/tasktrail/internal/services/tasks/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// Server hosts the tasks service.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *sqlite.Store
}

// New creates a configured tasks server listening on the provided port.
func New(port int) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}

	store, err := openTaskStore()
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	taskService := service.NewTaskService(store, store, store)
	projectService := service.NewProjectService(store)
	auth := httpapi.NewAuthenticator(os.Getenv("TASKTRAIL_AUTH_HMAC_KEY"))

	mux := http.NewServeMux()
	httpapi.NewHandler(taskService, projectService).RegisterRoutes(mux, auth)

	return &Server{
		listener:   listener,
		httpServer: &http.Server{Handler: mux},
		store:      store,
	}, nil
}

// Addr returns the listener address for the tasks server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a tasks server until the context ends.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the tasks server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.httpServer == nil || s.listener == nil {
		return errors.New("server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("tasks server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

// Close releases the server's listener and store without serving.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openTaskStore() (*sqlite.Store, error) {
	path := strings.TrimSpace(os.Getenv("TASKTRAIL_DB_PATH"))
	if path == "" {
		path = filepath.Join("data", "tasks.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tasks sqlite store: %w", err)
	}
	return store, nil
}

func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close tasks store: %v", err)
	}
}
