package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/minjae-ko/tasklist-api/internal/duedate"
	"github.com/minjae-ko/tasklist-api/internal/middleware"
	"github.com/minjae-ko/tasklist-api/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, taskSvc *service.TaskService, listSvc *service.ListService, userSvc *service.UserService, clock duedate.Clock, auth *middleware.Auth) *Server {
	router := NewRouter(taskSvc, listSvc, userSvc, clock)

	// Middleware chain: request id -> recovery -> logging -> auth -> router.
	// Request id first so recovery and logging can correlate their entries.
	var chain http.Handler = router
	if auth != nil {
		chain = auth.Middleware(chain)
	}
	chain = middleware.RequestID()(middleware.Recovery(logger)(middleware.Logging(logger)(chain)))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      chain,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
