package http

import (
	"net/http"

	"github.com/minjae-ko/tasklist-api/internal/duedate"
	"github.com/minjae-ko/tasklist-api/internal/http/handler"
	"github.com/minjae-ko/tasklist-api/internal/service"
)

func NewRouter(taskSvc *service.TaskService, listSvc *service.ListService, userSvc *service.UserService, clock duedate.Clock) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for ALB health check compatibility
	health := handler.NewHealthHandler()
	mux.Handle("/health", health)

	taskHandler := handler.NewTaskHandler(taskSvc, clock)
	mux.Handle("/api/v1/tasks", taskHandler)
	mux.Handle("/api/v1/tasks/", taskHandler)

	listHandler := handler.NewListHandler(listSvc, taskSvc)
	mux.Handle("/api/v1/lists", listHandler)
	mux.Handle("/api/v1/lists/", listHandler)

	mux.Handle("/api/v1/users/me", handler.NewUserHandler(userSvc))

	return mux
}
