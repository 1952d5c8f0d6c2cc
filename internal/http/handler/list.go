package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/minjae-ko/tasklist-api/internal/listctx"
	"github.com/minjae-ko/tasklist-api/internal/middleware"
	"github.com/minjae-ko/tasklist-api/internal/service"
)

type ListHandler struct {
	lists *service.ListService
	tasks *service.TaskService
}

func NewListHandler(lists *service.ListService, tasks *service.TaskService) *ListHandler {
	return &ListHandler{lists: lists, tasks: tasks}
}

// ServeHTTP routes /api/v1/lists and /api/v1/lists/{id}/tasks
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/lists")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	if head != "" {
		listID, ok := parseID(w, head)
		if !ok {
			return
		}

		if subPath == "tasks" {
			h.handleListTasks(w, r, listID)
			return
		}

		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	// /api/v1/lists
	switch r.Method {
	case http.MethodGet:
		h.handleListForUser(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func (h *ListHandler) handleListForUser(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.ListForUser(r.Context(), middleware.GetUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

// handleListTasks returns a list's tasks and marks the list as the client's
// current selection, so an untargeted task creation that follows lands here.
func (h *ListHandler) handleListTasks(w http.ResponseWriter, r *http.Request, listID int64) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	tasks, err := h.tasks.ListForList(r.Context(), listID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	listctx.Set(w, listID)
	WriteJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

type createListRequest struct {
	Title string `json:"title"`
}

// handleCreate gates list creation behind the validator. Validation
// failures come back as a field-to-message map, not an error envelope.
func (h *ListHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	list, fieldErrs, err := h.lists.Create(r.Context(), middleware.GetUserID(r), req.Title)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if fieldErrs != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"errors": fieldErrs})
		return
	}

	WriteJSON(w, http.StatusCreated, list)
}
