package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/minjae-ko/tasklist-api/internal/duedate"
	"github.com/minjae-ko/tasklist-api/internal/listctx"
	"github.com/minjae-ko/tasklist-api/internal/middleware"
	"github.com/minjae-ko/tasklist-api/internal/service"
)

type TaskHandler struct {
	svc   *service.TaskService
	clock duedate.Clock
}

func NewTaskHandler(svc *service.TaskService, clock duedate.Clock) *TaskHandler {
	return &TaskHandler{svc: svc, clock: clock}
}

// ServeHTTP routes /api/v1/tasks, /api/v1/tasks/{id} and /api/v1/tasks/due/{bucket}
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	// /api/v1/tasks/due/{bucket}
	if head == "due" {
		h.handleDueBucket(w, r, subPath)
		return
	}

	if head != "" {
		taskID, ok := parseID(w, head)
		if !ok {
			return
		}

		// /api/v1/tasks/{id}/completed
		if subPath == "completed" {
			h.handleSetCompleted(w, r, taskID)
			return
		}

		// /api/v1/tasks/{id}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, taskID)
		case http.MethodPut:
			h.handleUpdate(w, r, taskID)
		case http.MethodDelete:
			h.handleDelete(w, r, taskID)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	// /api/v1/tasks
	switch r.Method {
	case http.MethodGet:
		h.handleListForUser(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

// handleListForUser returns every task the user owns. As a cross-list view
// it invalidates any selected-list context.
func (h *TaskHandler) handleListForUser(w http.ResponseWriter, r *http.Request) {
	listctx.Clear(w)

	tasks, err := h.svc.ListForUser(r.Context(), middleware.GetUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// handleDueBucket serves the date-bucketed views. Like the all-tasks view,
// these span lists, so the selected-list context is cleared.
func (h *TaskHandler) handleDueBucket(w http.ResponseWriter, r *http.Request, bucket string) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	listctx.Clear(w)
	userID := middleware.GetUserID(r)

	switch bucket {
	case "today":
		result, err := h.svc.ForDate(r.Context(), userID, duedate.Today(h.clock))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"tasks": result})
		return
	case "tomorrow":
		result, err := h.svc.ForDate(r.Context(), userID, duedate.Tomorrow(h.clock))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"tasks": result})
		return
	case "week":
		result, err := h.svc.ForDates(r.Context(), userID, duedate.RemainingWeek(h.clock))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"tasks": result})
		return
	}

	WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown due bucket")
}

type createTaskRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	ExperienceReward *int    `json:"experience_reward,omitempty"`
	ListID           *int64  `json:"list_id,omitempty"`
	DueDate          *string `json:"due_date,omitempty"`
	DueTime          *string `json:"due_time,omitempty"`
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	// No explicit list: fall back to the client's selected-list context.
	listID := req.ListID
	if listID == nil {
		if selected, ok := listctx.Get(r); ok {
			listID = &selected
		}
	}

	input := service.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		ExperienceReward: req.ExperienceReward,
		ListID:           listID,
		DueDate:          req.DueDate,
		DueTime:          req.DueTime,
	}

	task, err := h.svc.Create(r.Context(), middleware.GetUserID(r), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) handleGet(w http.ResponseWriter, r *http.Request, taskID int64) {
	task, err := h.svc.Get(r.Context(), taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	DueTime     *string `json:"due_time,omitempty"`
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request, taskID int64) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	}

	task, err := h.svc.Update(r.Context(), middleware.GetUserID(r), taskID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request, taskID int64) {
	if err := h.svc.Delete(r.Context(), middleware.GetUserID(r), taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setCompletedRequest struct {
	Completed bool `json:"completed"`
}

func (h *TaskHandler) handleSetCompleted(w http.ResponseWriter, r *http.Request, taskID int64) {
	if r.Method != http.MethodPatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	var req setCompletedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := h.svc.SetCompleted(r.Context(), middleware.GetUserID(r), taskID, req.Completed)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

// parseID rejects non-numeric path identifiers before they reach the query
// layer. Writes the error response itself and reports success.
func parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "BAD_INPUT", "identifier must be a positive integer")
		return 0, false
	}
	return id, true
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "BAD_INPUT", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
