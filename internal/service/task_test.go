package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/minjae-ko/tasklist-api/internal/model"
	"github.com/minjae-ko/tasklist-api/internal/service"
)

// mockTaskRepo implements repository.TaskRepository for testing
type mockTaskRepo struct {
	createFn        func(ctx context.Context, task model.Task) (model.Task, error)
	getByIDFn       func(ctx context.Context, taskID int64) (model.Task, error)
	updateFn        func(ctx context.Context, task model.Task) (model.Task, error)
	deleteFn        func(ctx context.Context, userID, taskID int64) error
	listByUserFn    func(ctx context.Context, userID int64) ([]model.Task, error)
	listByListFn    func(ctx context.Context, listID int64) ([]model.Task, error)
	listByDueDateFn func(ctx context.Context, userID int64, dueDate string) ([]model.Task, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, task model.Task) (model.Task, error) {
	return m.createFn(ctx, task)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, taskID int64) (model.Task, error) {
	return m.getByIDFn(ctx, taskID)
}
func (m *mockTaskRepo) Update(ctx context.Context, task model.Task) (model.Task, error) {
	return m.updateFn(ctx, task)
}
func (m *mockTaskRepo) Delete(ctx context.Context, userID, taskID int64) error {
	return m.deleteFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockTaskRepo) ListByList(ctx context.Context, listID int64) ([]model.Task, error) {
	return m.listByListFn(ctx, listID)
}
func (m *mockTaskRepo) ListByUserAndDueDate(ctx context.Context, userID int64, dueDate string) ([]model.Task, error) {
	return m.listByDueDateFn(ctx, userID, dueDate)
}

var now = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func i64Ptr(i int64) *int64   { return &i }

func sampleTask() model.Task {
	return model.Task{
		ID:               1,
		UserID:           10,
		Title:            "Buy groceries",
		Description:      "Milk, eggs, bread",
		ExperienceReward: 10,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestTaskCreate(t *testing.T) {
	tests := []struct {
		name       string
		input      service.CreateTaskInput
		repoErr    error
		wantErr    string
		wantReward int
		wantListID *int64
	}{
		{
			name:       "success with defaults",
			input:      service.CreateTaskInput{Title: "Buy groceries"},
			wantReward: 10,
		},
		{
			name:       "explicit reward",
			input:      service.CreateTaskInput{Title: "Buy groceries", ExperienceReward: intPtr(25)},
			wantReward: 25,
		},
		{
			name:       "zero reward kept",
			input:      service.CreateTaskInput{Title: "Buy groceries", ExperienceReward: intPtr(0)},
			wantReward: 0,
		},
		{
			name:       "list attribution",
			input:      service.CreateTaskInput{Title: "Buy groceries", ListID: i64Ptr(5)},
			wantReward: 10,
			wantListID: i64Ptr(5),
		},
		{
			name:       "valid due date and time",
			input:      service.CreateTaskInput{Title: "Buy groceries", DueDate: strPtr("2025-03-15"), DueTime: strPtr("09:30")},
			wantReward: 10,
		},
		{
			name:    "empty title",
			input:   service.CreateTaskInput{Title: ""},
			wantErr: "invalid input",
		},
		{
			name:    "malformed due date",
			input:   service.CreateTaskInput{Title: "Buy groceries", DueDate: strPtr("3/15/2025")},
			wantErr: "invalid due_date",
		},
		{
			name:    "malformed due time",
			input:   service.CreateTaskInput{Title: "Buy groceries", DueTime: strPtr("9am")},
			wantErr: "invalid due_time",
		},
		{
			name:    "negative reward",
			input:   service.CreateTaskInput{Title: "Buy groceries", ExperienceReward: intPtr(-5)},
			wantErr: "invalid input",
		},
		{
			name:    "repo error",
			input:   service.CreateTaskInput{Title: "Buy groceries"},
			repoErr: fmt.Errorf("db error"),
			wantErr: "failed to create task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				createFn: func(ctx context.Context, task model.Task) (model.Task, error) {
					if tt.repoErr != nil {
						return model.Task{}, tt.repoErr
					}
					task.ID = 1
					task.CreatedAt = now
					task.UpdatedAt = now
					return task, nil
				},
			}
			svc := service.NewTaskService(repo)
			got, err := svc.Create(context.Background(), 10, tt.input)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Completed {
				t.Error("expected new task to be incomplete")
			}
			if got.ExperienceReward != tt.wantReward {
				t.Errorf("expected reward=%d, got %d", tt.wantReward, got.ExperienceReward)
			}
			if got.UserID != 10 {
				t.Errorf("expected user_id=10, got %d", got.UserID)
			}
			if tt.wantListID != nil {
				if got.ListID == nil || *got.ListID != *tt.wantListID {
					t.Errorf("expected list_id=%d, got %v", *tt.wantListID, got.ListID)
				}
			}
		})
	}
}

func TestTaskGet(t *testing.T) {
	tests := []struct {
		name    string
		repoFn  func(ctx context.Context, taskID int64) (model.Task, error)
		wantErr error
	}{
		{
			name: "success",
			repoFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return sampleTask(), nil
			},
		},
		{
			name: "not found is explicit",
			repoFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return model.Task{}, fmt.Errorf("failed to scan task: %w", sql.ErrNoRows)
			},
			wantErr: service.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{getByIDFn: tt.repoFn}
			svc := service.NewTaskService(repo)
			got, err := svc.Get(context.Background(), 1)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != 1 {
				t.Errorf("expected id=1, got %d", got.ID)
			}
		})
	}
}

func TestTaskForDates(t *testing.T) {
	// Per-date results arrive ordered by due time; concatenation must keep
	// date order first, time order within each date.
	byDate := map[string][]model.Task{
		"2025-03-14": {
			{ID: 1, UserID: 10, Title: "early", DueDate: strPtr("2025-03-14"), DueTime: strPtr("08:00")},
			{ID: 2, UserID: 10, Title: "late", DueDate: strPtr("2025-03-14"), DueTime: strPtr("21:00")},
		},
		"2025-03-15": {},
		"2025-03-16": {
			{ID: 3, UserID: 10, Title: "sunday", DueDate: strPtr("2025-03-16"), DueTime: strPtr("07:00")},
		},
	}

	var queried []string
	repo := &mockTaskRepo{
		listByDueDateFn: func(ctx context.Context, userID int64, dueDate string) ([]model.Task, error) {
			queried = append(queried, dueDate)
			return byDate[dueDate], nil
		},
	}
	svc := service.NewTaskService(repo)

	dates := slices.Values([]string{"2025-03-14", "2025-03-15", "2025-03-16"})
	got, err := svc.ForDates(context.Background(), 10, dates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIDs := []int64{1, 2, 3}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d tasks, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("task[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}

	// Total order: non-decreasing by date, then by time within equal dates.
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if *prev.DueDate > *cur.DueDate {
			t.Errorf("dates out of order: %s before %s", *prev.DueDate, *cur.DueDate)
		}
		if *prev.DueDate == *cur.DueDate && *prev.DueTime > *cur.DueTime {
			t.Errorf("times out of order within %s: %s before %s", *cur.DueDate, *prev.DueTime, *cur.DueTime)
		}
	}

	wantQueried := []string{"2025-03-14", "2025-03-15", "2025-03-16"}
	if !slices.Equal(queried, wantQueried) {
		t.Errorf("queried dates %v, want %v", queried, wantQueried)
	}
}

func TestTaskForDates_RepoError(t *testing.T) {
	repo := &mockTaskRepo{
		listByDueDateFn: func(ctx context.Context, userID int64, dueDate string) ([]model.Task, error) {
			return nil, fmt.Errorf("db error")
		},
	}
	svc := service.NewTaskService(repo)

	_, err := svc.ForDates(context.Background(), 10, slices.Values([]string{"2025-03-14"}))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestTaskListForUser_Empty(t *testing.T) {
	repo := &mockTaskRepo{
		listByUserFn: func(ctx context.Context, userID int64) ([]model.Task, error) {
			return []model.Task{}, nil
		},
	}
	svc := service.NewTaskService(repo)

	got, err := svc.ListForUser(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestTaskSetCompleted(t *testing.T) {
	tests := []struct {
		name      string
		userID    int64
		completed bool
		getFn     func(ctx context.Context, taskID int64) (model.Task, error)
		wantErr   error
	}{
		{
			name:      "mark completed",
			userID:    10,
			completed: true,
			getFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return sampleTask(), nil
			},
		},
		{
			name:      "mark incomplete",
			userID:    10,
			completed: false,
			getFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				task := sampleTask()
				task.Completed = true
				return task, nil
			},
		},
		{
			name:      "another user's task reads as missing",
			userID:    99,
			completed: true,
			getFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return sampleTask(), nil
			},
			wantErr: service.ErrNotFound,
		},
		{
			name:      "not found",
			userID:    10,
			completed: true,
			getFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return model.Task{}, fmt.Errorf("scan: %w", sql.ErrNoRows)
			},
			wantErr: service.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				getByIDFn: tt.getFn,
				updateFn: func(ctx context.Context, task model.Task) (model.Task, error) {
					return task, nil
				},
			}
			svc := service.NewTaskService(repo)
			got, err := svc.SetCompleted(context.Background(), tt.userID, 1, tt.completed)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Completed != tt.completed {
				t.Errorf("expected completed=%v, got %v", tt.completed, got.Completed)
			}
		})
	}
}

func TestTaskUpdate(t *testing.T) {
	title := "Updated title"
	emptyTitle := ""

	tests := []struct {
		name    string
		input   service.UpdateTaskInput
		getFn   func(ctx context.Context, taskID int64) (model.Task, error)
		wantErr string
	}{
		{
			name:  "success",
			input: service.UpdateTaskInput{Title: &title, DueDate: strPtr("2025-04-01")},
			getFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return sampleTask(), nil
			},
		},
		{
			name:  "empty title",
			input: service.UpdateTaskInput{Title: &emptyTitle},
			getFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return sampleTask(), nil
			},
			wantErr: "invalid input",
		},
		{
			name:  "not found",
			input: service.UpdateTaskInput{Title: &title},
			getFn: func(ctx context.Context, taskID int64) (model.Task, error) {
				return model.Task{}, fmt.Errorf("scan: %w", sql.ErrNoRows)
			},
			wantErr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				getByIDFn: tt.getFn,
				updateFn: func(ctx context.Context, task model.Task) (model.Task, error) {
					return task, nil
				},
			}
			svc := service.NewTaskService(repo)
			got, err := svc.Update(context.Background(), 10, 1, tt.input)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.input.Title != nil && got.Title != *tt.input.Title {
				t.Errorf("expected title=%q, got %q", *tt.input.Title, got.Title)
			}
		})
	}
}

func TestTaskDelete(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"success", nil, nil},
		{"not found", sql.ErrNoRows, service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepo{
				deleteFn: func(ctx context.Context, userID, taskID int64) error {
					return tt.repoErr
				},
			}
			svc := service.NewTaskService(repo)
			err := svc.Delete(context.Background(), 10, 1)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
