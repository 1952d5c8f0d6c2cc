package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/minjae-ko/tasklist-api/internal/duedate"
	"github.com/minjae-ko/tasklist-api/internal/model"
	"github.com/minjae-ko/tasklist-api/internal/repository"
)

const dueTimeLayout = "15:04"

// normalizeDueDate validates a due date against the canonical YYYY-MM-DD
// form. Returns nil if input is nil.
func normalizeDueDate(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(duedate.Layout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due_date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	canonical := t.Format(duedate.Layout)
	return &canonical, nil
}

func normalizeDueTime(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dueTimeLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due_time format, expected HH:MM", ErrInvalidInput)
	}
	canonical := t.Format(dueTimeLayout)
	return &canonical, nil
}

type CreateTaskInput struct {
	Title            string
	Description      string
	ExperienceReward *int
	ListID           *int64
	DueDate          *string // YYYY-MM-DD, validated here
	DueTime          *string // HH:MM, validated here
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *string
	DueTime     *string
}

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID int64, input CreateTaskInput) (model.Task, error) {
	if input.Title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	dueDate, err := normalizeDueDate(input.DueDate)
	if err != nil {
		return model.Task{}, err
	}
	dueTime, err := normalizeDueTime(input.DueTime)
	if err != nil {
		return model.Task{}, err
	}

	reward := model.DefaultExperienceReward
	if input.ExperienceReward != nil {
		if *input.ExperienceReward < 0 {
			return model.Task{}, fmt.Errorf("%w: experience_reward must not be negative", ErrInvalidInput)
		}
		reward = *input.ExperienceReward
	}

	task := model.Task{
		UserID:           userID,
		ListID:           input.ListID,
		Title:            input.Title,
		Description:      input.Description,
		ExperienceReward: reward,
		Completed:        false,
		DueDate:          dueDate,
		DueTime:          dueTime,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

// Get returns the task with the given id. A missing task is ErrNotFound,
// distinct from the empty collections the list operations return.
func (s *TaskService) Get(ctx context.Context, taskID int64) (model.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListForUser returns every task the user owns, across all lists. No
// ordering is guaranteed.
func (s *TaskService) ListForUser(ctx context.Context, userID int64) ([]model.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListForList returns the tasks belonging to a list.
func (s *TaskService) ListForList(ctx context.Context, listID int64) ([]model.Task, error) {
	tasks, err := s.repo.ListByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for list: %w", err)
	}
	return tasks, nil
}

// ForDate returns the user's tasks due on the given date, ordered ascending
// by due time.
func (s *TaskService) ForDate(ctx context.Context, userID int64, date string) ([]model.Task, error) {
	tasks, err := s.repo.ListByUserAndDueDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for date %s: %w", date, err)
	}
	return tasks, nil
}

// ForDates fetches tasks for each date in order and concatenates the
// results, so the whole slice is ordered by date, then by due time within a
// date. Dates with no tasks contribute nothing.
func (s *TaskService) ForDates(ctx context.Context, userID int64, dates iter.Seq[string]) ([]model.Task, error) {
	tasks := []model.Task{}
	for date := range dates {
		batch, err := s.ForDate(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, batch...)
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID int64, input UpdateTaskInput) (model.Task, error) {
	existing, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return model.Task{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.DueDate != nil {
		dueDate, err := normalizeDueDate(input.DueDate)
		if err != nil {
			return model.Task{}, err
		}
		existing.DueDate = dueDate
	}
	if input.DueTime != nil {
		dueTime, err := normalizeDueTime(input.DueTime)
		if err != nil {
			return model.Task{}, err
		}
		existing.DueTime = dueTime
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID int64, completed bool) (model.Task, error) {
	existing, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	existing.Completed = completed

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task completion: %w", err)
	}

	return updated, nil
}

// getOwned loads a task for mutation, treating another user's task the same
// as a missing one.
func (s *TaskService) getOwned(ctx context.Context, userID, taskID int64) (model.Task, error) {
	existing, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task for update: %w", err)
	}
	if existing.UserID != userID {
		return model.Task{}, ErrNotFound
	}
	return existing, nil
}
