package service

import (
	"context"
	"fmt"
	"strings"

	"taskhub/internal/config"
	"taskhub/internal/model"
	"taskhub/internal/policy"
	"taskhub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService handles task business logic: creation defaults, partial
// updates, soft deletion and role-scoped listing.
type TaskService struct {
	tasks repository.ITaskRepository
	users repository.IUserRepository
}

// NewTaskService creates a new task service
func NewTaskService(tasks repository.ITaskRepository, users repository.IUserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// List returns one page of tasks the viewer may see, newest first, with
// creator and assignee resolved to user summaries.
func (s *TaskService) List(ctx context.Context, viewer *model.User, q model.TaskQuery) ([]model.TaskResponse, model.Pagination, error) {
	var pagination model.Pagination
	if q.Status != "" && !model.ValidStatus(q.Status) {
		return nil, pagination, newValidationError("Invalid status filter")
	}
	if q.Priority != "" && !model.ValidPriority(q.Priority) {
		return nil, pagination, newValidationError("Invalid priority filter")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = config.DefaultPageSize
	}
	if q.Limit > config.MaxPageSize {
		q.Limit = config.MaxPageSize
	}
	q.Viewer = policy.VisibilityScope(viewer)

	tasks, total, err := s.tasks.List(ctx, q)
	if err != nil {
		return nil, pagination, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses, err := s.resolveAll(ctx, tasks)
	if err != nil {
		return nil, pagination, err
	}
	pagination = model.Pagination{
		Current: q.Page,
		Pages:   int((total + int64(q.Limit) - 1) / int64(q.Limit)),
		Total:   total,
	}
	return responses, pagination, nil
}

// Create validates the request and persists a new task. The creator is
// always the caller; the assignee defaults to the creator.
func (s *TaskService) Create(ctx context.Context, creator *model.User, req *model.CreateTaskRequest) (*model.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, newValidationError("Title is required")
	}
	if len(title) > config.MaxTitleLength {
		return nil, newValidationError("Title exceeds maximum length")
	}
	description := strings.TrimSpace(req.Description)
	if len(description) > config.MaxDescriptionLength {
		return nil, newValidationError("Description exceeds maximum length")
	}
	status := req.Status
	if status == "" {
		status = model.StatusPending
	} else if !model.ValidStatus(status) {
		return nil, newValidationError("Invalid status")
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	} else if !model.ValidPriority(priority) {
		return nil, newValidationError("Invalid priority")
	}

	assignee := creator.ID
	if req.AssignedTo != "" {
		aid, err := s.resolveAssignee(ctx, req.AssignedTo)
		if err != nil {
			return nil, err
		}
		assignee = aid
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedBy:   creator.ID,
		AssignedTo:  assignee,
	}
	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.resolveOne(ctx, created)
}

// Update applies a partial update. Omitted fields stay untouched. A
// reassignment from a caller who is neither admin nor creator is
// silently dropped while the rest of the update still applies; this
// permissive behavior is intentional.
func (s *TaskService) Update(ctx context.Context, viewer *model.User, id string, req *model.UpdateTaskRequest) (*model.TaskResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}
	task, err := s.tasks.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if !policy.CanUpdateTask(viewer, task) {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if req.Title.Set {
		title := strings.TrimSpace(req.Title.Value)
		if !req.Title.Valid || title == "" {
			return nil, newValidationError("Title cannot be empty")
		}
		if len(title) > config.MaxTitleLength {
			return nil, newValidationError("Title exceeds maximum length")
		}
		fields["title"] = title
	}
	if req.Description.Set {
		description := ""
		if req.Description.Valid {
			description = strings.TrimSpace(req.Description.Value)
		}
		if len(description) > config.MaxDescriptionLength {
			return nil, newValidationError("Description exceeds maximum length")
		}
		fields["description"] = description
	}
	if req.Status.Set {
		if !req.Status.Valid || !model.ValidStatus(req.Status.Value) {
			return nil, newValidationError("Invalid status")
		}
		fields["status"] = req.Status.Value
	}
	if req.Priority.Set {
		if !req.Priority.Valid || !model.ValidPriority(req.Priority.Value) {
			return nil, newValidationError("Invalid priority")
		}
		fields["priority"] = req.Priority.Value
	}
	if req.DueDate.Set {
		if req.DueDate.Valid {
			fields["dueDate"] = req.DueDate.Value
		} else {
			// explicit null clears the due date
			fields["dueDate"] = nil
		}
	}
	if req.AssignedTo.Set && req.AssignedTo.Valid && req.AssignedTo.Value != "" {
		if policy.CanReassignTask(viewer, task) {
			aid, err := s.resolveAssignee(ctx, req.AssignedTo.Value)
			if err != nil {
				return nil, err
			}
			fields["assignedTo"] = aid
		}
	}

	updated, err := s.tasks.Update(ctx, oid, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if updated == nil {
		return nil, ErrTaskNotFound
	}
	return s.resolveOne(ctx, updated)
}

// Delete soft-deletes a task. Only admins and the creator may delete;
// deleting an already-deleted task reports not found.
func (s *TaskService) Delete(ctx context.Context, viewer *model.User, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrTaskNotFound
	}
	task, err := s.tasks.FindByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("failed to load task: %w", err)
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if !policy.CanDeleteTask(viewer, task) {
		return ErrForbidden
	}
	deleted, err := s.tasks.SoftDelete(ctx, oid)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) resolveAssignee(ctx context.Context, id string) (primitive.ObjectID, error) {
	aid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrAssigneeNotFound
	}
	user, err := s.users.FindByID(ctx, aid)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to look up assignee: %w", err)
	}
	if user == nil {
		return primitive.NilObjectID, ErrAssigneeNotFound
	}
	return aid, nil
}

func (s *TaskService) resolveOne(ctx context.Context, task *model.Task) (*model.TaskResponse, error) {
	responses, err := s.resolveAll(ctx, []*model.Task{task})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// resolveAll batches the creator/assignee lookups for a page of tasks.
func (s *TaskService) resolveAll(ctx context.Context, tasks []*model.Task) ([]model.TaskResponse, error) {
	idSet := make(map[primitive.ObjectID]struct{}, len(tasks)*2)
	for _, t := range tasks {
		idSet[t.CreatedBy] = struct{}{}
		idSet[t.AssignedTo] = struct{}{}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task references: %w", err)
	}
	summary := func(id primitive.ObjectID) model.UserSummary {
		if u, ok := users[id]; ok {
			return u.ToSummary()
		}
		// users are never hard-deleted, but don't fail the page over a
		// dangling reference
		return model.UserSummary{ID: id.Hex()}
	}
	responses := make([]model.TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = t.ToResponse(summary(t.CreatedBy), summary(t.AssignedTo))
	}
	return responses, nil
}
