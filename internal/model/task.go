package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses. No transition graph is enforced; any value may follow
// any other.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether s is one of the known task priorities.
func ValidPriority(s string) bool {
	return s == PriorityLow || s == PriorityMedium || s == PriorityHigh
}

// Task is a tracked work item. CreatedBy is set once at creation and never
// changes. IsDeleted=true removes the task from every read path; deleted
// documents stay in the collection but are treated as non-existent.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	AssignedTo  primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	IsDeleted   bool               `bson:"isDeleted" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TaskResponse is the client-facing task shape with creator and assignee
// resolved to user summaries.
type TaskResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	CreatedBy   UserSummary `json:"createdBy"`
	AssignedTo  UserSummary `json:"assignedTo"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ToResponse converts a Task to its client-facing shape with resolved
// references.
func (t *Task) ToResponse(creator, assignee UserSummary) TaskResponse {
	return TaskResponse{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedBy:   creator,
		AssignedTo:  assignee,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// CreateTaskRequest carries the fields accepted at task creation.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  string     `json:"assignedTo"`
}

// UpdateTaskRequest carries a partial update. Fields use Optional so an
// omitted field leaves the stored value untouched while an explicit null
// is still observable (a null dueDate clears it).
type UpdateTaskRequest struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Status      Optional[string]    `json:"status"`
	Priority    Optional[string]    `json:"priority"`
	DueDate     Optional[time.Time] `json:"dueDate"`
	AssignedTo  Optional[string]    `json:"assignedTo"`
}

// TaskQuery shapes a task listing. Viewer, when non-zero, restricts
// results to tasks the viewer created or is assigned to; the zero value
// is the unrestricted admin scope. The filter is applied inside the store
// query, never after fetching.
type TaskQuery struct {
	Status   string
	Priority string
	Viewer   primitive.ObjectID
	Page     int
	Limit    int
}

// Skip returns the offset implied by Page and Limit.
func (q TaskQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// Pagination is the listing metadata block.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}
