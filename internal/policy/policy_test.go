package policy

import (
	"testing"

	"taskhub/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func user(role string) *model.User {
	return &model.User{ID: primitive.NewObjectID(), Role: role}
}

func taskOf(creator, assignee *model.User) *model.Task {
	return &model.Task{
		ID:         primitive.NewObjectID(),
		CreatedBy:  creator.ID,
		AssignedTo: assignee.ID,
	}
}

func TestTaskPredicates(t *testing.T) {
	admin := user(model.RoleAdmin)
	creator := user(model.RoleUser)
	assignee := user(model.RoleUser)
	stranger := user(model.RoleUser)
	task := taskOf(creator, assignee)

	tests := []struct {
		name     string
		fn       func(*model.User, *model.Task) bool
		caller   *model.User
		expected bool
	}{
		{"read admin", CanReadTask, admin, true},
		{"read creator", CanReadTask, creator, true},
		{"read assignee", CanReadTask, assignee, true},
		{"read stranger", CanReadTask, stranger, false},

		{"update admin", CanUpdateTask, admin, true},
		{"update creator", CanUpdateTask, creator, true},
		{"update assignee", CanUpdateTask, assignee, true},
		{"update stranger", CanUpdateTask, stranger, false},

		{"reassign admin", CanReassignTask, admin, true},
		{"reassign creator", CanReassignTask, creator, true},
		{"reassign assignee", CanReassignTask, assignee, false},
		{"reassign stranger", CanReassignTask, stranger, false},

		{"delete admin", CanDeleteTask, admin, true},
		{"delete creator", CanDeleteTask, creator, true},
		{"delete assignee", CanDeleteTask, assignee, false},
		{"delete stranger", CanDeleteTask, stranger, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.caller, task); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSelfAssignedTask(t *testing.T) {
	creator := user(model.RoleUser)
	task := taskOf(creator, creator)

	if !CanReassignTask(creator, task) {
		t.Error("creator who is also assignee should be able to reassign")
	}
	if !CanDeleteTask(creator, task) {
		t.Error("creator who is also assignee should be able to delete")
	}
}

func TestCanManageUsers(t *testing.T) {
	if !CanManageUsers(user(model.RoleAdmin)) {
		t.Error("admin should manage users")
	}
	if CanManageUsers(user(model.RoleUser)) {
		t.Error("regular user should not manage users")
	}
}

func TestVisibilityScope(t *testing.T) {
	admin := user(model.RoleAdmin)
	regular := user(model.RoleUser)

	if got := VisibilityScope(admin); got != primitive.NilObjectID {
		t.Errorf("admin scope should be unrestricted, got %v", got)
	}
	if got := VisibilityScope(regular); got != regular.ID {
		t.Errorf("user scope should be self, got %v", got)
	}
}
