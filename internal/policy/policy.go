// Package policy holds the authorization rules as pure predicates over
// user and task records. Decisions are evaluated on every call; nothing
// here touches the store or caches results.
package policy

import (
	"taskhub/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanReadTask allows admins, the creator and the assignee.
func CanReadTask(u *model.User, t *model.Task) bool {
	return u.IsAdmin() || t.CreatedBy == u.ID || t.AssignedTo == u.ID
}

// CanUpdateTask allows admins, the creator and the assignee.
func CanUpdateTask(u *model.User, t *model.Task) bool {
	return u.IsAdmin() || t.CreatedBy == u.ID || t.AssignedTo == u.ID
}

// CanReassignTask allows admins and the creator only. An assignee may
// update a task but not hand it to someone else.
func CanReassignTask(u *model.User, t *model.Task) bool {
	return u.IsAdmin() || t.CreatedBy == u.ID
}

// CanDeleteTask allows admins and the creator only.
func CanDeleteTask(u *model.User, t *model.Task) bool {
	return u.IsAdmin() || t.CreatedBy == u.ID
}

// CanManageUsers allows admins only.
func CanManageUsers(u *model.User) bool {
	return u.IsAdmin()
}

// VisibilityScope returns the viewer id a task listing must be scoped to.
// Admins get the zero ObjectID, meaning no restriction. The scope is a
// query-shaping rule: repositories fold it into the store query so
// invisible tasks never leave the store, not even in counts.
func VisibilityScope(u *model.User) primitive.ObjectID {
	if u.IsAdmin() {
		return primitive.NilObjectID
	}
	return u.ID
}
