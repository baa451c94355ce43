package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"taskhub/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations of the repository interfaces. They back the
// MONGO_URI=memory development mode and the service and router tests.
// Semantics mirror the Mongo implementations, including (nil, nil) on
// missing documents and the soft-delete exclusion.

// MemoryUserRepository stores users in a mutex-guarded map.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *MemoryUserRepository) FindByUID(_ context.Context, uid string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.UID == uid {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make(map[primitive.ObjectID]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users[id] = copyUser(u)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) FindActive(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []*model.User
	for _, u := range r.users {
		if u.IsActive {
			users = append(users, copyUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return bytes.Compare(users[i].ID[:], users[j].ID[:]) > 0
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *MemoryUserRepository) UpdateName(_ context.Context, id primitive.ObjectID, name string) (*model.User, error) {
	return r.update(id, func(u *model.User) { u.Name = name })
}

func (r *MemoryUserRepository) UpdateRole(_ context.Context, id primitive.ObjectID, role string) (*model.User, error) {
	return r.update(id, func(u *model.User) { u.Role = role })
}

func (r *MemoryUserRepository) update(id primitive.ObjectID, apply func(*model.User)) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	apply(u)
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

// MemoryTaskRepository stores tasks in a mutex-guarded map.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[primitive.ObjectID]*model.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[primitive.ObjectID]*model.Task)}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now
	stored := *task
	r.tasks[task.ID] = &stored
	return task, nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok || t.IsDeleted {
		return nil, nil
	}
	return copyTask(t), nil
}

func (r *MemoryTaskRepository) List(_ context.Context, q model.TaskQuery) ([]*model.Task, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*model.Task
	for _, t := range r.tasks {
		if t.IsDeleted {
			continue
		}
		if q.Viewer != primitive.NilObjectID && t.CreatedBy != q.Viewer && t.AssignedTo != q.Viewer {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		matched = append(matched, copyTask(t))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) > 0
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := q.Skip()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.IsDeleted {
		return nil, nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			t.Title = v.(string)
		case "description":
			t.Description = v.(string)
		case "status":
			t.Status = v.(string)
		case "priority":
			t.Priority = v.(string)
		case "dueDate":
			if v == nil {
				t.DueDate = nil
			} else {
				due := v.(time.Time)
				t.DueDate = &due
			}
		case "assignedTo":
			t.AssignedTo = v.(primitive.ObjectID)
		}
	}
	t.UpdatedAt = time.Now()
	return copyTask(t), nil
}

func (r *MemoryTaskRepository) SoftDelete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.IsDeleted {
		return false, nil
	}
	t.IsDeleted = true
	t.UpdatedAt = time.Now()
	return true, nil
}

func copyTask(t *model.Task) *model.Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}
