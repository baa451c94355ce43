package service

import (
	"context"
	"testing"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users   *repository.MemoryUserRepository
	tasks   *repository.MemoryTaskRepository
	taskSvc *TaskService
	userSvc *UserService
	admin   *model.User
	alice   *model.User
	bob     *model.User
	charlie *model.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	tasks := repository.NewMemoryTaskRepository()
	env := &testEnv{
		users:   users,
		tasks:   tasks,
		taskSvc: NewTaskService(tasks, users),
		userSvc: NewUserService(users),
	}
	env.admin = env.seedUser(t, "admin@example.com", model.RoleAdmin)
	env.alice = env.seedUser(t, "alice@example.com", model.RoleUser)
	env.bob = env.seedUser(t, "bob@example.com", model.RoleUser)
	env.charlie = env.seedUser(t, "charlie@example.com", model.RoleUser)
	return env
}

func (e *testEnv) seedUser(t *testing.T, email, role string) *model.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), &model.User{
		UID:      "uid-" + email,
		Email:    email,
		Name:     email,
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createTask(t *testing.T, creator *model.User, req *model.CreateTaskRequest) *model.TaskResponse {
	t.Helper()
	task, err := e.taskSvc.Create(context.Background(), creator, req)
	require.NoError(t, err)
	return task
}
