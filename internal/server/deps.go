package server

import (
	"context"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/repository"
	"taskhub/internal/service"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories groups the persistence layer
type Repositories struct {
	Users repository.IUserRepository
	Tasks repository.ITaskRepository
}

// Services groups the business logic layer
type Services struct {
	Identity *service.IdentityService
	Tasks    *service.TaskService
	Users    *service.UserService
}

// Handlers groups the HTTP layer
type Handlers struct {
	Task *handler.TaskHandler
	User *handler.UserHandler
}

// InitRepositories wires the Mongo-backed repositories
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users: repository.NewUserRepository(db),
		Tasks: repository.NewTaskRepository(db),
	}
}

// InitMemoryRepositories wires the in-memory repositories (dev mode)
func InitMemoryRepositories() *Repositories {
	return &Repositories{
		Users: repository.NewMemoryUserRepository(),
		Tasks: repository.NewMemoryTaskRepository(),
	}
}

// InitServices wires the services
func InitServices(verifier auth.Verifier, repos *Repositories) *Services {
	return &Services{
		Identity: service.NewIdentityService(verifier, repos.Users),
		Tasks:    service.NewTaskService(repos.Tasks, repos.Users),
		Users:    service.NewUserService(repos.Users),
	}
}

// InitHandlers wires the handlers
func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		Task: handler.NewTaskHandler(services.Tasks),
		User: handler.NewUserHandler(services.Users),
	}
}

// BootstrapAdmin promotes the configured bootstrap account to admin on
// startup. The account must already exist from a first login; until
// then this is a no-op.
func BootstrapAdmin(ctx context.Context, cfg *config.Config, users *service.UserService) error {
	if cfg.Bootstrap.AdminEmail == "" {
		return nil
	}
	promoted, err := users.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail)
	if err != nil {
		return err
	}
	if promoted {
		logrus.WithField("email", cfg.Bootstrap.AdminEmail).Info("bootstrap admin promoted")
	}
	return nil
}
