package repository

import (
	"context"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
)

// UserRepository defines the interface for identity persistence.
// Create must reject a second identity with the same email atomically (ErrDuplicate).
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	UpdateRole(ctx context.Context, id string, role entity.Role) (entity.UpdateResult, error)
}
