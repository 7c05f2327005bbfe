package repository

import (
	"context"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
)

// EnrollmentRepository stores added classes. Every read and delete is filtered by owner email.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *entity.Enrollment) (entity.InsertResult, error)
	ListByEmail(ctx context.Context, email string) ([]entity.Enrollment, error)
	// ListOwned returns the listed ids that belong to email. A malformed id is ErrInvalidID.
	ListOwned(ctx context.Context, ids []string, email string) ([]entity.Enrollment, error)
	DeleteOwned(ctx context.Context, ids []string, email string) (entity.DeleteResult, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) (entity.InsertResult, error)
	// ListByEmail returns the owner's payments, newest first.
	ListByEmail(ctx context.Context, email string) ([]entity.Payment, error)
}
