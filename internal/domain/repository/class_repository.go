package repository

import (
	"context"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
)

type ClassRepository interface {
	// List returns every class, most popular first.
	List(ctx context.Context) ([]entity.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]entity.Class, error)
	GetByID(ctx context.Context, id string) (*entity.Class, error)
	Create(ctx context.Context, c *entity.Class) (entity.InsertResult, error)
	UpdateDetails(ctx context.Context, id string, c *entity.Class) (entity.UpdateResult, error)
	UpdateStatus(ctx context.Context, id string, status entity.ClassStatus, feedback string) (entity.UpdateResult, error)
	SetImage(ctx context.Context, id, url string) (entity.UpdateResult, error)
	// RecordEnrollments adds one student and removes one seat for each class id.
	// Malformed ids are skipped.
	RecordEnrollments(ctx context.Context, ids []string) error
	Stats(ctx context.Context) ([]entity.ClassStat, error)
}

type InstructorRepository interface {
	List(ctx context.Context) ([]entity.Instructor, error)
}
