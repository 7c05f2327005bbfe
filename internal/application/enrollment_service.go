package application

import (
	"context"
	"errors"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
)

// EnrollmentService manages added classes. Every method takes the verified caller email
// and never trusts an owner taken from the request.
type EnrollmentService struct {
	Repo repo.EnrollmentRepository
}

func NewEnrollmentService(r repo.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{Repo: r}
}

func (s *EnrollmentService) Add(ctx context.Context, callerEmail string, e *entity.Enrollment) (entity.InsertResult, error) {
	e.Email = callerEmail
	return s.Repo.Create(ctx, e)
}

func (s *EnrollmentService) List(ctx context.Context, callerEmail string) ([]entity.Enrollment, error) {
	return s.Repo.ListByEmail(ctx, callerEmail)
}

// Remove deletes one enrollment if it belongs to the caller; a foreign id deletes nothing.
func (s *EnrollmentService) Remove(ctx context.Context, callerEmail, id string) (entity.DeleteResult, error) {
	res, err := s.Repo.DeleteOwned(ctx, []string{id}, callerEmail)
	if errors.Is(err, repo.ErrInvalidID) {
		return res, ErrInvalidID
	}
	return res, err
}
