package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
)

type ClassService struct {
	Repo        repo.ClassRepository
	Instructors repo.InstructorRepository
	Index       ClassIndex
	Images      ImageUploader
	Logger      *logrus.Logger
}

func NewClassService(classes repo.ClassRepository, instructors repo.InstructorRepository, index ClassIndex, images ImageUploader, logger *logrus.Logger) *ClassService {
	return &ClassService{Repo: classes, Instructors: instructors, Index: index, Images: images, Logger: logger}
}

func (s *ClassService) List(ctx context.Context) ([]entity.Class, error) {
	return s.Repo.List(ctx)
}

func (s *ClassService) ListInstructors(ctx context.Context) ([]entity.Instructor, error) {
	return s.Instructors.List(ctx)
}

// ListByInstructor returns the classes taught by the authenticated instructor.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]entity.Class, error) {
	return s.Repo.ListByInstructor(ctx, email)
}

func (s *ClassService) Stats(ctx context.Context) ([]entity.ClassStat, error) {
	return s.Repo.Stats(ctx)
}

// Search queries the class index; without an index it returns no hits.
func (s *ClassService) Search(ctx context.Context, q string, size int) ([]entity.Class, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.Class{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.Search(ctx, q, size)
}

// Create stores a new pending class owned by instructorEmail.
func (s *ClassService) Create(ctx context.Context, instructorEmail string, c *entity.Class) (entity.InsertResult, error) {
	c.InstructorEmail = instructorEmail
	c.Status = entity.ClassPending
	c.NumberOfStudents = 0
	c.Feedback = ""
	res, err := s.Repo.Create(ctx, c)
	if err != nil {
		return res, err
	}
	s.reindex(ctx, c)
	return res, nil
}

// UpdateDetails replaces the editable fields of a class owned by callerEmail.
func (s *ClassService) UpdateDetails(ctx context.Context, callerEmail, id string, in *entity.Class) (entity.UpdateResult, error) {
	existing, err := s.ownedClass(ctx, callerEmail, id)
	if err != nil {
		return entity.UpdateResult{}, err
	}
	res, err := s.Repo.UpdateDetails(ctx, id, in)
	if err != nil {
		return res, mapClassErr(err)
	}
	existing.Name = in.Name
	existing.Image = in.Image
	existing.InstructorName = in.InstructorName
	existing.AvailableSeats = in.AvailableSeats
	existing.Price = in.Price
	s.reindex(ctx, existing)
	return res, nil
}

// UpdateStatus records an admin review decision.
func (s *ClassService) UpdateStatus(ctx context.Context, id string, status entity.ClassStatus, feedback string) (entity.UpdateResult, error) {
	res, err := s.Repo.UpdateStatus(ctx, id, status, feedback)
	if err != nil {
		return res, mapClassErr(err)
	}
	if res.MatchedCount == 0 {
		return res, ErrClassNotFound
	}
	if c, gErr := s.Repo.GetByID(ctx, id); gErr == nil {
		s.reindex(ctx, c)
	}
	return res, nil
}

// UploadImage stores the image under classes/<id>/ and points the class at it.
func (s *ClassService) UploadImage(ctx context.Context, callerEmail, id string, r io.Reader, filename, contentType string) (string, error) {
	if s.Images == nil {
		return "", ErrUploadUnavailable
	}
	c, err := s.ownedClass(ctx, callerEmail, id)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("classes", id, uuid.NewString()+ext))
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if _, err := s.Repo.SetImage(ctx, id, url); err != nil {
		return "", mapClassErr(err)
	}
	c.Image = url
	s.reindex(ctx, c)
	return url, nil
}

func (s *ClassService) ownedClass(ctx context.Context, callerEmail, id string) (*entity.Class, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapClassErr(err)
	}
	if c.InstructorEmail != callerEmail {
		return nil, ErrOwnerMismatch
	}
	return c, nil
}

func (s *ClassService) reindex(ctx context.Context, c *entity.Class) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, c); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("class_id", c.ID.Hex()).Warn("class index failed")
	}
}

func mapClassErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrClassNotFound
	case errors.Is(err, repo.ErrInvalidID):
		return ErrInvalidID
	}
	return err
}
