// Package memory holds in-process repositories used when STORE_DRIVER=memory
// (local development without MongoDB) and as test doubles.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
)

// Store keeps every collection behind one lock.
type Store struct {
	mu          sync.RWMutex
	users       []entity.User
	classes     []entity.Class
	instructors []entity.Instructor
	enrollments []entity.Enrollment
	payments    []entity.Payment
}

func NewStore() *Store { return &Store{} }

func (s *Store) Users() *UserRepository { return &UserRepository{s} }
func (s *Store) Classes() *ClassRepository { return &ClassRepository{s} }
func (s *Store) Instructors() *InstructorRepository { return &InstructorRepository{s} }
func (s *Store) Enrollments() *EnrollmentRepository { return &EnrollmentRepository{s} }
func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{s} }

// SeedInstructors replaces the instructors collection.
func (s *Store) SeedInstructors(list ...entity.Instructor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instructors = nil
	for _, in := range list {
		if in.ID.IsZero() {
			in.ID = primitive.NewObjectID()
		}
		s.instructors = append(s.instructors, in)
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repo.ErrInvalidID
	}
	return oid, nil
}

func idSet(ids []string) (map[primitive.ObjectID]bool, error) {
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		oid, err := parseID(id)
		if err != nil {
			return nil, err
		}
		set[oid] = true
	}
	return set, nil
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == oid {
			out := u
			return &out, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]entity.User{}, r.s.users...), nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role entity.Role) (entity.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return entity.UpdateResult{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == oid {
			res := entity.UpdateResult{Acknowledged: true, MatchedCount: 1}
			if r.s.users[i].Role != role {
				r.s.users[i].Role = role
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	return entity.UpdateResult{Acknowledged: true}, nil
}

type ClassRepository struct{ s *Store }

func (r *ClassRepository) List(_ context.Context) ([]entity.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := append([]entity.Class{}, r.s.classes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].NumberOfStudents > out[j].NumberOfStudents })
	return out, nil
}

func (r *ClassRepository) ListByInstructor(_ context.Context, email string) ([]entity.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Class{}
	for _, c := range r.s.classes {
		if c.InstructorEmail == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ClassRepository) GetByID(_ context.Context, id string) (*entity.Class, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.classes {
		if c.ID == oid {
			out := c
			return &out, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *ClassRepository) Create(_ context.Context, c *entity.Class) (entity.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	r.s.classes = append(r.s.classes, *c)
	return entity.InsertResult{Acknowledged: true, InsertedID: c.ID.Hex()}, nil
}

func (r *ClassRepository) update(id string, fn func(c *entity.Class)) (entity.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return entity.UpdateResult{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.classes {
		if r.s.classes[i].ID == oid {
			before := r.s.classes[i]
			fn(&r.s.classes[i])
			res := entity.UpdateResult{Acknowledged: true, MatchedCount: 1}
			if before != r.s.classes[i] {
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	return entity.UpdateResult{Acknowledged: true}, nil
}

func (r *ClassRepository) UpdateDetails(_ context.Context, id string, in *entity.Class) (entity.UpdateResult, error) {
	return r.update(id, func(c *entity.Class) {
		c.Name = in.Name
		c.Image = in.Image
		c.InstructorName = in.InstructorName
		c.AvailableSeats = in.AvailableSeats
		c.Price = in.Price
	})
}

func (r *ClassRepository) UpdateStatus(_ context.Context, id string, status entity.ClassStatus, feedback string) (entity.UpdateResult, error) {
	return r.update(id, func(c *entity.Class) {
		c.Status = status
		if feedback != "" {
			c.Feedback = feedback
		}
	})
}

func (r *ClassRepository) SetImage(_ context.Context, id, url string) (entity.UpdateResult, error) {
	return r.update(id, func(c *entity.Class) { c.Image = url })
}

// RecordEnrollments skips malformed ids and updates the rest.
func (r *ClassRepository) RecordEnrollments(_ context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := parseID(id); err != nil {
			continue
		}
		if _, err := r.update(id, func(c *entity.Class) {
			c.NumberOfStudents++
			c.AvailableSeats--
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *ClassRepository) Stats(_ context.Context) ([]entity.ClassStat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if len(r.s.classes) == 0 {
		return []entity.ClassStat{}, nil
	}
	var st entity.ClassStat
	for _, c := range r.s.classes {
		st.TotalStudents += c.NumberOfStudents
		st.AvailableSeats += c.AvailableSeats
	}
	return []entity.ClassStat{st}, nil
}

type InstructorRepository struct{ s *Store }

func (r *InstructorRepository) List(_ context.Context) ([]entity.Instructor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]entity.Instructor{}, r.s.instructors...), nil
}

type EnrollmentRepository struct{ s *Store }

func (r *EnrollmentRepository) Create(_ context.Context, e *entity.Enrollment) (entity.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = primitive.NewObjectID()
	r.s.enrollments = append(r.s.enrollments, *e)
	return entity.InsertResult{Acknowledged: true, InsertedID: e.ID.Hex()}, nil
}

func (r *EnrollmentRepository) ListByEmail(_ context.Context, email string) ([]entity.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Enrollment{}
	for _, e := range r.s.enrollments {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EnrollmentRepository) ListOwned(_ context.Context, ids []string, email string) ([]entity.Enrollment, error) {
	wanted, err := idSet(ids)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Enrollment{}
	for _, e := range r.s.enrollments {
		if wanted[e.ID] && e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EnrollmentRepository) DeleteOwned(_ context.Context, ids []string, email string) (entity.DeleteResult, error) {
	wanted, err := idSet(ids)
	if err != nil {
		return entity.DeleteResult{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.enrollments[:0]
	var deleted int64
	for _, e := range r.s.enrollments {
		if wanted[e.ID] && e.Email == email {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.s.enrollments = kept
	return entity.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

type PaymentRepository struct{ s *Store }

func (r *PaymentRepository) Create(_ context.Context, p *entity.Payment) (entity.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	r.s.payments = append(r.s.payments, *p)
	return entity.InsertResult{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}

func (r *PaymentRepository) ListByEmail(_ context.Context, email string) ([]entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Payment{}
	for _, p := range r.s.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

var (
	_ repo.UserRepository       = (*UserRepository)(nil)
	_ repo.ClassRepository      = (*ClassRepository)(nil)
	_ repo.InstructorRepository = (*InstructorRepository)(nil)
	_ repo.EnrollmentRepository = (*EnrollmentRepository)(nil)
	_ repo.PaymentRepository    = (*PaymentRepository)(nil)
)
