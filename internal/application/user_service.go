package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
	"github.com/oksasatya/art-school-server/pkg/helpers"
)

// TokenIssuer is the issuing half of the token service.
type TokenIssuer interface {
	IssueClaims(identity map[string]any) (string, time.Time, error)
}

type UserService struct {
	Repo   repo.UserRepository
	Tokens TokenIssuer
	Audit  *Auditor
	Logger *logrus.Logger

	// LegacyRoleCoercion maps any role other than "instructor" to admin instead of rejecting it.
	LegacyRoleCoercion bool
}

func NewUserService(r repo.UserRepository, tokens TokenIssuer, audit *Auditor, logger *logrus.Logger, legacyRoles bool) *UserService {
	return &UserService{Repo: r, Tokens: tokens, Audit: audit, Logger: logger, LegacyRoleCoercion: legacyRoles}
}

type RegisterInput struct {
	Email    string
	Name     string
	Photo    string
	Password string
}

// Register creates a student identity. The store enforces email uniqueness, so two
// concurrent registrations for one email cannot both succeed.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (entity.InsertResult, error) {
	now := time.Now().UTC()
	u := &entity.User{
		Email:     strings.TrimSpace(in.Email),
		Name:      in.Name,
		Photo:     in.Photo,
		Role:      entity.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return entity.InsertResult{}, err
		}
		u.PasswordHash = hash
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return entity.InsertResult{}, ErrDuplicateIdentity
		}
		return entity.InsertResult{}, err
	}
	s.Audit.Record(ctx, AuditEvent{Email: u.Email, Action: AuditIdentityRegistered})
	return entity.InsertResult{Acknowledged: true, InsertedID: u.ID.Hex()}, nil
}

// IssueToken signs identity as supplied. When it names the email of an identity
// registered with a password, that password must match. Unknown emails and
// password-less identities get a token for the claims as given.
func (s *UserService) IssueToken(ctx context.Context, identity map[string]any, password string) (string, error) {
	email, _ := identity["email"].(string)
	if email != "" {
		u, err := s.Repo.GetByEmail(ctx, email)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			u = nil
		case err != nil:
			return "", err
		}
		if u != nil && u.PasswordHash != "" && !helpers.CompareHashAndPassword(u.PasswordHash, password) {
			s.Audit.Record(ctx, AuditEvent{Email: email, Action: AuditTokenDenied})
			return "", ErrInvalidCredentials
		}
	}
	token, exp, err := s.Tokens.IssueClaims(identity)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("issue token failed")
		}
		return "", err
	}
	s.Audit.Record(ctx, AuditEvent{Email: email, Action: AuditTokenIssued, Metadata: map[string]any{"expires_at": exp}})
	return token, nil
}

// GetByEmail returns nil without error when no identity exists.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

// RoleOf reports the effective role for email; unknown identities are students.
func (s *UserService) RoleOf(ctx context.Context, email string) (entity.Role, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return entity.RoleStudent, nil
	}
	return u.Role.Effective(), nil
}

// UpdateRole sets the role of identity id. Unknown role names fail with entity.ErrInvalidRole
// unless legacy coercion is on.
func (s *UserService) UpdateRole(ctx context.Context, actor, id, role string) (entity.UpdateResult, error) {
	var r entity.Role
	if s.LegacyRoleCoercion {
		r = entity.CoerceLegacyRole(role)
	} else {
		parsed, err := entity.ParseRole(role)
		if err != nil {
			return entity.UpdateResult{}, err
		}
		r = parsed
	}
	res, err := s.Repo.UpdateRole(ctx, id, r)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return entity.UpdateResult{}, ErrInvalidID
		}
		return entity.UpdateResult{}, err
	}
	if res.MatchedCount == 0 {
		return res, ErrUserNotFound
	}
	s.Audit.Record(ctx, AuditEvent{Email: actor, Action: AuditRoleUpdated, Metadata: map[string]any{"user_id": id, "role": string(r)}})
	return res, nil
}
