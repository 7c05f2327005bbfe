package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	"github.com/oksasatya/art-school-server/internal/infrastructure/memory"
	"github.com/oksasatya/art-school-server/pkg/helpers"
)

type recordingSink struct {
	mu     sync.Mutex
	events []AuditEvent
}

func (s *recordingSink) Record(_ context.Context, ev AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

func newUserService(t *testing.T, legacy bool) (*UserService, *recordingSink) {
	t.Helper()
	helpers.PasswordCost = bcrypt.MinCost
	sink := &recordingSink{}
	svc := NewUserService(memory.NewStore().Users(), helpers.NewJWTManager("user-service-test-secret"), NewAuditor(sink, nil), nil, legacy)
	return svc, sink
}

func TestUserService_RegisterAndDuplicate(t *testing.T) {
	svc, sink := newUserService(t, false)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "u@test.com", Name: "U"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)

	_, err = svc.Register(ctx, RegisterInput{Email: "u@test.com"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	u, err := svc.GetByEmail(ctx, "u@test.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, u.Role)
	assert.Equal(t, []string{AuditIdentityRegistered}, sink.actions())
}

func TestUserService_ConcurrentRegistrationAdmitsOne(t *testing.T) {
	svc, _ := newUserService(t, false)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, RegisterInput{Email: "race@test.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateIdentity)
	}
	assert.Equal(t, 1, ok)
}

func TestUserService_GetByEmailMissing(t *testing.T) {
	svc, _ := newUserService(t, false)

	u, err := svc.GetByEmail(context.Background(), "nobody@test.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserService_IssueToken(t *testing.T) {
	svc, sink := newUserService(t, false)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "locked@test.com", Password: "correct-horse"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Email: "open@test.com"})
	require.NoError(t, err)

	t.Run("unknown email is trusted as given", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, map[string]any{"email": "new@test.com", "name": "New"}, "")
		require.NoError(t, err)
		claims, err := svc.Tokens.(*helpers.JWTManager).Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "new@test.com", claims.Email)
		assert.Equal(t, "New", claims.Identity["name"])
	})
	t.Run("claims without email skip the password check", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, map[string]any{"uid": "abc"}, "")
		require.NoError(t, err)
		claims, err := svc.Tokens.(*helpers.JWTManager).Verify(token)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"uid": "abc"}, claims.Identity)
	})
	t.Run("identity without password", func(t *testing.T) {
		_, err := svc.IssueToken(ctx, map[string]any{"email": "open@test.com"}, "anything")
		assert.NoError(t, err)
	})
	t.Run("identity with password requires it", func(t *testing.T) {
		_, err := svc.IssueToken(ctx, map[string]any{"email": "locked@test.com"}, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.IssueToken(ctx, map[string]any{"email": "locked@test.com"}, "correct-horse")
		assert.NoError(t, err)
	})

	assert.Contains(t, sink.actions(), AuditTokenDenied)
	assert.Contains(t, sink.actions(), AuditTokenIssued)
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		legacy   bool
		role     string
		wantRole entity.Role
		wantErr  error
	}{
		{"strict instructor", false, "instructor", entity.RoleInstructor, nil},
		{"strict admin", false, "admin", entity.RoleAdmin, nil},
		{"strict student", false, "student", entity.RoleStudent, nil},
		{"strict rejects unknown", false, "guest", "", entity.ErrInvalidRole},
		{"strict rejects typo", false, "instrutor", "", entity.ErrInvalidRole},
		{"legacy instructor", true, "instructor", entity.RoleInstructor, nil},
		{"legacy anything else becomes admin", true, "guest", entity.RoleAdmin, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newUserService(t, tt.legacy)
			created, err := svc.Register(ctx, RegisterInput{Email: "u@test.com"})
			require.NoError(t, err)

			_, err = svc.UpdateRole(ctx, "admin@test.com", created.InsertedID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			role, err := svc.RoleOf(ctx, "u@test.com")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

func TestUserService_UpdateRoleUnknownUser(t *testing.T) {
	svc, _ := newUserService(t, false)

	_, err := svc.UpdateRole(context.Background(), "admin@test.com", "64b7f0c2a1b2c3d4e5f60718", "admin")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.UpdateRole(context.Background(), "admin@test.com", "not-an-id", "admin")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestAuditor_NilSafe(t *testing.T) {
	var a *Auditor
	a.Record(context.Background(), AuditEvent{Action: AuditTokenIssued})

	sink := &recordingSink{}
	NewAuditor(sink, nil).Record(context.Background(), AuditEvent{Action: AuditOwnerMismatch})
	require.Len(t, sink.events, 1)
	assert.WithinDuration(t, time.Now(), sink.events[0].At, time.Minute)
}

func TestAuditor_RequestMeta(t *testing.T) {
	sink := &recordingSink{}
	ctx := WithRequestMeta(context.Background(), RequestMeta{IP: "198.51.100.1", UserAgent: "curl/8"})

	NewAuditor(sink, nil).Record(ctx, AuditEvent{Action: AuditTokenIssued})
	require.Len(t, sink.events, 1)
	assert.Equal(t, "198.51.100.1", sink.events[0].IP)
	assert.Equal(t, "curl/8", sink.events[0].UserAgent)
}
