package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
)

func TestClassRepository_RecordEnrollmentsSkipsMalformedIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Classes().Create(ctx, &entity.Class{Name: "Watercolor", AvailableSeats: 3})
	require.NoError(t, err)

	require.NoError(t, store.Classes().RecordEnrollments(ctx, []string{"nope", created.InsertedID, "", created.InsertedID}))

	c, err := store.Classes().GetByID(ctx, created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumberOfStudents)
	assert.Equal(t, 1, c.AvailableSeats)
}

func TestEnrollmentRepository_ListOwned(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	mine, err := store.Enrollments().Create(ctx, &entity.Enrollment{ClassID: "c1", Email: "u@test.com"})
	require.NoError(t, err)
	theirs, err := store.Enrollments().Create(ctx, &entity.Enrollment{ClassID: "c2", Email: "other@test.com"})
	require.NoError(t, err)

	owned, err := store.Enrollments().ListOwned(ctx, []string{mine.InsertedID, theirs.InsertedID}, "u@test.com")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "c1", owned[0].ClassID)

	_, err = store.Enrollments().ListOwned(ctx, []string{mine.InsertedID, "nothex"}, "u@test.com")
	assert.ErrorIs(t, err, repo.ErrInvalidID)
}
