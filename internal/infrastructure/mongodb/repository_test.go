package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		u := &entity.User{Email: "u@test.com", Role: entity.RoleStudent}

		require.NoError(mt, NewUserRepository(mt.DB).Create(ctx, u))
		assert.False(mt, u.ID.IsZero())
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))

		err := NewUserRepository(mt.DB).Create(ctx, &entity.User{Email: "u@test.com"})
		assert.ErrorIs(mt, err, repo.ErrDuplicate)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "u@test.com"},
			{Key: "role", Value: "instructor"},
		}))

		u, err := NewUserRepository(mt.DB).GetByEmail(ctx, "u@test.com")
		require.NoError(mt, err)
		assert.Equal(mt, oid, u.ID)
		assert.Equal(mt, entity.RoleInstructor, u.Role)
	})

	mt.Run("get by email missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB).GetByEmail(ctx, "nobody@test.com")
		assert.ErrorIs(mt, err, repo.ErrNotFound)
	})

	mt.Run("update role", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		res, err := NewUserRepository(mt.DB).UpdateRole(ctx, primitive.NewObjectID().Hex(), entity.RoleAdmin)
		require.NoError(mt, err)
		assert.Equal(mt, entity.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)
	})

	mt.Run("update role bad id", func(mt *mtest.T) {
		_, err := NewUserRepository(mt.DB).UpdateRole(ctx, "not-hex", entity.RoleAdmin)
		assert.ErrorIs(mt, err, repo.ErrInvalidID)
	})
}

func TestClassRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.classes", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "big"}, {Key: "NumberOfStudents", Value: 20}, {Key: "Available-seats", Value: 2}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "small"}, {Key: "NumberOfStudents", Value: 3}},
		))

		list, err := NewClassRepository(mt.DB).List(ctx)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, 20, list[0].NumberOfStudents)
		assert.Equal(mt, 2, list[0].AvailableSeats)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.classes", mtest.FirstBatch))

		list, err := NewClassRepository(mt.DB).ListByInstructor(ctx, "teach@test.com")
		require.NoError(mt, err)
		assert.NotNil(mt, list)
		assert.Empty(mt, list)
	})

	mt.Run("stats", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.classes", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "totalStudents", Value: 29}, {Key: "AvailableSeats", Value: 12}},
		))

		stats, err := NewClassRepository(mt.DB).Stats(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, []entity.ClassStat{{TotalStudents: 29, AvailableSeats: 12}}, stats)
	})

	mt.Run("record enrollments", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}, bson.E{Key: "nModified", Value: 2}))

		err := NewClassRepository(mt.DB).RecordEnrollments(ctx, []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()})
		assert.NoError(mt, err)
	})

	mt.Run("record enrollments skips bad ids", func(mt *mtest.T) {
		err := NewClassRepository(mt.DB).RecordEnrollments(ctx, []string{"nope"})
		assert.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		err = NewClassRepository(mt.DB).RecordEnrollments(ctx, []string{"nope", primitive.NewObjectID().Hex()})
		assert.NoError(mt, err)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.classes", mtest.FirstBatch))

		_, err := NewClassRepository(mt.DB).GetByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, repo.ErrNotFound)
	})
}

func TestEnrollmentAndPaymentRepositories(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create enrollment", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		res, err := NewEnrollmentRepository(mt.DB).Create(ctx, &entity.Enrollment{ClassID: "c1", Email: "u@test.com"})
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		assert.Len(mt, res.InsertedID, 24)
	})

	mt.Run("list owned", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.selectedClasses", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "classId", Value: "c1"},
			{Key: "email", Value: "u@test.com"},
		}))

		list, err := NewEnrollmentRepository(mt.DB).ListOwned(ctx, []string{id.Hex()}, "u@test.com")
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, id, list[0].ID)
		assert.Equal(mt, "c1", list[0].ClassID)
	})

	mt.Run("list owned bad id", func(mt *mtest.T) {
		_, err := NewEnrollmentRepository(mt.DB).ListOwned(ctx, []string{"nope"}, "u@test.com")
		assert.ErrorIs(mt, err, repo.ErrInvalidID)
	})

	mt.Run("delete owned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		res, err := NewEnrollmentRepository(mt.DB).DeleteOwned(ctx, []string{primitive.NewObjectID().Hex()}, "u@test.com")
		require.NoError(mt, err)
		assert.Equal(mt, entity.DeleteResult{Acknowledged: true, DeletedCount: 1}, res)
	})

	mt.Run("list payments", func(mt *mtest.T) {
		paidAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.payments", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "u@test.com"},
			{Key: "transactionId", Value: "pi_1"},
			{Key: "cartItems", Value: bson.A{"a", "b"}},
			{Key: "date", Value: paidAt},
		}))

		list, err := NewPaymentRepository(mt.DB).ListByEmail(ctx, "u@test.com")
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, "pi_1", list[0].TransactionID)
		assert.Equal(mt, []string{"a", "b"}, list[0].EnrollmentIDs)
		assert.True(mt, paidAt.Equal(list[0].Date))
	})
}
