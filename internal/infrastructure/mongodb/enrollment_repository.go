package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
)

type EnrollmentRepository struct {
	coll *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{coll: db.Collection(EnrollmentsCollection)}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *entity.Enrollment) (entity.InsertResult, error) {
	e.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return entity.InsertResult{}, mapErr(err)
	}
	return entity.InsertResult{Acknowledged: true, InsertedID: e.ID.Hex()}, nil
}

func (r *EnrollmentRepository) ListByEmail(ctx context.Context, email string) ([]entity.Enrollment, error) {
	return findAll[entity.Enrollment](ctx, r.coll, bson.M{"email": email})
}

func (r *EnrollmentRepository) ListOwned(ctx context.Context, ids []string, email string) ([]entity.Enrollment, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return nil, err
	}
	return findAll[entity.Enrollment](ctx, r.coll, bson.M{"_id": bson.M{"$in": oids}, "email": email})
}

// DeleteOwned removes the listed ids that belong to email; foreign ids are left alone.
func (r *EnrollmentRepository) DeleteOwned(ctx context.Context, ids []string, email string) (entity.DeleteResult, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return entity.DeleteResult{}, err
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}, "email": email})
	if err != nil {
		return entity.DeleteResult{}, err
	}
	return entity.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(PaymentsCollection)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) (entity.InsertResult, error) {
	p.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return entity.InsertResult{}, mapErr(err)
	}
	return entity.InsertResult{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}

func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]entity.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return findAll[entity.Payment](ctx, r.coll, bson.M{"email": email}, opts)
}

var (
	_ repo.EnrollmentRepository = (*EnrollmentRepository)(nil)
	_ repo.PaymentRepository    = (*PaymentRepository)(nil)
)
