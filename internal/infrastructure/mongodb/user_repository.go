package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		u.ID = primitive.NilObjectID
		return mapErr(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var u entity.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	return findAll[entity.User](ctx, r.coll, bson.M{})
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entity.Role) (entity.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return entity.UpdateResult{}, err
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}})
	if err != nil {
		return entity.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func updateResult(res *mongo.UpdateResult) entity.UpdateResult {
	return entity.UpdateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

var _ repo.UserRepository = (*UserRepository)(nil)
