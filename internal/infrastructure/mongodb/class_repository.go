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

type ClassRepository struct {
	coll *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{coll: db.Collection(ClassesCollection)}
}

func (r *ClassRepository) List(ctx context.Context) ([]entity.Class, error) {
	opts := options.Find().SetSort(bson.D{{Key: "NumberOfStudents", Value: -1}})
	return findAll[entity.Class](ctx, r.coll, bson.M{}, opts)
}

func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]entity.Class, error) {
	return findAll[entity.Class](ctx, r.coll, bson.M{"email": email})
}

func (r *ClassRepository) GetByID(ctx context.Context, id string) (*entity.Class, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var c entity.Class
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *ClassRepository) Create(ctx context.Context, c *entity.Class) (entity.InsertResult, error) {
	c.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return entity.InsertResult{}, mapErr(err)
	}
	return entity.InsertResult{Acknowledged: true, InsertedID: c.ID.Hex()}, nil
}

func (r *ClassRepository) set(ctx context.Context, id string, fields bson.M) (entity.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return entity.UpdateResult{}, err
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return entity.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *ClassRepository) UpdateDetails(ctx context.Context, id string, c *entity.Class) (entity.UpdateResult, error) {
	return r.set(ctx, id, bson.M{
		"name":            c.Name,
		"image":           c.Image,
		"instructorName":  c.InstructorName,
		"Available-seats": c.AvailableSeats,
		"price":           c.Price,
	})
}

func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status entity.ClassStatus, feedback string) (entity.UpdateResult, error) {
	fields := bson.M{"status": status}
	if feedback != "" {
		fields["feedback"] = feedback
	}
	return r.set(ctx, id, fields)
}

func (r *ClassRepository) SetImage(ctx context.Context, id, url string) (entity.UpdateResult, error) {
	return r.set(ctx, id, bson.M{"image": url})
}

// RecordEnrollments applies one $inc per id in a single bulk write, so a class
// listed twice is counted twice. Malformed ids are skipped.
func (r *ClassRepository) RecordEnrollments(ctx context.Context, ids []string) error {
	models := make([]mongo.WriteModel, 0, len(ids))
	for _, id := range ids {
		oid, err := objectID(id)
		if err != nil {
			continue
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": oid}).
			SetUpdate(bson.M{"$inc": bson.M{"NumberOfStudents": 1, "Available-seats": -1}}))
	}
	if len(models) == 0 {
		return nil
	}
	_, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *ClassRepository) Stats(ctx context.Context) ([]entity.ClassStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalStudents", Value: bson.M{"$sum": "$NumberOfStudents"}},
			{Key: "AvailableSeats", Value: bson.M{"$sum": "$Available-seats"}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []entity.ClassStat{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type InstructorRepository struct {
	coll *mongo.Collection
}

func NewInstructorRepository(db *mongo.Database) *InstructorRepository {
	return &InstructorRepository{coll: db.Collection(InstructorsCollection)}
}

func (r *InstructorRepository) List(ctx context.Context) ([]entity.Instructor, error) {
	return findAll[entity.Instructor](ctx, r.coll, bson.M{})
}

var (
	_ repo.ClassRepository      = (*ClassRepository)(nil)
	_ repo.InstructorRepository = (*InstructorRepository)(nil)
)
