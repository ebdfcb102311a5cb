package repositories

import (
	"context"

	"devcamper/internal/domain/models"
	"devcamper/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourseRepository struct {
	Coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) CourseRepository {
	return CourseRepository{Coll: db.Collection(CoursesCollection)}
}

func (r CourseRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bootcamp", Value: 1}},
		Options: options.Index().SetName("bootcamp"),
	})
	return err
}

func (r CourseRepository) Find(ctx context.Context, spec query.Spec) ([]bson.M, error) {
	return findDocs(ctx, r.Coll, spec)
}

func (r CourseRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.Coll, filter)
}

func (r CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var c models.Course
	err := r.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	return c, classify(err, "course", id.Hex())
}

func (r CourseRepository) FindByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Course, error) {
	return r.FindByBootcamps(ctx, []primitive.ObjectID{bootcamp})
}

// FindByBootcamps loads every course of the given bootcamps, oldest first.
func (r CourseRepository) FindByBootcamps(ctx context.Context, bootcamps []primitive.ObjectID) ([]models.Course, error) {
	out := []models.Course{}
	if len(bootcamps) == 0 {
		return out, nil
	}
	cur, err := r.Coll.Find(ctx,
		bson.M{"bootcamp": bson.M{"$in": bootcamps}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r CourseRepository) Create(ctx context.Context, c models.Course) (models.Course, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.Coll.InsertOne(ctx, c); err != nil {
		return models.Course{}, classify(err, "course", c.ID.Hex())
	}
	return c, nil
}

func (r CourseRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.CoursePatch) (models.Course, error) {
	set, err := patchDoc(patch)
	if err != nil {
		return models.Course{}, err
	}
	var c models.Course
	err = updateByID(ctx, r.Coll, id, set, &c)
	return c, classify(err, "course", id.Hex())
}

func (r CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var c models.Course
	err := r.Coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	return c, classify(err, "course", id.Hex())
}

// DeleteByBootcamp removes the courses of a bootcamp that is being deleted.
func (r CourseRepository) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) (int64, error) {
	res, err := r.Coll.DeleteMany(ctx, bson.M{"bootcamp": bootcamp})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r CourseRepository) InsertMany(ctx context.Context, items []models.Course) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	docs := make([]any, 0, len(items))
	for _, c := range items {
		docs = append(docs, c)
	}
	res, err := r.Coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, classify(err, "course", "")
	}
	return len(res.InsertedIDs), nil
}

func (r CourseRepository) DeleteMany(ctx context.Context) (int64, error) {
	res, err := r.Coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
