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

type BootcampRepository struct {
	Coll *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) BootcampRepository {
	return BootcampRepository{Coll: db.Collection(BootcampsCollection)}
}

// EnsureIndexes creates the unique name index and the geo index used by radius search.
func (r BootcampRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("name_unique")},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("slug")},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetName("location_2dsphere")},
	})
	return err
}

func (r BootcampRepository) Find(ctx context.Context, spec query.Spec) ([]bson.M, error) {
	return findDocs(ctx, r.Coll, spec)
}

func (r BootcampRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.Coll, filter)
}

func (r BootcampRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	var b models.Bootcamp
	err := r.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	return b, classify(err, "bootcamp", id.Hex())
}

func (r BootcampRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.Coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r BootcampRepository) Create(ctx context.Context, b models.Bootcamp) (models.Bootcamp, error) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, err := r.Coll.InsertOne(ctx, b); err != nil {
		return models.Bootcamp{}, classify(err, "bootcamp", b.ID.Hex())
	}
	return b, nil
}

func (r BootcampRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.BootcampPatch) (models.Bootcamp, error) {
	set, err := patchDoc(patch)
	if err != nil {
		return models.Bootcamp{}, err
	}
	var b models.Bootcamp
	err = updateByID(ctx, r.Coll, id, set, &b)
	return b, classify(err, "bootcamp", id.Hex())
}

func (r BootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	var b models.Bootcamp
	err := r.Coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&b)
	return b, classify(err, "bootcamp", id.Hex())
}

// WithinRadius returns bootcamps whose location lies inside the spherical cap
// centred on (lng, lat) with the given radius in radians.
func (r BootcampRepository) WithinRadius(ctx context.Context, lng, lat, radius float64) ([]models.Bootcamp, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radius},
			},
		},
	}
	cur, err := r.Coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []models.Bootcamp{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r BootcampRepository) InsertMany(ctx context.Context, items []models.Bootcamp) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	docs := make([]any, 0, len(items))
	for _, b := range items {
		docs = append(docs, b)
	}
	res, err := r.Coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, classify(err, "bootcamp", "")
	}
	return len(res.InsertedIDs), nil
}

func (r BootcampRepository) DeleteMany(ctx context.Context) (int64, error) {
	res, err := r.Coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FindByIDs loads the bootcamps with the given ids, in no particular order.
func (r BootcampRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Bootcamp, error) {
	out := []models.Bootcamp{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.Coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
