package repositories

import (
	"context"
	"errors"

	"devcamper/internal/domain"
	"devcamper/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BootcampsCollection = "bootcamps"
	CoursesCollection   = "courses"
)

// classify turns driver errors into domain errors. Unknown errors pass through.
func classify(err error, resource, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.NotFoundError{Resource: resource, ID: id, Err: err}
	case mongo.IsDuplicateKeyError(err):
		return domain.DuplicateError{Err: err}
	default:
		return err
	}
}

// findDocs runs a listing spec and decodes the page as raw documents so the
// projection decides the shape of each item.
func findDocs(ctx context.Context, coll *mongo.Collection, spec query.Spec) ([]bson.M, error) {
	cur, err := coll.Find(ctx, spec.Filter, spec.FindOptions())
	if err != nil {
		return nil, err
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func countDocs(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return coll.CountDocuments(ctx, filter)
}

// updateByID applies a $set patch and decodes the updated document into out.
func updateByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, set bson.M, out any) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if len(set) == 0 {
		return coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	}
	return coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(out)
}

// patchDoc marshals a patch struct whose unset fields are omitted.
func patchDoc(patch any) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return set, nil
}
