package services

import (
	"context"
	"strings"

	"devcamper/internal/domain"
	"devcamper/internal/domain/models"
	"devcamper/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BootcampStore is the persistence the bootcamp and course services need.
type BootcampStore interface {
	Find(ctx context.Context, spec query.Spec) ([]bson.M, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Bootcamp, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Create(ctx context.Context, b models.Bootcamp) (models.Bootcamp, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.BootcampPatch) (models.Bootcamp, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error)
	WithinRadius(ctx context.Context, lng, lat, radius float64) ([]models.Bootcamp, error)
}

type CourseStore interface {
	Find(ctx context.Context, spec query.Spec) ([]bson.M, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Course, error)
	FindByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Course, error)
	FindByBootcamps(ctx context.Context, bootcamps []primitive.ObjectID) ([]models.Course, error)
	Create(ctx context.Context, c models.Course) (models.Course, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.CoursePatch) (models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Course, error)
	DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) (int64, error)
}

// ListResult is one page of a listing.
type ListResult struct {
	Count      int               `json:"count"`
	Pagination domain.Pagination `json:"pagination"`
	Data       []bson.M          `json:"data"`
}

// ParseID reads a hex document id; anything else is a cast failure.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, domain.CastError{Value: raw, Err: err}
	}
	return id, nil
}

// list runs the shared list pipeline: build, count the matches, fetch the page.
func list(ctx context.Context, find func(context.Context, query.Spec) ([]bson.M, error), count func(context.Context, bson.M) (int64, error), spec query.Spec) (ListResult, error) {
	total, err := count(ctx, spec.Filter)
	if err != nil {
		return ListResult{}, err
	}
	docs, err := find(ctx, spec)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Count:      len(docs),
		Pagination: spec.Window.Paginate(total),
		Data:       docs,
	}, nil
}

func docID(doc bson.M, key string) (primitive.ObjectID, bool) {
	id, ok := doc[key].(primitive.ObjectID)
	return id, ok
}
