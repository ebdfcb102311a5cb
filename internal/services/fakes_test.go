package services

import (
	"context"

	"devcamper/internal/domain"
	"devcamper/internal/domain/models"
	"devcamper/internal/geocoder"
	"devcamper/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBootcamps struct {
	docs     []bson.M
	total    int64
	byID     map[primitive.ObjectID]models.Bootcamp
	lastSpec query.Spec
	created  []models.Bootcamp
	patches  []models.BootcampPatch
	deleted  []primitive.ObjectID
	radius   []float64
}

func (f *fakeBootcamps) Find(_ context.Context, spec query.Spec) ([]bson.M, error) {
	f.lastSpec = spec
	return f.docs, nil
}

func (f *fakeBootcamps) Count(context.Context, bson.M) (int64, error) { return f.total, nil }

func (f *fakeBootcamps) FindByID(_ context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	b, ok := f.byID[id]
	if !ok {
		return models.Bootcamp{}, domain.NotFoundError{Resource: "bootcamp", ID: id.Hex()}
	}
	return b, nil
}

func (f *fakeBootcamps) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Bootcamp, error) {
	out := []models.Bootcamp{}
	for _, id := range ids {
		if b, ok := f.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBootcamps) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeBootcamps) Create(_ context.Context, b models.Bootcamp) (models.Bootcamp, error) {
	b.ID = primitive.NewObjectID()
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBootcamps) Update(_ context.Context, id primitive.ObjectID, patch models.BootcampPatch) (models.Bootcamp, error) {
	f.patches = append(f.patches, patch)
	b, ok := f.byID[id]
	if !ok {
		return models.Bootcamp{}, domain.NotFoundError{Resource: "bootcamp", ID: id.Hex()}
	}
	return b, nil
}

func (f *fakeBootcamps) Delete(_ context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	b, ok := f.byID[id]
	if !ok {
		return models.Bootcamp{}, domain.NotFoundError{Resource: "bootcamp", ID: id.Hex()}
	}
	f.deleted = append(f.deleted, id)
	return b, nil
}

func (f *fakeBootcamps) WithinRadius(_ context.Context, lng, lat, radius float64) ([]models.Bootcamp, error) {
	f.radius = []float64{lng, lat, radius}
	return []models.Bootcamp{{Name: "Near"}}, nil
}

type fakeCourses struct {
	docs          []bson.M
	total         int64
	byBootcamp    map[primitive.ObjectID][]models.Course
	byID          map[primitive.ObjectID]models.Course
	created       []models.Course
	deletedParent []primitive.ObjectID
}

func (f *fakeCourses) Find(context.Context, query.Spec) ([]bson.M, error) { return f.docs, nil }

func (f *fakeCourses) Count(context.Context, bson.M) (int64, error) { return f.total, nil }

func (f *fakeCourses) FindByID(_ context.Context, id primitive.ObjectID) (models.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Course{}, domain.NotFoundError{Resource: "course", ID: id.Hex()}
	}
	return c, nil
}

func (f *fakeCourses) FindByBootcamp(ctx context.Context, id primitive.ObjectID) ([]models.Course, error) {
	return f.FindByBootcamps(ctx, []primitive.ObjectID{id})
}

func (f *fakeCourses) FindByBootcamps(_ context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	out := []models.Course{}
	for _, id := range ids {
		out = append(out, f.byBootcamp[id]...)
	}
	return out, nil
}

func (f *fakeCourses) Create(_ context.Context, c models.Course) (models.Course, error) {
	c.ID = primitive.NewObjectID()
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeCourses) Update(_ context.Context, id primitive.ObjectID, _ models.CoursePatch) (models.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Course{}, domain.NotFoundError{Resource: "course", ID: id.Hex()}
	}
	return c, nil
}

func (f *fakeCourses) Delete(_ context.Context, id primitive.ObjectID) (models.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Course{}, domain.NotFoundError{Resource: "course", ID: id.Hex()}
	}
	return c, nil
}

func (f *fakeCourses) DeleteByBootcamp(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.deletedParent = append(f.deletedParent, id)
	return int64(len(f.byBootcamp[id])), nil
}

type fakeGeocoder struct {
	locs  []geocoder.Location
	err   error
	calls []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) ([]geocoder.Location, error) {
	f.calls = append(f.calls, address)
	return f.locs, f.err
}
