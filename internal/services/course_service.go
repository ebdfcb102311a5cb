package services

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"devcamper/internal/domain"
	"devcamper/internal/domain/models"
	"devcamper/internal/query"
	"devcamper/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BootcampRef is the slice of a bootcamp embedded into course responses.
type BootcampRef struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
}

// CourseDetail is a course with its bootcamp expanded.
type CourseDetail struct {
	models.Course
	Bootcamp *BootcampRef `json:"bootcamp,omitempty"`
}

type CourseService struct {
	Courses   CourseStore
	Bootcamps BootcampStore
	MaxLimit  int
	Now       func() time.Time
}

func (s CourseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// List returns one page of courses with the owning bootcamp expanded.
func (s CourseService) List(ctx context.Context, values url.Values) (ListResult, error) {
	spec, err := query.Build(values, models.CourseSchema, query.Options{MaxLimit: s.MaxLimit})
	if err != nil {
		return ListResult{}, err
	}
	res, err := list(ctx, s.Courses.Find, s.Courses.Count, spec)
	if err != nil {
		return ListResult{}, err
	}
	if err := s.populateBootcamps(ctx, res.Data); err != nil {
		return ListResult{}, err
	}
	return res, nil
}

func (s CourseService) populateBootcamps(ctx context.Context, docs []bson.M) error {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, d := range docs {
		if id, ok := docID(d, "bootcamp"); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	bootcamps, err := s.Bootcamps.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	refs := make(map[primitive.ObjectID]BootcampRef, len(bootcamps))
	for _, b := range bootcamps {
		refs[b.ID] = BootcampRef{ID: b.ID, Name: b.Name, Description: b.Description}
	}
	for _, d := range docs {
		id, ok := docID(d, "bootcamp")
		if !ok {
			continue
		}
		if ref, ok := refs[id]; ok {
			d["bootcamp"] = ref
		}
	}
	return nil
}

// ListByBootcamp returns every course of one bootcamp, unpaginated.
func (s CourseService) ListByBootcamp(ctx context.Context, rawBootcampID string) ([]models.Course, error) {
	id, err := ParseID(rawBootcampID)
	if err != nil {
		return nil, err
	}
	return s.Courses.FindByBootcamp(ctx, id)
}

func (s CourseService) Get(ctx context.Context, rawID string) (CourseDetail, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return CourseDetail{}, err
	}
	c, err := s.Courses.FindByID(ctx, id)
	if err != nil {
		return CourseDetail{}, err
	}

	detail := CourseDetail{Course: c}
	b, err := s.Bootcamps.FindByID(ctx, c.Bootcamp)
	switch {
	case err == nil:
		detail.Bootcamp = &BootcampRef{ID: b.ID, Name: b.Name, Description: b.Description}
	case !domain.IsNotFound(err):
		return CourseDetail{}, err
	}
	return detail, nil
}

// Create adds a course to an existing bootcamp.
func (s CourseService) Create(ctx context.Context, rawBootcampID string, p models.CoursePayload) (models.Course, error) {
	bootcampID, err := ParseID(rawBootcampID)
	if err != nil {
		return models.Course{}, err
	}
	ok, err := s.Bootcamps.Exists(ctx, bootcampID)
	if err != nil {
		return models.Course{}, err
	}
	if !ok {
		return models.Course{}, domain.NewStatusError(http.StatusNotFound, "No bootcamp with the id of %s", rawBootcampID)
	}

	created, err := s.Courses.Create(ctx, p.Course(bootcampID, s.now()))
	if err != nil {
		return models.Course{}, err
	}
	utils.LogEvent(ctx, "course", "create", "id="+created.ID.Hex()+" bootcamp="+bootcampID.Hex())
	return created, nil
}

func (s CourseService) Update(ctx context.Context, rawID string, patch models.CoursePatch) (models.Course, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.Course{}, err
	}
	updated, err := s.Courses.Update(ctx, id, patch)
	if err != nil {
		return models.Course{}, err
	}
	utils.LogEvent(ctx, "course", "update", "id="+id.Hex())
	return updated, nil
}

func (s CourseService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.Courses.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(ctx, "course", "delete", "id="+id.Hex())
	return nil
}
