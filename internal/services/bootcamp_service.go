package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"devcamper/internal/domain"
	"devcamper/internal/domain/models"
	"devcamper/internal/geocoder"
	"devcamper/internal/query"
	"devcamper/internal/utils"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EarthRadiusKm converts a surface distance into the angle used by $centerSphere.
const EarthRadiusKm = 6378.0

// RadiusFromDistance returns the angular radius, in radians, of a distance in km.
func RadiusFromDistance(km float64) float64 {
	return km / EarthRadiusKm
}

type BootcampService struct {
	Bootcamps BootcampStore
	Courses   CourseStore
	// Geocoder is optional; without it addresses are stored as given and
	// radius search is unavailable.
	Geocoder geocoder.Geocoder
	MaxLimit int
	Now      func() time.Time
}

func (s BootcampService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// List returns one page of bootcamps matching values, each with its courses.
func (s BootcampService) List(ctx context.Context, values url.Values) (ListResult, error) {
	spec, err := query.Build(values, models.BootcampSchema, query.Options{MaxLimit: s.MaxLimit})
	if err != nil {
		return ListResult{}, err
	}
	res, err := list(ctx, s.Bootcamps.Find, s.Bootcamps.Count, spec)
	if err != nil {
		return ListResult{}, err
	}
	if err := s.populateCourses(ctx, res.Data); err != nil {
		return ListResult{}, err
	}
	return res, nil
}

func (s BootcampService) populateCourses(ctx context.Context, docs []bson.M) error {
	if s.Courses == nil || len(docs) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		if id, ok := docID(d, "_id"); ok {
			ids = append(ids, id)
		}
	}
	courses, err := s.Courses.FindByBootcamps(ctx, ids)
	if err != nil {
		return err
	}
	byBootcamp := map[primitive.ObjectID][]models.Course{}
	for _, c := range courses {
		byBootcamp[c.Bootcamp] = append(byBootcamp[c.Bootcamp], c)
	}
	for _, d := range docs {
		id, ok := docID(d, "_id")
		if !ok {
			continue
		}
		cs := byBootcamp[id]
		if cs == nil {
			cs = []models.Course{}
		}
		d["courses"] = cs
	}
	return nil
}

func (s BootcampService) Get(ctx context.Context, rawID string) (models.Bootcamp, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.Bootcamp{}, err
	}
	return s.Bootcamps.FindByID(ctx, id)
}

func (s BootcampService) Create(ctx context.Context, p models.BootcampPayload) (models.Bootcamp, error) {
	b := p.Bootcamp(s.now())
	b.Slug = slug.Make(b.Name)

	if s.Geocoder != nil {
		loc, err := s.locate(ctx, b.Address)
		if err != nil {
			return models.Bootcamp{}, err
		}
		b.Location = loc
		// the formatted address on location replaces the raw one
		b.Address = ""
	}

	created, err := s.Bootcamps.Create(ctx, b)
	if err != nil {
		return models.Bootcamp{}, err
	}
	utils.LogEvent(ctx, "bootcamp", "create", "id="+created.ID.Hex())
	return created, nil
}

func (s BootcampService) Update(ctx context.Context, rawID string, patch models.BootcampPatch) (models.Bootcamp, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.Bootcamp{}, err
	}

	if patch.Name != nil {
		sl := slug.Make(*patch.Name)
		patch.Slug = &sl
	}
	if patch.Address != nil && s.Geocoder != nil {
		loc, err := s.locate(ctx, *patch.Address)
		if err != nil {
			return models.Bootcamp{}, err
		}
		patch.Location = loc
		patch.Address = nil
	}

	updated, err := s.Bootcamps.Update(ctx, id, patch)
	if err != nil {
		return models.Bootcamp{}, err
	}
	utils.LogEvent(ctx, "bootcamp", "update", "id="+id.Hex())
	return updated, nil
}

// Delete removes the bootcamp and then its courses.
func (s BootcampService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.Bootcamps.Delete(ctx, id); err != nil {
		return err
	}

	removed := int64(0)
	if s.Courses != nil {
		removed, err = s.Courses.DeleteByBootcamp(ctx, id)
		if err != nil {
			return fmt.Errorf("delete courses of bootcamp %s: %w", id.Hex(), err)
		}
	}
	utils.LogEvent(ctx, "bootcamp", "delete", fmt.Sprintf("id=%s courses_removed=%d", id.Hex(), removed))
	return nil
}

// InRadius finds bootcamps within distance km of the place a postal code resolves to.
func (s BootcampService) InRadius(ctx context.Context, zipcode, distance string) ([]models.Bootcamp, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(distance), 64)
	if err != nil || d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, domain.NewValidationError(fmt.Sprintf("Please provide a valid distance, got %s", distance))
	}
	if s.Geocoder == nil {
		return nil, domain.NewStatusError(http.StatusServiceUnavailable, "Geocoding is not configured")
	}

	locs, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, domain.NewStatusError(http.StatusNotFound, "Could not geocode %s", zipcode)
	}

	return s.Bootcamps.WithinRadius(ctx, locs[0].Longitude, locs[0].Latitude, RadiusFromDistance(d))
}

func (s BootcampService) locate(ctx context.Context, address string) (*models.GeoLocation, error) {
	return Locate(ctx, s.Geocoder, address)
}

// Locate geocodes address into the GeoJSON point stored on a bootcamp.
func Locate(ctx context.Context, g geocoder.Geocoder, address string) (*models.GeoLocation, error) {
	locs, err := g.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, domain.NewStatusError(http.StatusNotFound, "Could not geocode %s", address)
	}
	l := locs[0]
	return &models.GeoLocation{
		Type:             "Point",
		Coordinates:      []float64{l.Longitude, l.Latitude},
		FormattedAddress: l.FormattedAddress,
		Street:           l.Street,
		City:             l.City,
		State:            l.State,
		Zipcode:          l.Zipcode,
		Country:          l.Country,
	}, nil
}
