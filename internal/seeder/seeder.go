package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"devcamper/internal/domain/models"
	"devcamper/internal/geocoder"
	"devcamper/internal/services"
	"devcamper/internal/utils"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
)

const (
	BootcampsFile = "bootcamps.json"
	CoursesFile   = "courses.json"
)

type BootcampWriter interface {
	InsertMany(ctx context.Context, items []models.Bootcamp) (int, error)
	DeleteMany(ctx context.Context) (int64, error)
}

type CourseWriter interface {
	InsertMany(ctx context.Context, items []models.Course) (int, error)
	DeleteMany(ctx context.Context) (int64, error)
}

// Seeder loads the sample data set into the store and wipes it again.
type Seeder struct {
	Data      fs.FS
	Bootcamps BootcampWriter
	Courses   CourseWriter
	// Geocoder fills in locations for bootcamps that only carry an address.
	Geocoder geocoder.Geocoder
	Log      zerolog.Logger
}

type Result struct {
	Bootcamps int64
	Courses   int64
}

// Import inserts bootcamps first so course references resolve. A missing
// courses file is not an error.
func (s Seeder) Import(ctx context.Context) (Result, error) {
	var res Result

	var bootcamps []models.Bootcamp
	if err := readJSON(s.Data, BootcampsFile, &bootcamps); err != nil {
		return res, err
	}
	now := utils.NowUTC()
	for i := range bootcamps {
		if err := s.prepare(ctx, &bootcamps[i], now); err != nil {
			return res, fmt.Errorf("prepare bootcamp %q: %w", bootcamps[i].Name, err)
		}
	}
	n, err := s.Bootcamps.InsertMany(ctx, bootcamps)
	if err != nil {
		return res, fmt.Errorf("insert bootcamps: %w", err)
	}
	res.Bootcamps = int64(n)

	var courses []models.Course
	err = readJSON(s.Data, CoursesFile, &courses)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.Log.Info().Str("file", CoursesFile).Msg("no courses to import")
		return res, nil
	case err != nil:
		return res, err
	}
	for i := range courses {
		if courses[i].CreatedAt.IsZero() {
			courses[i].CreatedAt = now
		}
	}
	n, err = s.Courses.InsertMany(ctx, courses)
	if err != nil {
		return res, fmt.Errorf("insert courses: %w", err)
	}
	res.Courses = int64(n)

	s.Log.Info().Int64("bootcamps", res.Bootcamps).Int64("courses", res.Courses).Msg("data imported")
	return res, nil
}

// Destroy deletes every bootcamp and course.
func (s Seeder) Destroy(ctx context.Context) (Result, error) {
	var res Result
	n, err := s.Courses.DeleteMany(ctx)
	if err != nil {
		return res, fmt.Errorf("delete courses: %w", err)
	}
	res.Courses = n

	n, err = s.Bootcamps.DeleteMany(ctx)
	if err != nil {
		return res, fmt.Errorf("delete bootcamps: %w", err)
	}
	res.Bootcamps = n

	s.Log.Info().Int64("bootcamps", res.Bootcamps).Int64("courses", res.Courses).Msg("data destroyed")
	return res, nil
}

func (s Seeder) prepare(ctx context.Context, b *models.Bootcamp, now time.Time) error {
	if b.Slug == "" {
		b.Slug = slug.Make(b.Name)
	}
	if b.Photo == "" {
		b.Photo = models.DefaultPhoto
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.Location != nil || b.Address == "" || s.Geocoder == nil {
		return nil
	}
	loc, err := services.Locate(ctx, s.Geocoder, b.Address)
	if err != nil {
		return err
	}
	b.Location = loc
	b.Address = ""
	return nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
