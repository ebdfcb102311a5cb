package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	intconfig "devcamper/internal/config"
	"devcamper/internal/domain/models"
	"devcamper/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type stubBootcamps struct{ created int }

func (s *stubBootcamps) List(context.Context, url.Values) (services.ListResult, error) {
	return services.ListResult{}, nil
}
func (s *stubBootcamps) Get(context.Context, string) (models.Bootcamp, error) {
	return models.Bootcamp{}, nil
}
func (s *stubBootcamps) Create(_ context.Context, p models.BootcampPayload) (models.Bootcamp, error) {
	s.created++
	return models.Bootcamp{Name: p.Name}, nil
}
func (s *stubBootcamps) Update(context.Context, string, models.BootcampPatch) (models.Bootcamp, error) {
	return models.Bootcamp{}, nil
}
func (s *stubBootcamps) Delete(context.Context, string) error { return nil }
func (s *stubBootcamps) InRadius(context.Context, string, string) ([]models.Bootcamp, error) {
	return nil, nil
}

type stubCourses struct{ byBootcamp string }

func (s *stubCourses) List(context.Context, url.Values) (services.ListResult, error) {
	return services.ListResult{}, nil
}
func (s *stubCourses) ListByBootcamp(_ context.Context, id string) ([]models.Course, error) {
	s.byBootcamp = id
	return []models.Course{}, nil
}
func (s *stubCourses) Get(context.Context, string) (services.CourseDetail, error) {
	return services.CourseDetail{}, nil
}
func (s *stubCourses) Create(context.Context, string, models.CoursePayload) (models.Course, error) {
	return models.Course{}, nil
}
func (s *stubCourses) Update(context.Context, string, models.CoursePatch) (models.Course, error) {
	return models.Course{}, nil
}
func (s *stubCourses) Delete(context.Context, string) error { return nil }

const testSecret = "test-secret"

func newTestRouter(secret string) (*gin.Engine, *stubBootcamps, *stubCourses) {
	gin.SetMode(gin.TestMode)
	b, c := &stubBootcamps{}, &stubCourses{}
	r := NewRouter(Deps{
		Env: intconfig.Env{
			MaxPageLimit:   100,
			RequestTimeout: 5 * time.Second,
			JWTSecret:      secret,
		},
		Log:       zerolog.Nop(),
		Bootcamps: b,
		Courses:   c,
		Registry:  prometheus.NewRegistry(),
	})
	return r, b, c
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

const validBootcamp = `{"name":"Devworks","description":"Full stack","address":"Boston MA","careers":["Business"]}`

func serve(r http.Handler, method, target, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesAreMounted(t *testing.T) {
	r, _, courses := newTestRouter("")

	for _, target := range []string{
		"/api/v1/health",
		"/api/v1/bootcamps",
		"/api/v1/bootcamps/radius/02118/10",
		"/api/v1/bootcamps/5d713995b721c3bb38c1f5d0",
		"/api/v1/courses",
		"/api/v1/courses/5d725a4a7b292f5f8ceff789",
	} {
		if w := serve(r, http.MethodGet, target, "", ""); w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", target, w.Code)
		}
	}

	w := serve(r, http.MethodGet, "/api/v1/bootcamps/5d713995b721c3bb38c1f5d0/courses", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("nested courses: expected 200, got %d", w.Code)
	}
	if courses.byBootcamp != "5d713995b721c3bb38c1f5d0" {
		t.Fatalf("nested courses did not receive the bootcamp id: %q", courses.byBootcamp)
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	r, _, _ := newTestRouter("")
	w := serve(r, http.MethodGet, "/api/v1/nope", "", "")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestWritesOpenWithoutSecret(t *testing.T) {
	r, bootcamps, _ := newTestRouter("")
	if w := serve(r, http.MethodPost, "/api/v1/bootcamps", validBootcamp, ""); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", w.Code, w.Body.String())
	}
	if bootcamps.created != 1 {
		t.Fatalf("expected create to reach the service")
	}
}

func TestWriteGuard(t *testing.T) {
	r, bootcamps, _ := newTestRouter(testSecret)

	w := serve(r, http.MethodPost, "/api/v1/bootcamps", validBootcamp, "")
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Not authorized to access this route") {
		t.Fatalf("expected 401, got %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/v1/bootcamps", validBootcamp, "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/api/v1/bootcamps", validBootcamp, token(t, "user"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/api/v1/bootcamps", validBootcamp, token(t, "publisher"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for publisher, got %d %s", w.Code, w.Body.String())
	}
	if bootcamps.created != 1 {
		t.Fatalf("expected exactly one create, got %d", bootcamps.created)
	}

	if w := serve(r, http.MethodGet, "/api/v1/bootcamps", "", ""); w.Code != http.StatusOK {
		t.Fatalf("reads must stay public, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _, _ := newTestRouter("")
	serve(r, http.MethodGet, "/api/v1/health", "", "")

	w := serve(r, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "devcamper_http_requests_total") {
		t.Fatalf("metrics not exposed: %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r, _, _ := newTestRouter("")
	w := serve(r, http.MethodGet, "/api/v1/health", "", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}
