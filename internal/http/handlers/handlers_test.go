package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"devcamper/internal/domain"
	"devcamper/internal/domain/models"
	"devcamper/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type stubBootcamps struct {
	listValues url.Values
	list       services.ListResult
	err        error
	created    *models.BootcampPayload
}

func (s *stubBootcamps) List(_ context.Context, v url.Values) (services.ListResult, error) {
	s.listValues = v
	return s.list, s.err
}

func (s *stubBootcamps) Get(_ context.Context, id string) (models.Bootcamp, error) {
	if s.err != nil {
		return models.Bootcamp{}, s.err
	}
	return models.Bootcamp{Name: "Devworks"}, nil
}

func (s *stubBootcamps) Create(_ context.Context, p models.BootcampPayload) (models.Bootcamp, error) {
	s.created = &p
	if s.err != nil {
		return models.Bootcamp{}, s.err
	}
	return models.Bootcamp{Name: p.Name}, nil
}

func (s *stubBootcamps) Update(context.Context, string, models.BootcampPatch) (models.Bootcamp, error) {
	return models.Bootcamp{}, s.err
}

func (s *stubBootcamps) Delete(context.Context, string) error { return s.err }

func (s *stubBootcamps) InRadius(context.Context, string, string) ([]models.Bootcamp, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Bootcamp{{Name: "a"}, {Name: "b"}}, nil
}

type response struct {
	Success    bool            `json:"success"`
	Count      *int            `json:"count"`
	Pagination map[string]any  `json:"pagination"`
	Data       json.RawMessage `json:"data"`
	Error      json.RawMessage `json:"error"`
}

func newTestEngine(svc BootcampService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidation()

	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	h := BootcampHandler{Service: svc}
	r.GET("/bootcamps", h.List)
	r.POST("/bootcamps", h.Create)
	r.GET("/bootcamps/radius/:zipcode/:distance", h.InRadius)
	r.GET("/bootcamps/:id", h.Get)
	r.DELETE("/bootcamps/:id", h.Delete)
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) (int, response) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out response
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return w.Code, out
}

func TestListReturnsCountPaginationAndData(t *testing.T) {
	svc := &stubBootcamps{list: services.ListResult{
		Count: 1,
		Pagination: domain.Pagination{
			Next: &domain.PageRef{Page: 3, Limit: 2},
			Prev: &domain.PageRef{Page: 1, Limit: 2},
		},
		Data: []bson.M{{"name": "Devworks"}},
	}}
	code, body := do(t, newTestEngine(svc), http.MethodGet, "/bootcamps?averageCost[lte]=1000&page=2&limit=2", "")

	if code != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success, got %d %+v", code, body)
	}
	if body.Count == nil || *body.Count != 1 {
		t.Fatalf("expected count 1, got %v", body.Count)
	}
	if _, ok := body.Pagination["next"]; !ok {
		t.Fatalf("expected next in pagination, got %v", body.Pagination)
	}
	if _, ok := body.Pagination["prev"]; !ok {
		t.Fatalf("expected prev in pagination, got %v", body.Pagination)
	}
	if svc.listValues.Get("averageCost[lte]") != "1000" {
		t.Fatalf("query not passed through: %v", svc.listValues)
	}
}

func TestErrorTranslation(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"cast", domain.CastError{Value: "zzz"}, http.StatusNotFound, "Resource not found with id of zzz"},
		{"not found", domain.NotFoundError{Resource: "bootcamp", ID: "5d713995b721c3bb38c1f5d0"}, http.StatusNotFound, "Resource not found with id of 5d713995b721c3bb38c1f5d0"},
		{"duplicate", domain.DuplicateError{}, http.StatusBadRequest, "Duplicated field value entered"},
		{"domain", domain.NewStatusError(http.StatusServiceUnavailable, "Geocoder is not configured"), http.StatusServiceUnavailable, "Geocoder is not configured"},
		{"unclassified", errors.New("socket closed"), http.StatusInternalServerError, "socket closed"},
		{"empty message", errors.New(""), http.StatusInternalServerError, "Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, newTestEngine(&stubBootcamps{err: tc.err}), http.MethodGet, "/bootcamps/abc", "")
			if code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, code)
			}
			if body.Success {
				t.Fatalf("expected success=false")
			}
			var msg string
			if err := json.Unmarshal(body.Error, &msg); err != nil {
				t.Fatalf("error is not a string: %s", body.Error)
			}
			if msg != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestCastTakesPrecedenceOverWrappedCategories(t *testing.T) {
	err := domain.StatusError{Status: http.StatusTeapot, Err: domain.CastError{Value: "x"}}
	status, body := Translate(err)
	if status != http.StatusNotFound || body != "Resource not found with id of x" {
		t.Fatalf("expected cast to win, got %d %v", status, body)
	}
}

func TestDuplicateKeyFromDriver(t *testing.T) {
	err := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	status, body := Translate(err)
	if status != http.StatusBadRequest || body != "Duplicated field value entered" {
		t.Fatalf("got %d %v", status, body)
	}
}

func TestCreateValidationListsEveryField(t *testing.T) {
	svc := &stubBootcamps{}
	code, body := do(t, newTestEngine(svc), http.MethodPost, "/bootcamps", `{"website":"nope"}`)

	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	var msgs []string
	if err := json.Unmarshal(body.Error, &msgs); err != nil {
		t.Fatalf("error is not a list: %s", body.Error)
	}
	want := map[string]bool{
		"Please add a name":                         false,
		"Please add a description":                  false,
		"Please add an address":                     false,
		"Please add a careers":                      false,
		"Please use a valid URL with HTTP or HTTPS": false,
	}
	for _, m := range msgs {
		if _, ok := want[m]; ok {
			want[m] = true
		}
	}
	for m, seen := range want {
		if !seen {
			t.Fatalf("missing message %q in %v", m, msgs)
		}
	}
	if svc.created != nil {
		t.Fatalf("service must not be called on invalid input")
	}
}

func TestCreateMalformedBody(t *testing.T) {
	code, body := do(t, newTestEngine(&stubBootcamps{}), http.MethodPost, "/bootcamps", `{"name":`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(string(body.Error), "Invalid request body") {
		t.Fatalf("unexpected error %s", body.Error)
	}
}

func TestCreateReturns201(t *testing.T) {
	payload := `{"name":"Devworks Bootcamp","description":"Full stack","address":"233 Bay State Rd Boston MA 02215","careers":["Web Development","UI/UX"]}`
	code, body := do(t, newTestEngine(&stubBootcamps{}), http.MethodPost, "/bootcamps", payload)
	if code != http.StatusCreated || !body.Success {
		t.Fatalf("expected 201 success, got %d %s", code, body.Error)
	}
}

func TestDeleteReturnsEmptyObject(t *testing.T) {
	code, body := do(t, newTestEngine(&stubBootcamps{}), http.MethodDelete, "/bootcamps/5d713995b721c3bb38c1f5d0", "")
	if code != http.StatusOK || string(body.Data) != "{}" {
		t.Fatalf("expected 200 with {}, got %d %s", code, body.Data)
	}
}

func TestInRadiusCountsResults(t *testing.T) {
	code, body := do(t, newTestEngine(&stubBootcamps{}), http.MethodGet, "/bootcamps/radius/02118/10", "")
	if code != http.StatusOK || body.Count == nil || *body.Count != 2 {
		t.Fatalf("expected count 2, got %d %v", code, body.Count)
	}
}

func TestPanicBecomesServerError(t *testing.T) {
	code, body := do(t, newTestEngine(&stubBootcamps{}), http.MethodGet, "/panic", "")
	if code != http.StatusInternalServerError || string(body.Error) != `"Server Error"` {
		t.Fatalf("expected 500 Server Error, got %d %s", code, body.Error)
	}
}

func TestSystemDBCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	down := SystemHandler{Ping: func(context.Context) error { return errors.New("no reachable servers") }}
	up := SystemHandler{Ping: func(context.Context) error { return nil }}
	r.GET("/down", down.DBCheck)
	r.GET("/up", up.DBCheck)

	if code, _ := do(t, r, http.MethodGet, "/down", ""); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if code, _ := do(t, r, http.MethodGet, "/up", ""); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}
