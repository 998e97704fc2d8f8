package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"filmoteca/internal/handler"
	"filmoteca/internal/model"
	"filmoteca/internal/router"
	"filmoteca/internal/service"
)

// MockMovieService is a mock implementation of service.MovieService.
type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, id uint) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	args := m.Called(ctx, movie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id uint, update service.MovieUpdate) (*model.Movie, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Binder = &router.StrictBinder{}
	e.Validator = router.NewCustomValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMovieHandler_CreateMovie(t *testing.T) {
	e := newEcho()
	svc := new(MockMovieService)
	h := handler.NewMovieHandler(svc)

	svc.On("CreateMovie", mock.Anything, mock.AnythingOfType("*model.Movie")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Movie).ID = 1
	}).Return(&model.Movie{ID: 1, Title: "Inception", Year: 2010, Rating: 8.8}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/movies", `{"title":"Inception","year":2010,"rating":8.8}`)

	err := h.CreateMovie(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Inception", body["title"])
	assert.Equal(t, float64(2010), body["year"])
	assert.Equal(t, 8.8, body["rating"])

	// Optional fields must serialize as explicit nulls.
	description, present := body["description"]
	assert.True(t, present)
	assert.Nil(t, description)
	genre, present := body["genre"]
	assert.True(t, present)
	assert.Nil(t, genre)

	svc.AssertExpectations(t)
}

func TestMovieHandler_CreateMovieValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"year":2010,"rating":8.8}`},
		{"year before 1800", `{"title":"Old","year":1700,"rating":5}`},
		{"negative rating", `{"title":"Bad","year":2000,"rating":-1}`},
		{"title too long", `{"title":"` + strings.Repeat("x", 256) + `","year":2000,"rating":5}`},
		{"unknown field rejected", `{"title":"Inception","year":2010,"rating":8.8,"director":"Nolan"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			svc := new(MockMovieService)
			h := handler.NewMovieHandler(svc)

			c, _ := newJSONContext(e, http.MethodPost, "/movies", tt.body)

			err := h.CreateMovie(c)
			assert.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			svc.AssertNotCalled(t, "CreateMovie")
		})
	}
}

func TestMovieHandler_GetMovie(t *testing.T) {
	e := newEcho()
	svc := new(MockMovieService)
	h := handler.NewMovieHandler(svc)

	svc.On("GetMovie", mock.Anything, uint(1)).Return(&model.Movie{ID: 1, Title: "Inception", Year: 2010, Rating: 8.8}, nil)

	c, rec := newJSONContext(e, http.MethodGet, "/movies/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.GetMovie(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Inception")
}

func TestMovieHandler_GetMovieInvalidID(t *testing.T) {
	e := newEcho()
	svc := new(MockMovieService)
	h := handler.NewMovieHandler(svc)

	c, _ := newJSONContext(e, http.MethodGet, "/movies/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetMovie(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestMovieHandler_UpdateMoviePartial(t *testing.T) {
	e := newEcho()
	svc := new(MockMovieService)
	h := handler.NewMovieHandler(svc)

	svc.On("UpdateMovie", mock.Anything, uint(1), mock.MatchedBy(func(u service.MovieUpdate) bool {
		return u.Title == nil && u.Description == nil && u.Year == nil && u.Genre == nil &&
			u.Rating != nil && *u.Rating == 9.5
	})).Return(&model.Movie{ID: 1, Title: "Inception", Year: 2010, Rating: 9.5}, nil)

	c, rec := newJSONContext(e, http.MethodPut, "/movies/1", `{"rating":9.5}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.UpdateMovie(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "9.5")

	svc.AssertExpectations(t)
}

func TestMovieHandler_DeleteMovie(t *testing.T) {
	e := newEcho()
	svc := new(MockMovieService)
	h := handler.NewMovieHandler(svc)

	svc.On("DeleteMovie", mock.Anything, uint(1)).Return(true, nil).Once()
	svc.On("DeleteMovie", mock.Anything, uint(1)).Return(false, nil).Once()

	c, rec := newJSONContext(e, http.MethodDelete, "/movies/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.DeleteMovie(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Deleting the same id again is not-found, never a panic or 500.
	c, _ = newJSONContext(e, http.MethodDelete, "/movies/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err = h.DeleteMovie(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	svc.AssertExpectations(t)
}
