package flight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) SearchFlights(ctx context.Context, req SearchRequest) (*FlightSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FlightSearchResponse), args.Error(1)
}

func (m *MockUseCase) ListPopularRoutes(ctx context.Context) ([]PopularRoute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PopularRoute), args.Error(1)
}

func (m *MockUseCase) ListAirlines(ctx context.Context) ([]Airline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Airline), args.Error(1)
}

func (m *MockUseCase) ListAirports(ctx context.Context) ([]Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Airport), args.Error(1)
}

func (m *MockUseCase) AirportsByCity(ctx context.Context, city string) ([]Airport, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Airport), args.Error(1)
}

func newTestRouter(uc UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewFlightHandler(uc).RegisterRoutes(router)
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestFlightHandler_SearchFlights(t *testing.T) {
	mockService := &MockUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/flights/search", strings.NewReader(`{
		"origin_city": "Paris",
		"destination_city": "New York",
		"departure_date": "2026-10-17",
		"passengers": 2,
		"trip_type": "one_way",
		"filters": {"max_price": 500, "airlines": ["AF"]},
		"sort": "duration_desc"
	}`))
	c.Request.Header.Set("Content-Type", "application/json")

	expected := SearchRequest{
		OriginCity:      "Paris",
		DestinationCity: "New York",
		DepartureDate:   "2026-10-17",
		Passengers:      2,
		TripType:        TripTypeOneWay,
		Filters:         &FilterOptions{MaxPrice: ptr(500.0), Airlines: []string{"AF"}},
		Sort:            SortDurationDesc,
	}
	response := &FlightSearchResponse{
		Metadata: Metadata{TotalResults: 1, Sort: SortDurationDesc},
		Flights:  []SearchResult{{ID: 1, Price: 299.99, AirlineCode: "AF"}},
	}
	mockService.On("SearchFlights", mock.Anything, expected).Return(response, nil)

	handler.SearchFlightsHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":299.99`)
	assert.Contains(t, w.Body.String(), `"total_results":1`)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_SearchFlights_InvalidJSON(t *testing.T) {
	mockService := &MockUseCase{}
	router := newTestRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/flights/search", strings.NewReader(`{"passengers": "two"`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrorCodeValidation, decodeError(t, w).Code)
	mockService.AssertNotCalled(t, "SearchFlights", mock.Anything, mock.Anything)
}

func TestFlightHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
		wantField  string
	}{
		{
			name:       "validation",
			err:        NewValidationError("passengers", "must be between 1 and 9, got 12"),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrorCodeValidation,
			wantField:  "passengers",
		},
		{
			name:       "repository",
			err:        &RepositoryError{Op: "query flights", Err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrorCodeRepositoryFailure,
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrorCodeInternalFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockUseCase{}
			router := newTestRouter(mockService)
			mockService.On("SearchFlights", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/flights/search", strings.NewReader(`{"origin_city":"Paris"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantField, body.Field)
		})
	}
}

func TestFlightHandler_PopularRoutes(t *testing.T) {
	mockService := &MockUseCase{}
	router := newTestRouter(mockService)
	mockService.On("ListPopularRoutes", mock.Anything).Return([]PopularRoute{
		{ID: 2, OriginAirportCode: "CDG", DestinationAirportCode: "JFK", MinPrice: 450, MaxPrice: 850, FlightCount: 15},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/routes/popular", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body PopularRoutesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Routes, 1)
	assert.Equal(t, 450.0, body.Routes[0].MinPrice)
	assert.Equal(t, 15, body.Routes[0].FlightCount)
}

func TestFlightHandler_Airports(t *testing.T) {
	t.Run("all airports", func(t *testing.T) {
		mockService := &MockUseCase{}
		router := newTestRouter(mockService)
		mockService.On("ListAirports", mock.Anything).Return([]Airport{cdg, jfk}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/airports", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body AirportsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Airports, 2)
		mockService.AssertNotCalled(t, "AirportsByCity", mock.Anything, mock.Anything)
	})

	t.Run("by city", func(t *testing.T) {
		mockService := &MockUseCase{}
		router := newTestRouter(mockService)
		mockService.On("AirportsByCity", mock.Anything, "Paris").Return([]Airport{cdg, ory}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/airports?city=Paris", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body AirportsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []Airport{cdg, ory}, body.Airports)
	})

	t.Run("empty city", func(t *testing.T) {
		mockService := &MockUseCase{}
		router := newTestRouter(mockService)
		mockService.On("AirportsByCity", mock.Anything, "").Return(nil, NewValidationError("city", "is required"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/airports?city=", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "city", decodeError(t, w).Field)
	})
}

func TestFlightHandler_Airlines(t *testing.T) {
	mockService := &MockUseCase{}
	router := newTestRouter(mockService)
	mockService.On("ListAirlines", mock.Anything).Return([]Airline{airFrance, british}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/airlines", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logo_url":"https://logo.clearbit.com/airfrance.com"`)
	assert.Contains(t, w.Body.String(), `"logo_url":null`)
}

func TestFlightHandler_Health(t *testing.T) {
	router := newTestRouter(&MockUseCase{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.False(t, body.Timestamp.IsZero())
}
