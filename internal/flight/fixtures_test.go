package flight

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

var (
	searchDay = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	afLogo = "https://logo.clearbit.com/airfrance.com"

	airFrance = Airline{ID: 1, Code: "AF", Name: "Air France", LogoURL: &afLogo}
	british   = Airline{ID: 2, Code: "BA", Name: "British Airways"}
	lufthansa = Airline{ID: 3, Code: "LH", Name: "Lufthansa"}

	cdg = Airport{ID: 1, Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France", Latitude: 49.0097, Longitude: 2.5479}
	ory = Airport{ID: 2, Code: "ORY", Name: "Orly Airport", City: "Paris", Country: "France", Latitude: 48.7262, Longitude: 2.3652}
	jfk = Airport{ID: 3, Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "United States", Latitude: 40.6413, Longitude: -73.7781}
	lhr = Airport{ID: 4, Code: "LHR", Name: "Heathrow Airport", City: "London", Country: "United Kingdom", Latitude: 51.47, Longitude: -0.4543}
)

// record builds a joined flight departing on day at clock "HH:MM" (UTC).
// Arrival is derived from duration so fixtures are consistent unless a
// test overrides it.
func record(id int64, airline Airline, from, to Airport, day time.Time, clock string, price float64, seats, stops, duration int) FlightRecord {
	dep, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	departure := day.Add(time.Duration(dep.Hour())*time.Hour + time.Duration(dep.Minute())*time.Minute)

	return FlightRecord{
		Flight: Flight{
			ID:                   id,
			AirlineID:            airline.ID,
			FlightNumber:         fmt.Sprintf("%s%03d", airline.Code, id),
			OriginAirportID:      from.ID,
			DestinationAirportID: to.ID,
			DepartureTime:        departure,
			ArrivalTime:          departure.Add(time.Duration(duration) * time.Minute),
			Price:                price,
			Currency:             "EUR",
			AvailableSeats:       seats,
			Stops:                stops,
			DurationMinutes:      duration,
		},
		Airline:     airline,
		Origin:      from,
		Destination: to,
	}
}

// fakeRepository is an in-memory Repository. QueryFlights applies the base
// constraints the way the SQL implementation does, unless leaky is set, in
// which case it hands back every stored flight.
type fakeRepository struct {
	mu       sync.Mutex
	flights  []FlightRecord
	routes   []RouteRecord
	airlines []Airline
	airports []Airport
	err      error
	leaky    bool

	queries []FlightQuery
}

var _ Repository = (*fakeRepository)(nil)

func (f *fakeRepository) QueryFlights(_ context.Context, q FlightQuery) ([]FlightRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}

	var out []FlightRecord
	for _, r := range f.flights {
		if f.leaky {
			out = append(out, r)
			continue
		}
		dep := r.Flight.DepartureTime
		if strings.EqualFold(r.Origin.City, q.OriginCity) &&
			strings.EqualFold(r.Destination.City, q.DestinationCity) &&
			!dep.Before(q.DepartFrom) && dep.Before(q.DepartTo) &&
			r.Flight.AvailableSeats >= q.MinSeats {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepository) QueryRoutesWithAirports(_ context.Context) ([]RouteRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.routes, nil
}

func (f *fakeRepository) ListAirlines(_ context.Context) ([]Airline, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.airlines, nil
}

func (f *fakeRepository) ListAirports(_ context.Context) ([]Airport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.airports, nil
}

func (f *fakeRepository) AirportsByCity(_ context.Context, city string) ([]Airport, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Airport
	for _, a := range f.airports {
		if strings.EqualFold(a.City, city) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type stubIDs struct{ next string }

func (s stubIDs) GenerateID() int64      { return 42 }
func (s stubIDs) GenerateString() string { return s.next }

func ptr[T any](v T) *T { return &v }
