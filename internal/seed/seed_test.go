package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Len(t, ds.Airlines, 8)
	assert.Len(t, ds.Airports, 19)
	assert.Len(t, ds.Routes, 26)
	assert.Len(t, ds.Flights, 5)
}

func TestDataset_Build(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	today := time.Date(2026, 10, 16, 17, 45, 0, 0, time.UTC)
	batch, err := ds.Build(today)
	require.NoError(t, err)

	require.Len(t, batch.Flights, 5)
	af007 := batch.Flights[0]
	assert.Equal(t, "AF", af007.AirlineCode)
	assert.Equal(t, "CDG", af007.OriginCode)
	assert.Equal(t, "JFK", af007.DestinationCode)
	assert.Equal(t, "AF007", af007.Flight.FlightNumber)
	assert.Equal(t, time.Date(2026, 10, 17, 10, 30, 0, 0, time.UTC), af007.Flight.DepartureTime)
	assert.Equal(t, 650.00, af007.Flight.Price)
	assert.Equal(t, "EUR", af007.Flight.Currency)
	assert.Equal(t, 45, af007.Flight.AvailableSeats)
	assert.Equal(t, 0, af007.Flight.Stops)
	assert.Equal(t, 495, af007.Flight.DurationMinutes)

	overnight := batch.Flights[1]
	assert.Equal(t, time.Date(2026, 10, 18, 1, 30, 0, 0, time.UTC), overnight.Flight.ArrivalTime)

	require.NotNil(t, batch.Airlines[0].LogoURL)
	assert.Contains(t, *batch.Airlines[0].LogoURL, "Air-France")

	for _, r := range batch.Routes {
		assert.LessOrEqual(t, r.MinPrice, r.MaxPrice)
	}
}

func TestDataset_BuildUsesUTCDay(t *testing.T) {
	ds, err := Parse([]byte(`
airlines:
  - {code: af, name: Air France}
airports:
  - {code: CDG, name: Charles de Gaulle, city: Paris, country: France, latitude: 49.0, longitude: 2.5}
  - {code: JFK, name: Kennedy, city: New York, country: United States, latitude: 40.6, longitude: -73.7}
flights:
  - {airline: AF, number: AF001, origin: cdg, destination: JFK, day_offset: 0, departs: "23:00", arrival_day_offset: 1, arrives: "01:00", price: 10, seats: 1, stops: 0, duration_minutes: 120}
`))
	require.NoError(t, err)

	tokyo := time.FixedZone("JST", 9*3600)
	batch, err := ds.Build(time.Date(2026, 10, 17, 8, 0, 0, 0, tokyo))
	require.NoError(t, err)

	f := batch.Flights[0]
	// 08:00 in Tokyo is still the 16th in UTC
	assert.Equal(t, time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC), f.Flight.DepartureTime)
	assert.Equal(t, "CDG", f.OriginCode)
	assert.Equal(t, "AF", batch.Airlines[0].Code)
	assert.Nil(t, batch.Airlines[0].LogoURL)
	assert.Equal(t, "EUR", f.Flight.Currency)
}

func TestDataset_BuildRejectsArrivalBeforeDeparture(t *testing.T) {
	ds := &Dataset{Flights: []FlightSeed{{Number: "XX1", Departs: "10:00", Arrives: "09:00", Price: 1, DurationMinutes: 1}}}

	_, err := ds.Build(time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not after departure")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown key",
			yaml:    "airlines:\n  - {code: AF, name: Air France, alliance: skyteam}\n",
			wantErr: "failed to decode dataset",
		},
		{
			name:    "duplicate airline",
			yaml:    "airlines:\n  - {code: AF, name: A}\n  - {code: af, name: B}\n",
			wantErr: "duplicate code",
		},
		{
			name:    "route to unknown airport",
			yaml:    "airports:\n  - {code: CDG, name: C, city: Paris, country: France, latitude: 1, longitude: 1}\nroutes:\n  - {origin: CDG, destination: XXX, min_price: 1, max_price: 2, flight_count: 1}\n",
			wantErr: `unknown destination "XXX"`,
		},
		{
			name:    "route price order",
			yaml:    "airports:\n  - {code: CDG, name: C, city: Paris, country: France, latitude: 1, longitude: 1}\n  - {code: JFK, name: J, city: New York, country: US, latitude: 1, longitude: 1}\nroutes:\n  - {origin: CDG, destination: JFK, min_price: 5, max_price: 2, flight_count: 1}\n",
			wantErr: "above max_price",
		},
		{
			name:    "flight with same endpoints",
			yaml:    "airlines:\n  - {code: AF, name: A}\nairports:\n  - {code: CDG, name: C, city: Paris, country: France, latitude: 1, longitude: 1}\nflights:\n  - {airline: AF, number: AF1, origin: CDG, destination: CDG, departs: \"10:00\", arrives: \"11:00\", price: 1, seats: 1, duration_minutes: 60}\n",
			wantErr: "origin and destination must differ",
		},
		{
			name:    "zero duration",
			yaml:    "airlines:\n  - {code: AF, name: A}\nairports:\n  - {code: CDG, name: C, city: Paris, country: France, latitude: 1, longitude: 1}\n  - {code: JFK, name: J, city: New York, country: US, latitude: 1, longitude: 1}\nflights:\n  - {airline: AF, number: AF1, origin: CDG, destination: JFK, departs: \"10:00\", arrives: \"11:00\", price: 1, seats: 1, duration_minutes: 0}\n",
			wantErr: "flight AF1: duration_minutes must be positive",
		},
		{
			name:    "negative seats",
			yaml:    "airlines:\n  - {code: AF, name: A}\nairports:\n  - {code: CDG, name: C, city: Paris, country: France, latitude: 1, longitude: 1}\n  - {code: JFK, name: J, city: New York, country: US, latitude: 1, longitude: 1}\nflights:\n  - {airline: AF, number: AF1, origin: CDG, destination: JFK, departs: \"10:00\", arrives: \"11:00\", price: 1, seats: -1, duration_minutes: 60}\n",
			wantErr: "flight AF1: seats and stops must not be negative",
		},
		{
			name:    "bad coordinates",
			yaml:    "airports:\n  - {code: CDG, name: C, city: Paris, country: France, latitude: 91, longitude: 1}\n",
			wantErr: "coordinates out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.yaml))
			assert.Nil(t, ds)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
