// Package seed loads the reference data and sample inventory that cmd/db
// writes into a fresh database.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightfinder/internal/flight"

	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var defaultDataset []byte

const defaultCurrency = "EUR"

type Dataset struct {
	Airlines []AirlineSeed `yaml:"airlines"`
	Airports []AirportSeed `yaml:"airports"`
	Routes   []RouteSeed   `yaml:"routes"`
	Flights  []FlightSeed  `yaml:"flights"`
}

type AirlineSeed struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	LogoURL string `yaml:"logo_url"`
}

type AirportSeed struct {
	Code      string  `yaml:"code"`
	Name      string  `yaml:"name"`
	City      string  `yaml:"city"`
	Country   string  `yaml:"country"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type RouteSeed struct {
	Origin      string  `yaml:"origin"`
	Destination string  `yaml:"destination"`
	MinPrice    float64 `yaml:"min_price"`
	MaxPrice    float64 `yaml:"max_price"`
	FlightCount int     `yaml:"flight_count"`
}

// FlightSeed places a flight relative to the seeding day. Duration is
// stored as given and is not checked against the clock times.
type FlightSeed struct {
	Airline          string  `yaml:"airline"`
	Number           string  `yaml:"number"`
	Origin           string  `yaml:"origin"`
	Destination      string  `yaml:"destination"`
	DayOffset        int     `yaml:"day_offset"`
	Departs          string  `yaml:"departs"`
	ArrivalDayOffset int     `yaml:"arrival_day_offset"`
	Arrives          string  `yaml:"arrives"`
	Price            float64 `yaml:"price"`
	Currency         string  `yaml:"currency"`
	Seats            int     `yaml:"seats"`
	Stops            int     `yaml:"stops"`
	DurationMinutes  int     `yaml:"duration_minutes"`
}

// Batch is a dataset resolved against a concrete day, ready to insert.
// Cross references are by code; the store assigns ids.
type Batch struct {
	Airlines []flight.Airline
	Airports []flight.Airport
	Routes   []RouteRow
	Flights  []FlightRow
}

type RouteRow struct {
	OriginCode      string
	DestinationCode string
	MinPrice        float64
	MaxPrice        float64
	FlightCount     int
}

type FlightRow struct {
	AirlineCode     string
	OriginCode      string
	DestinationCode string
	Flight          flight.Flight
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Parse(defaultDataset)
}

// Parse decodes and validates a YAML dataset. Unknown keys are rejected.
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate reports every problem in the dataset at once.
func (d *Dataset) Validate() error {
	var errs []error

	airlines := make(map[string]bool, len(d.Airlines))
	for _, a := range d.Airlines {
		code := strings.ToUpper(a.Code)
		if code == "" || a.Name == "" {
			errs = append(errs, fmt.Errorf("airline %q: code and name are required", a.Code))
		}
		if airlines[code] {
			errs = append(errs, fmt.Errorf("airline %q: duplicate code", a.Code))
		}
		airlines[code] = true
	}

	airports := make(map[string]bool, len(d.Airports))
	for _, a := range d.Airports {
		code := strings.ToUpper(a.Code)
		if code == "" || a.City == "" {
			errs = append(errs, fmt.Errorf("airport %q: code and city are required", a.Code))
		}
		if airports[code] {
			errs = append(errs, fmt.Errorf("airport %q: duplicate code", a.Code))
		}
		if a.Latitude < -90 || a.Latitude > 90 || a.Longitude < -180 || a.Longitude > 180 {
			errs = append(errs, fmt.Errorf("airport %q: coordinates out of range", a.Code))
		}
		airports[code] = true
	}

	for _, r := range d.Routes {
		name := r.Origin + "->" + r.Destination
		errs = append(errs, checkPair(name, r.Origin, r.Destination, airports)...)
		if r.MinPrice > r.MaxPrice {
			errs = append(errs, fmt.Errorf("route %s: min_price %.2f above max_price %.2f", name, r.MinPrice, r.MaxPrice))
		}
		if r.FlightCount < 0 {
			errs = append(errs, fmt.Errorf("route %s: negative flight_count", name))
		}
	}

	for _, f := range d.Flights {
		if !airlines[strings.ToUpper(f.Airline)] {
			errs = append(errs, fmt.Errorf("flight %s: unknown airline %q", f.Number, f.Airline))
		}
		errs = append(errs, checkPair("flight "+f.Number, f.Origin, f.Destination, airports)...)
		if f.Price <= 0 {
			errs = append(errs, fmt.Errorf("flight %s: price must be positive", f.Number))
		}
		if f.Seats < 0 || f.Stops < 0 {
			errs = append(errs, fmt.Errorf("flight %s: seats and stops must not be negative", f.Number))
		}
		if f.DurationMinutes <= 0 {
			errs = append(errs, fmt.Errorf("flight %s: duration_minutes must be positive", f.Number))
		}
	}

	return errors.Join(errs...)
}

func checkPair(name, origin, destination string, airports map[string]bool) []error {
	var errs []error
	if !airports[strings.ToUpper(origin)] {
		errs = append(errs, fmt.Errorf("%s: unknown origin %q", name, origin))
	}
	if !airports[strings.ToUpper(destination)] {
		errs = append(errs, fmt.Errorf("%s: unknown destination %q", name, destination))
	}
	if strings.EqualFold(origin, destination) {
		errs = append(errs, fmt.Errorf("%s: origin and destination must differ", name))
	}
	return errs
}

// Build resolves day offsets against the UTC calendar day of today.
func (d *Dataset) Build(today time.Time) (*Batch, error) {
	today = today.UTC()
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	batch := &Batch{}

	for _, a := range d.Airlines {
		airline := flight.Airline{Code: strings.ToUpper(a.Code), Name: a.Name}
		if a.LogoURL != "" {
			logo := a.LogoURL
			airline.LogoURL = &logo
		}
		batch.Airlines = append(batch.Airlines, airline)
	}

	for _, a := range d.Airports {
		batch.Airports = append(batch.Airports, flight.Airport{
			Code:      strings.ToUpper(a.Code),
			Name:      a.Name,
			City:      a.City,
			Country:   a.Country,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		})
	}

	for _, r := range d.Routes {
		batch.Routes = append(batch.Routes, RouteRow{
			OriginCode:      strings.ToUpper(r.Origin),
			DestinationCode: strings.ToUpper(r.Destination),
			MinPrice:        r.MinPrice,
			MaxPrice:        r.MaxPrice,
			FlightCount:     r.FlightCount,
		})
	}

	for _, f := range d.Flights {
		departure, err := at(day, f.DayOffset, f.Departs)
		if err != nil {
			return nil, fmt.Errorf("flight %s departs: %w", f.Number, err)
		}
		arrival, err := at(day, f.ArrivalDayOffset, f.Arrives)
		if err != nil {
			return nil, fmt.Errorf("flight %s arrives: %w", f.Number, err)
		}
		if !arrival.After(departure) {
			return nil, fmt.Errorf("flight %s: arrival %s is not after departure %s", f.Number, arrival, departure)
		}

		currency := f.Currency
		if currency == "" {
			currency = defaultCurrency
		}

		batch.Flights = append(batch.Flights, FlightRow{
			AirlineCode:     strings.ToUpper(f.Airline),
			OriginCode:      strings.ToUpper(f.Origin),
			DestinationCode: strings.ToUpper(f.Destination),
			Flight: flight.Flight{
				FlightNumber:    f.Number,
				DepartureTime:   departure,
				ArrivalTime:     arrival,
				Price:           f.Price,
				Currency:        currency,
				AvailableSeats:  f.Seats,
				Stops:           f.Stops,
				DurationMinutes: f.DurationMinutes,
			},
		})
	}

	return batch, nil
}

func at(day time.Time, offset int, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return day.AddDate(0, 0, offset).Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}
