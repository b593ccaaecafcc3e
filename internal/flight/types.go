package flight

import "time"

const dateLayout = "2006-01-02"

type TripType string

const (
	TripTypeOneWay    TripType = "one_way"
	TripTypeRoundTrip TripType = "round_trip"
)

type SortKey string

const (
	SortPriceAsc          SortKey = "price_asc"
	SortPriceDesc         SortKey = "price_desc"
	SortDurationAsc       SortKey = "duration_asc"
	SortDurationDesc      SortKey = "duration_desc"
	SortDepartureTimeAsc  SortKey = "departure_time_asc"
	SortDepartureTimeDesc SortKey = "departure_time_desc"
)

const DefaultSortKey = SortPriceAsc

type Airline struct {
	ID      int64   `json:"id"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url"`
}

type Airport struct {
	ID        int64   `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Flight is a stored inventory row. DurationMinutes is kept as stored and is
// not recomputed from the timestamps.
type Flight struct {
	ID                   int64     `json:"id"`
	AirlineID            int64     `json:"airline_id"`
	FlightNumber         string    `json:"flight_number"`
	OriginAirportID      int64     `json:"origin_airport_id"`
	DestinationAirportID int64     `json:"destination_airport_id"`
	DepartureTime        time.Time `json:"departure_time"`
	ArrivalTime          time.Time `json:"arrival_time"`
	Price                float64   `json:"price"`
	Currency             string    `json:"currency"`
	AvailableSeats       int       `json:"available_seats"`
	Stops                int       `json:"stops"`
	DurationMinutes      int       `json:"duration_minutes"`
}

// FlightRecord is a flight joined with its airline and both airports.
type FlightRecord struct {
	Flight      Flight
	Airline     Airline
	Origin      Airport
	Destination Airport
}

type Route struct {
	ID                   int64     `json:"id"`
	OriginAirportID      int64     `json:"origin_airport_id"`
	DestinationAirportID int64     `json:"destination_airport_id"`
	MinPrice             float64   `json:"min_price"`
	MaxPrice             float64   `json:"max_price"`
	FlightCount          int       `json:"flight_count"`
	LastUpdated          time.Time `json:"last_updated"`
}

type RouteRecord struct {
	Route       Route
	Origin      Airport
	Destination Airport
}

// FlightQuery carries the base constraints pushed down to the repository.
// DepartTo is exclusive.
type FlightQuery struct {
	OriginCity      string
	DestinationCity string
	DepartFrom      time.Time
	DepartTo        time.Time
	MinSeats        int
}

type TimeRange struct {
	Start string `json:"start" example:"06:00"`
	End   string `json:"end" example:"12:00"`
}

type FilterOptions struct {
	MinPrice           *float64   `json:"min_price,omitempty"`
	MaxPrice           *float64   `json:"max_price,omitempty"`
	MaxStops           *int       `json:"max_stops,omitempty"`
	Airlines           []string   `json:"airlines,omitempty"`
	DepartureTimeRange *TimeRange `json:"departure_time_range,omitempty"`
	MaxDurationHours   *float64   `json:"max_duration_hours,omitempty"`
}

type SearchRequest struct {
	OriginCity      string         `json:"origin_city" example:"Paris"`
	DestinationCity string         `json:"destination_city" example:"New York"`
	DepartureDate   string         `json:"departure_date" example:"2026-10-17"`
	ReturnDate      string         `json:"return_date,omitempty"`
	Passengers      int            `json:"passengers" example:"2"`
	TripType        TripType       `json:"trip_type" example:"one_way"`
	Filters         *FilterOptions `json:"filters,omitempty"`
	Sort            SortKey        `json:"sort,omitempty" example:"price_asc"`
}

type SearchResult struct {
	ID                     int64     `json:"id"`
	AirlineCode            string    `json:"airline_code"`
	AirlineName            string    `json:"airline_name"`
	AirlineLogoURL         *string   `json:"airline_logo_url"`
	FlightNumber           string    `json:"flight_number"`
	OriginAirportCode      string    `json:"origin_airport_code"`
	OriginAirportName      string    `json:"origin_airport_name"`
	OriginCity             string    `json:"origin_city"`
	DestinationAirportCode string    `json:"destination_airport_code"`
	DestinationAirportName string    `json:"destination_airport_name"`
	DestinationCity        string    `json:"destination_city"`
	DepartureTime          time.Time `json:"departure_time"`
	ArrivalTime            time.Time `json:"arrival_time"`
	Price                  float64   `json:"price"`
	Currency               string    `json:"currency"`
	AvailableSeats         int       `json:"available_seats"`
	Stops                  int       `json:"stops"`
	DurationMinutes        int       `json:"duration_minutes"`
}

type PopularRoute struct {
	ID                     int64     `json:"id"`
	OriginAirportCode      string    `json:"origin_airport_code"`
	OriginAirportName      string    `json:"origin_airport_name"`
	OriginCity             string    `json:"origin_city"`
	OriginCountry          string    `json:"origin_country"`
	OriginLatitude         float64   `json:"origin_latitude"`
	OriginLongitude        float64   `json:"origin_longitude"`
	DestinationAirportCode string    `json:"destination_airport_code"`
	DestinationAirportName string    `json:"destination_airport_name"`
	DestinationCity        string    `json:"destination_city"`
	DestinationCountry     string    `json:"destination_country"`
	DestinationLatitude    float64   `json:"destination_latitude"`
	DestinationLongitude   float64   `json:"destination_longitude"`
	MinPrice               float64   `json:"min_price"`
	MaxPrice               float64   `json:"max_price"`
	FlightCount            int       `json:"flight_count"`
	LastUpdated            time.Time `json:"last_updated"`
}

type FlightSearchResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       Metadata       `json:"metadata"`
	Flights        []SearchResult `json:"flights"`
}

type SearchCriteria struct {
	OriginCity      string         `json:"origin_city"`
	DestinationCity string         `json:"destination_city"`
	DepartureDate   string         `json:"departure_date"`
	ReturnDate      string         `json:"return_date,omitempty"`
	Passengers      int            `json:"passengers"`
	TripType        TripType       `json:"trip_type"`
	Filters         *FilterOptions `json:"filters,omitempty"`
}

type Metadata struct {
	TotalResults int     `json:"total_results"`
	Sort         SortKey `json:"sort"`
	SortFallback bool    `json:"sort_fallback"`
	SearchID     string  `json:"search_id"`
	SearchTimeMs int64   `json:"search_time_ms"`
	CacheHit     bool    `json:"cache_hit"`
	CacheKey     string  `json:"cache_key,omitempty"`
}
