package flight

import (
	"sort"
	"strings"
	"time"
)

const maxPassengers = 9

// searchPlan is a validated request, ready to run against the repository.
type searchPlan struct {
	criteria     SearchCriteria
	query        FlightQuery
	filters      FilterOptions
	predicates   []Predicate
	sortKey      SortKey
	sortFallback bool
}

// planSearch validates req and resolves everything the search needs. It
// never touches the repository, so a bad request costs nothing downstream.
func planSearch(req SearchRequest) (searchPlan, error) {
	origin := strings.TrimSpace(req.OriginCity)
	if origin == "" {
		return searchPlan{}, NewValidationError("origin_city", "is required")
	}
	destination := strings.TrimSpace(req.DestinationCity)
	if destination == "" {
		return searchPlan{}, NewValidationError("destination_city", "is required")
	}

	day, err := time.Parse(dateLayout, req.DepartureDate)
	if err != nil {
		return searchPlan{}, NewValidationError("departure_date", "expected a YYYY-MM-DD calendar date, got %q", req.DepartureDate)
	}

	if req.ReturnDate != "" {
		ret, err := time.Parse(dateLayout, req.ReturnDate)
		if err != nil {
			return searchPlan{}, NewValidationError("return_date", "expected a YYYY-MM-DD calendar date, got %q", req.ReturnDate)
		}
		if ret.Before(day) {
			return searchPlan{}, NewValidationError("return_date", "must not be before departure_date")
		}
	}

	if req.Passengers < 1 || req.Passengers > maxPassengers {
		return searchPlan{}, NewValidationError("passengers", "must be between 1 and %d, got %d", maxPassengers, req.Passengers)
	}

	tripType := req.TripType
	switch tripType {
	case "":
		tripType = TripTypeOneWay
	case TripTypeOneWay, TripTypeRoundTrip:
	default:
		return searchPlan{}, NewValidationError("trip_type", "must be %q or %q, got %q", TripTypeOneWay, TripTypeRoundTrip, tripType)
	}

	var filters FilterOptions
	if req.Filters != nil {
		filters = normalizeFilters(*req.Filters)
	}
	predicates, err := BuildPredicates(filters)
	if err != nil {
		return searchPlan{}, err
	}

	sortKey, fallback := ResolveSortKey(req.Sort)

	return searchPlan{
		criteria: SearchCriteria{
			OriginCity:      origin,
			DestinationCity: destination,
			DepartureDate:   req.DepartureDate,
			ReturnDate:      req.ReturnDate,
			Passengers:      req.Passengers,
			TripType:        tripType,
			Filters:         req.Filters,
		},
		query: FlightQuery{
			OriginCity:      origin,
			DestinationCity: destination,
			DepartFrom:      day,
			DepartTo:        day.AddDate(0, 0, 1),
			MinSeats:        req.Passengers,
		},
		filters:      filters,
		predicates:   predicates,
		sortKey:      sortKey,
		sortFallback: fallback,
	}, nil
}

// admits re-applies the base constraints to a repository row.
func (q FlightQuery) admits(r FlightRecord) bool {
	if !strings.EqualFold(strings.TrimSpace(r.Origin.City), q.OriginCity) {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(r.Destination.City), q.DestinationCity) {
		return false
	}
	dep := r.Flight.DepartureTime
	if dep.Before(q.DepartFrom) || !dep.Before(q.DepartTo) {
		return false
	}
	return r.Flight.AvailableSeats >= q.MinSeats
}

// normalizeFilters returns a copy with the airline list upper-cased, trimmed,
// de-duplicated and sorted so equivalent requests share a cache key.
func normalizeFilters(f FilterOptions) FilterOptions {
	out := f
	out.Airlines = nil
	for code := range airlineSet(f.Airlines) {
		out.Airlines = append(out.Airlines, code)
	}
	sort.Strings(out.Airlines)
	return out
}
