package flight

import (
	"strconv"
	"strings"
)

// Predicate decides whether a joined flight row stays in the result set.
type Predicate func(FlightRecord) bool

// BuildPredicates turns the populated filter fields into an ordered list of
// inclusion predicates. Unset fields contribute nothing. Inputs are parsed
// once here so the predicates themselves are cheap per row.
func BuildPredicates(opts FilterOptions) ([]Predicate, error) {
	var predicates []Predicate

	if opts.MinPrice != nil {
		minPrice := *opts.MinPrice
		if minPrice < 0 {
			return nil, NewValidationError("filters.min_price", "must not be negative, got %v", minPrice)
		}
		predicates = append(predicates, func(r FlightRecord) bool {
			return r.Flight.Price >= minPrice
		})
	}

	if opts.MaxPrice != nil {
		maxPrice := *opts.MaxPrice
		if maxPrice < 0 {
			return nil, NewValidationError("filters.max_price", "must not be negative, got %v", maxPrice)
		}
		predicates = append(predicates, func(r FlightRecord) bool {
			return r.Flight.Price <= maxPrice
		})
	}

	if opts.MaxStops != nil {
		maxStops := *opts.MaxStops
		if maxStops < 0 {
			return nil, NewValidationError("filters.max_stops", "must not be negative, got %d", maxStops)
		}
		predicates = append(predicates, func(r FlightRecord) bool {
			return r.Flight.Stops <= maxStops
		})
	}

	if allowed := airlineSet(opts.Airlines); len(allowed) > 0 {
		predicates = append(predicates, func(r FlightRecord) bool {
			_, ok := allowed[strings.ToUpper(r.Airline.Code)]
			return ok
		})
	}

	if opts.DepartureTimeRange != nil {
		start, err := parseClock("filters.departure_time_range.start", opts.DepartureTimeRange.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseClock("filters.departure_time_range.end", opts.DepartureTimeRange.End)
		if err != nil {
			return nil, err
		}
		// Windows that cross midnight are not supported.
		if end < start {
			return nil, NewValidationError("filters.departure_time_range",
				"end %s is before start %s; windows crossing midnight are not supported",
				opts.DepartureTimeRange.End, opts.DepartureTimeRange.Start)
		}
		predicates = append(predicates, func(r FlightRecord) bool {
			dep := minutesSinceMidnight(r.Flight)
			return dep >= start && dep <= end
		})
	}

	if opts.MaxDurationHours != nil {
		hours := *opts.MaxDurationHours
		if hours <= 0 {
			return nil, NewValidationError("filters.max_duration_hours", "must be positive, got %v", hours)
		}
		maxMinutes := hours * 60
		predicates = append(predicates, func(r FlightRecord) bool {
			return float64(r.Flight.DurationMinutes) <= maxMinutes
		})
	}

	return predicates, nil
}

// matchesAll is the conjunction of predicates. An empty list matches everything.
func matchesAll(r FlightRecord, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(r) {
			return false
		}
	}
	return true
}

func airlineSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		set[code] = struct{}{}
	}
	return set
}

// parseClock converts a strict "HH:MM" string into minutes since midnight.
func parseClock(field, value string) (int, error) {
	if len(value) != 5 || value[2] != ':' || !isDigits(value[:2]) || !isDigits(value[3:]) {
		return 0, NewValidationError(field, "expected HH:MM, got %q", value)
	}

	hour, _ := strconv.Atoi(value[:2])
	minute, _ := strconv.Atoi(value[3:])
	if hour > 23 || minute > 59 {
		return 0, NewValidationError(field, "time %q out of range", value)
	}

	return hour*60 + minute, nil
}

// minutesSinceMidnight reads the clock time in the timestamp's own location.
func minutesSinceMidnight(f Flight) int {
	return f.DepartureTime.Hour()*60 + f.DepartureTime.Minute()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
