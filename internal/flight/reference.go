package flight

import (
	"context"
	"strings"
)

func (s *Service) ListAirlines(ctx context.Context) ([]Airline, error) {
	return s.repo.ListAirlines(ctx)
}

func (s *Service) ListAirports(ctx context.Context) ([]Airport, error) {
	return s.repo.ListAirports(ctx)
}

// AirportsByCity lists the airports serving city, matched case-insensitively.
func (s *Service) AirportsByCity(ctx context.Context, city string) ([]Airport, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, NewValidationError("city", "is required")
	}
	return s.repo.AirportsByCity(ctx, city)
}
