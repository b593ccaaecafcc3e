package flight

import (
	"context"
	"sort"

	"flightfinder/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PopularRoutesCacheKey holds the cached popular-routes list. The route
// refresher evicts it after rebuilding the aggregates.
const PopularRoutesCacheKey = "flight:routes:popular"

// ListPopularRoutes returns the maintained route aggregates with both
// endpoints denormalized, busiest first. Aggregates are read as stored.
func (s *Service) ListPopularRoutes(ctx context.Context) ([]PopularRoute, error) {
	var cached []PopularRoute
	if s.readCache(ctx, PopularRoutesCacheKey, &cached) {
		s.logger.Debug("cache hit for popular routes")
		return cached, nil
	}

	ctx, span := s.tracer.Start(ctx, "flight.ListPopularRoutes")
	defer span.End()

	records, err := s.repo.QueryRoutesWithAirports(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "route query failed")
		s.logger.Error("route query failed", logger.Field{Key: "err", Value: err})
		return nil, err
	}

	routes := make([]PopularRoute, 0, len(records))
	for _, r := range records {
		routes = append(routes, toPopularRoute(r))
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].FlightCount > routes[j].FlightCount
	})
	span.SetAttributes(attribute.Int("flight.routes", len(routes)))

	s.writeCache(ctx, PopularRoutesCacheKey, routes)

	return routes, nil
}

func toPopularRoute(r RouteRecord) PopularRoute {
	return PopularRoute{
		ID:                     r.Route.ID,
		OriginAirportCode:      r.Origin.Code,
		OriginAirportName:      r.Origin.Name,
		OriginCity:             r.Origin.City,
		OriginCountry:          r.Origin.Country,
		OriginLatitude:         r.Origin.Latitude,
		OriginLongitude:        r.Origin.Longitude,
		DestinationAirportCode: r.Destination.Code,
		DestinationAirportName: r.Destination.Name,
		DestinationCity:        r.Destination.City,
		DestinationCountry:     r.Destination.Country,
		DestinationLatitude:    r.Destination.Latitude,
		DestinationLongitude:   r.Destination.Longitude,
		MinPrice:               r.Route.MinPrice,
		MaxPrice:               r.Route.MaxPrice,
		FlightCount:            r.Route.FlightCount,
		LastUpdated:            r.Route.LastUpdated,
	}
}
