package flight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightfinder/pkg/cache"
	"flightfinder/pkg/idgen"
	"flightfinder/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "flightfinder/internal/flight"

// Repository is the read side of the flight inventory. Implementations wrap
// their failures in *RepositoryError.
type Repository interface {
	QueryFlights(ctx context.Context, q FlightQuery) ([]FlightRecord, error)
	QueryRoutesWithAirports(ctx context.Context) ([]RouteRecord, error)
	ListAirlines(ctx context.Context) ([]Airline, error)
	ListAirports(ctx context.Context) ([]Airport, error)
	AirportsByCity(ctx context.Context, city string) ([]Airport, error)
}

type Service struct {
	repo     Repository
	cache    cache.Cache
	ttl      time.Duration
	ids      idgen.Generator
	logger   logger.Logger
	tracer   trace.Tracer
	searches metric.Int64Counter
}

// NewService wires the search pipeline. c and ids may be nil, in which case
// results are not cached and responses carry no search id.
func NewService(repo Repository, c cache.Cache, ttlMinutes int, ids idgen.Generator, log logger.Logger) *Service {
	searches, err := otel.Meter(instrumentationName).Int64Counter(
		"flight.search.requests",
		metric.WithDescription("Flight searches served, by cache outcome"),
	)
	if err != nil {
		log.Warn("failed to create search counter", logger.Field{Key: "err", Value: err})
		searches = noop.Int64Counter{}
	}

	return &Service{
		repo:     repo,
		cache:    c,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		ids:      ids,
		logger:   log,
		tracer:   otel.Tracer(instrumentationName),
		searches: searches,
	}
}

// Search validates req, loads the candidate flights for its route and day,
// applies the filters and returns the rows in the requested order.
// No match is an empty slice, not an error.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	plan, err := planSearch(req)
	if err != nil {
		return nil, err
	}
	s.logSortFallback(req, plan)

	return s.run(ctx, plan)
}

// SearchFlights is Search plus the response envelope and the result cache.
func (s *Service) SearchFlights(ctx context.Context, req SearchRequest) (*FlightSearchResponse, error) {
	startTime := time.Now()

	plan, err := planSearch(req)
	if err != nil {
		return nil, err
	}
	s.logSortFallback(req, plan)

	cacheKey := generateCacheKey(plan)

	var cached FlightSearchResponse
	if s.readCache(ctx, cacheKey, &cached) {
		s.logger.Debug("cache hit for search", logger.Field{Key: "cache_key", Value: cacheKey})
		s.searches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cache_hit", true)))
		return s.respond(plan, cached.Flights, startTime, cacheKey, true), nil
	}
	if s.cache != nil {
		s.logger.Debug("cache miss for search", logger.Field{Key: "cache_key", Value: cacheKey})
	}

	flights, err := s.run(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.searches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cache_hit", false)))

	response := s.respond(plan, flights, startTime, cacheKey, false)
	s.writeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *Service) run(ctx context.Context, plan searchPlan) ([]SearchResult, error) {
	ctx, span := s.tracer.Start(ctx, "flight.Search", trace.WithAttributes(
		attribute.String("flight.origin_city", plan.query.OriginCity),
		attribute.String("flight.destination_city", plan.query.DestinationCity),
		attribute.String("flight.departure_date", plan.criteria.DepartureDate),
		attribute.Int("flight.passengers", plan.query.MinSeats),
		attribute.Int("flight.predicates", len(plan.predicates)),
		attribute.String("flight.sort", string(plan.sortKey)),
	))
	defer span.End()

	records, err := s.repo.QueryFlights(ctx, plan.query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "flight query failed")
		s.logger.Error("flight query failed",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "route", Value: plan.query.OriginCity + "->" + plan.query.DestinationCity},
		)
		return nil, err
	}

	rows := make([]SearchResult, 0, len(records))
	for _, r := range records {
		if !plan.query.admits(r) || !matchesAll(r, plan.predicates) {
			continue
		}
		rows = append(rows, toSearchResult(r))
	}

	span.SetAttributes(
		attribute.Int("flight.candidates", len(records)),
		attribute.Int("flight.results", len(rows)),
	)

	return SortResults(rows, plan.sortKey), nil
}

func (s *Service) respond(plan searchPlan, flights []SearchResult, startTime time.Time, cacheKey string, hit bool) *FlightSearchResponse {
	if flights == nil {
		flights = []SearchResult{}
	}

	var searchID string
	if s.ids != nil {
		searchID = s.ids.GenerateString()
	}

	return &FlightSearchResponse{
		SearchCriteria: plan.criteria,
		Metadata: Metadata{
			TotalResults: len(flights),
			Sort:         plan.sortKey,
			SortFallback: plan.sortFallback,
			SearchID:     searchID,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
			CacheHit:     hit,
			CacheKey:     cacheKey,
		},
		Flights: flights,
	}
}

func (s *Service) logSortFallback(req SearchRequest, plan searchPlan) {
	if !plan.sortFallback {
		return
	}
	if strings.TrimSpace(string(req.Sort)) == "" {
		s.logger.Debug("no sort key requested, using default", logger.Field{Key: "sort", Value: string(plan.sortKey)})
		return
	}
	s.logger.Warn("unknown sort key, using default",
		logger.Field{Key: "requested", Value: string(req.Sort)},
		logger.Field{Key: "sort", Value: string(plan.sortKey)},
	)
}

// readCache decodes the entry at key into dst. Any failure counts as a miss.
func (s *Service) readCache(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			s.logger.Error("cache read failed",
				logger.Field{Key: "err", Value: err},
				logger.Field{Key: "cache_key", Value: key},
			)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Error("failed to unmarshal cached data",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "cache_key", Value: key},
		)
		return false
	}
	return true
}

// writeCache stores v under key. Failures are logged, never returned.
func (s *Service) writeCache(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal response", logger.Field{Key: "err", Value: err})
		return
	}

	if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		s.logger.Error("failed to cache response",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "cache_key", Value: key},
		)
	}
}

// generateCacheKey creates a deterministic key from everything that shapes
// the result list. Trip type and return date only affect the echo.
func generateCacheKey(plan searchPlan) string {
	filters, _ := json.Marshal(plan.filters)

	key := fmt.Sprintf("flight:%s:%s:%s:%d:%s:%s",
		strings.ToLower(plan.query.OriginCity),
		strings.ToLower(plan.query.DestinationCity),
		plan.criteria.DepartureDate,
		plan.query.MinSeats,
		plan.sortKey,
		filters,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:search:%x", hash[:16])
}

func toSearchResult(r FlightRecord) SearchResult {
	return SearchResult{
		ID:                     r.Flight.ID,
		AirlineCode:            r.Airline.Code,
		AirlineName:            r.Airline.Name,
		AirlineLogoURL:         r.Airline.LogoURL,
		FlightNumber:           r.Flight.FlightNumber,
		OriginAirportCode:      r.Origin.Code,
		OriginAirportName:      r.Origin.Name,
		OriginCity:             r.Origin.City,
		DestinationAirportCode: r.Destination.Code,
		DestinationAirportName: r.Destination.Name,
		DestinationCity:        r.Destination.City,
		DepartureTime:          r.Flight.DepartureTime,
		ArrivalTime:            r.Flight.ArrivalTime,
		Price:                  r.Flight.Price,
		Currency:               r.Flight.Currency,
		AvailableSeats:         r.Flight.AvailableSeats,
		Stops:                  r.Flight.Stops,
		DurationMinutes:        r.Flight.DurationMinutes,
	}
}
