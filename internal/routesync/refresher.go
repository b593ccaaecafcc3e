// Package routesync keeps the route aggregates in step with the flight
// inventory. It runs outside the request path, on a schedule and whenever
// an inventory event arrives.
package routesync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flightfinder/internal/flight"
	"flightfinder/internal/kafka"
	"flightfinder/pkg/cache"
	"flightfinder/pkg/logger"

	"github.com/robfig/cron/v3"
	kafkago "github.com/segmentio/kafka-go"
)

const defaultRunTimeout = 2 * time.Minute

// RouteStore recomputes aggregates from flights departing at or after asOf.
type RouteStore interface {
	RefreshRoutes(ctx context.Context, asOf time.Time) (int64, error)
}

type Refresher struct {
	store  RouteStore
	cache  cache.Cache
	logger logger.Logger
	now    func() time.Time

	// one refresh at a time; cron and events may fire together
	mu sync.Mutex
}

// NewRefresher builds a Refresher. c may be nil when no cache is deployed.
func NewRefresher(store RouteStore, c cache.Cache, log logger.Logger) *Refresher {
	return &Refresher{
		store:  store,
		cache:  c,
		logger: log,
		now:    time.Now,
	}
}

// Refresh rebuilds the aggregates and drops the cached popular-routes list.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := r.now().UTC()
	touched, err := r.store.RefreshRoutes(ctx, started)
	if err != nil {
		r.logger.Error("route refresh failed", logger.Field{Key: "err", Value: err})
		return err
	}

	if r.cache != nil {
		if err := r.cache.Del(ctx, flight.PopularRoutesCacheKey); err != nil && !errors.Is(err, cache.ErrNotFound) {
			r.logger.Error("failed to evict popular routes",
				logger.Field{Key: "err", Value: err},
				logger.Field{Key: "cache_key", Value: flight.PopularRoutesCacheKey},
			)
		}
	}

	r.logger.Info("routes refreshed",
		logger.Field{Key: "routes", Value: touched},
		logger.Field{Key: "as_of", Value: started},
		logger.Field{Key: "took", Value: r.now().UTC().Sub(started)},
	)
	return nil
}

// HandleInventoryEvent is a kafka.Consumer handler. Malformed events and
// refresh failures are logged and skipped; the schedule catches up.
func (r *Refresher) HandleInventoryEvent(ctx context.Context, msg kafkago.Message) error {
	event, err := kafka.DecodeInventoryEvent(msg)
	if err != nil {
		r.logger.Warn("skipping inventory event",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "offset", Value: msg.Offset},
		)
		return nil
	}

	r.logger.Debug("inventory event received",
		logger.Field{Key: "type", Value: event.Type},
		logger.Field{Key: "flight_id", Value: event.FlightID},
	)

	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("event-triggered refresh failed, waiting for schedule",
			logger.Field{Key: "offset", Value: msg.Offset},
		)
	}
	return nil
}

// Schedule registers Refresh on c using a standard five-field cron spec.
func (r *Refresher) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
		defer cancel()
		_ = r.Refresh(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return id, nil
}
