package worker

import (
	"context"
	"time"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// StatsWorker periodically refreshes the store-level prometheus gauges
// (orders per status, stocked products, active discount codes).
type StatsWorker struct {
	store    *store.Store
	interval time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

// NewStatsWorker creates a new stats worker
func NewStatsWorker(store *store.Store, interval time.Duration) *StatsWorker {
	return &StatsWorker{
		store:    store,
		interval: interval,
		logger:   util.GetLogger(),
		done:     make(chan struct{}),
	}
}

// Start runs the refresh loop until the context is cancelled or Stop is
// called.
func (w *StatsWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting stats worker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			w.refresh()
		}
	}
}

// Stop stops the worker
func (w *StatsWorker) Stop() {
	w.logger.Info("Stopping stats worker")
	close(w.done)
}

func (w *StatsWorker) refresh() {
	counts := make(map[models.OrderStatus]int)
	for _, order := range w.store.GetAllOrders() {
		counts[order.Status]++
	}
	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	} {
		util.OrdersByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}

	stocked := 0
	for _, product := range w.store.GetAllProducts() {
		if product.StockQuantity > 0 {
			stocked++
		}
	}
	util.ProductsInStock.Set(float64(stocked))

	active := 0
	now := time.Now()
	for _, dc := range w.store.GetAllDiscountCodes() {
		if !dc.IsUsed && now.Before(dc.ExpiresAt) {
			active++
		}
	}
	util.DiscountCodesActive.Set(float64(active))
}
