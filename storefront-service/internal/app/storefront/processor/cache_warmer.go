package processor

import (
	"context"
	"fmt"

	"hamperhouse/pkg/logger"
	"hamperhouse/pkg/metrics"
	"hamperhouse/storefront-service/internal/app/storefront/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/ratelimit"
)

// CacheWarmer по расписанию прогревает кеш страниц категорий
// Запросы к API ограничены leaky bucket лимитером
type CacheWarmer struct {
	cron    *cron.Cron
	catalog service.CatalogWarmer
	limiter ratelimit.Limiter
}

func NewCacheWarmer(catalog service.CatalogWarmer, rps int) *CacheWarmer {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(logger.Std())))

	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}

	return &CacheWarmer{
		cron:    c,
		catalog: catalog,
		limiter: limiter,
	}
}

func (w *CacheWarmer) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cache warmer")

	_, err := w.cron.AddFunc(schedule, func() {
		if _, err := w.WarmOnce(ctx); err != nil {
			logger.Error().Err(err).Msg("Cache warm-up failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	w.cron.Start()
	logger.Info().Msg("Cache warmer started")
	return nil
}

// WarmOnce загружает страницы всех категорий и возвращает число прогретых
func (w *CacheWarmer) WarmOnce(ctx context.Context) (int, error) {
	categories := w.catalog.ListCategories(ctx)

	warmed, failed := 0, 0
	for _, category := range categories {
		if ctx.Err() != nil {
			metrics.CacheWarmRuns.WithLabelValues("failed").Inc()
			return warmed, ctx.Err()
		}

		w.limiter.Take()

		if _, err := w.catalog.CategoryPage(ctx, category.Slug); err != nil {
			failed++
			logger.Warn().Err(err).Str("slug", category.Slug).Msg("Failed to warm category page")
			continue
		}
		warmed++
	}

	if failed > 0 {
		metrics.CacheWarmRuns.WithLabelValues("failed").Inc()
		return warmed, fmt.Errorf("failed to warm %d of %d category pages", failed, len(categories))
	}

	metrics.CacheWarmRuns.WithLabelValues("success").Inc()
	logger.Info().Int("pages", warmed).Msg("Cache warm-up completed")
	return warmed, nil
}

func (w *CacheWarmer) Stop() {
	logger.Info().Msg("Stopping cache warmer...")
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cache warmer stopped")
}

func (w *CacheWarmer) GetEntries() []cron.Entry {
	return w.cron.Entries()
}
