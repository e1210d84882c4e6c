package market

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/market"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("market_usecase")

// InsightsTTL is how long a generated report is served from cache.
const InsightsTTL = 6 * time.Hour

type MarketUseCase struct {
	cache     service.Cache
	generator service.TextGenerator
	logger    logger.Logger
	now       func() time.Time
}

func NewMarketUseCase(cache service.Cache, gen service.TextGenerator, log logger.Logger) *MarketUseCase {
	return &MarketUseCase{
		cache:     cache,
		generator: gen,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *MarketUseCase) ExecuteTrends() map[string]market.Trend {
	return market.Trends()
}

type InsightsInput struct {
	CareerPath string
	Location   string
}

// ExecuteInsights serves a cached report when one exists. Mock reports are returned but
// never cached, so the next request tries the model again.
func (uc *MarketUseCase) ExecuteInsights(ctx context.Context, input InsightsInput) (*market.Report, error) {
	ctx, span := tracer.Start(ctx, "Insights")
	defer span.End()

	input.CareerPath = strings.TrimSpace(input.CareerPath)
	if input.CareerPath == "" {
		return nil, apperror.NewInvalidInput("career path is required", nil)
	}
	input.Location = strings.TrimSpace(input.Location)
	if input.Location == "" {
		input.Location = market.DefaultLocation
	}
	span.SetAttributes(attribute.String("career_path", input.CareerPath), attribute.String("location", input.Location))

	var cached market.Report
	if err := uc.cache.Get(ctx, service.InsightsKey(input.CareerPath, input.Location), &cached); err == nil {
		return &cached, nil
	}
	return uc.generate(ctx, input.CareerPath, input.Location)
}

func (uc *MarketUseCase) generate(ctx context.Context, careerPath, location string) (*market.Report, error) {
	report := &market.Report{
		CareerPath:  careerPath,
		Location:    location,
		GeneratedAt: uc.now().UTC(),
	}

	text, err := prompt.Render(prompt.MarketInsights, map[string]any{"CareerPath": careerPath, "Location": location})
	if err != nil {
		return nil, apperror.NewInternal("failed to build insights prompt", err)
	}
	insights, err := service.GenerateJSON[market.Insights](ctx, uc.generator, text, "market insights")
	if err != nil {
		uc.logger.Warn("Market insights generation failed, serving mock insights", zap.String("career_path", careerPath), zap.Error(err))
		report.Insights = market.MockInsights(careerPath)
		report.Fallback = true
		return report, nil
	}

	report.Insights = insights
	if err := uc.cache.Set(ctx, service.InsightsKey(careerPath, location), report, InsightsTTL); err != nil {
		uc.logger.Warn("Failed to cache market insights", zap.Error(err))
	}
	return report, nil
}

// ExecuteRefreshAll regenerates the default-location report of every tracked path,
// bypassing the cache. It returns how many reports were refreshed from the model.
func (uc *MarketUseCase) ExecuteRefreshAll(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "RefreshAllInsights")
	defer span.End()

	refreshed := 0
	for _, path := range market.TrackedPaths() {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		report, err := uc.generate(ctx, path, market.DefaultLocation)
		if err != nil {
			span.RecordError(err)
			return refreshed, err
		}
		if !report.Fallback {
			refreshed++
		}
	}
	uc.logger.Info("Market insights refreshed", zap.Int("refreshed", refreshed), zap.Int("tracked", len(market.TrackedPaths())))
	return refreshed, nil
}
