package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mediapack/internal/cache/pubCache"
	"mediapack/internal/catalog"
	"mediapack/internal/logger"
	"mediapack/internal/metrics"
	"mediapack/internal/models"
	"mediapack/internal/pricing"
	"mediapack/internal/reach"
)

// Service implements the QuoteService interface
type Service struct {
	fetcher       catalog.Fetcher
	parser        catalog.Parser
	pubCache      pubCache.Service
	logger        logger.Service
	overlap       models.OverlapConfig
	maxConcurrent int
}

// NewService creates a new quote service
func NewService(
	fetcher catalog.Fetcher,
	parser catalog.Parser,
	pubCache pubCache.Service,
	logger logger.Service,
	overlap models.OverlapConfig,
	maxConcurrent int,
) QuoteService {
	return &Service{
		fetcher:       fetcher,
		parser:        parser,
		pubCache:      pubCache,
		logger:        logger,
		overlap:       overlap,
		maxConcurrent: maxConcurrent,
	}
}

// GetPublication loads one publication's synced inventory snapshot. Cached
// snapshots are already synced; on a miss the raw catalog document is
// fetched, parsed and run through the metrics synchronizer before caching.
func (s *Service) GetPublication(ctx context.Context, publicationID string) (*models.Publication, error) {
	start := time.Now()

	// Try the publication cache first
	if cached, err := s.pubCache.Get(ctx, publicationID); err == nil {
		s.logger.LogSuccess(ctx, logger.OpCacheHit, publicationID, "Retrieved publication from cache", map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return cached, nil
	}

	s.logger.LogInfo(ctx, logger.OpCacheMiss, fmt.Sprintf("Cache miss for publication: %s", publicationID), map[string]interface{}{
		"publication_id": publicationID,
	})

	// Fetch the catalog snapshot
	data, err := s.fetcher.Fetch(ctx, publicationID)
	if err != nil {
		s.logger.LogError(ctx, logger.OpFetchSnapshot, publicationID, "Failed to fetch catalog snapshot", err, models.LogSeverityMedium, map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, models.NewPublicationError(publicationID, "failed to fetch catalog snapshot", err)
	}

	s.logger.LogSuccess(ctx, logger.OpFetchSnapshot, publicationID, "Successfully fetched catalog snapshot", map[string]interface{}{
		"content_size": len(data),
		"duration_ms":  time.Since(start).Milliseconds(),
	})

	// Parse the snapshot into the domain model
	pub, err := s.parser.ParseSnapshot(data)
	if err != nil {
		s.logger.LogError(ctx, logger.OpParseSnapshot, publicationID, "Failed to parse catalog snapshot", err, models.LogSeverityMedium, map[string]interface{}{
			"content_size": len(data),
			"duration_ms":  time.Since(start).Milliseconds(),
		})
		return nil, models.NewPublicationError(publicationID, "failed to parse catalog snapshot", err)
	}

	// Derive performance metrics for every line item
	synced := metrics.SyncPublication(*pub)
	pub = &synced

	s.logger.LogSuccess(ctx, logger.OpSyncMetrics, publicationID, "Synchronized performance metrics", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})

	// Cache the synced snapshot
	if err := s.pubCache.Set(ctx, publicationID, pub, 0); err != nil {
		s.logger.LogError(ctx, "cache_set", publicationID, "Failed to cache publication", err, models.LogSeverityLow, map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		// Don't fail the request if caching fails
	}

	s.logger.LogSuccess(ctx, logger.OpPublicationLoad, publicationID, "Successfully loaded publication", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return pub, nil
}

// QuotePackage prices one package scenario: per-item monthly costs plus the
// aggregated reach estimate for the whole selection.
func (s *Service) QuotePackage(ctx context.Context, req *models.QuoteRequest) (*models.PackageQuote, error) {
	start := time.Now()

	itemCosts, total, err := s.priceSelection(req.Selection)
	if err != nil {
		s.logger.LogError(ctx, logger.OpQuote, req.PackageName, "Failed to price package selection", err, models.LogSeverityMedium, map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, err
	}

	summary := reach.Aggregate(req.Selection, s.overlap)

	quote := &models.PackageQuote{
		PackageName:      req.PackageName,
		Reach:            summary,
		ItemCosts:        itemCosts,
		TotalMonthlyCost: total,
		Timestamp:        time.Now().UTC(),
	}

	s.logger.LogSuccess(ctx, logger.OpQuote, req.PackageName, "Successfully quoted package", map[string]interface{}{
		"total_monthly_cost":     quote.TotalMonthlyCost,
		"estimated_unique_reach": summary.EstimatedUniqueReach,
		"publications_count":     summary.PublicationsCount,
		"duration_ms":            time.Since(start).Milliseconds(),
	})

	return quote, nil
}

// priceSelection walks every selected item and collects its monthly cost.
// Excluded items are reported with a zero cost so the response mirrors the
// full selection the operator sent.
func (s *Service) priceSelection(selection models.PackageSelection) ([]models.ItemCost, float64, error) {
	itemCosts := make([]models.ItemCost, 0)
	var total float64

	for _, pub := range selection.Publications {
		for _, sel := range pub.Items {
			cost := models.ItemCost{
				ItemPath:     sel.Item.ItemPath,
				ItemName:     sel.Item.ItemName,
				Channel:      sel.Item.Channel,
				PricingModel: sel.Item.PricingModel,
				Excluded:     sel.IsExcluded,
			}

			if !sel.IsExcluded {
				monthly, err := pricing.MonthlyCost(sel)
				if err != nil {
					return nil, 0, models.NewPublicationError(pub.PublicationID, fmt.Sprintf("failed to price item %q", sel.Item.ItemName), err)
				}
				cost.MonthlyCost = monthly
				total += monthly
			}

			itemCosts = append(itemCosts, cost)
		}
	}

	return itemCosts, total, nil
}

// QuoteScenarios prices multiple package scenarios concurrently
func (s *Service) QuoteScenarios(ctx context.Context, scenarios []models.QuoteRequest) (*models.BatchQuoteResponse, error) {
	start := time.Now()

	s.logger.LogInfo(ctx, logger.OpBatchQuote, fmt.Sprintf("Starting batch quote of %d scenarios", len(scenarios)), map[string]interface{}{
		"scenarios_count": len(scenarios),
	})

	if len(scenarios) == 0 {
		return &models.BatchQuoteResponse{
			Results:   []models.ScenarioResult{},
			Summary:   models.BatchSummary{Total: 0, Succeeded: 0, Failed: 0},
			Timestamp: time.Now().UTC(),
		}, nil
	}

	// Create results channel and response aggregator
	resultsChan := make(chan indexedResult, len(scenarios))
	responseChan := make(chan *models.BatchQuoteResponse, 1)

	// Start response aggregator goroutine
	go s.aggregateResults(resultsChan, len(scenarios), responseChan)

	// Use semaphore to limit concurrent operations
	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup

	// Process scenarios concurrently
	for i, scenario := range scenarios {
		wg.Add(1)

		go func(idx int, req models.QuoteRequest) {
			defer wg.Done()

			// Acquire semaphore
			sem <- struct{}{}
			defer func() { <-sem }()

			// Create context with timeout for the individual scenario
			scenarioCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			var result models.ScenarioResult
			quote, err := s.QuotePackage(scenarioCtx, &req)
			if err != nil {
				result = models.ScenarioResult{
					PackageName: req.PackageName,
					Error:       err.Error(),
					Success:     false,
					Timestamp:   time.Now().UTC(),
				}

				s.logger.LogError(scenarioCtx, logger.OpBatchQuote, req.PackageName, "Failed to quote scenario in batch", err, models.LogSeverityMedium, nil)
			} else {
				result = models.ScenarioResult{
					PackageName: req.PackageName,
					Quote:       quote,
					Success:     true,
					Timestamp:   quote.Timestamp,
				}
			}

			// Send result to aggregator
			resultsChan <- indexedResult{index: idx, result: result}
		}(i, scenario)
	}

	// Wait for all workers to complete, then close results channel
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Wait for aggregated response
	response := <-responseChan

	s.logger.LogSuccess(ctx, logger.OpBatchQuote, "", "Completed batch quote", map[string]interface{}{
		"total_scenarios": response.Summary.Total,
		"successful":      response.Summary.Succeeded,
		"failed":          response.Summary.Failed,
		"duration_ms":     time.Since(start).Milliseconds(),
	})

	return response, nil
}

// indexedResult pairs a scenario result with its request position so the
// response preserves the order the scenarios were submitted in.
type indexedResult struct {
	index  int
	result models.ScenarioResult
}

// aggregateResults collects results from workers and builds the final response
func (s *Service) aggregateResults(resultsChan <-chan indexedResult, totalScenarios int, responseChan chan<- *models.BatchQuoteResponse) {
	results := make([]models.ScenarioResult, totalScenarios)
	summary := models.BatchSummary{Total: totalScenarios}

	// Process results as they arrive
	for ir := range resultsChan {
		results[ir.index] = ir.result

		if ir.result.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	responseChan <- &models.BatchQuoteResponse{
		Results:   results,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}
}
