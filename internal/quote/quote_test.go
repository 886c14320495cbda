package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediapack/internal/mocks"
	"mediapack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func newTestService(
	mockFetcher *mocks.MockFetcher,
	mockParser *mocks.MockParser,
	mockCache *mocks.MockPubCache,
	mockLogger *mocks.MockLogger,
) QuoteService {
	return NewService(mockFetcher, mockParser, mockCache, mockLogger, models.DefaultOverlap(), 10)
}

func TestService_GetPublication_CacheHit(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	pubID := "pub-ledger"
	ctx := context.Background()

	cachedPub := &models.Publication{
		ID:   pubID,
		Name: "The Ledger",
	}

	// Setup mocks
	mockCache.On("Get", ctx, pubID).Return(cachedPub, nil)
	mockLogger.On("LogSuccess", ctx, "cache_hit", pubID, "Retrieved publication from cache", mock.Anything).Return()

	// Act
	result, err := service.GetPublication(ctx, pubID)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, pubID, result.ID)
	assert.Equal(t, "The Ledger", result.Name)

	mockCache.AssertExpectations(t)
	mockLogger.AssertExpectations(t)

	// Verify fetcher and parser were NOT called (cache hit)
	mockFetcher.AssertNotCalled(t, "Fetch")
	mockParser.AssertNotCalled(t, "ParseSnapshot")
}

func TestService_GetPublication_CacheMissSuccess(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	pubID := "pub-ledger"
	ctx := context.Background()
	snapshot := []byte(`{"id":"pub-ledger"}`)

	parsedPub := &models.Publication{
		ID:   pubID,
		Name: "The Ledger",
		Print: &models.PrintChannel{
			Frequency:   "monthly",
			Circulation: fptr(25000),
			Opportunities: []models.AdvertisingLineItem{
				{Channel: models.ChannelPrint, ItemName: "Full Page", PricingModel: models.PricingFlat, UnitPrice: 500},
			},
		},
	}

	// Setup mocks
	mockCache.On("Get", ctx, pubID).Return(nil, errors.New("cache miss"))
	mockLogger.On("LogInfo", ctx, "cache_miss", mock.AnythingOfType("string"), mock.Anything).Return()

	mockFetcher.On("Fetch", ctx, pubID).Return(snapshot, nil)
	mockLogger.On("LogSuccess", ctx, "fetch_snapshot", pubID, "Successfully fetched catalog snapshot", mock.Anything).Return()

	mockParser.On("ParseSnapshot", snapshot).Return(parsedPub, nil)
	mockLogger.On("LogSuccess", ctx, "parse_snapshot", pubID, "Successfully parsed catalog snapshot", mock.Anything).Return()
	mockLogger.On("LogSuccess", ctx, "sync_metrics", pubID, "Synchronized performance metrics", mock.Anything).Return()

	mockCache.On("Set", ctx, pubID, mock.AnythingOfType("*models.Publication"), time.Duration(0)).Return(nil)
	mockLogger.On("LogSuccess", ctx, "publication_load", pubID, "Successfully loaded publication", mock.Anything).Return()

	// Act
	result, err := service.GetPublication(ctx, pubID)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, pubID, result.ID)

	// The returned snapshot must carry synced performance metrics
	require.NotNil(t, result.Print)
	require.Len(t, result.Print.Opportunities, 1)
	perf := result.Print.Opportunities[0].Performance
	require.NotNil(t, perf)
	assert.Equal(t, 25000.0, perf.AudienceSize)
	assert.Equal(t, 1.0, perf.OccurrencesPerMonth)
	assert.Equal(t, 25000.0, perf.ImpressionsPerMonth)
	assert.True(t, perf.Guaranteed)

	mockCache.AssertExpectations(t)
	mockLogger.AssertExpectations(t)
	mockFetcher.AssertExpectations(t)
	mockParser.AssertExpectations(t)
}

func TestService_GetPublication_FetchError(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	pubID := "pub-ledger"
	ctx := context.Background()
	fetchError := errors.New("network timeout")

	// Setup mocks
	mockCache.On("Get", ctx, pubID).Return(nil, errors.New("cache miss"))
	mockLogger.On("LogInfo", ctx, "cache_miss", mock.AnythingOfType("string"), mock.Anything).Return()

	mockFetcher.On("Fetch", ctx, pubID).Return(nil, fetchError)
	mockLogger.On("LogError", ctx, "fetch_snapshot", pubID, "Failed to fetch catalog snapshot", fetchError, models.LogSeverityMedium, mock.Anything).Return()

	// Act
	result, err := service.GetPublication(ctx, pubID)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)

	var pubError *models.PublicationError
	assert.ErrorAs(t, err, &pubError)
	assert.Equal(t, pubID, pubError.PublicationID)
	assert.Contains(t, pubError.Message, "failed to fetch catalog snapshot")

	mockCache.AssertExpectations(t)
	mockLogger.AssertExpectations(t)
	mockFetcher.AssertExpectations(t)

	// Parser should not be called
	mockParser.AssertNotCalled(t, "ParseSnapshot")
}

func TestService_GetPublication_ParseError(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	pubID := "pub-ledger"
	ctx := context.Background()
	snapshot := []byte(`not json`)
	parseError := errors.New("invalid document")

	// Setup mocks
	mockCache.On("Get", ctx, pubID).Return(nil, errors.New("cache miss"))
	mockLogger.On("LogInfo", ctx, "cache_miss", mock.AnythingOfType("string"), mock.Anything).Return()

	mockFetcher.On("Fetch", ctx, pubID).Return(snapshot, nil)
	mockLogger.On("LogSuccess", ctx, "fetch_snapshot", pubID, "Successfully fetched catalog snapshot", mock.Anything).Return()

	mockParser.On("ParseSnapshot", snapshot).Return(nil, parseError)
	mockLogger.On("LogError", ctx, "parse_snapshot", pubID, "Failed to parse catalog snapshot", parseError, models.LogSeverityMedium, mock.Anything).Return()

	// Act
	result, err := service.GetPublication(ctx, pubID)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)

	var pubError *models.PublicationError
	assert.ErrorAs(t, err, &pubError)
	assert.Equal(t, pubID, pubError.PublicationID)
	assert.Contains(t, pubError.Message, "failed to parse catalog snapshot")

	mockCache.AssertExpectations(t)
	mockLogger.AssertExpectations(t)
	mockFetcher.AssertExpectations(t)
	mockParser.AssertExpectations(t)
}

func TestService_GetPublication_CacheSetError(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	pubID := "pub-ledger"
	ctx := context.Background()
	snapshot := []byte(`{"id":"pub-ledger"}`)
	cacheError := errors.New("cache unavailable")

	parsedPub := &models.Publication{ID: pubID, Name: "The Ledger"}

	// Setup mocks
	mockCache.On("Get", ctx, pubID).Return(nil, errors.New("cache miss"))
	mockLogger.On("LogInfo", ctx, "cache_miss", mock.AnythingOfType("string"), mock.Anything).Return()

	mockFetcher.On("Fetch", ctx, pubID).Return(snapshot, nil)
	mockLogger.On("LogSuccess", ctx, "fetch_snapshot", pubID, "Successfully fetched catalog snapshot", mock.Anything).Return()

	mockParser.On("ParseSnapshot", snapshot).Return(parsedPub, nil)
	mockLogger.On("LogSuccess", ctx, "parse_snapshot", pubID, "Successfully parsed catalog snapshot", mock.Anything).Return()
	mockLogger.On("LogSuccess", ctx, "sync_metrics", pubID, "Synchronized performance metrics", mock.Anything).Return()

	// Cache set fails but doesn't break the flow
	mockCache.On("Set", ctx, pubID, mock.AnythingOfType("*models.Publication"), time.Duration(0)).Return(cacheError)
	mockLogger.On("LogError", ctx, "cache_set", pubID, "Failed to cache publication", cacheError, models.LogSeverityLow, mock.Anything).Return()
	mockLogger.On("LogSuccess", ctx, "publication_load", pubID, "Successfully loaded publication", mock.Anything).Return()

	// Act
	result, err := service.GetPublication(ctx, pubID)

	// Assert - should succeed despite cache error
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, pubID, result.ID)

	mockCache.AssertExpectations(t)
	mockLogger.AssertExpectations(t)
	mockFetcher.AssertExpectations(t)
	mockParser.AssertExpectations(t)
}

// quoteSelection builds a one-publication selection mirroring a bundled
// print buy plus a newsletter sponsorship.
func quoteSelection() models.PackageSelection {
	return models.PackageSelection{
		Publications: []models.PublicationSelection{
			{
				PublicationID:   "pub-ledger",
				PublicationName: "The Ledger",
				Items: []models.SelectedItem{
					{
						Item: models.AdvertisingLineItem{
							Channel:      models.ChannelPrint,
							ItemName:     "Full Page",
							ItemPath:     "distributionChannels.print.adOpportunities.0",
							PricingModel: models.PricingMonthly,
							UnitPrice:    500,
							Performance:  &models.PerformanceMetrics{AudienceSize: 25000, OccurrencesPerMonth: 1, ImpressionsPerMonth: 25000, Guaranteed: true},
						},
						CurrentFrequency: 1,
					},
					{
						Item: models.AdvertisingLineItem{
							Channel:      models.ChannelNewsletter,
							ItemName:     "Sponsor Slot",
							ItemPath:     "distributionChannels.newsletter.adOpportunities.0",
							PricingModel: models.PricingPerWeek,
							UnitPrice:    100,
							Performance:  &models.PerformanceMetrics{AudienceSize: 10000, OccurrencesPerMonth: 4.33, ImpressionsPerMonth: 43300, Guaranteed: true},
						},
						CurrentFrequency: 4,
					},
					{
						Item: models.AdvertisingLineItem{
							Channel:      models.ChannelPrint,
							ItemName:     "Insert",
							ItemPath:     "distributionChannels.print.adOpportunities.1",
							PricingModel: models.PricingPerSpot,
							UnitPrice:    50,
							Performance:  &models.PerformanceMetrics{AudienceSize: 99999, OccurrencesPerMonth: 1, ImpressionsPerMonth: 99999, Guaranteed: true},
						},
						CurrentFrequency: 10,
						IsExcluded:       true,
					},
				},
			},
		},
	}
}

func TestService_QuotePackage_Success(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	ctx := context.Background()
	req := &models.QuoteRequest{
		PackageName: "starter-bundle",
		Selection:   quoteSelection(),
	}

	mockLogger.On("LogSuccess", ctx, "package_quote", "starter-bundle", "Successfully quoted package", mock.Anything).Return()

	// Act
	quote, err := service.QuotePackage(ctx, req)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, "starter-bundle", quote.PackageName)

	// 500 monthly + 100 * 4 per week; the excluded insert contributes nothing
	assert.InDelta(t, 900.0, quote.TotalMonthlyCost, 0.001)

	require.Len(t, quote.ItemCosts, 3)
	assert.InDelta(t, 500.0, quote.ItemCosts[0].MonthlyCost, 0.001)
	assert.InDelta(t, 400.0, quote.ItemCosts[1].MonthlyCost, 0.001)
	assert.True(t, quote.ItemCosts[2].Excluded)
	assert.Equal(t, 0.0, quote.ItemCosts[2].MonthlyCost)

	// One publication, two active channels: 35,000 summed, 0.60 overlap
	assert.InDelta(t, 35000.0, quote.Reach.EstimatedTotalReach, 0.001)
	assert.InDelta(t, 21000.0, quote.Reach.EstimatedUniqueReach, 0.001)
	assert.Equal(t, 0.60, quote.Reach.OverlapFactor)
	assert.Equal(t, 1, quote.Reach.PublicationsCount)
	assert.Equal(t, 2, quote.Reach.ChannelsCount)

	assert.WithinDuration(t, time.Now().UTC(), quote.Timestamp, 5*time.Second)

	mockLogger.AssertExpectations(t)
}

func TestService_QuotePackage_PricingError(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	ctx := context.Background()
	req := &models.QuoteRequest{
		PackageName: "broken-bundle",
		Selection: models.PackageSelection{
			Publications: []models.PublicationSelection{
				{
					PublicationID: "pub-ledger",
					Items: []models.SelectedItem{
						{
							Item: models.AdvertisingLineItem{
								Channel:      models.ChannelPrint,
								ItemName:     "Mystery Unit",
								PricingModel: models.PricingModel("barter"),
								UnitPrice:    100,
							},
							CurrentFrequency: 1,
						},
					},
				},
			},
		},
	}

	mockLogger.On("LogError", ctx, "package_quote", "broken-bundle", "Failed to price package selection", mock.AnythingOfType("*models.PublicationError"), models.LogSeverityMedium, mock.Anything).Return()

	// Act
	quote, err := service.QuotePackage(ctx, req)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, quote)

	var pubError *models.PublicationError
	assert.ErrorAs(t, err, &pubError)
	assert.Equal(t, "pub-ledger", pubError.PublicationID)
	assert.ErrorIs(t, err, models.ErrUnknownPricingModel)

	mockLogger.AssertExpectations(t)
}

func TestService_QuoteScenarios_EmptySlice(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	ctx := context.Background()

	mockLogger.On("LogInfo", ctx, "batch_quote", "Starting batch quote of 0 scenarios", mock.Anything).Return()

	// Act
	result, err := service.QuoteScenarios(ctx, []models.QuoteRequest{})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Summary.Total)
	assert.Equal(t, 0, result.Summary.Succeeded)
	assert.Equal(t, 0, result.Summary.Failed)
	assert.Empty(t, result.Results)

	mockLogger.AssertExpectations(t)
}

func TestService_QuoteScenarios_MixedResults(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	service := newTestService(mockFetcher, mockParser, mockCache, mockLogger)

	ctx := context.Background()
	scenarios := []models.QuoteRequest{
		{PackageName: "starter-bundle", Selection: quoteSelection()},
		{
			PackageName: "broken-bundle",
			Selection: models.PackageSelection{
				Publications: []models.PublicationSelection{
					{
						PublicationID: "pub-ledger",
						Items: []models.SelectedItem{
							{
								Item: models.AdvertisingLineItem{
									Channel:      models.ChannelPrint,
									ItemName:     "Mystery Unit",
									PricingModel: models.PricingModel("barter"),
									UnitPrice:    100,
								},
								CurrentFrequency: 1,
							},
						},
					},
				},
			},
		},
	}

	mockLogger.On("LogInfo", ctx, "batch_quote", "Starting batch quote of 2 scenarios", mock.Anything).Return()
	mockLogger.On("LogSuccess", mock.Anything, "package_quote", "starter-bundle", "Successfully quoted package", mock.Anything).Return()
	mockLogger.On("LogError", mock.Anything, "package_quote", "broken-bundle", "Failed to price package selection", mock.AnythingOfType("*models.PublicationError"), models.LogSeverityMedium, mock.Anything).Return()
	mockLogger.On("LogError", mock.Anything, "batch_quote", "broken-bundle", "Failed to quote scenario in batch", mock.AnythingOfType("*models.PublicationError"), models.LogSeverityMedium, mock.Anything).Return()
	mockLogger.On("LogSuccess", ctx, "batch_quote", "", "Completed batch quote", mock.Anything).Return()

	// Act
	result, err := service.QuoteScenarios(ctx, scenarios)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.Succeeded)
	assert.Equal(t, 1, result.Summary.Failed)

	// Results come back in submission order
	require.Len(t, result.Results, 2)

	starter := result.Results[0]
	assert.Equal(t, "starter-bundle", starter.PackageName)
	assert.True(t, starter.Success)
	require.NotNil(t, starter.Quote)
	assert.InDelta(t, 900.0, starter.Quote.TotalMonthlyCost, 0.001)
	assert.Empty(t, starter.Error)

	broken := result.Results[1]
	assert.Equal(t, "broken-bundle", broken.PackageName)
	assert.False(t, broken.Success)
	assert.Nil(t, broken.Quote)
	assert.Contains(t, broken.Error, "failed to price item")

	mockLogger.AssertExpectations(t)
}

func TestService_QuoteScenarios_ConcurrencyLimit(t *testing.T) {
	// Arrange
	mockFetcher := &mocks.MockFetcher{}
	mockParser := &mocks.MockParser{}
	mockCache := &mocks.MockPubCache{}
	mockLogger := &mocks.MockLogger{}

	// Set max concurrent to 2 to test concurrency limiting
	service := NewService(mockFetcher, mockParser, mockCache, mockLogger, models.DefaultOverlap(), 2)

	ctx := context.Background()
	scenarios := make([]models.QuoteRequest, 4)
	for i := range scenarios {
		scenarios[i] = models.QuoteRequest{PackageName: "starter-bundle", Selection: quoteSelection()}
	}

	mockLogger.On("LogInfo", ctx, "batch_quote", "Starting batch quote of 4 scenarios", mock.Anything).Return()
	mockLogger.On("LogSuccess", mock.Anything, "package_quote", "starter-bundle", "Successfully quoted package", mock.Anything).Return()
	mockLogger.On("LogSuccess", ctx, "batch_quote", "", "Completed batch quote", mock.Anything).Return()

	// Act
	result, err := service.QuoteScenarios(ctx, scenarios)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 4, result.Summary.Total)
	assert.Equal(t, 4, result.Summary.Succeeded)
	assert.Equal(t, 0, result.Summary.Failed)

	require.Len(t, result.Results, 4)
	for _, scenarioResult := range result.Results {
		assert.True(t, scenarioResult.Success)
		require.NotNil(t, scenarioResult.Quote)
		assert.InDelta(t, 900.0, scenarioResult.Quote.TotalMonthlyCost, 0.001)
	}

	mockLogger.AssertExpectations(t)
}
