package reach

import (
	"mediapack/internal/models"
)

// pubAccumulator collects one publication's contribution while its items are
// walked exactly once.
type pubAccumulator struct {
	impressions float64
	exposures   float64
	// One audience figure per channel, at the largest item-level value seen.
	// A publication with five newsletter placements counts its subscriber
	// base once, not five times.
	channelMax map[models.ChannelKind]float64
	geoMarket  string
	active     bool
}

// Aggregate reduces a package selection to a single reach summary. It is a
// pure function of its inputs: excluded items contribute nothing, an empty
// selection yields an all-zero summary, and the same selection always
// produces the same summary.
func Aggregate(selection models.PackageSelection, cfg models.OverlapConfig) models.ReachSummary {
	pubs := make([]pubAccumulator, 0, len(selection.Publications))
	for _, pub := range selection.Publications {
		acc := walkPublication(pub)
		if acc.active {
			pubs = append(pubs, acc)
		}
	}

	summary := models.ReachSummary{
		ChannelAudiences: make(map[models.ChannelKind]float64),
	}
	if len(pubs) == 0 {
		summary.CalculationMethod = models.MethodAudience
		return summary
	}

	channels := make(map[models.ChannelKind]bool)
	for _, acc := range pubs {
		summary.TotalMonthlyImpressions += acc.impressions
		summary.TotalMonthlyExposures += acc.exposures
		for kind, audience := range acc.channelMax {
			summary.ChannelAudiences[kind] += audience
			channels[kind] = true
		}
	}

	for _, audience := range summary.ChannelAudiences {
		summary.EstimatedTotalReach += audience
	}

	summary.PublicationsCount = len(pubs)
	summary.ChannelsCount = len(channels)
	summary.OverlapFactor = selectOverlapFactor(pubs, len(channels), cfg)
	summary.EstimatedUniqueReach = models.RoundReach(summary.EstimatedTotalReach * summary.OverlapFactor)
	summary.CalculationMethod = classify(summary.TotalMonthlyImpressions, summary.EstimatedTotalReach)
	return summary
}

// walkPublication folds a publication's non-excluded items into one
// accumulator in a single pass.
func walkPublication(pub models.PublicationSelection) pubAccumulator {
	acc := pubAccumulator{
		channelMax: make(map[models.ChannelKind]float64),
		geoMarket:  pub.GeoMarket,
	}

	for _, sel := range pub.Items {
		if sel.IsExcluded {
			continue
		}
		acc.active = true

		m := sel.Item.Performance
		if m == nil {
			continue
		}

		if sel.Item.PricingModel.ImpressionBased() {
			acc.impressions += m.ImpressionsPerMonth
			acc.exposures += m.ImpressionsPerMonth
		} else if sel.CurrentFrequency > 0 {
			// Audience-metered buys: a higher purchased frequency earns a
			// proportionally higher exposure estimate.
			acc.exposures += m.AudienceSize * sel.CurrentFrequency
		}

		if m.AudienceSize > acc.channelMax[sel.Item.Channel] {
			acc.channelMax[sel.Item.Channel] = m.AudienceSize
		}
	}
	return acc
}

// selectOverlapFactor picks the heuristic dedup coefficient from the
// composition of the selection: one outlet sold across several of its own
// channels shares more audience with itself than distinct outlets share
// with each other, and outlets in different geographic markets share the
// least.
func selectOverlapFactor(pubs []pubAccumulator, channelCount int, cfg models.OverlapConfig) float64 {
	if len(pubs) > 1 {
		if distinctGeoMarkets(pubs) > 1 {
			return cfg.MultiPubDiffGeo
		}
		return cfg.MultiPubSameGeo
	}
	if len(pubs) == 1 && channelCount > 1 {
		return cfg.SinglePubMultiChannel
	}
	return cfg.Default
}

// distinctGeoMarkets counts the named markets across contributing
// publications. Publications without a market are treated as sharing one.
func distinctGeoMarkets(pubs []pubAccumulator) int {
	markets := make(map[string]bool)
	for _, acc := range pubs {
		if acc.geoMarket != "" {
			markets[acc.geoMarket] = true
		}
	}
	return len(markets)
}

func classify(impressions, audienceReach float64) models.CalculationMethod {
	switch {
	case impressions > 0 && audienceReach > 0:
		return models.MethodMixed
	case impressions > 0:
		return models.MethodImpressions
	default:
		return models.MethodAudience
	}
}
