package pricing

import (
	"fmt"

	"mediapack/internal/models"
)

// MonthlyCost computes one selected item's contribution to monthly spend.
// Missing prices or metrics resolve to 0; the only error case is a pricing
// model outside the closed enumeration, which means the catalog schema
// drifted upstream.
func MonthlyCost(sel models.SelectedItem) (float64, error) {
	item := sel.Item
	if item.UnitPrice <= 0 {
		// Still validate the model so schema drift surfaces even on free items.
		if _, err := models.ParsePricingModel(string(item.PricingModel)); err != nil {
			return 0, fmt.Errorf("item %s: %w", item.ItemPath, err)
		}
		return 0, nil
	}

	switch item.PricingModel {
	case models.PricingFlat:
		// One-time charge: the purchase frequency does not multiply it.
		return item.UnitPrice, nil

	case models.PricingMonthly:
		return item.UnitPrice, nil

	case models.PricingPerWeek, models.PricingPerDay,
		models.PricingPerSpot, models.PricingPerAd, models.PricingPerSend,
		models.PricingPerPost, models.PricingPerStory, models.PricingPerEpisode:
		return nonNegative(item.UnitPrice * sel.CurrentFrequency), nil

	case models.PricingCPM, models.PricingCPV, models.PricingCPC:
		// CPV/CPC fall back to the impressions proxy when no dedicated
		// view/click metric exists, which is the catalog's current shape.
		volume := impressionShareVolume(item.Performance, sel.CurrentFrequency)
		return nonNegative(item.UnitPrice * volume / 1000), nil

	default:
		return 0, fmt.Errorf("item %s: %w: %q", item.ItemPath, models.ErrUnknownPricingModel, item.PricingModel)
	}
}

// impressionShareVolume converts a purchased share into a monthly unit
// volume for CPM-style models. The share is a percentage (0-100) of the
// item's available monthly impressions, matching how the builder UI displays
// the frequency field for these models. The convention lives in this one
// function so it can be corrected in isolation if real invoice figures
// disagree.
func impressionShareVolume(m *models.PerformanceMetrics, sharePct float64) float64 {
	if m == nil || m.ImpressionsPerMonth <= 0 || sharePct <= 0 {
		return 0
	}
	return m.ImpressionsPerMonth * sharePct / 100
}

// PackageMonthlyCost sums monthly costs across a package selection, skipping
// excluded items entirely.
func PackageMonthlyCost(selection models.PackageSelection) (float64, error) {
	total := 0.0
	for _, pub := range selection.Publications {
		for _, sel := range pub.Items {
			if sel.IsExcluded {
				continue
			}
			cost, err := MonthlyCost(sel)
			if err != nil {
				return 0, models.NewPublicationError(pub.PublicationID, "cost calculation failed", err)
			}
			total += cost
		}
	}
	return total, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
