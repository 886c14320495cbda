package metrics

import (
	"mediapack/internal/cadence"
	"mediapack/internal/models"
)

// Fixed occurrence rates for channels whose schedule is not cadence-driven.
const (
	// socialPostsPerMonth models roughly four posts a week on an active
	// account; social channels carry no cadence field of their own.
	socialPostsPerMonth = 4 * cadence.WeeksPerMonth

	// websiteDaysPerMonth treats display inventory as permanently live.
	websiteDaysPerMonth = 30.0

	// stationSpotRate is the schedule for station-wide radio inventory,
	// which rotates daily rather than per show.
	stationSpotRate = cadence.DaysPerMonth
)

// SyncPublication recomputes performance metrics for every line item in
// every channel the publication operates. It returns a new publication value
// and never mutates its input; running it twice on unchanged source data
// yields identical output.
func SyncPublication(pub models.Publication) models.Publication {
	out := pub
	for _, kind := range models.AllChannelKinds {
		syncChannel(kind, &out)
	}
	return out
}

// syncChannel dispatches one channel kind to its transform. It reports
// whether the kind was recognized so the exhaustiveness test can prove every
// declared channel has a handler.
func syncChannel(kind models.ChannelKind, pub *models.Publication) bool {
	switch kind {
	case models.ChannelPrint:
		if pub.Print != nil {
			ch := SyncPrint(*pub.Print)
			pub.Print = &ch
		}
	case models.ChannelNewsletter:
		if pub.Newsletter != nil {
			ch := SyncNewsletter(*pub.Newsletter)
			pub.Newsletter = &ch
		}
	case models.ChannelRadio:
		if pub.Radio != nil {
			ch := SyncRadio(*pub.Radio)
			pub.Radio = &ch
		}
	case models.ChannelPodcast:
		if pub.Podcast != nil {
			ch := SyncPodcast(*pub.Podcast)
			pub.Podcast = &ch
		}
	case models.ChannelSocial:
		if pub.Social != nil {
			ch := SyncSocial(*pub.Social)
			pub.Social = &ch
		}
	case models.ChannelStreaming:
		if pub.Streaming != nil {
			ch := SyncStreaming(*pub.Streaming)
			pub.Streaming = &ch
		}
	case models.ChannelWebsite:
		if pub.Website != nil {
			ch := SyncWebsite(*pub.Website)
			pub.Website = &ch
		}
	case models.ChannelEvents:
		if pub.Events != nil {
			ch := SyncEvents(*pub.Events)
			pub.Events = &ch
		}
	default:
		return false
	}
	return true
}

// SyncPrint derives metrics from circulation at the issue cadence
func SyncPrint(ch models.PrintChannel) models.PrintChannel {
	out := ch
	rate := cadence.OccurrencesPerMonth(ch.Frequency)
	out.Opportunities = syncItems(ch.Opportunities, metricOr(ch.Circulation), rate)
	return out
}

// SyncNewsletter derives metrics from the subscriber base at the send cadence
func SyncNewsletter(ch models.NewsletterChannel) models.NewsletterChannel {
	out := ch
	rate := cadence.OccurrencesPerMonth(ch.Frequency)
	out.Opportunities = syncItems(ch.Opportunities, metricOr(ch.Subscribers), rate)
	return out
}

// SyncPodcast derives metrics from listeners, falling back to downloads when
// the show reports no listener figure
func SyncPodcast(ch models.PodcastChannel) models.PodcastChannel {
	out := ch
	audience := metricOr(ch.AverageListeners, ch.AverageDownloads)
	rate := cadence.OccurrencesPerMonth(ch.Frequency)
	out.Opportunities = syncItems(ch.Opportunities, audience, rate)
	return out
}

// SyncRadio handles the two-level radio shape: station-wide spots run daily
// against station listenership, while show spots use the show's own audience
// (station listeners when absent) at a rate derived from its air schedule.
// Spot-class multipliers (spotsPerShow, daysPerWeek) apply per item.
func SyncRadio(ch models.RadioChannel) models.RadioChannel {
	out := ch
	station := metricOr(ch.Listeners)
	out.Opportunities = syncScheduledItems(ch.Opportunities, station, stationSpotRate)

	if ch.Shows == nil {
		return out
	}
	out.Shows = make([]models.RadioShow, len(ch.Shows))
	for i, show := range ch.Shows {
		out.Shows[i] = show
		audience := metricOr(show.AverageListeners, ch.Listeners)
		rate := cadence.OccurrencesPerMonth(show.Frequency)
		if show.DaysPerWeek != nil && *show.DaysPerWeek > 0 {
			rate = float64(*show.DaysPerWeek) * cadence.WeeksPerMonth
		}
		out.Shows[i].Opportunities = syncScheduledItems(show.Opportunities, audience, rate)
	}
	return out
}

// SyncStreaming derives metrics from subscribers (views when absent) at the
// release cadence, defaulting to weekly drops
func SyncStreaming(ch models.StreamingChannel) models.StreamingChannel {
	out := ch
	audience := metricOr(ch.Subscribers, ch.AverageViews)
	rate := cadence.OccurrencesPerMonthOr(ch.Frequency, "weekly")
	out.Opportunities = syncScheduledItems(ch.Opportunities, audience, rate)
	return out
}

// SyncSocial derives metrics from the follower count at a fixed posting rate
func SyncSocial(ch models.SocialChannel) models.SocialChannel {
	out := ch
	out.Opportunities = syncItems(ch.Opportunities, metricOr(ch.Followers), socialPostsPerMonth)
	return out
}

// SyncWebsite derives metrics from monthly visitors (page views when absent)
// with the inventory treated as live every day
func SyncWebsite(ch models.WebsiteChannel) models.WebsiteChannel {
	out := ch
	audience := metricOr(ch.MonthlyVisitors, ch.MonthlyPageViews)
	out.Opportunities = syncItems(ch.Opportunities, audience, websiteDaysPerMonth)
	return out
}

// SyncEvents derives metrics from attendance at the event cadence, defaulting
// to annual
func SyncEvents(ch models.EventsChannel) models.EventsChannel {
	out := ch
	audience := metricOr(ch.AverageAttendance, ch.ExpectedAttendees)
	rate := cadence.OccurrencesPerMonthOr(ch.Frequency, "annual")
	out.Opportunities = syncItems(ch.Opportunities, audience, rate)
	return out
}

// syncItems recomputes metrics for a flat opportunity list where every item
// shares the channel's audience and occurrence rate. A nil list stays nil.
func syncItems(items []models.AdvertisingLineItem, audience, rate float64) []models.AdvertisingLineItem {
	if items == nil {
		return nil
	}
	out := make([]models.AdvertisingLineItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Performance = recompute(item.Performance, audience, rate)
	}
	return out
}

// syncScheduledItems is syncItems for spot inventory, where an item can
// override the base schedule with its own daysPerWeek and multiply
// occurrences by its spotsPerShow run count.
func syncScheduledItems(items []models.AdvertisingLineItem, audience, baseRate float64) []models.AdvertisingLineItem {
	if items == nil {
		return nil
	}
	out := make([]models.AdvertisingLineItem, len(items))
	for i, item := range items {
		rate := baseRate
		if item.DaysPerWeek != nil && *item.DaysPerWeek > 0 {
			rate = float64(*item.DaysPerWeek) * cadence.WeeksPerMonth
		}
		if item.SpotsPerShow != nil && *item.SpotsPerShow > 0 {
			rate *= float64(*item.SpotsPerShow)
		}
		out[i] = item
		out[i].Performance = recompute(item.Performance, audience, rate)
	}
	return out
}

// recompute builds fresh metrics from the current source numbers. Only the
// Guaranteed flag carries over from a previous sync; it defaults to true for
// items that have never been synced.
func recompute(prev *models.PerformanceMetrics, audience, rate float64) *models.PerformanceMetrics {
	guaranteed := true
	if prev != nil {
		guaranteed = prev.Guaranteed
	}
	if audience < 0 {
		audience = 0
	}
	if rate < 0 {
		rate = 0
	}
	return &models.PerformanceMetrics{
		AudienceSize:        audience,
		OccurrencesPerMonth: rate,
		ImpressionsPerMonth: audience * rate,
		Guaranteed:          guaranteed,
	}
}

// metricOr resolves an optional source metric through a fallback chain,
// ending at zero when nothing is reported.
func metricOr(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
