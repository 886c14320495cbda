package models

import (
	"fmt"
	"math"
	"time"
)

// ChannelKind identifies one advertising medium type. The set is a closed
// enumeration: an unrecognized value coming from the catalog indicates
// schema drift upstream, not bad data to tolerate.
type ChannelKind string

const (
	ChannelPrint      ChannelKind = "print"
	ChannelNewsletter ChannelKind = "newsletter"
	ChannelRadio      ChannelKind = "radio"
	ChannelPodcast    ChannelKind = "podcast"
	ChannelSocial     ChannelKind = "social"
	ChannelStreaming  ChannelKind = "streaming"
	ChannelWebsite    ChannelKind = "website"
	ChannelEvents     ChannelKind = "events"
)

// AllChannelKinds lists every supported channel, in catalog order.
var AllChannelKinds = []ChannelKind{
	ChannelPrint,
	ChannelNewsletter,
	ChannelRadio,
	ChannelPodcast,
	ChannelSocial,
	ChannelStreaming,
	ChannelWebsite,
	ChannelEvents,
}

// ParseChannelKind validates a raw channel tag from a catalog document
func ParseChannelKind(s string) (ChannelKind, error) {
	for _, k := range AllChannelKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// PricingModel is the billing convention attached to one line item
type PricingModel string

const (
	PricingFlat       PricingModel = "flat"
	PricingMonthly    PricingModel = "monthly"
	PricingPerWeek    PricingModel = "per_week"
	PricingPerDay     PricingModel = "per_day"
	PricingPerSpot    PricingModel = "per_spot"
	PricingPerAd      PricingModel = "per_ad"
	PricingPerSend    PricingModel = "per_send"
	PricingPerPost    PricingModel = "per_post"
	PricingPerStory   PricingModel = "per_story"
	PricingPerEpisode PricingModel = "per_episode"
	PricingCPM        PricingModel = "cpm"
	PricingCPV        PricingModel = "cpv"
	PricingCPC        PricingModel = "cpc"
)

// AllPricingModels lists every supported pricing model.
var AllPricingModels = []PricingModel{
	PricingFlat,
	PricingMonthly,
	PricingPerWeek,
	PricingPerDay,
	PricingPerSpot,
	PricingPerAd,
	PricingPerSend,
	PricingPerPost,
	PricingPerStory,
	PricingPerEpisode,
	PricingCPM,
	PricingCPV,
	PricingCPC,
}

// ParsePricingModel validates a raw pricing model tag from a catalog document
func ParsePricingModel(s string) (PricingModel, error) {
	for _, m := range AllPricingModels {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPricingModel, s)
}

// ImpressionBased reports whether the model prices by delivered volume
// (CPM/CPV/CPC) rather than by placement count
func (m PricingModel) ImpressionBased() bool {
	return m == PricingCPM || m == PricingCPV || m == PricingCPC
}

// PerformanceMetrics are the derived audience numbers attached to one line
// item. They are recomputed, never appended, on every sync pass; only the
// Guaranteed flag survives recomputation.
type PerformanceMetrics struct {
	AudienceSize        float64 `json:"audience_size"`
	OccurrencesPerMonth float64 `json:"occurrences_per_month"`
	ImpressionsPerMonth float64 `json:"impressions_per_month"`
	Guaranteed          bool    `json:"guaranteed"`
}

// AdvertisingLineItem is one purchasable unit inside a channel: an ad size,
// a newsletter placement, a radio spot class, a social post slot.
type AdvertisingLineItem struct {
	Channel      ChannelKind         `json:"channel"`
	ItemName     string              `json:"item_name"`
	ItemPath     string              `json:"item_path"`
	PricingModel PricingModel        `json:"pricing_model"`
	UnitPrice    float64             `json:"unit_price"`
	SpotsPerShow *int                `json:"spots_per_show,omitempty"`
	DaysPerWeek  *int                `json:"days_per_week,omitempty"`
	Performance  *PerformanceMetrics `json:"performance_metrics,omitempty"`
}

// PrintChannel carries a print outlet's raw metrics and inventory
type PrintChannel struct {
	Frequency     string                `json:"frequency,omitempty"`
	Circulation   *float64              `json:"circulation,omitempty"`
	Opportunities []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// NewsletterChannel carries an email newsletter's raw metrics and inventory
type NewsletterChannel struct {
	Frequency     string                `json:"frequency,omitempty"`
	Subscribers   *float64              `json:"subscribers,omitempty"`
	Opportunities []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// PodcastChannel carries a podcast's raw metrics and inventory
type PodcastChannel struct {
	Frequency        string                `json:"frequency,omitempty"`
	AverageListeners *float64              `json:"average_listeners,omitempty"`
	AverageDownloads *float64              `json:"average_downloads,omitempty"`
	Opportunities    []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// RadioShow is one scheduled program on a radio station; its spot inventory
// is sold separately from the station-wide inventory
type RadioShow struct {
	Name             string                `json:"name"`
	Frequency        string                `json:"frequency,omitempty"`
	AverageListeners *float64              `json:"average_listeners,omitempty"`
	DaysPerWeek      *int                  `json:"days_per_week,omitempty"`
	Opportunities    []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// RadioChannel is two-level: station-wide inventory plus per-show inventory
type RadioChannel struct {
	Listeners     *float64              `json:"listeners,omitempty"`
	Opportunities []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
	Shows         []RadioShow           `json:"shows,omitempty"`
}

// SocialChannel carries a social account's raw metrics and inventory
type SocialChannel struct {
	Followers     *float64              `json:"followers,omitempty"`
	Opportunities []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// StreamingChannel carries a streaming video outlet's raw metrics and inventory
type StreamingChannel struct {
	Frequency     string                `json:"frequency,omitempty"`
	Subscribers   *float64              `json:"subscribers,omitempty"`
	AverageViews  *float64              `json:"average_views,omitempty"`
	Opportunities []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// WebsiteChannel carries a website's raw metrics and inventory
type WebsiteChannel struct {
	MonthlyVisitors  *float64              `json:"monthly_visitors,omitempty"`
	MonthlyPageViews *float64              `json:"monthly_page_views,omitempty"`
	Opportunities    []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// EventsChannel carries an event series' raw metrics and inventory
type EventsChannel struct {
	Frequency         string                `json:"frequency,omitempty"`
	AverageAttendance *float64              `json:"average_attendance,omitempty"`
	ExpectedAttendees *float64              `json:"expected_attendees,omitempty"`
	Opportunities     []AdvertisingLineItem `json:"ad_opportunities,omitempty"`
}

// Publication is one outlet's synced inventory snapshot. Channel pointers
// are nil when the outlet does not operate that channel; the raw metric
// fields are owned by the catalog store and never mutated here.
type Publication struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	GeoMarket  string             `json:"geo_market,omitempty"`
	Print      *PrintChannel      `json:"print,omitempty"`
	Newsletter *NewsletterChannel `json:"newsletter,omitempty"`
	Radio      *RadioChannel      `json:"radio,omitempty"`
	Podcast    *PodcastChannel    `json:"podcast,omitempty"`
	Social     *SocialChannel     `json:"social,omitempty"`
	Streaming  *StreamingChannel  `json:"streaming,omitempty"`
	Website    *WebsiteChannel    `json:"website,omitempty"`
	Events     *EventsChannel     `json:"events,omitempty"`
}

// SelectedItem is a line item plus the operator's purchase choices. Excluded
// items stay in the selection but contribute zero to every aggregate.
type SelectedItem struct {
	Item             AdvertisingLineItem `json:"item"`
	CurrentFrequency float64             `json:"current_frequency"`
	IsExcluded       bool                `json:"is_excluded"`
}

// PublicationSelection is one publication's ordered picks within a package
type PublicationSelection struct {
	PublicationID   string         `json:"publication_id"`
	PublicationName string         `json:"publication_name,omitempty"`
	GeoMarket       string         `json:"geo_market,omitempty"`
	Items           []SelectedItem `json:"items"`
}

// PackageSelection is the unit the reach aggregator consumes
type PackageSelection struct {
	Publications []PublicationSelection `json:"publications"`
}

// OverlapConfig holds the heuristic audience-overlap coefficients. Each is a
// fraction (<1) of the summed audience assumed to be unique.
type OverlapConfig struct {
	Default               float64 `json:"default"`
	SinglePubMultiChannel float64 `json:"single_pub_multi_channel"`
	MultiPubSameGeo       float64 `json:"multi_pub_same_geo"`
	MultiPubDiffGeo       float64 `json:"multi_pub_diff_geo"`
}

// DefaultOverlap returns the stock coefficients, usable with zero configuration
func DefaultOverlap() OverlapConfig {
	return OverlapConfig{
		Default:               0.70,
		SinglePubMultiChannel: 0.60,
		MultiPubSameGeo:       0.75,
		MultiPubDiffGeo:       0.85,
	}
}

// CalculationMethod classifies which metric family produced a reach estimate
type CalculationMethod string

const (
	MethodImpressions CalculationMethod = "impressions"
	MethodAudience    CalculationMethod = "audience"
	MethodMixed       CalculationMethod = "mixed"
)

// ReachSummary is the aggregator's output. It is recomputed from scratch on
// every call and never persisted on its own.
type ReachSummary struct {
	TotalMonthlyImpressions float64                 `json:"total_monthly_impressions"`
	TotalMonthlyExposures   float64                 `json:"total_monthly_exposures"`
	ChannelAudiences        map[ChannelKind]float64 `json:"channel_audiences"`
	EstimatedTotalReach     float64                 `json:"estimated_total_reach"`
	EstimatedUniqueReach    float64                 `json:"estimated_unique_reach"`
	CalculationMethod       CalculationMethod       `json:"calculation_method"`
	OverlapFactor           float64                 `json:"overlap_factor"`
	PublicationsCount       int                     `json:"publications_count"`
	ChannelsCount           int                     `json:"channels_count"`
}

// RoundReach rounds an overlap-adjusted audience to a whole person count
func RoundReach(v float64) float64 {
	return math.Round(v)
}

// ItemCost is one line item's contribution to monthly spend
type ItemCost struct {
	ItemPath     string       `json:"item_path"`
	ItemName     string       `json:"item_name"`
	Channel      ChannelKind  `json:"channel"`
	PricingModel PricingModel `json:"pricing_model"`
	MonthlyCost  float64      `json:"monthly_cost"`
	Excluded     bool         `json:"excluded"`
}

// QuoteRequest asks for one package scenario to be priced
type QuoteRequest struct {
	PackageName string           `json:"package_name,omitempty"`
	Selection   PackageSelection `json:"selection"`
}

// PackageQuote is the priced view of one package scenario
type PackageQuote struct {
	PackageName      string       `json:"package_name,omitempty"`
	Reach            ReachSummary `json:"reach"`
	ItemCosts        []ItemCost   `json:"item_costs"`
	TotalMonthlyCost float64      `json:"total_monthly_cost"`
	Timestamp        time.Time    `json:"timestamp"`
}

// BatchQuoteRequest compares several candidate packages in one call
type BatchQuoteRequest struct {
	Scenarios []QuoteRequest `json:"scenarios"`
}

// ScenarioResult is a single scenario's outcome in a batch comparison
type ScenarioResult struct {
	PackageName string        `json:"package_name,omitempty"`
	Quote       *PackageQuote `json:"quote,omitempty"`
	Error       string        `json:"error,omitempty"`
	Success     bool          `json:"success"`
	Timestamp   time.Time     `json:"timestamp,omitempty"`
}

// BatchSummary provides summary statistics for batch operations
type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BatchQuoteResponse represents the response for a batch comparison
type BatchQuoteResponse struct {
	Results   []ScenarioResult `json:"results"`
	Summary   BatchSummary     `json:"summary"`
	Timestamp time.Time        `json:"timestamp"`
}

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry for database storage
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
