package catalog

import (
	"fmt"

	"github.com/tidwall/gjson"

	"mediapack/internal/models"
)

// SnapshotParser implements Parser over the catalog store's JSON documents.
// Every field access is optional-safe: absent metrics become nil pointers,
// absent opportunity arrays become nil slices. Only two things fail a parse:
// a document that is not usable JSON, and an enum tag outside the closed
// channel/pricing vocabularies (schema drift upstream).
type SnapshotParser struct{}

// NewParser creates a new snapshot parser
func NewParser() Parser {
	return &SnapshotParser{}
}

// ParseSnapshot turns a raw catalog document into a typed publication
func (p *SnapshotParser) ParseSnapshot(data []byte) (*models.Publication, error) {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", models.ErrInvalidSnapshot)
	}

	doc := gjson.ParseBytes(data)
	id := doc.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("%w: missing publication id", models.ErrInvalidSnapshot)
	}

	pub := &models.Publication{
		ID:        id,
		Name:      doc.Get("name").String(),
		GeoMarket: doc.Get("geoMarket").String(),
	}

	var parseErr error
	doc.Get("distributionChannels").ForEach(func(key, value gjson.Result) bool {
		kind, err := models.ParseChannelKind(key.String())
		if err != nil {
			parseErr = models.NewPublicationError(id, "unsupported channel in snapshot", err)
			return false
		}
		if err := p.parseChannel(pub, kind, value); err != nil {
			parseErr = models.NewPublicationError(id, "malformed channel in snapshot", err)
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return pub, nil
}

// parseChannel fills one channel slot on the publication. The dispatch is
// exhaustive over the channel enumeration.
func (p *SnapshotParser) parseChannel(pub *models.Publication, kind models.ChannelKind, v gjson.Result) error {
	path := fmt.Sprintf("distributionChannels.%s", kind)

	items, err := p.parseItems(kind, v, path)
	if err != nil {
		return err
	}

	switch kind {
	case models.ChannelPrint:
		pub.Print = &models.PrintChannel{
			Frequency:     v.Get("frequency").String(),
			Circulation:   floatPtr(v.Get("circulation")),
			Opportunities: items,
		}
	case models.ChannelNewsletter:
		pub.Newsletter = &models.NewsletterChannel{
			Frequency:     v.Get("frequency").String(),
			Subscribers:   floatPtr(v.Get("subscribers")),
			Opportunities: items,
		}
	case models.ChannelRadio:
		shows, err := p.parseShows(v, path)
		if err != nil {
			return err
		}
		pub.Radio = &models.RadioChannel{
			Listeners:     floatPtr(v.Get("listeners")),
			Opportunities: items,
			Shows:         shows,
		}
	case models.ChannelPodcast:
		pub.Podcast = &models.PodcastChannel{
			Frequency:        v.Get("frequency").String(),
			AverageListeners: floatPtr(v.Get("averageListeners")),
			AverageDownloads: floatPtr(v.Get("averageDownloads")),
			Opportunities:    items,
		}
	case models.ChannelSocial:
		pub.Social = &models.SocialChannel{
			Followers:     floatPtr(v.Get("followers")),
			Opportunities: items,
		}
	case models.ChannelStreaming:
		pub.Streaming = &models.StreamingChannel{
			Frequency:     v.Get("frequency").String(),
			Subscribers:   floatPtr(v.Get("subscribers")),
			AverageViews:  floatPtr(v.Get("averageViews")),
			Opportunities: items,
		}
	case models.ChannelWebsite:
		pub.Website = &models.WebsiteChannel{
			MonthlyVisitors:  floatPtr(v.Get("monthlyVisitors")),
			MonthlyPageViews: floatPtr(v.Get("monthlyPageViews")),
			Opportunities:    items,
		}
	case models.ChannelEvents:
		pub.Events = &models.EventsChannel{
			Frequency:         v.Get("frequency").String(),
			AverageAttendance: floatPtr(v.Get("averageAttendance")),
			ExpectedAttendees: floatPtr(v.Get("expectedAttendees")),
			Opportunities:     items,
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownChannel, kind)
	}
	return nil
}

// parseShows reads a radio channel's show list
func (p *SnapshotParser) parseShows(v gjson.Result, basePath string) ([]models.RadioShow, error) {
	raw := v.Get("shows")
	if !raw.Exists() {
		return nil, nil
	}

	var shows []models.RadioShow
	for i, s := range raw.Array() {
		showPath := fmt.Sprintf("%s.shows.%d", basePath, i)
		items, err := p.parseItems(models.ChannelRadio, s, showPath)
		if err != nil {
			return nil, err
		}
		shows = append(shows, models.RadioShow{
			Name:             s.Get("name").String(),
			Frequency:        s.Get("frequency").String(),
			AverageListeners: floatPtr(s.Get("averageListeners")),
			DaysPerWeek:      intPtr(s.Get("daysPerWeek")),
			Opportunities:    items,
		})
	}
	return shows, nil
}

// parseItems reads an adOpportunities array. The item path records where the
// item sits in the source document, which the builder uses for identity and
// grouping.
func (p *SnapshotParser) parseItems(kind models.ChannelKind, v gjson.Result, basePath string) ([]models.AdvertisingLineItem, error) {
	raw := v.Get("adOpportunities")
	if !raw.Exists() {
		return nil, nil
	}

	var items []models.AdvertisingLineItem
	for i, entry := range raw.Array() {
		itemPath := fmt.Sprintf("%s.adOpportunities.%d", basePath, i)

		model, err := models.ParsePricingModel(entry.Get("pricingModel").String())
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", itemPath, err)
		}

		item := models.AdvertisingLineItem{
			Channel:      kind,
			ItemName:     entry.Get("name").String(),
			ItemPath:     itemPath,
			PricingModel: model,
			UnitPrice:    entry.Get("unitPrice").Float(),
			SpotsPerShow: intPtr(entry.Get("spotsPerShow")),
			DaysPerWeek:  intPtr(entry.Get("daysPerWeek")),
		}

		// A snapshot can pre-declare guaranteed=false; seed metrics so the
		// sync pass preserves the flag instead of defaulting it to true.
		if g := entry.Get("performanceMetrics.guaranteed"); g.Exists() && !g.Bool() {
			item.Performance = &models.PerformanceMetrics{Guaranteed: false}
		}

		items = append(items, item)
	}
	return items, nil
}

func floatPtr(v gjson.Result) *float64 {
	if !v.Exists() {
		return nil
	}
	f := v.Float()
	return &f
}

func intPtr(v gjson.Result) *int {
	if !v.Exists() {
		return nil
	}
	n := int(v.Int())
	return &n
}
