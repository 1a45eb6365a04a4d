package events

import "context"

// Event types
const (
	EventCampaignStatusChanged    = "campaign_status_changed"
	EventApplicationStatusChanged = "application_status_changed"
	EventKOLInvited               = "kol_invited"
)

// Streams
const (
	StreamCampaign    = "events:campaign"
	StreamApplication = "events:application"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
