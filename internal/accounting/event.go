package accounting

import "time"

// TopicLinkVisited carries one event per successful redirect decision.
const TopicLinkVisited = "link.visited"

// LinkVisitedEvent is emitted after the resolver decides to redirect. It is
// the detached half of hit accounting: the visitor's redirect never waits on
// it.
type LinkVisitedEvent struct {
	ID         string    `json:"id"`
	AccessedAt time.Time `json:"accessedAt"`
	ClientIP   string    `json:"clientIp,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
}
