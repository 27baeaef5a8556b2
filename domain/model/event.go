package model

import "time"

const (
	EventVideoPublished = "video.published"
	EventVideoDeleted   = "video.deleted"
	EventUserRegistered = "user.registered"
)

// DomainEvent is published to the configured message broker after a state change.
type DomainEvent struct {
	Type        string            `json:"type"`
	AggregateID string            `json:"aggregateId"`
	ActorID     string            `json:"actorId"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Activity types pushed to subject owners over the realtime stream.
const (
	ActivityLike         = "like"
	ActivitySubscription = "subscription"
	ActivityComment      = "comment"
)

// ActivityEvent tells a user that someone interacted with something they own.
type ActivityEvent struct {
	Type        string    `json:"type"`
	ActorID     string    `json:"actorId"`
	SubjectID   string    `json:"subjectId"`
	SubjectType string    `json:"subjectType"`
	At          time.Time `json:"at"`
}
