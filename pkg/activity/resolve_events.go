package activity

import (
	"strings"
	"time"
)

const (
	// ObjectTypeStore is the object type of events about a resolved store.
	ObjectTypeStore = "behavior.store"
	// ObjectTypeResolution is the object type of events about an attempt
	// that did not produce a store.
	ObjectTypeResolution = "behavior.resolution"

	VerbStoreResolved    = "behavior.store.resolved"
	VerbResolveRestarted = "behavior.resolve.restarted"
	VerbResolveFailed    = "behavior.resolve.failed"
)

// ResolutionEventInput carries the fields shared by resolution events.
type ResolutionEventInput struct {
	ActorID    string
	TenantID   string
	Channel    string
	StoreID    string
	ResolveID  string
	Attempt    int
	Behaviors  []string
	Stale      string
	Edges      int
	Err        error
	Duration   time.Duration
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildStoreResolvedEvent describes a completed resolution.
func BuildStoreResolvedEvent(input ResolutionEventInput) Event {
	objectID := strings.TrimSpace(input.StoreID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.ResolveID)
	}
	return buildResolutionEvent(VerbStoreResolved, ObjectTypeStore, objectID, input)
}

// BuildResolveRestartedEvent describes an attempt abandoned because
// input.Stale had been evaluated too early.
func BuildResolveRestartedEvent(input ResolutionEventInput) Event {
	return buildResolutionEvent(VerbResolveRestarted, ObjectTypeResolution, input.ResolveID, input)
}

// BuildResolveFailedEvent describes a resolution aborted by input.Err.
func BuildResolveFailedEvent(input ResolutionEventInput) Event {
	return buildResolutionEvent(VerbResolveFailed, ObjectTypeResolution, input.ResolveID, input)
}

func buildResolutionEvent(verb, objectType, objectID string, input ResolutionEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	if input.Attempt > 0 {
		metadata["attempt"] = input.Attempt
	}
	if len(input.Behaviors) > 0 {
		metadata["behaviors"] = append([]string{}, input.Behaviors...)
	}
	if input.Stale != "" {
		metadata["stale_behavior"] = input.Stale
	}
	if input.Edges > 0 {
		metadata["edges"] = input.Edges
	}
	if input.Err != nil {
		metadata["error"] = input.Err.Error()
	}
	if input.Duration > 0 {
		metadata["duration_ms"] = input.Duration.Milliseconds()
	}
	if input.ResolveID != "" && input.ResolveID != objectID {
		metadata["resolve_id"] = input.ResolveID
	}

	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		objectID = objectType
	}
	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
