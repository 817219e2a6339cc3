package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-behavior/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook forwards resolution activity to a go-users ActivitySink, so store
// resolutions land in the same audit trail as user activity.
type Hook struct {
	Sink usertypes.ActivitySink
	// UserID is recorded as the acting user when events carry no actor.
	UserID uuid.UUID
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" || normalized.ObjectID == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	actor := parseUUID(normalized.ActorID)
	user := actor
	if user == uuid.Nil {
		user = h.UserID
	}
	data := map[string]any{}
	for key, value := range normalized.Metadata {
		data[key] = value
	}
	if strings.HasPrefix(normalized.ObjectType, "behavior.") {
		data["source"] = "behavior"
	}

	return h.Sink.Log(ctx, usertypes.ActivityRecord{
		ActorID:    actor,
		UserID:     user,
		TenantID:   parseUUID(normalized.TenantID),
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       data,
		OccurredAt: normalized.OccurredAt,
	})
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
