package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskRequestEvent asks for a background task to be created. Services emit
// it instead of constructing tasks themselves, which keeps them free of the
// task package's dependencies.
type TaskRequestEvent struct {
	ID uuid.UUID `json:"id"`

	// Type names the task kind the handler should create.
	Type string `json:"type"`

	// Payload carries the task-specific data as raw JSON.
	Payload json.RawMessage `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent builds an event of the given type, serializing the
// payload to JSON.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   data,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler receives emitted events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter publishes events to whatever handlers are registered.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
