package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter dispatches events synchronously to handlers
// registered in the same process.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates an emitter with no handlers registered.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes a handler to all future events.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("event handler registered", "handler_count", count)
}

// EmitEvent delivers the event to every registered handler. A handler
// error does not stop delivery to the rest; the first error is returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *TaskRequestEvent) error {
	e.mu.RLock()
	handlers := make([]EventHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	if len(handlers) == 0 {
		e.logger.Warn("event emitted with no handlers registered",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var firstErr error
	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("event handler failed",
				"error", err,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
