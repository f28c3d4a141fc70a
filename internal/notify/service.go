package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinicflow/scheduler/internal/events"
	"github.com/clinicflow/scheduler/pkg/logging"
)

// Dispatcher forwards a delivered event to an external channel. The
// production implementation lives outside this core; tests and memory
// mode use the logging stub.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventType string, payload json.RawMessage) error
}

// Service drains scheduler events from the outbox and forwards them to
// the dispatcher. Implements events.DeliveryHandler.
type Service struct {
	dispatcher Dispatcher
	logger     *logging.Logger
}

// NewService creates a notification delivery handler.
func NewService(dispatcher Dispatcher, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{dispatcher: dispatcher, logger: logger}
}

// Handle forwards one outbox entry.
func (s *Service) Handle(ctx context.Context, entry events.OutboxEntry) error {
	if s.dispatcher == nil {
		s.logger.Debug("notify: no dispatcher configured, dropping event", "type", entry.Type)
		return nil
	}
	if err := s.dispatcher.Dispatch(ctx, entry.Type, entry.Payload); err != nil {
		return fmt.Errorf("notify: dispatch %s: %w", entry.Type, err)
	}
	s.logger.Info("notify: event dispatched", "type", entry.Type, "event_id", entry.ID)
	return nil
}

// LogDispatcher logs events instead of delivering them.
type LogDispatcher struct {
	logger *logging.Logger
}

// NewLogDispatcher creates a logging-only dispatcher.
func NewLogDispatcher(logger *logging.Logger) *LogDispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogDispatcher{logger: logger}
}

// Dispatch logs the event payload.
func (d *LogDispatcher) Dispatch(ctx context.Context, eventType string, payload json.RawMessage) error {
	d.logger.Info("would deliver notification", "type", eventType, "payload", string(payload))
	return nil
}

var (
	_ events.DeliveryHandler = (*Service)(nil)
	_ Dispatcher             = (*LogDispatcher)(nil)
)
