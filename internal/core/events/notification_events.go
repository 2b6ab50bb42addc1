package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeNotificationSuccess = "notification.success"
	EventTypeNotificationError   = "notification.error"
)

// NotificationEvent is a transient user-facing message, the CLI's stand-in for a toast.
type NotificationEvent struct {
	BaseEvent
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func NewNotificationEvent(eventType, message string, cause error) *NotificationEvent {
	data := map[string]interface{}{
		"message": message,
	}
	if cause != nil {
		data["cause"] = cause.Error()
	}
	return &NotificationEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data:      data,
		},
		Message: message,
		Cause:   cause,
	}
}

// Notifier publishes notifications on a bus synchronously so they are shown
// before the triggering command returns.
type Notifier struct {
	bus *EventBus
}

func NewNotifier(bus *EventBus) *Notifier {
	return &Notifier{bus: bus}
}

func (n *Notifier) Success(ctx context.Context, message string) {
	_ = n.bus.Publish(ctx, NewNotificationEvent(EventTypeNotificationSuccess, message, nil))
}

func (n *Notifier) Error(ctx context.Context, message string, cause error) {
	_ = n.bus.Publish(ctx, NewNotificationEvent(EventTypeNotificationError, message, cause))
}
