package state

import "go.uber.org/zap"

// Notifier receives user-facing confirmations of completed mutations.
// Delivery is advisory and never affects the mutation.
type Notifier interface {
	Success(message string)
}

// NopNotifier drops every confirmation
type NopNotifier struct{}

func (NopNotifier) Success(string) {}

// LogNotifier writes confirmations to a logger
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Success(message string) {
	if n.Logger != nil {
		n.Logger.Info("Notification", zap.String("message", message))
	}
}
