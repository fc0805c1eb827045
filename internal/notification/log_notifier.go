package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier records events to the application log. It stands in for
// the external mail dispatcher in environments without one configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{
		log: log.With(zap.String("notifier", "log")),
	}
}

func (n *LogNotifier) Send(_ context.Context, event Event) error {
	n.log.Info("Booking notification",
		zap.String("kind", string(event.Kind)),
		zap.String("reference_code", event.ReferenceCode),
		zap.String("customer", event.CustomerName),
		zap.String("email", event.CustomerEmail),
		zap.Strings("services", event.Services),
		zap.Time("check_in", event.CheckIn),
		zap.Time("check_out", event.CheckOut),
		zap.String("message", event.Message),
	)
	return nil
}
