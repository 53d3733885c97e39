package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers account emails. Implementations live in pkg/mailer.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendOTPEmail(ctx context.Context, to, name, code string) error
	SendPasswordChangedEmail(ctx context.Context, to, name string) error
}

const notifyTimeout = 30 * time.Second

// dispatch runs a notification in its own goroutine. Failures are logged
// and never reach the request that triggered them. Only the customer id is
// logged, never the recipient address.
func dispatch(log *zap.Logger, kind string, customerID uuid.UUID, send func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Notification panicked",
					zap.String("kind", kind),
					zap.String("customer_id", customerID.String()),
					zap.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			log.Error("Failed to send notification",
				zap.String("kind", kind),
				zap.String("customer_id", customerID.String()),
				zap.Error(err),
			)
			return
		}

		log.Info("Notification sent",
			zap.String("kind", kind),
			zap.String("customer_id", customerID.String()),
		)
	}()
}
