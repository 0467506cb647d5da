package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/you-humble/biomarket/platform/kafka"
)

type InfoLogger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
}

// Logging пишет одну строку на сообщение: после обработчика, с длительностью и итогом.
func Logging(logger InfoLogger) kafka.Middleware {
	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) error {
			start := time.Now()
			err := next(ctx, msg)

			fields := []zap.Field{
				zap.String("topic", msg.Topic),
				zap.Int32("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.String("key", string(msg.Key)),
				zap.Duration("took", time.Since(start)),
			}
			if et := msg.Header(kafka.HeaderEventType); et != "" {
				fields = append(fields, zap.String("event_type", et))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Info(ctx, "Kafka msg handling failed", fields...)
				return err
			}

			logger.Info(ctx, "Kafka msg handled", fields...)
			return nil
		}
	}
}
