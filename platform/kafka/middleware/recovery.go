package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/you-humble/biomarket/platform/kafka"
)

type ErrorLogger interface {
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

// Recovery превращает панику обработчика в ошибку; дальше её видит цикл повторов.
func Recovery(logger ErrorLogger) kafka.Middleware {
	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				logger.Error(ctx, "Recovered from panic in message processing",
					zap.String("topic", msg.Topic),
					zap.Int32("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = fmt.Errorf("panic in kafka handler at %s/%d/%d: %v", msg.Topic, msg.Partition, msg.Offset, r)
			}()
			return next(ctx, msg)
		}
	}
}
