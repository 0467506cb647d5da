package consumer

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/you-humble/biomarket/platform/kafka"
	"github.com/you-humble/biomarket/platform/logger"
)

// groupHandler реализует sarama.ConsumerGroupHandler.
type groupHandler struct {
	handler     kafka.MessageHandler
	logger      Logger
	maxAttempts int
	retryDelay  time.Duration
}

func NewGroupHandler(handler kafka.MessageHandler, log Logger, middlewares ...kafka.Middleware) *groupHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return &groupHandler{
		handler:     handler,
		logger:      log,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

func (g *groupHandler) Setup(session sarama.ConsumerGroupSession) error {
	g.logger.Info(session.Context(), "Kafka session started",
		zap.String("member_id", session.MemberID()),
		zap.Int32("generation_id", session.GenerationID()),
	)
	return nil
}

func (g *groupHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	g.logger.Info(session.Context(), "Kafka session finished", zap.String("member_id", session.MemberID()))
	return nil
}

func (g *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				g.logger.Info(session.Context(), "Kafka message channel closed")
				return nil
			}

			if !g.process(session.Context(), toMessage(message)) {
				// сессия закрыта во время ретраев, сообщение будет перечитано
				return nil
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			g.logger.Info(session.Context(), "Kafka session context done")
			return nil
		}
	}
}

// process вызывает обработчик до maxAttempts раз. Возвращает false, только
// если ctx отменён до успешной попытки; после исчерпания попыток или
// kafka.Permanent ошибки сообщение пропускается.
func (g *groupHandler) process(ctx context.Context, msg kafka.Message) bool {
	ctx = logger.WithContext(ctx,
		zap.String("topic", msg.Topic),
		zap.Int32("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	for attempt := 1; ; attempt++ {
		err := g.handler(ctx, msg)
		if err == nil {
			return true
		}

		if kafka.IsPermanent(err) {
			g.logger.Error(ctx, "Kafka handler failed permanently, message skipped",
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return true
		}

		if attempt >= g.maxAttempts {
			g.logger.Error(ctx, "Kafka handler failed, message skipped",
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return true
		}

		g.logger.Warn(ctx, "Kafka handler error, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(g.retryDelay * time.Duration(attempt)):
		}
	}
}

func toMessage(m *sarama.ConsumerMessage) kafka.Message {
	return kafka.Message{
		Key:            m.Key,
		Value:          m.Value,
		Topic:          m.Topic,
		Partition:      m.Partition,
		Offset:         m.Offset,
		Timestamp:      m.Timestamp,
		BlockTimestamp: m.BlockTimestamp,
		Headers:        extractHeaders(m.Headers),
	}
}

func extractHeaders(headers []*sarama.RecordHeader) map[string][]byte {
	result := make(map[string][]byte, len(headers))
	for _, h := range headers {
		if h != nil && h.Key != nil {
			result[string(h.Key)] = h.Value
		}
	}
	return result
}
