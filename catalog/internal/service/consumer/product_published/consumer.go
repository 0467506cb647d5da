package prodconsumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/you-humble/biomarket/catalog/internal/model"
	"github.com/you-humble/biomarket/platform/kafka"
	"github.com/you-humble/biomarket/platform/logger"
)

const (
	headerEventType    = kafka.HeaderEventType
	eventTypePublished = "product.published"
)

type Converter interface {
	ProductPublishedToModel(data []byte) (model.ProductPublished, error)
}

type Service interface {
	HandlePublished(ctx context.Context, event model.ProductPublished) error
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	svc      Service
}

func NewProductPublishedConsumer(
	consumer kafka.Consumer,
	conv Converter,
	svc Service,
) *service {
	return &service{consumer: consumer, conv: conv, svc: svc}
}

func (s *service) RunProductPublishedConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting product published consumer")

	if err := s.consumer.Consume(ctx, s.productPublishedHandler); err != nil {
		logger.Error(ctx, "Consume from product.published topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *service) productPublishedHandler(ctx context.Context, msg kafka.Message) error {
	// Сообщения без заголовка считаем опубликованными продуктами.
	if et := msg.Header(headerEventType); et != "" && et != eventTypePublished {
		logger.Debug(ctx, "Skip foreign event", logger.String("event_type", et))
		return nil
	}

	event, err := s.conv.ProductPublishedToModel(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode ProductPublished", logger.ErrorF(err))
		return kafka.Permanent(fmt.Errorf("converter product_published_to_model error: %w", err))
	}

	if err := s.svc.HandlePublished(ctx, event); err != nil {
		logger.Error(ctx, "consumer.HandlePublished",
			logger.String("business_id", event.BusinessID),
			logger.String("cid", event.CID),
			logger.ErrorF(err),
		)
		if isRejected(err) {
			return kafka.Permanent(err)
		}
		return err
	}

	return nil
}

// isRejected: документ не пройдёт валидацию и при повторной загрузке.
func isRejected(err error) bool {
	return errors.Is(err, model.ErrValidation) || errors.Is(err, model.ErrInconsistentProportions)
}
