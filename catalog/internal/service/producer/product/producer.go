package prodproducer

import (
	"context"
	"fmt"

	"github.com/you-humble/biomarket/catalog/internal/model"
	"github.com/you-humble/biomarket/platform/kafka"
)

const (
	HeaderEventType    = kafka.HeaderEventType
	EventTypePublished = "product.published"
)

type Converter interface {
	ProductPublishedToPayload(m model.ProductPublished) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewProductProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// SendProductPublished keys the message by business id so that updates of
// one product stay ordered within a partition.
func (s *service) SendProductPublished(ctx context.Context, event model.ProductPublished) error {
	payload, err := s.conv.ProductPublishedToPayload(event)
	if err != nil {
		return fmt.Errorf("converter product_published_to_payload error: %w", err)
	}

	err = s.producer.Send(ctx, []byte(event.BusinessID), payload,
		kafka.Header{Key: HeaderEventType, Value: []byte(EventTypePublished)},
	)
	if err != nil {
		return fmt.Errorf("producer to product.published topic error: %w", err)
	}

	return nil
}
