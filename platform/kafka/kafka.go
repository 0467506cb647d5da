package kafka

import (
	"context"
)

// HeaderEventType: заголовок с типом доменного события.
const HeaderEventType = "event_type"

type (
	Middleware     func(next MessageHandler) MessageHandler
	MessageHandler func(ctx context.Context, msg Message) error
)

type Consumer interface {
	Consume(ctx context.Context, handler MessageHandler) error
}

type Producer interface {
	Send(ctx context.Context, key, value []byte, headers ...Header) error
}

// Header описывает заголовок исходящего сообщения.
type Header struct {
	Key   string
	Value []byte
}
