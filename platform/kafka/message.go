package kafka

import "time"

// Message: универсальная обёртка над сообщением Kafka.
type Message struct {
	Headers        map[string][]byte
	Timestamp      time.Time
	BlockTimestamp time.Time

	Key       []byte
	Value     []byte
	Topic     string
	Partition int32
	Offset    int64
}

// Header возвращает значение заголовка или пустую строку.
func (m Message) Header(key string) string {
	if m.Headers == nil {
		return ""
	}
	return string(m.Headers[key])
}
