package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	DatabaseName() string
	ProductsCollection() string
	DSN() string
}

type ContentStore interface {
	GatewayURL() string
	APIURL() string
	RequestTimeout() time.Duration
}

type Cache interface {
	CatalogTTL() time.Duration
	DescriptionTTL() time.Duration
	ImageTTL() time.Duration
	EnrichConcurrency() int
	MetricsNamespace() string
}

type Kafka interface {
	Brokers() []string
	ProductPublishedTopic() string
	ConsumerGroupID() string
	ProductPublishedConsumerConfig() *sarama.Config
	ProductPublishedProducerConfig() *sarama.Config
}
