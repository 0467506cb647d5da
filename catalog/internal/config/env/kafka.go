package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers                   []string `env:"KAFKA_BROKERS,required"`
	ProductPublishedTopicName string   `env:"PRODUCT_PUBLISHED_TOPIC_NAME,required"`
	ConsumerGroupID           string   `env:"PRODUCT_PUBLISHED_CONSUMER_GROUP_ID,required"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Brokers() []string             { return cfg.raw.Brokers }
func (cfg *kafka) ProductPublishedTopic() string { return cfg.raw.ProductPublishedTopicName }
func (cfg *kafka) ConsumerGroupID() string       { return cfg.raw.ConsumerGroupID }

func (cfg *kafka) ProductPublishedConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}

// Sync producer требует Return.Successes.
func (cfg *kafka) ProductPublishedProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}
