package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/you-humble/biomarket/platform/kafka"
)

type consumerMetrics struct {
	handled  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Metrics считает обработанные сообщения по топику и результату.
func Metrics(reg prometheus.Registerer, namespace string) kafka.Middleware {
	m := &consumerMetrics{
		handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "messages_total",
			Help:      "Number of consumed messages by topic and outcome.",
		}, []string{"topic", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "handle_duration_seconds",
			Help:      "Message handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"topic"}),
	}
	if reg != nil {
		reg.MustRegister(m.handled, m.duration)
	}

	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) error {
			start := time.Now()
			err := next(ctx, msg)
			m.duration.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())

			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			m.handled.WithLabelValues(msg.Topic, outcome).Inc()

			return err
		}
	}
}
