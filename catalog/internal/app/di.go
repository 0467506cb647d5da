package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/you-humble/biomarket/catalog/internal/cache"
	ipfsclient "github.com/you-humble/biomarket/catalog/internal/client/http/ipfs"
	"github.com/you-humble/biomarket/catalog/internal/config"
	"github.com/you-humble/biomarket/catalog/internal/converter"
	"github.com/you-humble/biomarket/catalog/internal/model"
	repository "github.com/you-humble/biomarket/catalog/internal/repository/product"
	service "github.com/you-humble/biomarket/catalog/internal/service/catalog"
	prodconsumer "github.com/you-humble/biomarket/catalog/internal/service/consumer/product_published"
	prodproducer "github.com/you-humble/biomarket/catalog/internal/service/producer/product"
	thttp "github.com/you-humble/biomarket/catalog/internal/transport/http/catalog/v1"
	"github.com/you-humble/biomarket/platform/closer"
	"github.com/you-humble/biomarket/platform/kafka"
	"github.com/you-humble/biomarket/platform/kafka/consumer"
	"github.com/you-humble/biomarket/platform/kafka/middleware"
	"github.com/you-humble/biomarket/platform/kafka/producer"
	"github.com/you-humble/biomarket/platform/logger"
)

type Converter interface {
	ProductPublishedToModel(data []byte) (model.ProductPublished, error)
	ProductPublishedToPayload(m model.ProductPublished) ([]byte, error)
}

type ContentStore interface {
	service.ContentStore
	cache.ContentFetcher
}

type ProductConsumer interface {
	RunProductPublishedConsume(ctx context.Context) error
}

type CatalogService interface {
	thttp.CatalogService
	prodconsumer.Service
}

type Handler interface {
	Routes(r chi.Router)
}

type di struct {
	mongo      *mongo.Client
	collection *mongo.Collection
	repository service.ProductRepository

	registry *prometheus.Registry

	contentStore ContentStore
	cache        *cache.Cache

	consumerGroup           sarama.ConsumerGroup
	productPublishedConsume kafka.Consumer
	productConsumer         ProductConsumer

	syncProducer            sarama.SyncProducer
	productPublishedProduce kafka.Producer
	productProducer         service.PublishedSender

	conv Converter

	service CatalogService
	handler Handler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) ProductsCollection(ctx context.Context) *mongo.Collection {
	if d.collection == nil {
		d.collection = d.MongoDB(ctx).
			Database(config.C().Mongo.DatabaseName()).
			Collection(config.C().Mongo.ProductsCollection())

		if err := repository.EnsureIndexes(ctx, d.collection); err != nil {
			panic(fmt.Sprintf("failed to ensure indexes: %v\n", err))
		}
	}

	return d.collection
}

func (d *di) ProductRepository(ctx context.Context) service.ProductRepository {
	if d.repository == nil {
		d.repository = repository.NewProductRepository(d.ProductsCollection(ctx))
	}

	return d.repository
}

func (d *di) Registry(_ context.Context) *prometheus.Registry {
	if d.registry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		d.registry = reg
	}

	return d.registry
}

func (d *di) ContentStore(_ context.Context) ContentStore {
	if d.contentStore == nil {
		cfg := config.C().IPFS

		httpClient := &http.Client{Timeout: cfg.RequestTimeout()}
		closer.AddNamed("IPFS HTTP client", func(context.Context) error {
			httpClient.CloseIdleConnections()
			return nil
		})

		d.contentStore = ipfsclient.NewClient(ipfsclient.Config{
			GatewayURL: cfg.GatewayURL(),
			APIURL:     cfg.APIURL(),
			Timeout:    cfg.RequestTimeout(),
		}, httpClient)
	}

	return d.contentStore
}

func (d *di) Cache(ctx context.Context) *cache.Cache {
	if d.cache == nil {
		cfg := config.C().Cache

		c, err := cache.New(
			d.ContentStore(ctx),
			cache.WithTTL(cache.StoreCatalog, cfg.CatalogTTL()),
			cache.WithTTL(cache.StoreDescription, cfg.DescriptionTTL()),
			cache.WithTTL(cache.StoreImage, cfg.ImageTTL()),
			cache.WithLogger(logger.L()),
			cache.WithMetrics(d.Registry(ctx), cfg.MetricsNamespace()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create catalog cache: %v\n", err))
		}

		d.cache = c
	}

	return d.cache
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaCoverter()
	}

	return d.conv
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ConsumerGroupID(),
			cfg.Kafka.ProductPublishedConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) ProductPublishedConsumer(ctx context.Context) kafka.Consumer {
	if d.productPublishedConsume == nil {
		d.productPublishedConsume = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.ProductPublishedTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
			middleware.Metrics(d.Registry(ctx), config.C().Cache.MetricsNamespace()),
		)
	}

	return d.productPublishedConsume
}

func (d *di) ProductConsumer(ctx context.Context) ProductConsumer {
	if d.productConsumer == nil {
		d.productConsumer = prodconsumer.NewProductPublishedConsumer(
			d.ProductPublishedConsumer(ctx),
			d.KafkaConverter(ctx),
			d.CatalogService(ctx),
		)
	}

	return d.productConsumer
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ProductPublishedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) ProductPublishedProducer(ctx context.Context) kafka.Producer {
	if d.productPublishedProduce == nil {
		d.productPublishedProduce = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.ProductPublishedTopic(),
			logger.L(),
		)
	}

	return d.productPublishedProduce
}

func (d *di) ProductProducer(ctx context.Context) service.PublishedSender {
	if d.productProducer == nil {
		d.productProducer = prodproducer.NewProductProducer(
			d.ProductPublishedProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.productProducer
}

func (d *di) CatalogService(ctx context.Context) CatalogService {
	if d.service == nil {
		cfg := config.C()

		d.service = service.NewCatalogService(
			d.ProductRepository(ctx),
			d.Cache(ctx),
			d.ContentStore(ctx),
			d.ProductProducer(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
			cfg.Cache.EnrichConcurrency(),
		)
	}

	return d.service
}

func (d *di) CatalogHandler(ctx context.Context) Handler {
	if d.handler == nil {
		d.handler = thttp.NewCatalogHandler(d.CatalogService(ctx))
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
