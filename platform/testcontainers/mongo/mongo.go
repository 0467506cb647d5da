package mongo

import (
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	tc "github.com/you-humble/biomarket/platform/testcontainers"
)

const exposedPort = tc.MongoPort + "/tcp"

// Container держит MongoDB для интеграционных тестов и подключённый клиент.
type Container struct {
	container testcontainers.Container
	client    *mongo.Client
	cfg       *Config
}

func NewContainer(ctx context.Context, opts ...Option) (*Container, error) {
	cfg := buildConfig(opts...)

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: containerRequest(cfg),
		Started:          true,
	})
	if err != nil {
		return nil, errors.Errorf("failed to start mongo container: %v", err)
	}

	c := &Container{container: ctr, cfg: cfg}
	if err := c.connect(ctx); err != nil {
		if terr := ctr.Terminate(ctx); terr != nil {
			cfg.Logger.Error(ctx, "failed to terminate mongo container", zap.Error(terr))
		}
		return nil, err
	}

	cfg.Logger.Info(ctx, "Mongo container started", zap.String("host", cfg.Host), zap.String("port", cfg.Port))

	return c, nil
}

func containerRequest(cfg *Config) testcontainers.ContainerRequest {
	req := testcontainers.ContainerRequest{
		Name:  cfg.ContainerName,
		Image: cfg.ImageName,
		Env: map[string]string{
			tc.MongoUsernameEnv: cfg.Username,
			tc.MongoPasswordEnv: cfg.Password,
			tc.MongoDatabaseEnv: cfg.Database,
		},
		ExposedPorts: []string{exposedPort},
		WaitingFor:   wait.ForListeningPort(exposedPort).WithStartupTimeout(tc.MongoStartupTimeout),
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.AutoRemove = true
		},
	}
	if cfg.NetworkName != "" {
		req.Networks = []string{cfg.NetworkName}
		req.NetworkAliases = map[string][]string{cfg.NetworkName: {tc.MongoNetworkAlias}}
	}

	return req
}

func (c *Container) connect(ctx context.Context) error {
	host, err := c.container.Host(ctx)
	if err != nil {
		return errors.Errorf("failed to get container host: %v", err)
	}

	port, err := c.container.MappedPort(ctx, exposedPort)
	if err != nil {
		return errors.Errorf("failed to get mapped port: %v", err)
	}
	c.cfg.Host, c.cfg.Port = host, port.Port()

	client, err := mongo.Connect(options.Client().ApplyURI(c.cfg.URI()))
	if err != nil {
		return errors.Errorf("failed to connect to mongo: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return errors.Errorf("failed to ping mongo: %v", err)
	}

	c.client = client
	return nil
}

func (c *Container) Client() *mongo.Client { return c.client }
func (c *Container) Config() *Config       { return c.cfg }

// Collection returns a handle to a collection in the configured database.
func (c *Container) Collection(name string) *mongo.Collection {
	return c.client.Database(c.cfg.Database).Collection(name)
}

func (c *Container) Terminate(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to disconnect mongo client", zap.Error(err))
	}

	if err := c.container.Terminate(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to terminate mongo container", zap.Error(err))
		return err
	}

	c.cfg.Logger.Info(ctx, "Mongo container terminated")

	return nil
}
