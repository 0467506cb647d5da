package network

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	tcnetwork "github.com/testcontainers/testcontainers-go/network"

	tc "github.com/you-humble/biomarket/platform/testcontainers"
)

// Network: изолированная bridge-сеть одного тестового прогона.
type Network struct {
	project string
	network *testcontainers.DockerNetwork
}

func NewNetwork(ctx context.Context, project string) (*Network, error) {
	net, err := tcnetwork.New(ctx,
		tcnetwork.WithDriver(testcontainers.Bridge),
		tcnetwork.WithAttachable(),
		tcnetwork.WithLabels(map[string]string{tc.ProjectLabel: project}),
	)
	if err != nil {
		return nil, fmt.Errorf("create docker network for %s: %w", project, err)
	}

	return &Network{project: project, network: net}, nil
}

func (n *Network) Name() string    { return n.network.Name }
func (n *Network) Project() string { return n.project }

func (n *Network) Remove(ctx context.Context) error {
	if err := n.network.Remove(ctx); err != nil {
		return fmt.Errorf("remove docker network %s: %w", n.network.Name, err)
	}
	return nil
}
