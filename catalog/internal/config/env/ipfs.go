package envconfig

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type ipfsEnv struct {
	GatewayURL     string        `env:"IPFS_GATEWAY_URL,required"`
	APIURL         string        `env:"IPFS_API_URL,required"`
	RequestTimeout time.Duration `env:"IPFS_REQUEST_TIMEOUT" envDefault:"10s"`
}

type ipfs struct {
	raw ipfsEnv
}

func NewIPFSConfig() (*ipfs, error) {
	var raw ipfsEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &ipfs{raw: raw}, nil
}

func (cfg *ipfs) GatewayURL() string            { return strings.TrimRight(cfg.raw.GatewayURL, "/") }
func (cfg *ipfs) APIURL() string                { return strings.TrimRight(cfg.raw.APIURL, "/") }
func (cfg *ipfs) RequestTimeout() time.Duration { return cfg.raw.RequestTimeout }
