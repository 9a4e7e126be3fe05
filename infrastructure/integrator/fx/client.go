package fx

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/media-plan-api/internal/config"
	"github.com/vfg2006/media-plan-api/internal/domain"
)

type Client interface {
	LatestRates(ctx context.Context) (map[domain.Currency]float64, error)
}

type FxClient struct {
	httpClient *http.Client
	config     *config.FxProvider
}

// NewClient cria uma nova instância do cliente de câmbio.
func NewClient(cfg *config.Config) Client {
	return &FxClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: &cfg.FxProvider,
	}
}
