package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/media-plan-api/internal/domain"
)

// PlatformInfo descreve um canal disponível para seleção
type PlatformInfo struct {
	Platform domain.Platform `json:"platform"`
	Label    string          `json:"label"`
}

// AssumptionsResponse reúne todas as tabelas estáticas que o cliente precisa
// para montar um plano
type AssumptionsResponse struct {
	Platforms             []PlatformInfo                                  `json:"platforms"`
	Channels              map[domain.Platform]domain.ChannelAssumptions   `json:"channels"`
	GoalWeights           map[domain.Goal]map[domain.Platform]float64     `json:"goal_weights"`
	Niches                map[string]domain.NicheAssumptions              `json:"niches"`
	Markets               []domain.Market                                 `json:"markets"`
	MarketUplift          float64                                         `json:"market_uplift"`
	Frequency             float64                                         `json:"frequency"`
	DefaultEngagementRate float64                                         `json:"default_engagement_rate"`
}

// GetAssumptions devolve as premissas por canal, os pesos por objetivo, os
// presets de nicho e as constantes do motor
func GetAssumptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platforms := make([]PlatformInfo, 0, len(domain.AllPlatforms))
		for _, platform := range domain.AllPlatforms {
			platforms = append(platforms, PlatformInfo{
				Platform: platform,
				Label:    platform.Label(),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AssumptionsResponse{
			Platforms:             platforms,
			Channels:              domain.ChannelAssumptionsTable,
			GoalWeights:           domain.GoalWeights,
			Niches:                domain.NicheDefaults,
			Markets:               domain.AllMarkets,
			MarketUplift:          domain.MarketUplift,
			Frequency:             domain.Frequency,
			DefaultEngagementRate: domain.DefaultEngagementRate,
		})
	}
}
