package planning

import (
	"github.com/vfg2006/media-plan-api/internal/domain"
)

// Planner é o motor de alocação de verba e métricas por canal
type Planner interface {
	AllocateWeights(
		selected []domain.Platform,
		goal domain.Goal,
		manualSplit bool,
		manualWeights map[domain.Platform]float64,
		includeAll bool,
	) map[domain.Platform]float64

	ComputeResults(input *domain.PlanInput) []*domain.PlatformResult
	ComputeTotals(results []*domain.PlatformResult) *domain.Totals
}
