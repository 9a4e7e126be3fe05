package planning

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-plan-api/internal/domain"
)

// Service implementa o motor de planejamento. O serviço é puro: não guarda
// estado compartilhado, não faz I/O e pode ser chamado concorrentemente.
type Service struct{}

// NewService cria uma nova instância do motor de planejamento
func NewService() Planner {
	return &Service{}
}

// safeDiv devolve num/den, degradando para 0 quando o denominador é zero.
// Entradas degeneradas nunca viram erro: o plano retornado é sempre completo.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// ComputeResults calcula o funil estimado de cada canal selecionado, na
// ordem de entrada
func (s *Service) ComputeResults(input *domain.PlanInput) []*domain.PlatformResult {
	weights := s.AllocateWeights(
		input.Platforms,
		input.Goal,
		input.ManualSplit,
		input.PlatformWeights,
		input.IncludeAll,
	)

	uplift := domain.PriceUplift(input.Market)
	results := make([]*domain.PlatformResult, 0, len(input.Platforms))

	for _, platform := range input.Platforms {
		assumptions, ok := domain.ChannelAssumptionsTable[platform]
		if !ok {
			logrus.WithField("platform", platform).Warn("planning: canal sem premissas cadastradas, ignorando")
			continue
		}

		results = append(results, s.computeResult(platform, weights[platform], input, assumptions, uplift))
	}

	return results
}

func (s *Service) computeResult(
	platform domain.Platform,
	weight float64,
	input *domain.PlanInput,
	assumptions domain.ChannelAssumptions,
	uplift float64,
) *domain.PlatformResult {
	budget := input.TotalBudget * weight

	var impressions, clicks float64

	// O uplift de mercado incide somente sobre o preço, nunca sobre CTR ou
	// taxa de conversão
	switch {
	case assumptions.CPC != nil:
		cpc := *assumptions.CPC * uplift
		clicks = safeDiv(budget, cpc)
		impressions = safeDiv(clicks, assumptions.CTR)
	case assumptions.CPM != nil:
		cpm := *assumptions.CPM * uplift
		impressions = safeDiv(budget, cpm) * 1000
		clicks = impressions * assumptions.CTR
	}

	var views *float64
	if assumptions.VTR != nil {
		v := impressions * *assumptions.VTR
		views = &v
	}

	er := domain.DefaultEngagementRate
	if assumptions.ER != nil {
		er = *assumptions.ER
	}
	engagements := impressions * er
	reach := impressions / domain.Frequency

	var leads float64
	if override, ok := manualCPLFor(platform, input); ok {
		leads = budget / override
	} else {
		leads = clicks * assumptions.ConvRate
	}

	sales := leads * (input.LeadToSalePercent / 100)
	revenue := sales * input.RevenuePerSale

	return &domain.PlatformResult{
		Platform:    platform,
		Weight:      weight,
		Budget:      budget,
		Impressions: impressions,
		Clicks:      clicks,
		Views:       views,
		Engagements: engagements,
		Reach:       reach,
		Leads:       leads,
		Sales:       sales,
		Revenue:     revenue,
		CTR:         safeDiv(clicks, impressions),
		CPC:         safeDiv(budget, clicks),
		CPM:         safeDiv(budget, impressions) * 1000,
		CPL:         safeDiv(budget, leads),
		CAC:         safeDiv(budget, sales),
	}
}

// manualCPLFor devolve o CPL manual do canal quando o modo está ativo e o
// override é positivo
func manualCPLFor(platform domain.Platform, input *domain.PlanInput) (float64, bool) {
	if !input.ManualCPL || input.PlatformCPLs == nil {
		return 0, false
	}

	override, ok := input.PlatformCPLs[platform]
	if !ok || override <= 0 {
		return 0, false
	}

	return override, true
}

// ComputeTotals soma os campos aditivos de todos os canais e recalcula as
// razões combinadas a partir das somas. Médias das razões por canal dariam
// resultados errados para carteiras desbalanceadas.
func (s *Service) ComputeTotals(results []*domain.PlatformResult) *domain.Totals {
	totals := &domain.Totals{}

	var viewsSum float64
	var hasViews bool

	for _, result := range results {
		totals.Budget += result.Budget
		totals.Impressions += result.Impressions
		totals.Clicks += result.Clicks
		totals.Engagements += result.Engagements
		totals.Reach += result.Reach
		totals.Leads += result.Leads
		totals.Sales += result.Sales
		totals.Revenue += result.Revenue

		if result.Views != nil {
			viewsSum += *result.Views
			hasViews = true
		}
	}

	if hasViews {
		totals.Views = &viewsSum
	}

	totals.CTR = safeDiv(totals.Clicks, totals.Impressions)
	totals.CPC = safeDiv(totals.Budget, totals.Clicks)
	totals.CPM = safeDiv(totals.Budget, totals.Impressions) * 1000
	totals.CPL = safeDiv(totals.Budget, totals.Leads)
	totals.CAC = safeDiv(totals.Budget, totals.Sales)
	totals.ROAS = safeDiv(totals.Revenue, totals.Budget)

	return totals
}
