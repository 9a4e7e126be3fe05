package planning

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/media-plan-api/internal/domain"
)

func TestService_AllocateWeights(t *testing.T) {
	service := &Service{}

	tests := []struct {
		name          string
		selected      []domain.Platform
		goal          domain.Goal
		manualSplit   bool
		manualWeights map[domain.Platform]float64
		includeAll    bool
		validate      func(t *testing.T, weights map[domain.Platform]float64)
	}{
		{
			name:        "Divisão manual 30/50 deve normalizar para 0.375/0.625",
			selected:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogleSearch},
			goal:        domain.GoalLeads,
			manualSplit: true,
			manualWeights: map[domain.Platform]float64{
				domain.PlatformFacebook:     30,
				domain.PlatformGoogleSearch: 50,
			},
			validate: func(t *testing.T, weights map[domain.Platform]float64) {
				assert.InDelta(t, 0.375, weights[domain.PlatformFacebook], 1e-9)
				assert.InDelta(t, 0.625, weights[domain.PlatformGoogleSearch], 1e-9)
			},
		},
		{
			name:          "Divisão manual toda zerada cai em divisão igualitária",
			selected:      []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformTikTok},
			goal:          domain.GoalLeads,
			manualSplit:   true,
			manualWeights: map[domain.Platform]float64{},
			validate: func(t *testing.T, weights map[domain.Platform]float64) {
				for platform, weight := range weights {
					assert.InDelta(t, 1.0/3.0, weight, 1e-9, "peso de %s", platform)
				}
			},
		},
		{
			name:        "Valores manuais negativos contam como zero",
			selected:    []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram},
			goal:        domain.GoalLeads,
			manualSplit: true,
			manualWeights: map[domain.Platform]float64{
				domain.PlatformFacebook:  -10,
				domain.PlatformInstagram: 40,
			},
			validate: func(t *testing.T, weights map[domain.Platform]float64) {
				assert.InDelta(t, 0.0, weights[domain.PlatformFacebook], 1e-9)
				assert.InDelta(t, 1.0, weights[domain.PlatformInstagram], 1e-9)
			},
		},
		{
			name:     "Modo automático usa pesos base do objetivo",
			selected: []domain.Platform{domain.PlatformGoogleSearch, domain.PlatformFacebook},
			goal:     domain.GoalLeads,
			validate: func(t *testing.T, weights map[domain.Platform]float64) {
				// Base 0.45/0.25 normalizada sobre 0.70
				assert.InDelta(t, 0.45/0.70, weights[domain.PlatformGoogleSearch], 1e-9)
				assert.InDelta(t, 0.25/0.70, weights[domain.PlatformFacebook], 1e-9)
			},
		},
		{
			name:       "IncludeAll eleva canal com peso base zero a pelo menos 10%",
			selected:   []domain.Platform{domain.PlatformFacebook, domain.PlatformYouTube, domain.PlatformInstagram},
			goal:       domain.GoalLeads,
			includeAll: true,
			validate: func(t *testing.T, weights map[domain.Platform]float64) {
				assert.GreaterOrEqual(t, weights[domain.PlatformYouTube], 0.10)
			},
		},
		{
			name:     "Sem IncludeAll canal com peso base zero fica com zero",
			selected: []domain.Platform{domain.PlatformFacebook, domain.PlatformYouTube},
			goal:     domain.GoalLeads,
			validate: func(t *testing.T, weights map[domain.Platform]float64) {
				assert.Equal(t, 0.0, weights[domain.PlatformYouTube])
				assert.InDelta(t, 1.0, weights[domain.PlatformFacebook], 1e-9)
			},
		},
		{
			name:     "Canal único sempre recebe peso 1",
			selected: []domain.Platform{domain.PlatformYouTube},
			goal:     domain.GoalLeads,
			validate: func(t *testing.T, weights map[domain.Platform]float64) {
				assert.Equal(t, 1.0, weights[domain.PlatformYouTube])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := service.AllocateWeights(tt.selected, tt.goal, tt.manualSplit, tt.manualWeights, tt.includeAll)

			sum := 0.0
			for _, weight := range weights {
				sum += weight
			}
			assert.InDelta(t, 1.0, sum, 1e-6, "os pesos devem somar 1")

			tt.validate(t, weights)
		})
	}
}

func TestService_ComputeResults_BudgetConservation(t *testing.T) {
	service := &Service{}

	for count := 1; count <= len(domain.AllPlatforms); count++ {
		selected := domain.AllPlatforms[:count]

		for _, manualSplit := range []bool{false, true} {
			input := &domain.PlanInput{
				TotalBudget:       10000,
				Platforms:         selected,
				Goal:              domain.GoalTraffic,
				Market:            domain.MarketEgypt,
				LeadToSalePercent: 20,
				RevenuePerSale:    800,
				ManualSplit:       manualSplit,
				PlatformWeights: map[domain.Platform]float64{
					domain.PlatformFacebook:     30,
					domain.PlatformInstagram:    15,
					domain.PlatformGoogleSearch: 25,
				},
			}

			results := service.ComputeResults(input)
			require.Len(t, results, count)

			budgetSum := 0.0
			weightSum := 0.0
			for _, result := range results {
				budgetSum += result.Budget
				weightSum += result.Weight
				assert.InDelta(t, input.TotalBudget*result.Weight, result.Budget, 1e-6)
			}

			assert.InDelta(t, input.TotalBudget, budgetSum, 0.01,
				"verba deve ser conservada com %d canais (manual=%v)", count, manualSplit)
			assert.InDelta(t, 1.0, weightSum, 1e-6)
		}
	}
}

func TestService_ComputeResults_PricingModels(t *testing.T) {
	service := &Service{}

	input := &domain.PlanInput{
		TotalBudget:       10000,
		Platforms:         []domain.Platform{domain.PlatformGoogleSearch, domain.PlatformGoogleDisplay},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
		ManualSplit:       true,
		PlatformWeights: map[domain.Platform]float64{
			domain.PlatformGoogleSearch:  50,
			domain.PlatformGoogleDisplay: 50,
		},
	}

	results := service.ComputeResults(input)
	require.Len(t, results, 2)

	search, display := results[0], results[1]

	// Canal CPC: cliques direto da verba, impressões derivadas do CTR
	assert.InDelta(t, search.Budget/6.0, search.Clicks, 1e-6)
	assert.InDelta(t, search.Clicks/0.030, search.Impressions, 1e-6)
	assert.Nil(t, search.Views, "busca não reporta visualizações de vídeo")

	// Canal CPM: impressões direto da verba, cliques derivados do CTR
	assert.InDelta(t, (display.Budget/14.0)*1000, display.Impressions, 1e-6)
	assert.InDelta(t, display.Impressions*0.004, display.Clicks, 1e-6)
	require.NotNil(t, display.Views)
	assert.InDelta(t, display.Impressions*0.12, *display.Views, 1e-6)

	// Funil derivado
	assert.InDelta(t, display.Impressions/domain.Frequency, display.Reach, 1e-6)
	assert.InDelta(t, display.Impressions*0.006, display.Engagements, 1e-6)
	assert.InDelta(t, search.Clicks*0.070, search.Leads, 1e-6)
	assert.InDelta(t, search.Leads*0.20, search.Sales, 1e-6)
	assert.InDelta(t, search.Sales*800, search.Revenue, 1e-6)
}

func TestService_ComputeResults_MarketUplift(t *testing.T) {
	service := &Service{}

	base := &domain.PlanInput{
		TotalBudget:       6000,
		Platforms:         []domain.Platform{domain.PlatformGoogleSearch},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
	}

	egypt := service.ComputeResults(base)[0]

	uplifted := *base
	uplifted.Market = domain.MarketEurope
	europe := service.ComputeResults(&uplifted)[0]

	// O uplift encarece o clique em 1.3x e reduz o volume na mesma proporção
	assert.InDelta(t, 6000.0/6.0, egypt.Clicks, 1e-6)
	assert.InDelta(t, 6000.0/(6.0*domain.MarketUplift), europe.Clicks, 1e-6)

	// CTR não sofre uplift
	assert.InDelta(t, egypt.CTR, europe.CTR, 1e-9)
}

func TestService_ComputeResults_ManualCPL(t *testing.T) {
	service := &Service{}

	input := &domain.PlanInput{
		TotalBudget:       8000,
		Platforms:         []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogleSearch},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
		ManualSplit:       true,
		PlatformWeights: map[domain.Platform]float64{
			domain.PlatformFacebook:     50,
			domain.PlatformGoogleSearch: 50,
		},
		ManualCPL: true,
		PlatformCPLs: map[domain.Platform]float64{
			domain.PlatformFacebook: 25,
			// GOOGLE_SEARCH sem override: segue a taxa de conversão
		},
	}

	results := service.ComputeResults(input)
	require.Len(t, results, 2)

	facebook, search := results[0], results[1]

	assert.InDelta(t, facebook.Budget/25.0, facebook.Leads, 1e-6)
	assert.InDelta(t, 25.0, facebook.CPL, 1e-6)

	assert.InDelta(t, search.Clicks*0.070, search.Leads, 1e-6)
}

func TestService_ComputeResults_ManualCPLIgnoresNonPositiveOverride(t *testing.T) {
	service := &Service{}

	input := &domain.PlanInput{
		TotalBudget:       5000,
		Platforms:         []domain.Platform{domain.PlatformFacebook},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
		ManualCPL:         true,
		PlatformCPLs: map[domain.Platform]float64{
			domain.PlatformFacebook: 0,
		},
	}

	result := service.ComputeResults(input)[0]
	assert.InDelta(t, result.Clicks*0.035, result.Leads, 1e-6)
}

func TestService_ComputeResults_ZeroBudgetDegradesToZero(t *testing.T) {
	service := &Service{}

	input := &domain.PlanInput{
		TotalBudget:       0,
		Platforms:         []domain.Platform{domain.PlatformGoogleSearch, domain.PlatformFacebook},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
	}

	results := service.ComputeResults(input)
	totals := service.ComputeTotals(results)

	for _, result := range results {
		assert.Zero(t, result.Clicks)
		assert.Zero(t, result.Leads)
		assert.Zero(t, result.CPC)
		assert.Zero(t, result.CPL)
		assert.Zero(t, result.CAC)
		assert.False(t, math.IsNaN(result.CTR))
	}

	assert.Zero(t, totals.ROAS)
	assert.False(t, math.IsNaN(totals.CPM))
}

func TestService_ComputeTotals_BlendedRatios(t *testing.T) {
	service := &Service{}

	input := &domain.PlanInput{
		TotalBudget:       10000,
		Platforms:         []domain.Platform{domain.PlatformGoogleSearch, domain.PlatformFacebook},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
	}

	results := service.ComputeResults(input)
	totals := service.ComputeTotals(results)

	var budget, impressions, clicks, leads, sales, revenue float64
	for _, result := range results {
		budget += result.Budget
		impressions += result.Impressions
		clicks += result.Clicks
		leads += result.Leads
		sales += result.Sales
		revenue += result.Revenue
	}

	// Razões combinadas saem das somas, não da média das razões por canal
	assert.InDelta(t, clicks/impressions, totals.CTR, 1e-9)
	assert.InDelta(t, budget/clicks, totals.CPC, 1e-9)
	assert.InDelta(t, (budget/impressions)*1000, totals.CPM, 1e-9)
	assert.InDelta(t, budget/leads, totals.CPL, 1e-9)
	assert.InDelta(t, budget/sales, totals.CAC, 1e-9)
	assert.InDelta(t, revenue/budget, totals.ROAS, 1e-9)

	meanCPL := (results[0].CPL + results[1].CPL) / 2
	assert.Greater(t, math.Abs(meanCPL-totals.CPL), 1e-6,
		"a média das razões por canal não pode coincidir com a razão combinada neste cenário")
}

func TestService_ComputeTotals_ViewsOnlyWhenReported(t *testing.T) {
	service := &Service{}

	// Somente busca: nenhum canal reporta views
	searchOnly := service.ComputeResults(&domain.PlanInput{
		TotalBudget:       1000,
		Platforms:         []domain.Platform{domain.PlatformGoogleSearch},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
	})
	assert.Nil(t, service.ComputeTotals(searchOnly).Views)

	// Com YouTube no mix o total de views aparece
	withVideo := service.ComputeResults(&domain.PlanInput{
		TotalBudget:       1000,
		Platforms:         []domain.Platform{domain.PlatformGoogleSearch, domain.PlatformYouTube},
		Goal:              domain.GoalAwareness,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
	})
	totals := service.ComputeTotals(withVideo)
	require.NotNil(t, totals.Views)
	assert.Greater(t, *totals.Views, 0.0)
}

func TestService_LeadsScenario(t *testing.T) {
	service := &Service{}

	input := &domain.PlanInput{
		TotalBudget:       10000,
		Platforms:         []domain.Platform{domain.PlatformGoogleSearch, domain.PlatformFacebook},
		Goal:              domain.GoalLeads,
		Market:            domain.MarketEgypt,
		LeadToSalePercent: 20,
		RevenuePerSale:    800,
	}

	results := service.ComputeResults(input)
	totals := service.ComputeTotals(results)

	assert.InDelta(t, 10000.0, totals.Budget, 0.01)

	search := results[0]
	require.Equal(t, domain.PlatformGoogleSearch, search.Platform)
	assert.InDelta(t, search.Budget/6.0, search.Clicks, 1e-6)
}
