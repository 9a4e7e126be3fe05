package domain

// PlanInput é a requisição completa do motor de planejamento. Os valores
// monetários chegam já convertidos para a moeda de referência; contagens
// (impressões, cliques, leads) nunca são convertidas.
type PlanInput struct {
	TotalBudget       float64              `json:"total_budget"`
	Platforms         []Platform           `json:"platforms"`
	Goal              Goal                 `json:"goal"`
	Market            Market               `json:"market"`
	LeadToSalePercent float64              `json:"lead_to_sale_percent"`
	RevenuePerSale    float64              `json:"revenue_per_sale"`
	ManualSplit       bool                 `json:"manual_split"`
	PlatformWeights   map[Platform]float64 `json:"platform_weights,omitempty"`
	IncludeAll        bool                 `json:"include_all"`
	ManualCPL         bool                 `json:"manual_cpl"`
	PlatformCPLs      map[Platform]float64 `json:"platform_cpls,omitempty"`
}

// PlatformResult é o funil estimado de um canal com suas métricas efetivas.
// Views é nil para canais que não reportam visualizações de vídeo; ausência
// não é o mesmo que zero.
type PlatformResult struct {
	Platform    Platform `json:"platform"`
	Weight      float64  `json:"weight"`
	Budget      float64  `json:"budget"`
	Impressions float64  `json:"impressions"`
	Clicks      float64  `json:"clicks"`
	Views       *float64 `json:"views,omitempty"`
	Engagements float64  `json:"engagements"`
	Reach       float64  `json:"reach"`
	Leads       float64  `json:"leads"`
	Sales       float64  `json:"sales"`
	Revenue     float64  `json:"revenue"`
	CTR         float64  `json:"ctr"`
	CPC         float64  `json:"cpc"`
	CPM         float64  `json:"cpm"`
	CPL         float64  `json:"cpl"`
	CAC         float64  `json:"cac"`
}

// Totals agrega os resultados de todos os canais selecionados. As razões
// combinadas são calculadas a partir das somas, nunca pela média das razões
// por canal.
type Totals struct {
	Budget      float64  `json:"budget"`
	Impressions float64  `json:"impressions"`
	Clicks      float64  `json:"clicks"`
	Views       *float64 `json:"views,omitempty"`
	Engagements float64  `json:"engagements"`
	Reach       float64  `json:"reach"`
	Leads       float64  `json:"leads"`
	Sales       float64  `json:"sales"`
	Revenue     float64  `json:"revenue"`
	CTR         float64  `json:"ctr"`
	CPC         float64  `json:"cpc"`
	CPM         float64  `json:"cpm"`
	CPL         float64  `json:"cpl"`
	CAC         float64  `json:"cac"`
	ROAS        float64  `json:"roas"`
}
