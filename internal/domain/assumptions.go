package domain

const (
	// MarketUplift é o multiplicador de preço aplicado fora do mercado base
	MarketUplift = 1.3

	// Frequency é a frequência média de exibição usada para derivar alcance
	Frequency = 1.6

	// DefaultEngagementRate é usada quando o canal não define ER próprio
	DefaultEngagementRate = 0.010
)

// ChannelAssumptions reúne as premissas de preço e comportamento de um canal.
// Exatamente um entre CPC e CPM está presente; VTR existe apenas para canais
// que reportam visualizações de vídeo.
type ChannelAssumptions struct {
	CPC      *float64 `json:"cpc,omitempty"`
	CPM      *float64 `json:"cpm,omitempty"`
	CTR      float64  `json:"ctr"`
	ER       *float64 `json:"er,omitempty"`
	VTR      *float64 `json:"vtr,omitempty"`
	ConvRate float64  `json:"conv_rate"`
}

func f(v float64) *float64 { return &v }

// ChannelAssumptionsTable contém as premissas estáticas por canal
var ChannelAssumptionsTable = map[Platform]ChannelAssumptions{
	PlatformFacebook:      {CPM: f(21), CTR: 0.011, ER: f(0.016), VTR: f(0.18), ConvRate: 0.035},
	PlatformInstagram:     {CPM: f(23), CTR: 0.009, ER: f(0.018), VTR: f(0.22), ConvRate: 0.032},
	PlatformGoogleSearch:  {CPC: f(6), CTR: 0.030, ConvRate: 0.070},
	PlatformGoogleDisplay: {CPM: f(14), CTR: 0.004, ER: f(0.006), VTR: f(0.12), ConvRate: 0.020},
	PlatformYouTube:       {CPM: f(18), CTR: 0.008, VTR: f(0.25), ConvRate: 0.020},
	PlatformTikTok:        {CPM: f(15), CTR: 0.009, ER: f(0.012), VTR: f(0.18), ConvRate: 0.030},
	PlatformLinkedIn:      {CPM: f(45), CTR: 0.006, ER: f(0.020), VTR: f(0.15), ConvRate: 0.045},
}

// PriceUplift retorna o multiplicador de preço do mercado. O mercado base
// (Egito) não sofre uplift; o multiplicador nunca é aplicado a CTR ou
// taxa de conversão.
func PriceUplift(market Market) float64 {
	if market == MarketEgypt {
		return 1.0
	}
	return MarketUplift
}

// NicheAssumptions são os presets de funil de vendas por nicho de negócio
type NicheAssumptions struct {
	LeadToSalePercent float64 `json:"lead_to_sale_percent"`
	RevenuePerSale    float64 `json:"revenue_per_sale"`
}

// NicheDefaults mapeia nichos conhecidos para seus presets
var NicheDefaults = map[string]NicheAssumptions{
	"Accessories (E-commerce)": {LeadToSalePercent: 8, RevenuePerSale: 700},
	"Fashion (E-commerce)":     {LeadToSalePercent: 10, RevenuePerSale: 900},
	"Clinics / Beauty":         {LeadToSalePercent: 30, RevenuePerSale: 1200},
	"Real Estate":              {LeadToSalePercent: 2, RevenuePerSale: 50000},
	"Restaurants / Cafés":      {LeadToSalePercent: 30, RevenuePerSale: 200},
	"Education / Courses":      {LeadToSalePercent: 15, RevenuePerSale: 3000},
	"B2B Services":             {LeadToSalePercent: 10, RevenuePerSale: 5000},
	"Local Services":           {LeadToSalePercent: 40, RevenuePerSale: 600},
	"Generic":                  {LeadToSalePercent: 20, RevenuePerSale: 800},
}
