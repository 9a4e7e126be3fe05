package domain

// Platform identifica um canal de mídia suportado pelo planejador
type Platform string

const (
	PlatformFacebook      Platform = "FACEBOOK"
	PlatformInstagram     Platform = "INSTAGRAM"
	PlatformGoogleSearch  Platform = "GOOGLE_SEARCH"
	PlatformGoogleDisplay Platform = "GOOGLE_DISPLAY"
	PlatformYouTube       Platform = "YOUTUBE"
	PlatformTikTok        Platform = "TIKTOK"
	PlatformLinkedIn      Platform = "LINKEDIN"
)

// AllPlatforms lista os canais na ordem canônica de exibição
var AllPlatforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformGoogleSearch,
	PlatformGoogleDisplay,
	PlatformYouTube,
	PlatformTikTok,
	PlatformLinkedIn,
}

var platformLabels = map[Platform]string{
	PlatformFacebook:      "Facebook",
	PlatformInstagram:     "Instagram",
	PlatformGoogleSearch:  "Google Search",
	PlatformGoogleDisplay: "Google Display",
	PlatformYouTube:       "YouTube",
	PlatformTikTok:        "TikTok",
	PlatformLinkedIn:      "LinkedIn",
}

// Valid informa se o canal faz parte do conjunto suportado
func (p Platform) Valid() bool {
	_, ok := platformLabels[p]
	return ok
}

// Label retorna o nome de exibição do canal
func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return string(p)
}

// Goal é o objetivo da campanha usado para ponderar os canais
type Goal string

const (
	GoalLeads     Goal = "LEADS"
	GoalTraffic   Goal = "TRAFFIC"
	GoalAwareness Goal = "AWARENESS"
)

// Valid informa se o objetivo é suportado
func (g Goal) Valid() bool {
	switch g {
	case GoalLeads, GoalTraffic, GoalAwareness:
		return true
	}
	return false
}

// Market é o mercado-alvo do plano; afeta apenas o custo de mídia
type Market string

const (
	MarketEgypt       Market = "Egypt"
	MarketSaudiArabia Market = "Saudi Arabia"
	MarketUAE         Market = "UAE"
	MarketEurope      Market = "Europe"
)

// AllMarkets lista os mercados suportados
var AllMarkets = []Market{MarketEgypt, MarketSaudiArabia, MarketUAE, MarketEurope}

// Valid informa se o mercado é suportado
func (m Market) Valid() bool {
	switch m {
	case MarketEgypt, MarketSaudiArabia, MarketUAE, MarketEurope:
		return true
	}
	return false
}
