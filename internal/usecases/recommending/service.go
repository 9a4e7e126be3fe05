// Package recommending gera avisos e sugestões comparando as métricas
// efetivas de cada canal com suas premissas. O pacote apenas lê os
// resultados; nunca os modifica.
package recommending

import (
	"github.com/vfg2006/media-plan-api/internal/domain"
)

const (
	TypeWarning    = "warning"
	TypeSuggestion = "suggestion"
)

// Recommendation é um conselho acionável sobre um canal do plano
type Recommendation struct {
	Platform domain.Platform `json:"platform"`
	Text     string          `json:"text"`
	Type     string          `json:"type"`
}

// Recommender produz conselhos a partir dos resultados calculados
type Recommender interface {
	Generate(results []*domain.PlatformResult) []Recommendation
}

type Service struct{}

func NewService() Recommender {
	return &Service{}
}

// Generate percorre os resultados aplicando a tabela de regras. As regras
// comparam as métricas efetivas com as premissas do canal, nunca entre
// execuções diferentes do plano.
func (s *Service) Generate(results []*domain.PlatformResult) []Recommendation {
	recommendations := make([]Recommendation, 0)

	for _, result := range results {
		assumptions, ok := domain.ChannelAssumptionsTable[result.Platform]
		if !ok {
			continue
		}

		if result.CTR < 0.01 {
			recommendations = append(recommendations, Recommendation{
				Platform: result.Platform,
				Text:     "Teste criativos mais recentes, título mais claro ou público mais restrito.",
				Type:     TypeWarning,
			})
		}

		if assumptions.CPC != nil && result.CPC > *assumptions.CPC*1.3 {
			recommendations = append(recommendations, Recommendation{
				Platform: result.Platform,
				Text:     "Refine palavras-chave/público ou ajuste a estratégia de lance.",
				Type:     TypeWarning,
			})
		}

		if assumptions.ConvRate > 0 {
			expectedCPL := result.CPC / assumptions.ConvRate
			if result.CPL > expectedCPL*1.5 {
				recommendations = append(recommendations, Recommendation{
					Platform: result.Platform,
					Text:     "Melhore o formulário/oferta de leads; refaça remarketing com usuários engajados.",
					Type:     TypeSuggestion,
				})
			}
		}

		recommendations = append(recommendations, platformChecks(result, results)...)
	}

	return recommendations
}

// platformChecks aplica as regras específicas de cada canal
func platformChecks(result *domain.PlatformResult, all []*domain.PlatformResult) []Recommendation {
	var recommendations []Recommendation

	switch result.Platform {
	case domain.PlatformYouTube:
		if result.Views != nil && result.Impressions > 0 && *result.Views/result.Impressions < 0.15 {
			recommendations = append(recommendations, Recommendation{
				Platform: result.Platform,
				Text:     "Prenda a atenção nos 3 primeiros segundos; aperte a segmentação.",
				Type:     TypeWarning,
			})
		}

	case domain.PlatformTikTok:
		if result.Views != nil && result.Impressions > 0 && *result.Views/result.Impressions < 0.12 {
			recommendations = append(recommendations, Recommendation{
				Platform: result.Platform,
				Text:     "Vídeo mais curto com um gancho forte.",
				Type:     TypeWarning,
			})
		}

	case domain.PlatformGoogleDisplay:
		if result.CTR < 0.003 {
			recommendations = append(recommendations, Recommendation{
				Platform: result.Platform,
				Text:     "Use públicos mais restritos, display responsivo com vídeo e exclua posicionamentos ruins.",
				Type:     TypeSuggestion,
			})
		}

	case domain.PlatformLinkedIn:
		// CPL do LinkedIn acima de 2x a média dos canais Meta indica verba
		// melhor aproveitada em canais de alta intenção
		metaCount := 0
		metaCPLSum := 0.0
		for _, other := range all {
			if other.Platform == domain.PlatformFacebook || other.Platform == domain.PlatformInstagram {
				metaCount++
				metaCPLSum += other.CPL
			}
		}
		if metaCount > 0 && result.CPL > (metaCPLSum/float64(metaCount))*2 {
			recommendations = append(recommendations, Recommendation{
				Platform: result.Platform,
				Text:     "Restrinja a segmentação ou desloque verba para canais de alta intenção.",
				Type:     TypeSuggestion,
			})
		}
	}

	return recommendations
}
