package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-plan-api/internal/domain"
	"github.com/vfg2006/media-plan-api/internal/usecases/planning"
	"github.com/vfg2006/media-plan-api/internal/usecases/recommending"
	"github.com/vfg2006/media-plan-api/pkg/apiErrors"
	"github.com/vfg2006/media-plan-api/pkg/utils"
)

// PlanResponse é o plano completo calculado em uma única chamada
type PlanResponse struct {
	ID              string                         `json:"id"`
	Weights         map[domain.Platform]float64    `json:"weights"`
	Results         []*domain.PlatformResult       `json:"results"`
	Totals          *domain.Totals                 `json:"totals"`
	Recommendations []recommending.Recommendation  `json:"recommendations"`
}

// ComputePlan calcula alocação, funil por canal, totais agregados e
// recomendações para a seleção enviada
func ComputePlan(planner planning.Planner, recommender recommending.Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.PlanInput

		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if !validatePlanInput(w, &input) {
			return
		}

		logrus.Debug("plan request: ", utils.PrettyJson(input))

		weights := planner.AllocateWeights(
			input.Platforms,
			input.Goal,
			input.ManualSplit,
			input.PlatformWeights,
			input.IncludeAll,
		)
		results := planner.ComputeResults(&input)
		totals := planner.ComputeTotals(results)
		recommendations := recommender.Generate(results)

		planID, err := utils.GenerateID()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador do plano", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(PlanResponse{
			ID:              planID,
			Weights:         weights,
			Results:         results,
			Totals:          totals,
			Recommendations: recommendations,
		})
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// validatePlanInput valida a seleção de canais e os campos de domínio antes
// de acionar o motor. Escreve o erro na resposta e devolve false quando a
// requisição não deve prosseguir.
func validatePlanInput(w http.ResponseWriter, input *domain.PlanInput) bool {
	if len(input.Platforms) == 0 {
		apiErrors.WriteError(w, apiErrors.ErrEmptySelection, "Selecione ao menos um canal", nil)
		return false
	}

	seen := make(map[domain.Platform]bool, len(input.Platforms))
	for _, platform := range input.Platforms {
		if !platform.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Canal desconhecido", map[string]any{
				"platform": platform,
			})
			return false
		}
		if seen[platform] {
			apiErrors.WriteError(w, apiErrors.ErrDuplicatePlatform, "Canal duplicado na seleção", map[string]any{
				"platform": platform,
			})
			return false
		}
		seen[platform] = true
	}

	if input.Goal != "" && !input.Goal.Valid() {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Objetivo inválido", map[string]any{
			"goal": input.Goal,
		})
		return false
	}

	if input.Market != "" && !input.Market.Valid() {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mercado inválido", map[string]any{
			"market": input.Market,
		})
		return false
	}

	if input.TotalBudget < 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Verba total não pode ser negativa", nil)
		return false
	}

	return true
}
