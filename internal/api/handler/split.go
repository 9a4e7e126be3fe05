package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/media-plan-api/internal/domain"
	"github.com/vfg2006/media-plan-api/internal/usecases/splitting"
	"github.com/vfg2006/media-plan-api/pkg/apiErrors"
)

// SplitRequest carrega a seleção de canais e, quando a operação precisa,
// as participações reais de cada um. MinEach é o piso percentual por canal.
type SplitRequest struct {
	Platforms []domain.Platform           `json:"platforms"`
	Values    map[domain.Platform]float64 `json:"values,omitempty"`
	MinEach   int                         `json:"min_each"`
}

// SplitResponse é a divisão em percentuais inteiros somando exatamente 100
type SplitResponse struct {
	Splits map[domain.Platform]int `json:"splits"`
}

// RoundSplits converte participações reais em percentuais inteiros pelo
// método dos maiores restos, sem piso por canal
func RoundSplits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeSplitRequest(w, r)
		if !ok {
			return
		}

		writeSplitResponse(w, splitting.RoundToIntegerPercentages(req.Values, req.Platforms, 0))
	}
}

// NormalizeSplits renormaliza as participações para somar 100, respeitando o
// piso por canal quando ele for alcançável
func NormalizeSplits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeSplitRequest(w, r)
		if !ok {
			return
		}

		writeSplitResponse(w, splitting.RoundToIntegerPercentages(req.Values, req.Platforms, req.MinEach))
	}
}

// EqualizeSplits reparte 100 igualmente entre os canais selecionados
func EqualizeSplits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeSplitRequest(w, r)
		if !ok {
			return
		}

		writeSplitResponse(w, splitting.DistributeEqually(req.Platforms, req.MinEach))
	}
}

// ClearSplits zera a divisão manual de todos os canais selecionados
func ClearSplits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeSplitRequest(w, r)
		if !ok {
			return
		}

		writeSplitResponse(w, splitting.ClearToZero(req.Platforms))
	}
}

func decodeSplitRequest(w http.ResponseWriter, r *http.Request) (*SplitRequest, bool) {
	var req SplitRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return nil, false
	}

	if len(req.Platforms) == 0 {
		apiErrors.WriteError(w, apiErrors.ErrEmptySelection, "Selecione ao menos um canal", nil)
		return nil, false
	}

	seen := make(map[domain.Platform]bool, len(req.Platforms))
	for _, platform := range req.Platforms {
		if !platform.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Canal desconhecido", map[string]any{
				"platform": platform,
			})
			return nil, false
		}
		if seen[platform] {
			apiErrors.WriteError(w, apiErrors.ErrDuplicatePlatform, "Canal duplicado na seleção", map[string]any{
				"platform": platform,
			})
			return nil, false
		}
		seen[platform] = true
	}

	if req.MinEach < 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Piso percentual não pode ser negativo", nil)
		return nil, false
	}

	return &req, true
}

func writeSplitResponse(w http.ResponseWriter, splits map[domain.Platform]int) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SplitResponse{Splits: splits})
}
