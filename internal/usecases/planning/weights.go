package planning

import (
	"github.com/vfg2006/media-plan-api/internal/domain"
)

// Peso mínimo garantido por canal quando o modo automático força a inclusão
// de todos os canais selecionados
const minAutoWeight = 0.10

// NormalizeToUnit normaliza um vetor de pesos para somar 1 sobre as chaves
// informadas. Valores negativos ou ausentes contam como 0. Se a soma for
// menor ou igual a zero, devolve divisão igualitária; o motor nunca retorna
// uma distribuição indefinida.
func NormalizeToUnit(weights map[domain.Platform]float64, keys []domain.Platform) map[domain.Platform]float64 {
	out := make(map[domain.Platform]float64, len(keys))

	sum := 0.0
	for _, key := range keys {
		v := weights[key]
		if v < 0 {
			v = 0
		}
		out[key] = v
		sum += v
	}

	if sum <= 0 {
		eq := 1.0 / float64(max(1, len(keys)))
		for _, key := range keys {
			out[key] = eq
		}
		return out
	}

	for _, key := range keys {
		out[key] = out[key] / sum
	}

	return out
}

// AllocateWeights deriva o peso fracionário de cada canal selecionado.
//
// Modo manual: os valores brutos informados são normalizados proporcionalmente;
// o piso mínimo não se aplica (a edição manual é soberana sobre a divisão).
// Modo automático: parte dos pesos base do objetivo; com includeAll ativo,
// canais com peso base zero são elevados ao piso antes da normalização.
func (s *Service) AllocateWeights(
	selected []domain.Platform,
	goal domain.Goal,
	manualSplit bool,
	manualWeights map[domain.Platform]float64,
	includeAll bool,
) map[domain.Platform]float64 {
	// Um único canal sempre recebe a verba inteira
	if len(selected) == 1 {
		return map[domain.Platform]float64{selected[0]: 1}
	}

	if manualSplit {
		return NormalizeToUnit(manualWeights, selected)
	}

	base := domain.GoalWeights[goal]
	weights := make(map[domain.Platform]float64, len(selected))
	for _, platform := range selected {
		weights[platform] = base[platform]
	}

	if includeAll {
		for _, platform := range selected {
			if weights[platform] == 0 {
				weights[platform] = minAutoWeight
			}
		}
	}

	return NormalizeToUnit(weights, selected)
}
