package splitting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/media-plan-api/internal/domain"
)

func sumOf(m map[domain.Platform]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func TestRoundToIntegerPercentages(t *testing.T) {
	tests := []struct {
		name    string
		values  map[domain.Platform]float64
		keys    []domain.Platform
		minEach int
	}{
		{
			name: "Participações fracionárias simples",
			values: map[domain.Platform]float64{
				domain.PlatformFacebook:     33.3,
				domain.PlatformInstagram:    33.3,
				domain.PlatformGoogleSearch: 33.4,
			},
			keys:    []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformGoogleSearch},
			minEach: 0,
		},
		{
			name: "Vetor desbalanceado com piso de 10",
			values: map[domain.Platform]float64{
				domain.PlatformFacebook:     90,
				domain.PlatformInstagram:    5,
				domain.PlatformGoogleSearch: 5,
			},
			keys:    []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformGoogleSearch},
			minEach: 10,
		},
		{
			name: "Valores brutos que não somam 100",
			values: map[domain.Platform]float64{
				domain.PlatformFacebook:  30,
				domain.PlatformInstagram: 50,
			},
			keys:    []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram},
			minEach: 0,
		},
		{
			name: "Sete canais com restos idênticos",
			values: map[domain.Platform]float64{
				domain.PlatformFacebook:      1,
				domain.PlatformInstagram:     1,
				domain.PlatformGoogleSearch:  1,
				domain.PlatformGoogleDisplay: 1,
				domain.PlatformYouTube:       1,
				domain.PlatformTikTok:        1,
				domain.PlatformLinkedIn:      1,
			},
			keys:    domain.AllPlatforms,
			minEach: 10,
		},
		{
			name: "Valores negativos tratados como zero",
			values: map[domain.Platform]float64{
				domain.PlatformFacebook:  -20,
				domain.PlatformInstagram: 60,
				domain.PlatformTikTok:    40,
			},
			keys:    []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformTikTok},
			minEach: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundToIntegerPercentages(tt.values, tt.keys, tt.minEach)

			require.Len(t, result, len(tt.keys))
			assert.Equal(t, 100, sumOf(result), "os percentuais devem somar exatamente 100")

			if tt.minEach*len(tt.keys) <= 100 {
				for key, value := range result {
					assert.GreaterOrEqual(t, value, tt.minEach, "canal %s abaixo do piso", key)
				}
			}
		})
	}
}

func TestRoundToIntegerPercentages_WithinOneOfProportionalShare(t *testing.T) {
	values := map[domain.Platform]float64{
		domain.PlatformFacebook:     27.4,
		domain.PlatformInstagram:    12.9,
		domain.PlatformGoogleSearch: 59.7,
	}
	keys := []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformGoogleSearch}

	result := RoundToIntegerPercentages(values, keys, 0)

	total := 0.0
	for _, v := range values {
		total += v
	}
	for _, key := range keys {
		proportional := (values[key] / total) * 100
		assert.LessOrEqual(t, math.Abs(float64(result[key])-proportional), 1.0,
			"canal %s distante da participação proporcional", key)
	}
}

func TestRoundToIntegerPercentages_DegenerateInputs(t *testing.T) {
	keys := []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformTikTok}

	// Tudo zero cai na divisão igualitária
	result := RoundToIntegerPercentages(map[domain.Platform]float64{}, keys, 0)
	assert.Equal(t, 100, sumOf(result))
	for _, v := range result {
		assert.InDelta(t, 33, v, 1)
	}

	// Piso inalcançável também cai na divisão igualitária
	result = RoundToIntegerPercentages(map[domain.Platform]float64{domain.PlatformFacebook: 100}, keys, 40)
	assert.Equal(t, 100, sumOf(result))

	// Sem canais não há o que distribuir
	assert.Empty(t, RoundToIntegerPercentages(nil, nil, 10))
}

func TestRoundToIntegerPercentages_TieBreakByKeyOrder(t *testing.T) {
	values := map[domain.Platform]float64{
		domain.PlatformFacebook:  33.5,
		domain.PlatformInstagram: 33.5,
		domain.PlatformTikTok:    33.0,
	}
	keys := []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformTikTok}

	result := RoundToIntegerPercentages(values, keys, 0)

	assert.Equal(t, 100, sumOf(result))
	// O desempate segue a ordem de keys: Facebook recebe a unidade extra
	assert.Equal(t, 34, result[domain.PlatformFacebook])
	assert.Equal(t, 33, result[domain.PlatformInstagram])
	assert.Equal(t, 33, result[domain.PlatformTikTok])
}

func TestDistributeEqually(t *testing.T) {
	tests := []struct {
		name    string
		keys    []domain.Platform
		minEach int
	}{
		{"Dois canais sem piso", []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram}, 0},
		{"Três canais com piso 10", []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformTikTok}, 10},
		{"Sete canais com piso 10", domain.AllPlatforms, 10},
		{"Piso inalcançável", domain.AllPlatforms, 20},
		{"Canal único", []domain.Platform{domain.PlatformYouTube}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DistributeEqually(tt.keys, tt.minEach)

			assert.Equal(t, 100, sumOf(result))

			// A divisão igualitária nunca varia mais de 1 entre canais
			low, high := 101, -1
			for _, v := range result {
				if v < low {
					low = v
				}
				if v > high {
					high = v
				}
			}
			assert.LessOrEqual(t, high-low, 1)
		})
	}

	assert.Empty(t, DistributeEqually(nil, 10))
}

func TestClearToZero(t *testing.T) {
	result := ClearToZero(domain.AllPlatforms)

	require.Len(t, result, len(domain.AllPlatforms))
	for _, v := range result {
		assert.Zero(t, v)
	}
}
