// Package splitting cuida das divisões manuais exibidas em percentuais
// inteiros. Toda operação preserva o invariante de soma exata 100 após o
// arredondamento.
package splitting

import (
	"math"
	"sort"

	"github.com/vfg2006/media-plan-api/internal/domain"
)

// RoundToIntegerPercentages converte participações reais não-negativas em
// percentuais inteiros que somam exatamente 100, garantindo o piso minEach
// por item sempre que minEach×N ≤ 100. O excedente acima do piso é repartido
// na proporção das participações originais e arredondado pelo método dos
// maiores restos; entradas degeneradas (todas zero, piso inalcançável) caem
// na divisão igualitária.
func RoundToIntegerPercentages(values map[domain.Platform]float64, keys []domain.Platform, minEach int) map[domain.Platform]int {
	count := len(keys)
	if count == 0 {
		return map[domain.Platform]int{}
	}

	total := 0.0
	safe := make(map[domain.Platform]float64, count)
	for _, key := range keys {
		v := values[key]
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		safe[key] = v
		total += v
	}

	if total <= 0 || minEach*count >= 100 {
		return DistributeEqually(keys, minEach)
	}

	scaled := make(map[domain.Platform]float64, count)
	for _, key := range keys {
		scaled[key] = (safe[key] / total) * 100
	}

	if minEach <= 0 {
		return roundToIntegers(scaled, keys, 0)
	}

	// Piso garantido mais o excedente proporcional ao que cada item tinha
	// acima do piso
	base := make(map[domain.Platform]float64, count)
	extras := make(map[domain.Platform]float64, count)
	extraTotal := 0.0
	for _, key := range keys {
		base[key] = float64(minEach)
		extra := scaled[key] - float64(minEach)
		if extra < 0 {
			extra = 0
		}
		extras[key] = extra
		extraTotal += extra
	}

	remainder := 100 - float64(minEach*count)
	if extraTotal <= 0 {
		evenAdd := remainder / float64(count)
		for _, key := range keys {
			base[key] += evenAdd
		}
		return roundToIntegers(base, keys, minEach)
	}

	for _, key := range keys {
		base[key] += remainder * (extras[key] / extraTotal)
	}

	return roundToIntegers(base, keys, minEach)
}

// roundItem acompanha um item durante o arredondamento por maiores restos
type roundItem struct {
	key   domain.Platform
	floor int
	frac  float64
}

// roundToIntegers aplica o método dos maiores restos a valores que já somam
// aproximadamente 100. Unidades faltantes vão para os maiores restos, na
// ordem de keys em caso de empate. Se os pisos ultrapassarem 100, o guard
// remove unidades dos menores restos sem violar minEach.
func roundToIntegers(values map[domain.Platform]float64, keys []domain.Platform, minEach int) map[domain.Platform]int {
	items := make([]*roundItem, 0, len(keys))
	total := 0
	for _, key := range keys {
		value := values[key]
		floor := int(math.Floor(value))
		items = append(items, &roundItem{key: key, floor: floor, frac: value - float64(floor)})
		total += floor
	}

	remainder := 100 - total
	if remainder > 0 {
		ordered := make([]*roundItem, len(items))
		copy(ordered, items)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].frac > ordered[j].frac
		})
		for index := 0; remainder > 0; index++ {
			ordered[index%len(ordered)].floor++
			remainder--
		}
	} else if remainder < 0 {
		ordered := make([]*roundItem, len(items))
		copy(ordered, items)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].frac < ordered[j].frac
		})
		for index := 0; remainder < 0 && index < len(ordered)*4; index++ {
			item := ordered[index%len(ordered)]
			if item.floor > minEach {
				item.floor--
				remainder++
			}
		}
	}

	result := make(map[domain.Platform]int, len(items))
	for _, item := range items {
		result[item.key] = item.floor
	}

	return result
}

// DistributeEqually devolve a divisão igualitária em percentuais inteiros
// somando exatamente 100, com cada item recebendo pelo menos minEach quando
// isso for alcançável
func DistributeEqually(keys []domain.Platform, minEach int) map[domain.Platform]int {
	result := make(map[domain.Platform]int, len(keys))
	count := len(keys)
	if count == 0 {
		return result
	}

	if minEach <= 0 || minEach*count >= 100 {
		base := 100 / count
		remainder := 100 - base*count
		for _, key := range keys {
			result[key] = base
			if remainder > 0 {
				result[key]++
				remainder--
			}
		}
		return result
	}

	// Parte do piso e reparte o que sobra
	remainder := 100 - minEach*count
	baseAdd := remainder / count
	leftover := remainder - baseAdd*count
	for _, key := range keys {
		result[key] = minEach + baseAdd
		if leftover > 0 {
			result[key]++
			leftover--
		}
	}

	return result
}

// ClearToZero zera a divisão manual de todos os canais informados
func ClearToZero(keys []domain.Platform) map[domain.Platform]int {
	result := make(map[domain.Platform]int, len(keys))
	for _, key := range keys {
		result[key] = 0
	}
	return result
}
