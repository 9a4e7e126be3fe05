package domain

// Currency é um código de moeda aceito pelo planejador. SER é um código
// legado de planilhas antigas que mapeia para SAR via alias.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEGP Currency = "EGP"
	CurrencyAED Currency = "AED"
	CurrencySAR Currency = "SAR"
	CurrencySER Currency = "SER"
	CurrencyEUR Currency = "EUR"
)

// ReferenceCurrency é a moeda em que toda a matemática do motor opera
const ReferenceCurrency = CurrencyUSD

// AllCurrencies lista os códigos aceitos em entradas de usuário
var AllCurrencies = []Currency{
	CurrencyUSD,
	CurrencyEGP,
	CurrencyAED,
	CurrencySAR,
	CurrencySER,
	CurrencyEUR,
}

var currencyAliases = map[Currency]Currency{
	CurrencySER: CurrencySAR,
}

// CanonicalCurrency resolve códigos não-ISO para o código ISO equivalente
// antes de qualquer consulta à tabela de taxas
func CanonicalCurrency(cur Currency) Currency {
	if canonical, ok := currencyAliases[cur]; ok {
		return canonical
	}
	return cur
}

// Valid informa se o código (ou seu alias) é aceito
func (c Currency) Valid() bool {
	switch CanonicalCurrency(c) {
	case CurrencyUSD, CurrencyEGP, CurrencyAED, CurrencySAR, CurrencyEUR:
		return true
	}
	return false
}

// RateTable guarda "unidades por 1 USD" por moeda. Uma taxa nil significa
// "taxa não definida": conversões tratam o valor como se já estivesse em USD.
// RefreshedAt é o instante da última atualização em milissegundos de época.
type RateTable struct {
	Rates       map[Currency]*float64 `json:"rates"`
	RefreshedAt int64                 `json:"refreshed_at"`
}

const (
	// Pegs cambiais conhecidos do AED e do SAR frente ao dólar
	PegAEDPerUSD = 3.6725
	PegSARPerUSD = 3.75
)

// DefaultRates devolve a tabela semeada: pegs onde fazem sentido, nil onde
// o usuário deve decidir
func DefaultRates() map[Currency]*float64 {
	return map[Currency]*float64{
		CurrencyUSD: f(1),
		CurrencyAED: f(PegAEDPerUSD),
		CurrencySAR: f(PegSARPerUSD),
		CurrencyEGP: nil,
		CurrencyEUR: nil,
	}
}

// CloneRates copia uma tabela de taxas sem compartilhar ponteiros
func CloneRates(rates map[Currency]*float64) map[Currency]*float64 {
	out := make(map[Currency]*float64, len(rates))
	for cur, rate := range rates {
		if rate == nil {
			out[cur] = nil
			continue
		}
		v := *rate
		out[cur] = &v
	}
	return out
}
