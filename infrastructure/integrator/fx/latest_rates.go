package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/vfg2006/media-plan-api/internal/domain"
)

type latestRatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// LatestRates consulta as cotações ao vivo na referência USD. Só entram no
// resultado as moedas conhecidas que o provider de fato devolveu; símbolos
// ausentes ou desconhecidos ficam de fora para o chamador preservar o valor
// anterior do cache.
func (c *FxClient) LatestRates(ctx context.Context) (map[domain.Currency]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/latest")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("base", string(domain.ReferenceCurrency))
	query.Set("symbols", strings.Join(c.config.Symbols, ","))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	var response latestRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	rates := make(map[domain.Currency]float64, len(response.Rates))
	for symbol, rate := range response.Rates {
		cur := domain.CanonicalCurrency(domain.Currency(symbol))
		if !cur.Valid() || rate <= 0 {
			continue
		}
		rates[cur] = rate
	}

	return rates, nil
}
