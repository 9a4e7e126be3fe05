package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-plan-api/internal/config"
	"github.com/vfg2006/media-plan-api/internal/domain"
	"github.com/vfg2006/media-plan-api/internal/usecases/converting"
	"github.com/vfg2006/media-plan-api/pkg/apiErrors"
	"github.com/vfg2006/media-plan-api/pkg/utils"
)

// SaveRatesRequest é a tabela manual enviada pelo cliente. Valores nulos
// marcam moedas sem taxa definida.
type SaveRatesRequest struct {
	Rates map[domain.Currency]*float64 `json:"rates"`
}

// ConvertResponse é o resultado de uma conversão pontual
type ConvertResponse struct {
	Amount    float64         `json:"amount"`
	Currency  domain.Currency `json:"currency"`
	Converted float64         `json:"converted"`
	HasRate   bool            `json:"has_rate"`
}

// GetRates devolve a tabela de câmbio corrente com o timestamp da última
// atualização ao vivo
func GetRates(converter converting.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(converter.Rates())
	}
}

// SaveRates substitui a tabela de câmbio pelos valores manuais enviados
func SaveRates(converter converting.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveRatesRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		rates := make(map[domain.Currency]*float64, len(req.Rates))
		for cur, rate := range req.Rates {
			canonical := domain.CanonicalCurrency(cur)
			if !canonical.Valid() {
				apiErrors.WriteError(w, apiErrors.ErrUnknownCurrency, "Moeda desconhecida", map[string]any{
					"currency": cur,
				})
				return
			}
			if rate != nil && *rate <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Taxa deve ser positiva ou nula", map[string]any{
					"currency": cur,
				})
				return
			}
			rates[canonical] = rate
		}

		table, err := converter.SaveRates(rates)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar tabela de câmbio", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(table)
	}
}

// ApplyPegs aplica o preset de pegs cambiais do Golfo mantendo as demais
// moedas como estão
func ApplyPegs(converter converting.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := converter.ApplyPegs()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao aplicar pegs", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(table)
	}
}

// RefreshRates força uma atualização das taxas ao vivo. Dentro da janela de
// TTL a tabela em cache é devolvida sem consultar o provider, a menos que
// force=true seja informado.
func RefreshRates(converter converting.Converter, provider converting.Provider, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ttl := time.Duration(cfg.FxRatesSync.TTLHours) * time.Hour
		if r.URL.Query().Get("force") == "true" {
			ttl = 0
		}

		table, err := converter.Refresh(r.Context(), provider, ttl)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrRatesRefresh, "Erro ao atualizar taxas ao vivo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(table)
	}
}

// ConvertAmount converte um valor entre a moeda pedida e a moeda de
// referência. direction=from converte de USD para a moeda; qualquer outro
// valor converte da moeda para USD.
func ConvertAmount(converter converting.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		amount, err := strconv.ParseFloat(query.Get("amount"), 64)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor inválido para conversão", nil)
			return
		}

		currency := domain.Currency(query.Get("currency"))
		if !domain.CanonicalCurrency(currency).Valid() {
			apiErrors.WriteError(w, apiErrors.ErrUnknownCurrency, "Moeda desconhecida", map[string]any{
				"currency": currency,
			})
			return
		}

		var converted float64
		if query.Get("direction") == "from" {
			converted = converter.FromReference(amount, currency)
		} else {
			converted = converter.ToReference(amount, currency)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ConvertResponse{
			Amount:    amount,
			Currency:  domain.CanonicalCurrency(currency),
			Converted: utils.RoundWithTwoDecimalPlace(converted),
			HasRate:   converter.HasRate(currency),
		})
	}
}
