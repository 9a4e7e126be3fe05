package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-plan-api/infrastructure/database/postgres"
	"github.com/vfg2006/media-plan-api/internal/domain"
)

const (
	fxRatesTable = "fx_rates"

	// A tabela de câmbio é um singleton: uma única linha com o payload
	// completo e o instante da última atualização
	fxRatesRowID = 1
)

type RateRepository interface {
	Load() (*domain.RateTable, error)
	Save(table *domain.RateTable) error
}

type rateRepository struct {
	conn *postgres.Connection
}

func NewRateRepository(conn *postgres.Connection) RateRepository {
	return &rateRepository{
		conn: conn,
	}
}

// Load lê a tabela de câmbio persistida e a mescla sobre os valores padrão:
// moedas ausentes no payload voltam ao default embutido. Payload corrompido
// é descartado por inteiro e substituído pelos defaults, nunca confiado
// parcialmente nem propagado como erro.
func (r *rateRepository) Load() (*domain.RateTable, error) {
	query, args, err := squirrel.
		Select("payload", "refreshed_at").
		From(fxRatesTable).
		Where(squirrel.Eq{"id": fxRatesRowID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var payload []byte
	var refreshedAt int64

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&payload, &refreshedAt); err != nil {
		if err == sql.ErrNoRows {
			return &domain.RateTable{Rates: domain.DefaultRates()}, nil
		}
		return nil, fmt.Errorf("erro ao escanear a tabela de câmbio: %w", err)
	}

	stored := make(map[domain.Currency]*float64)
	if err := json.Unmarshal(payload, &stored); err != nil {
		logrus.WithError(err).Warn("fx: payload de câmbio corrompido, usando defaults")
		return &domain.RateTable{Rates: domain.DefaultRates()}, nil
	}

	rates := domain.DefaultRates()
	for cur, rate := range stored {
		rates[cur] = rate
	}

	return &domain.RateTable{Rates: rates, RefreshedAt: refreshedAt}, nil
}

// Save grava a tabela completa e o timestamp em uma única linha
func (r *rateRepository) Save(table *domain.RateTable) error {
	payload, err := json.Marshal(table.Rates)
	if err != nil {
		return fmt.Errorf("erro ao serializar a tabela de câmbio: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert(fxRatesTable).
		Columns("id", "payload", "refreshed_at").
		Values(fxRatesRowID, payload, table.RefreshedAt).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				payload = EXCLUDED.payload,
				refreshed_at = EXCLUDED.refreshed_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
