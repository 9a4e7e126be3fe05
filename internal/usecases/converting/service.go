// Package converting mantém o cache de taxas de câmbio usado para
// normalizar valores monetários. A matemática do motor roda em USD;
// somente dinheiro é convertido, nunca contagens.
package converting

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-plan-api/infrastructure/repository"
	"github.com/vfg2006/media-plan-api/internal/domain"
)

// Provider busca um subconjunto de taxas ao vivo ("unidades por 1 USD").
// Retorna apenas as moedas que conseguiu obter; moedas omitidas preservam
// o valor em cache.
type Provider func(ctx context.Context) (map[domain.Currency]float64, error)

// Converter expõe o cache de câmbio e suas operações
type Converter interface {
	Rates() *domain.RateTable
	SaveRates(rates map[domain.Currency]*float64) (*domain.RateTable, error)
	ApplyPegs() (*domain.RateTable, error)
	Refresh(ctx context.Context, provider Provider, ttl time.Duration) (*domain.RateTable, error)
	ToReference(amount float64, cur domain.Currency) float64
	FromReference(amount float64, cur domain.Currency) float64
	HasRate(cur domain.Currency) bool
}

// Service guarda a tabela em memória e persiste cada mutação via
// repositório. O mutex serializa refreshes concorrentes; leituras copiam a
// tabela e nunca expõem o estado interno.
type Service struct {
	repo  repository.RateRepository
	mu    sync.Mutex
	table *domain.RateTable
	now   func() time.Time
}

// NewService carrega a tabela persistida (ou os defaults, se ausente ou
// corrompida) e mantém o cache em memória
func NewService(repo repository.RateRepository) (Converter, error) {
	table, err := repo.Load()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a tabela de câmbio")
	}

	return &Service{
		repo:  repo,
		table: table,
		now:   time.Now,
	}, nil
}

// Rates devolve uma cópia da tabela corrente
func (s *Service) Rates() *domain.RateTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &domain.RateTable{
		Rates:       domain.CloneRates(s.table.Rates),
		RefreshedAt: s.table.RefreshedAt,
	}
}

// SaveRates substitui as taxas mantendo o timestamp da última atualização
// ao vivo e persiste o resultado
func (s *Service) SaveRates(rates map[domain.Currency]*float64) (*domain.RateTable, error) {
	s.mu.Lock()

	next := &domain.RateTable{
		Rates:       domain.CloneRates(rates),
		RefreshedAt: s.table.RefreshedAt,
	}

	if err := s.repo.Save(next); err != nil {
		s.mu.Unlock()
		return nil, errors.Wrap(err, "erro ao persistir a tabela de câmbio")
	}

	s.table = next
	s.mu.Unlock()

	return s.Rates(), nil
}

// ApplyPegs sobrescreve AED e SAR com os pegs de mercado e fixa USD em 1,
// preservando as demais moedas
func (s *Service) ApplyPegs() (*domain.RateTable, error) {
	s.mu.Lock()

	next := &domain.RateTable{
		Rates:       domain.CloneRates(s.table.Rates),
		RefreshedAt: s.table.RefreshedAt,
	}

	usd := 1.0
	aed := domain.PegAEDPerUSD
	sar := domain.PegSARPerUSD
	next.Rates[domain.CurrencyUSD] = &usd
	next.Rates[domain.CurrencyAED] = &aed
	next.Rates[domain.CurrencySAR] = &sar

	if err := s.repo.Save(next); err != nil {
		s.mu.Unlock()
		return nil, errors.Wrap(err, "erro ao persistir os pegs")
	}

	s.table = next
	s.mu.Unlock()

	return s.Rates(), nil
}

// Refresh atualiza a tabela com o provider injetado, respeitando o TTL.
// Dentro da janela o provider não é invocado e o cache atual é devolvido.
// Se o provider falhar, cache, tabela e timestamp ficam exatamente como
// estavam e o erro sobe para o chamador, que decide avisar o usuário e
// seguir com a última tabela boa.
func (s *Service) Refresh(ctx context.Context, provider Provider, ttl time.Duration) (*domain.RateTable, error) {
	s.mu.Lock()

	now := s.now().UnixMilli()
	if now-s.table.RefreshedAt < ttl.Milliseconds() {
		s.mu.Unlock()
		logrus.Debug("fx: cache dentro do TTL, refresh ignorado")
		return s.Rates(), nil
	}
	s.mu.Unlock()

	// A chamada de rede acontece fora do lock; dois refreshes simultâneos
	// fora do TTL correm de forma inofensiva (último a gravar vence, ambos
	// gravariam um superconjunto dos mesmos dados ao vivo)
	live, err := provider(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar taxas ao vivo")
	}

	s.mu.Lock()

	next := &domain.RateTable{
		Rates:       domain.CloneRates(s.table.Rates),
		RefreshedAt: now,
	}
	for cur, rate := range live {
		v := rate
		next.Rates[domain.CanonicalCurrency(cur)] = &v
	}

	if err := s.repo.Save(next); err != nil {
		s.mu.Unlock()
		return nil, errors.Wrap(err, "erro ao persistir as taxas atualizadas")
	}

	s.table = next
	s.mu.Unlock()

	logrus.WithField("currencies", len(live)).Info("fx: tabela de câmbio atualizada")
	return s.Rates(), nil
}

// rateFor resolve o alias e devolve a taxa conhecida, ou nil
func (s *Service) rateFor(cur domain.Currency) *float64 {
	return s.table.Rates[domain.CanonicalCurrency(cur)]
}

// ToReference converte um valor para USD. Moeda sem taxa definida é
// tratada como se já estivesse em USD, uma degradação deliberada e não
// um erro.
func (s *Service) ToReference(amount float64, cur domain.Currency) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate := s.rateFor(cur)
	if rate == nil || *rate == 0 {
		return amount
	}
	return amount / *rate
}

// FromReference converte um valor em USD para a moeda pedida, com a mesma
// degradação silenciosa de ToReference
func (s *Service) FromReference(amount float64, cur domain.Currency) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate := s.rateFor(cur)
	if rate == nil || *rate == 0 {
		return amount
	}
	return amount * *rate
}

// HasRate informa se existe taxa definida para a moeda (considerando alias)
func (s *Service) HasRate(cur domain.Currency) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rateFor(cur) != nil
}
