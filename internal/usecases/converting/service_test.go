package converting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/media-plan-api/infrastructure/repository/mocks"
	"github.com/vfg2006/media-plan-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const ttl = 6 * time.Hour

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func rate(v float64) *float64 { return &v }

func newTestService(table *domain.RateTable, repo *mocks.MockRateRepository) *Service {
	return &Service{
		repo:  repo,
		table: table,
		now:   func() time.Time { return testNow },
	}
}

func TestNewService_LoadsPersistedTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	repo.EXPECT().Load().Return(&domain.RateTable{
		Rates:       map[domain.Currency]*float64{domain.CurrencyEGP: rate(50)},
		RefreshedAt: 123,
	}, nil)

	service, err := NewService(repo)
	require.NoError(t, err)

	table := service.Rates()
	require.NotNil(t, table.Rates[domain.CurrencyEGP])
	assert.Equal(t, 50.0, *table.Rates[domain.CurrencyEGP])
	assert.Equal(t, int64(123), table.RefreshedAt)
}

func TestNewService_PropagatesLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	repo.EXPECT().Load().Return(nil, errors.New("sem conexão"))

	_, err := NewService(repo)
	assert.Error(t, err)
}

func TestService_Refresh_SkipsProviderWithinTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	// Nenhum Save esperado: dentro do TTL nada muda

	service := newTestService(&domain.RateTable{
		Rates:       domain.DefaultRates(),
		RefreshedAt: testNow.Add(-time.Hour).UnixMilli(),
	}, repo)

	providerCalls := 0
	provider := func(ctx context.Context) (map[domain.Currency]float64, error) {
		providerCalls++
		return map[domain.Currency]float64{domain.CurrencySAR: 3.71}, nil
	}

	first, err := service.Refresh(context.Background(), provider, ttl)
	require.NoError(t, err)

	second, err := service.Refresh(context.Background(), provider, ttl)
	require.NoError(t, err)

	assert.Zero(t, providerCalls, "provider não deve ser invocado dentro do TTL")
	assert.Equal(t, first, second)
}

func TestService_Refresh_MergePreservesOmittedCurrencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	repo.EXPECT().Save(gomock.Any()).Return(nil)

	service := newTestService(&domain.RateTable{
		Rates: map[domain.Currency]*float64{
			domain.CurrencyUSD: rate(1),
			domain.CurrencyEGP: rate(50),
			domain.CurrencySAR: rate(3.6),
			domain.CurrencyEUR: nil,
		},
		RefreshedAt: 0,
	}, repo)

	merged, err := service.Refresh(context.Background(), func(ctx context.Context) (map[domain.Currency]float64, error) {
		return map[domain.Currency]float64{domain.CurrencySAR: 3.71}, nil
	}, ttl)
	require.NoError(t, err)

	require.NotNil(t, merged.Rates[domain.CurrencySAR])
	assert.Equal(t, 3.71, *merged.Rates[domain.CurrencySAR])

	// EGP não veio do provider e deve ser preservado
	require.NotNil(t, merged.Rates[domain.CurrencyEGP])
	assert.Equal(t, 50.0, *merged.Rates[domain.CurrencyEGP])

	assert.Equal(t, testNow.UnixMilli(), merged.RefreshedAt)
}

func TestService_Refresh_ProviderFailureLeavesStateUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	// Save nunca deve acontecer quando o provider falha

	seeded := &domain.RateTable{
		Rates: map[domain.Currency]*float64{
			domain.CurrencyUSD: rate(1),
			domain.CurrencyEGP: rate(50),
		},
		RefreshedAt: 42,
	}
	service := newTestService(seeded, repo)

	before := service.Rates()

	_, err := service.Refresh(context.Background(), func(ctx context.Context) (map[domain.Currency]float64, error) {
		return nil, errors.New("falha de rede")
	}, ttl)
	require.Error(t, err)

	after := service.Rates()
	assert.Equal(t, before, after, "tabela e timestamp devem ficar intactos após falha")
}

func TestService_Refresh_SaveFailureLeavesMemoryUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	repo.EXPECT().Save(gomock.Any()).Return(errors.New("disco cheio"))

	service := newTestService(&domain.RateTable{
		Rates:       domain.DefaultRates(),
		RefreshedAt: 0,
	}, repo)

	before := service.Rates()

	_, err := service.Refresh(context.Background(), func(ctx context.Context) (map[domain.Currency]float64, error) {
		return map[domain.Currency]float64{domain.CurrencyEGP: 49.5}, nil
	}, ttl)
	require.Error(t, err)

	assert.Equal(t, before, service.Rates())
}

func TestService_Refresh_ResolvesAliasFromProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	repo.EXPECT().Save(gomock.Any()).Return(nil)

	service := newTestService(&domain.RateTable{
		Rates:       domain.DefaultRates(),
		RefreshedAt: 0,
	}, repo)

	merged, err := service.Refresh(context.Background(), func(ctx context.Context) (map[domain.Currency]float64, error) {
		// Código legado SER deve cair na entrada canônica SAR
		return map[domain.Currency]float64{domain.CurrencySER: 3.70}, nil
	}, ttl)
	require.NoError(t, err)

	require.NotNil(t, merged.Rates[domain.CurrencySAR])
	assert.Equal(t, 3.70, *merged.Rates[domain.CurrencySAR])
	_, hasSER := merged.Rates[domain.CurrencySER]
	assert.False(t, hasSER, "a tabela nunca guarda entradas duplicadas para aliases")
}

func TestService_Conversions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	service := newTestService(&domain.RateTable{
		Rates: map[domain.Currency]*float64{
			domain.CurrencyUSD: rate(1),
			domain.CurrencySAR: rate(3.75),
			domain.CurrencyEGP: nil,
		},
	}, repo)

	// Conversão padrão
	assert.InDelta(t, 2.0, service.ToReference(7.5, domain.CurrencySAR), 1e-9)
	assert.InDelta(t, 7.5, service.FromReference(2.0, domain.CurrencySAR), 1e-9)

	// Alias SER usa a taxa do SAR
	assert.InDelta(t, 2.0, service.ToReference(7.5, domain.CurrencySER), 1e-9)
	assert.InDelta(t, 7.5, service.FromReference(2.0, domain.CurrencySER), 1e-9)

	// Moeda sem taxa definida passa intocada
	assert.Equal(t, 100.0, service.ToReference(100, domain.CurrencyEGP))
	assert.Equal(t, 100.0, service.FromReference(100, domain.CurrencyEGP))

	assert.True(t, service.HasRate(domain.CurrencySAR))
	assert.True(t, service.HasRate(domain.CurrencySER))
	assert.False(t, service.HasRate(domain.CurrencyEGP))
}

func TestService_ApplyPegs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	repo.EXPECT().Save(gomock.Any()).Return(nil)

	service := newTestService(&domain.RateTable{
		Rates: map[domain.Currency]*float64{
			domain.CurrencyUSD: rate(0.5),
			domain.CurrencyAED: rate(3.8),
			domain.CurrencySAR: rate(3.6),
			domain.CurrencyEGP: rate(30),
			domain.CurrencyEUR: rate(0.92),
		},
		RefreshedAt: 7,
	}, repo)

	pegged, err := service.ApplyPegs()
	require.NoError(t, err)

	assert.Equal(t, 1.0, *pegged.Rates[domain.CurrencyUSD])
	assert.Equal(t, domain.PegAEDPerUSD, *pegged.Rates[domain.CurrencyAED])
	assert.Equal(t, domain.PegSARPerUSD, *pegged.Rates[domain.CurrencySAR])

	// Demais moedas preservadas, timestamp intacto
	assert.Equal(t, 30.0, *pegged.Rates[domain.CurrencyEGP])
	assert.Equal(t, 0.92, *pegged.Rates[domain.CurrencyEUR])
	assert.Equal(t, int64(7), pegged.RefreshedAt)
}

func TestService_SaveRates_PersistsAndKeepsTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateRepository(ctrl)
	repo.EXPECT().Save(gomock.Any()).DoAndReturn(func(table *domain.RateTable) error {
		assert.Equal(t, int64(99), table.RefreshedAt)
		return nil
	})

	service := newTestService(&domain.RateTable{
		Rates:       domain.DefaultRates(),
		RefreshedAt: 99,
	}, repo)

	saved, err := service.SaveRates(map[domain.Currency]*float64{
		domain.CurrencyUSD: rate(1),
		domain.CurrencyEGP: rate(48.7),
	})
	require.NoError(t, err)

	require.NotNil(t, saved.Rates[domain.CurrencyEGP])
	assert.Equal(t, 48.7, *saved.Rates[domain.CurrencyEGP])
	assert.Equal(t, int64(99), saved.RefreshedAt)
}
