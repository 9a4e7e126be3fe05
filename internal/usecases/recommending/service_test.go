package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/media-plan-api/internal/domain"
)

func viewsOf(v float64) *float64 { return &v }

func TestService_Generate(t *testing.T) {
	service := &Service{}

	tests := []struct {
		name     string
		results  []*domain.PlatformResult
		validate func(t *testing.T, recs []Recommendation)
	}{
		{
			name: "CTR baixo gera aviso de criativo",
			results: []*domain.PlatformResult{
				{Platform: domain.PlatformFacebook, CTR: 0.005, Impressions: 1000, Clicks: 5},
			},
			validate: func(t *testing.T, recs []Recommendation) {
				assert.NotEmpty(t, recs)
				assert.Equal(t, TypeWarning, recs[0].Type)
				assert.Equal(t, domain.PlatformFacebook, recs[0].Platform)
			},
		},
		{
			name: "CPC efetivo acima de 1.3x a premissa gera aviso de lance",
			results: []*domain.PlatformResult{
				{Platform: domain.PlatformGoogleSearch, CTR: 0.03, CPC: 9, CPL: 1},
			},
			validate: func(t *testing.T, recs []Recommendation) {
				found := false
				for _, rec := range recs {
					if rec.Platform == domain.PlatformGoogleSearch && rec.Type == TypeWarning {
						found = true
					}
				}
				assert.True(t, found, "esperava aviso de CPC alto")
			},
		},
		{
			name: "YouTube com taxa de visualização fraca gera aviso de gancho",
			results: []*domain.PlatformResult{
				{
					Platform:    domain.PlatformYouTube,
					CTR:         0.012,
					Impressions: 10000,
					Views:       viewsOf(1000), // 10% < 15%
				},
			},
			validate: func(t *testing.T, recs []Recommendation) {
				assert.NotEmpty(t, recs)
			},
		},
		{
			name: "LinkedIn com CPL acima de 2x a média Meta sugere realocação",
			results: []*domain.PlatformResult{
				{Platform: domain.PlatformFacebook, CTR: 0.011, CPL: 20},
				{Platform: domain.PlatformInstagram, CTR: 0.011, CPL: 30},
				{Platform: domain.PlatformLinkedIn, CTR: 0.011, CPL: 120},
			},
			validate: func(t *testing.T, recs []Recommendation) {
				found := false
				for _, rec := range recs {
					if rec.Platform == domain.PlatformLinkedIn && rec.Type == TypeSuggestion {
						found = true
					}
				}
				assert.True(t, found, "esperava sugestão de realocação para o LinkedIn")
			},
		},
		{
			name: "Canal saudável não gera conselhos",
			results: []*domain.PlatformResult{
				{
					Platform:    domain.PlatformGoogleSearch,
					CTR:         0.03,
					CPC:         6,
					CPL:         6.0 / 0.070, // exatamente o CPL esperado
					Impressions: 1000,
				},
			},
			validate: func(t *testing.T, recs []Recommendation) {
				assert.Empty(t, recs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, service.Generate(tt.results))
		})
	}
}
