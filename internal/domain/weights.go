package domain

// GoalWeights mapeia cada objetivo para os pesos base por canal. Os pesos
// não precisam somar 1 no conjunto completo; apenas o subconjunto
// selecionado é normalizado no momento do uso.
var GoalWeights = map[Goal]map[Platform]float64{
	GoalAwareness: {
		PlatformFacebook:      0.22,
		PlatformInstagram:     0.23,
		PlatformTikTok:        0.20,
		PlatformYouTube:       0.20,
		PlatformGoogleDisplay: 0.10,
		PlatformGoogleSearch:  0.03,
		PlatformLinkedIn:      0.02,
	},
	GoalLeads: {
		PlatformGoogleSearch:  0.45,
		PlatformFacebook:      0.25,
		PlatformInstagram:     0.10,
		PlatformGoogleDisplay: 0.05,
		PlatformYouTube:       0.00,
		PlatformTikTok:        0.05,
		PlatformLinkedIn:      0.10,
	},
	GoalTraffic: {
		PlatformGoogleSearch:  0.40,
		PlatformFacebook:      0.22,
		PlatformInstagram:     0.15,
		PlatformGoogleDisplay: 0.08,
		PlatformYouTube:       0.08,
		PlatformTikTok:        0.05,
		PlatformLinkedIn:      0.02,
	},
}
