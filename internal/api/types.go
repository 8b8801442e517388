package api

import "github.com/Matiasmdev/chef-claude/internal/service"

// GenerateRecipeRequest is the body of POST /api/generate-recipe
type GenerateRecipeRequest struct {
	Ingredients    []string `json:"ingredients"`
	UserID         string   `json:"userId"`
	RecaptchaToken string   `json:"recaptchaToken"`
}

// RecipeResponse is the success body of POST /api/generate-recipe
type RecipeResponse struct {
	Receta string `json:"receta"`
}

// DashboardEntry summarizes one session's usage for the dashboard.
// EntradasInvalidas counts stored log records that failed to decode, so
// partial data is distinguishable from no data.
type DashboardEntry struct {
	TotalGeneradas    int                `json:"totalGeneradas"`
	UltimasRecetas    []service.LogEntry `json:"ultimasRecetas"`
	EntradasInvalidas int                `json:"entradasInvalidas,omitempty"`
}
