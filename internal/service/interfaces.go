package service

import "context"

// RecipeGenerator produces markdown recipe text from an ingredient list.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients []string) (string, error)
}

// BotVerifier exchanges a client-obtained token for a human-likelihood
// verdict. An error means the verifier could not be asked; a false verdict
// means the answer was no.
type BotVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}
