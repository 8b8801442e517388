package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const anthropicVersion = "2023-06-01"

const defaultModel = "claude-3-haiku-20240307"

const maxRecipeTokens = 1024

const systemPrompt = `
Eres un asistente que recibe una lista de ingredientes de un usuario y sugiere una receta que puede preparar
usando algunos o todos esos ingredientes. No necesitas usar cada ingrediente que mencione,
pero intenta no añadir demasiados extras. Si el usuario incluye elementos que no sean comestibles
(por ejemplo: ladrillo, jabón, ropa, mueble, automóvil o herramientas), debes responder exactamente:
“Por favor ingresa sólo ingredientes de cocina comestibles.” y no generar ninguna receta hasta que la lista sea válida.

Las recetas deben ser coherentes, con pasos lógicos que correspondan a los ingredientes.

Responde en español latinoamericano e incluye expresiones porteñas como "esto está para chuparse los dedos",
"una pinturita" o "más rico que el asado del domingo".

**Formato de salida (en Markdown)**
Cuando respondas, sigue exactamente esta estructura:

# Título de la receta
## Descripción breve (subtítulo)

**Ingredientes:**
- ingrediente 1
- ingrediente 2
- ingrediente 3

## Pasos:
1. Primer paso de la preparación
2. Segundo paso
3. Tercer paso

Al final de tu respuesta, incluye exactamente **una** frase de cierre, elegida **aleatoriamente** de esta lista:
- ¡Que lo disfrutes!
- Bon appétit!
- ¡Buen provecho!
- Disfrútalo.
`

// AnthropicService handles interactions with the Anthropic Messages API
type AnthropicService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewAnthropicService creates a new AnthropicService instance
func NewAnthropicService(apiKey, apiURL string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: http.DefaultClient,
	}
}

// Message represents a message in the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the Messages API
type Request struct {
	Model     string    `json:"model"`
	System    string    `json:"system"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// GenerateRecipe asks the model for a markdown recipe built from the given
// ingredients. The call is single-attempt; any transport or shape failure is
// returned as-is for the caller to surface as an upstream error.
func (s *AnthropicService) GenerateRecipe(ctx context.Context, ingredients []string) (string, error) {
	userMessage := fmt.Sprintf("Tengo: %s. ¡Dame la receta formateada como indiqué!", strings.Join(ingredients, ", "))

	reqBody := Request{
		Model:     defaultModel,
		System:    systemPrompt,
		MaxTokens: maxRecipeTokens,
		Messages: []Message{
			{Role: "user", Content: userMessage},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Content) == 0 {
		return "", fmt.Errorf("unexpected response format: %s", string(body))
	}

	var sb strings.Builder
	for _, block := range result.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}
