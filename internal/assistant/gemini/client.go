// Package gemini implements the assistant engine's Invoker on the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// replySchema constrains generation to the assistant's JSON envelope.
var replySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"reply": {
			Type:        genai.TypeString,
			Description: "The assistant's reply to the visitor, in the visitor's language.",
		},
		"leadInfo": {
			Type:        genai.TypeObject,
			Description: "Contact data learned so far. Include every field already known.",
			Properties: map[string]*genai.Schema{
				"name":   {Type: genai.TypeString},
				"phone":  {Type: genai.TypeString},
				"email":  {Type: genai.TypeString},
				"intent": {Type: genai.TypeString},
			},
		},
	},
	Required: []string{"reply"},
}

// Client wraps the genai SDK as an engine.Invoker.
type Client struct {
	client *genai.Client
}

// NewClient creates a Gemini-backed invoker. Returns nil when apiKey is empty
// so the engine reports a configuration error at request time instead of
// failing startup.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client}, nil
}

// Generate runs one JSON-constrained completion against the given model.
func (c *Client) Generate(ctx context.Context, model, systemInstructions, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstructions, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    replySchema,
		},
	)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model %s returned no candidates", model)
	}
	return text, nil
}
