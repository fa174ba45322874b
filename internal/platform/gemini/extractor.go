package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/snapbill/snapbill_backend/internal/apperrors"
	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
	"github.com/snapbill/snapbill_backend/internal/dto"
)

// extractionPrompt asks for the exact JSON shape the validator consumes.
const extractionPrompt = `Analyze this receipt image and extract the following details into a strict JSON format. Do not use markdown wraps like ` + "```json" + `. Only output the actual JSON.
Expected JSON Schema:
{
    "rawMerchant": "string",
    "date": "string",
    "total": number,
    "category": "string (Categorize it roughly as 'Supermarket / Grocery', 'Food & Beverage', or 'General Retail')",
    "items": [
        { "name": "string", "price": number }
    ]
}
`

// Extractor converts a receipt image into structured fields using Gemini.
// Its output is best-effort: fields may be missing or oddly shaped, and the
// caller is expected to run it through validation before use.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a Gemini-backed receipt extractor.
func NewExtractor(ctx context.Context, apiKey, model string) (*Extractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Extractor{client: client, model: model}, nil
}

var _ portssvc.ReceiptExtractor = (*Extractor)(nil)

// Extract sends the image to the model and decodes its JSON answer. A model
// response that is not valid JSON is an extraction failure; partially missing
// fields are not, since the validator tolerates them.
func (e *Extractor) Extract(ctx context.Context, image []byte, mimeType string) (dto.RawExtraction, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     image,
					},
				},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return dto.RawExtraction{}, fmt.Errorf("%w: generate content: %v", apperrors.ErrExtraction, err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return dto.RawExtraction{}, fmt.Errorf("%w: empty response from model", apperrors.ErrExtraction)
	}

	var raw dto.RawExtraction
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &raw); err != nil {
		return dto.RawExtraction{}, fmt.Errorf("%w: response is not valid JSON: %v", apperrors.ErrExtraction, err)
	}
	return raw, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the no-markdown instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost object if extra text survived.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
