package adapters

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockModels struct {
	resp *genai.GenerateContentResponse
	err  error

	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
}

func (m *mockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.gotModel = model
	m.gotContents = contents
	m.gotConfig = config
	return m.resp, m.err
}

func candidateResponse(reason genai.FinishReason, parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: parts, Role: string(genai.RoleModel)},
			FinishReason: reason,
		}},
	}
}
