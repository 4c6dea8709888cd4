package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/generator"
	"google.golang.org/genai"
)

// ContentGenerator は genai.Models のうち、本パッケージが利用する部分だけを抽出したインターフェースです。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var (
	_ ContentGenerator  = (*genai.Models)(nil)
	_ generator.Invoker = (*GeminiInvoker)(nil)
)

// GeminiInvoker は Gemini API を呼び出す generator.Invoker の実装です。
type GeminiInvoker struct {
	models ContentGenerator
}

// NewGeminiInvoker は API キーから Gemini クライアントを作成して GeminiInvoker を初期化します。
func NewGeminiInvoker(ctx context.Context, apiKey string) (*GeminiInvoker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの作成に失敗しました: %w", err)
	}
	return NewGeminiInvokerWith(client.Models)
}

// NewGeminiInvokerWith は既存の ContentGenerator を注入して GeminiInvoker を初期化します。
func NewGeminiInvokerWith(models ContentGenerator) (*GeminiInvoker, error) {
	if models == nil {
		return nil, fmt.Errorf("models is required")
	}
	return &GeminiInvoker{models: models}, nil
}

// Invoke はパーツを genai の形式に変換して GenerateContent を呼び出し、最初の候補を正規化して返します。
func (g *GeminiInvoker) Invoke(ctx context.Context, call generator.Call) (*domain.Response, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(toGenAIParts(call.Parts), genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, call.Model, contents, toConfig(call))
	if err != nil {
		return nil, err
	}
	return fromGenAIResponse(ctx, resp), nil
}

func toGenAIParts(parts []domain.ContentPart) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.IsImage() {
			out = append(out, &genai.Part{InlineData: &genai.Blob{MIMEType: p.MIMEType, Data: p.Data}})
			continue
		}
		out = append(out, genai.NewPartFromText(p.Text))
	}
	return out
}

// toConfig は設定項目がない場合に nil を返します。
func toConfig(call generator.Call) *genai.GenerateContentConfig {
	if len(call.ResponseModalities) == 0 && call.Seed == nil {
		return nil
	}
	return &genai.GenerateContentConfig{
		ResponseModalities: call.ResponseModalities,
		Seed:               seedToPtrInt32(call.Seed),
	}
}

// fromGenAIResponse は最初の候補のみを利用します。思考パーツは含めません。
func fromGenAIResponse(ctx context.Context, resp *genai.GenerateContentResponse) *domain.Response {
	out := &domain.Response{}
	if resp == nil {
		return out
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			out.FinishReason = string(resp.PromptFeedback.BlockReason)
			slog.WarnContext(ctx, "プロンプトがブロックされました", "block_reason", out.FinishReason)
		}
		return out
	}

	candidate := resp.Candidates[0]
	out.FinishReason = string(candidate.FinishReason)
	if candidate.Content == nil {
		return out
	}
	for _, part := range candidate.Content.Parts {
		switch {
		case part == nil || part.Thought:
			continue
		case part.InlineData != nil && len(part.InlineData.Data) > 0:
			out.Parts = append(out.Parts, domain.ImagePart(part.InlineData.Data, part.InlineData.MIMEType))
		case part.Text != "":
			out.Parts = append(out.Parts, domain.TextPart(part.Text))
		}
	}

	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		slog.WarnContext(ctx, "生成が異常終了しました", "finish_reason", candidate.FinishReason, "parts", len(out.Parts))
	}
	return out
}

// seedToPtrInt32 は *int64 のシードを SDK 用の *int32 に変換します。
// 範囲外の値は上位ビットが切り捨てられますが、シードの再現性には影響しません。
func seedToPtrInt32(seed *int64) *int32 {
	if seed == nil {
		return nil
	}
	v := int32(*seed)
	return &v
}
