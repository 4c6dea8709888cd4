package generator

import (
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// Extract はレスポンスから出力種別に応じた結果を取り出します。
// 画像の場合はすべてのパーツを走査し、最初に見つかったインラインデータを返します。
func Extract(resp *domain.Response, output domain.OutputKind, op domain.OperationKind) (domain.OperationResult, error) {
	if resp == nil {
		resp = &domain.Response{}
	}

	switch output {
	case domain.OutputImage:
		for _, p := range resp.Parts {
			if p.IsImage() && len(p.Data) > 0 {
				return domain.ImageResult(p.Data, p.MIMEType), nil
			}
		}
		// 安全フィルター等で画像が返らない場合、モデルの説明テキストを添えるのだ
		return domain.OperationResult{}, &domain.NoImageReturnedError{
			Operation:    op,
			FinishReason: resp.FinishReason,
			Text:         joinText(resp.Parts),
		}
	default:
		text := joinText(resp.Parts)
		if text == "" {
			return domain.OperationResult{}, &domain.EmptyResponseError{Operation: op, FinishReason: resp.FinishReason}
		}
		return domain.TextResult(text), nil
	}
}

func joinText(parts []domain.ContentPart) string {
	var sb strings.Builder
	for _, p := range parts {
		if p.Kind == domain.PartText {
			sb.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
