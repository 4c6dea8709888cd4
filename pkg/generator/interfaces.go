package generator

import (
	"context"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// ModalityImage は画像データを返させるためのレスポンスモダリティです。
const ModalityImage = "IMAGE"

// Call はリモートサービスへの1回の呼び出し内容です。
type Call struct {
	Model              string
	Parts              []domain.ContentPart
	ResponseModalities []string
	Seed               *int64
}

// Invoker はリモートのマルチモーダルサービスを呼び出すためのインターフェースです。
// 実装は本番用の Gemini SDK と、テスト用のスクリプト化された偽物があります。
type Invoker interface {
	// Invoke は呼び出しを1回実行し、最初の候補を正規化したレスポンスを返します。
	Invoke(ctx context.Context, call Call) (*domain.Response, error)
}

// CallOption は1回の呼び出しに対する追加設定です。
type CallOption func(*Call)

// WithSeed は生成のシード値を指定します。
func WithSeed(seed int64) CallOption {
	return func(c *Call) { c.Seed = &seed }
}
