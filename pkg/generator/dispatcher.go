package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
)

// Dispatcher は出力種別に応じてモデルを選び、リクエストを1回送信します。状態を持たず並行利用できます。
type Dispatcher struct {
	invoker    Invoker
	textModel  string
	imageModel string
}

// Option は Dispatcher の設定です。
type Option func(*Dispatcher)

// WithTextModel はテキスト出力に使うモデルを指定します。空文字は無視します。
func WithTextModel(model string) Option {
	return func(d *Dispatcher) {
		if model != "" {
			d.textModel = model
		}
	}
}

// WithImageModel は画像出力に使うモデルを指定します。空文字は無視します。
func WithImageModel(model string) Option {
	return func(d *Dispatcher) {
		if model != "" {
			d.imageModel = model
		}
	}
}

// NewDispatcher は依存関係を注入して Dispatcher を初期化します。
func NewDispatcher(invoker Invoker, opts ...Option) (*Dispatcher, error) {
	if invoker == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	d := &Dispatcher{
		invoker:    invoker,
		textModel:  DefaultTextModel,
		imageModel: DefaultImageModel,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ModelFor は出力種別に対応するモデル名を返します。
func (d *Dispatcher) ModelFor(output domain.OutputKind) string {
	if output == domain.OutputImage {
		return d.imageModel
	}
	return d.textModel
}

// Dispatch はリクエストを検証してリモートサービスを呼び出します。
// 画像出力の場合は必ず IMAGE モダリティを指定します。通信エラーは RemoteServiceError で包みます。
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.OperationRequest, opts ...CallOption) (*domain.Response, error) {
	if err := checkParts(req); err != nil {
		return nil, err
	}

	call := Call{
		Model: d.ModelFor(req.Output),
		Parts: req.Parts,
	}
	if req.Output == domain.OutputImage {
		call.ResponseModalities = []string{ModalityImage}
	}
	for _, opt := range opts {
		opt(&call)
	}

	slog.InfoContext(ctx, "Gemini にリクエストを送信します",
		"operation", req.Operation,
		"model", call.Model,
		"parts", len(call.Parts),
		"images", req.ImageCount(),
	)

	resp, err := d.invoker.Invoke(ctx, call)
	if err != nil {
		slog.ErrorContext(ctx, "Gemini の呼び出しに失敗しました", "operation", req.Operation, "model", call.Model, "error", err)
		return nil, &domain.RemoteServiceError{Operation: req.Operation, Model: call.Model, Err: err}
	}
	return resp, nil
}

// Run はリクエストを送信し、出力種別に応じて結果を取り出します。
func (d *Dispatcher) Run(ctx context.Context, req domain.OperationRequest, opts ...CallOption) (domain.OperationResult, error) {
	resp, err := d.Dispatch(ctx, req, opts...)
	if err != nil {
		return domain.OperationResult{}, err
	}
	return Extract(resp, req.Output, req.Operation)
}

// checkParts は指示文が末尾にあり、画像パーツが MIME タイプを持つことを確認します。
func checkParts(req domain.OperationRequest) error {
	if req.Output != domain.OutputImage && req.Output != domain.OutputText {
		return &domain.InvalidRequestError{Operation: req.Operation, Reason: fmt.Sprintf("unknown output kind %q", req.Output)}
	}
	if len(req.Parts) == 0 {
		return &domain.InvalidRequestError{Operation: req.Operation, Reason: "request has no parts"}
	}
	last := req.Parts[len(req.Parts)-1]
	if last.Kind != domain.PartText || last.Text == "" {
		return &domain.InvalidRequestError{Operation: req.Operation, Reason: "the last part must be the instruction text"}
	}
	for i, p := range req.Parts[:len(req.Parts)-1] {
		if !p.IsImage() {
			return &domain.InvalidRequestError{Operation: req.Operation, Reason: fmt.Sprintf("part %d: only image parts may precede the instruction", i)}
		}
		if p.MIMEType == "" || len(p.Data) == 0 {
			return &domain.InvalidRequestError{Operation: req.Operation, Reason: fmt.Sprintf("part %d: image has no data or MIME type", i)}
		}
	}
	return nil
}
