package studio

import (
	"context"
	"fmt"
	"sync"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/encoder"
	"github.com/shouni/gemini-studio-kit/pkg/prompt"
)

// EditorSession は履歴付きで画像を繰り返し編集するためのセッションです。
// 編集は常に選択中の履歴から行い、それより後ろの履歴は切り捨てられます。
// 同時に実行できる編集は1つだけです。
type EditorSession struct {
	studio   *Studio
	filename string

	mu      sync.Mutex
	history *domain.EditHistory
}

// NewEditorSession は元画像を履歴の先頭にしてセッションを開始します。
func NewEditorSession(s *Studio, original domain.ImageAsset) (*EditorSession, error) {
	if s == nil {
		return nil, fmt.Errorf("studio is required")
	}
	if err := requireImage(domain.OpEdit, "image", original); err != nil {
		return nil, err
	}
	if original.MIMEType == "" {
		return nil, &domain.EncodingError{Operation: domain.OpEdit, Filename: original.Filename, Err: fmt.Errorf("original image has no MIME type")}
	}
	return &EditorSession{
		studio:   s,
		filename: original.Filename,
		history:  domain.NewEditHistory(domain.ImageResult(original.Data, original.MIMEType)),
	}, nil
}

// Edit は選択中の画像に編集指示を適用し、結果を履歴に追加します。
func (e *EditorSession) Edit(ctx context.Context, p prompt.EditParams) (domain.OperationResult, error) {
	return e.apply(ctx, domain.OpEdit, func(ctx context.Context, asset domain.ImageAsset) (domain.OperationResult, error) {
		return e.studio.Edit(ctx, asset, p)
	})
}

// Upscale は選択中の画像をアップスケールし、結果を履歴に追加します。
func (e *EditorSession) Upscale(ctx context.Context, p prompt.UpscaleParams) (domain.OperationResult, error) {
	return e.apply(ctx, domain.OpUpscale, func(ctx context.Context, asset domain.ImageAsset) (domain.OperationResult, error) {
		return e.studio.Upscale(ctx, asset, p)
	})
}

func (e *EditorSession) apply(ctx context.Context, op domain.OperationKind, do func(context.Context, domain.ImageAsset) (domain.OperationResult, error)) (domain.OperationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	asset, err := encoder.DecodeResult(e.history.Active(), e.filename)
	if err != nil {
		return domain.OperationResult{}, domain.WithOperation(err, op)
	}

	res, err := do(ctx, asset)
	if err != nil {
		return domain.OperationResult{}, err
	}
	e.history.Push(res)
	return res, nil
}

// Select は指定位置の履歴を選択します。
func (e *EditorSession) Select(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Select(i)
}

// Undo は1つ前の履歴を選択します。
func (e *EditorSession) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Undo()
}

// Redo は1つ後の履歴を選択します。
func (e *EditorSession) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Redo()
}

// Current は選択中の結果を返します。
func (e *EditorSession) Current() domain.OperationResult {
	return e.history.Active()
}

// History は履歴のコピーと選択位置を返します。
func (e *EditorSession) History() ([]domain.OperationResult, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Entries(), e.history.ActiveIndex()
}
