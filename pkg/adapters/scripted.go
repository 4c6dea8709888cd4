package adapters

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/generator"
)

// ErrScriptExhausted は用意された応答をすべて使い切った後に呼び出されたことを表します。
var ErrScriptExhausted = errors.New("scripted invoker: no more responses")

var _ generator.Invoker = (*ScriptedInvoker)(nil)

type scriptStep struct {
	resp *domain.Response
	err  error
}

// ScriptedInvoker は事前に登録した応答を順番に返すインメモリの generator.Invoker です。
// 受け取った呼び出しを記録するため、テストでリクエストの内容を検証できます。
type ScriptedInvoker struct {
	mu    sync.Mutex
	steps []scriptStep
	calls []generator.Call
}

// NewScriptedInvoker は空のスクリプトで ScriptedInvoker を作成します。
func NewScriptedInvoker() *ScriptedInvoker {
	return &ScriptedInvoker{}
}

// Respond はパーツを返す応答を追加します。
func (s *ScriptedInvoker) Respond(parts ...domain.ContentPart) *ScriptedInvoker {
	return s.RespondWith(domain.Response{Parts: parts, FinishReason: "STOP"})
}

// RespondWith は任意のレスポンスを追加します。
func (s *ScriptedInvoker) RespondWith(resp domain.Response) *ScriptedInvoker {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, scriptStep{resp: &resp})
	return s
}

// Fail はエラーを返す応答を追加します。
func (s *ScriptedInvoker) Fail(err error) *ScriptedInvoker {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, scriptStep{err: err})
	return s
}

// Invoke は登録順に応答を1つ取り出して返します。
func (s *ScriptedInvoker) Invoke(ctx context.Context, call generator.Call) (*domain.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	if len(s.steps) == 0 {
		return nil, ErrScriptExhausted
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	return step.resp, step.err
}

// Calls は記録された呼び出しのコピーを返します。
func (s *ScriptedInvoker) Calls() []generator.Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Remaining は未使用の応答数を返します。
func (s *ScriptedInvoker) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}
