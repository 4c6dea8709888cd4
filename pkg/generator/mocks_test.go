package generator

import (
	"context"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// --- Mocks ---

type mockInvoker struct {
	resp  *domain.Response
	err   error
	calls []Call
}

func (m *mockInvoker) Invoke(ctx context.Context, call Call) (*domain.Response, error) {
	m.calls = append(m.calls, call)
	return m.resp, m.err
}

func (m *mockInvoker) lastCall() Call {
	return m.calls[len(m.calls)-1]
}
