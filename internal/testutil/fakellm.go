package testutil

import (
	"context"

	"github.com/avnerell/dayweave/internal/llm"
)

// FakeCompletionClient is a scripted llm.CompletionClient for service tests.
// Responses are returned in order; the last one repeats. Err, when set,
// fails every call.
type FakeCompletionClient struct {
	Responses []string
	Err       error

	Calls []llm.GenerateRequest
}

func (f *FakeCompletionClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.Calls = append(f.Calls, req)
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Responses) == 0 {
		return &llm.GenerateResponse{Text: "[]", Model: "fake"}, nil
	}
	idx := len(f.Calls) - 1
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	return &llm.GenerateResponse{Text: f.Responses[idx], Model: "fake"}, nil
}

func (f *FakeCompletionClient) Available(ctx context.Context) bool {
	return f.Err == nil
}
