package llm

import (
	"context"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
)

// Result is the structured outcome of a completion call. Response is only
// meaningful when Success is true; Err carries the failure message
// otherwise. No retry is attempted by the client; retry policy, if any,
// belongs to the caller.
type Result struct {
	Success  bool
	Response string
	Err      string
}

// Client sends an ordered message sequence to a completion model.
type Client interface {
	Complete(ctx context.Context, messages []domain.Message) Result
}
