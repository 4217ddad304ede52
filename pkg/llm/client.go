package llm

import "context"

// Fragment is one element of a streamed completion. The channel is closed at
// end of stream; a mid-stream provider failure is delivered as one final
// Fragment with Err set, never as a panic through the transport.
type Fragment struct {
	Text string
	Err  error
}

type Completer interface {
	// Complete returns the full completion once the provider is done.
	Complete(ctx context.Context, system, prompt string) (string, error)

	// Stream forwards completion text fragment-by-fragment as the provider
	// emits them. The returned sequence is finite and non-restartable.
	Stream(ctx context.Context, system, prompt string) <-chan Fragment
}
