package llm

import "context"

// Generator turns a compiled prompt into the briefing narrative. Both code
// paths must agree: the concatenation of streamed chunks, in order, equals
// the single-shot Generate output for the same reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) (ChunkStream, error)
}

// ChunkStream is a finite, non-restartable sequence of text fragments in
// emission order. Close releases the underlying connection; canceling the
// request context tears the stream down promptly instead of draining it.
type ChunkStream interface {
	Next() bool
	Text() string
	Err() error
	Close() error
}
