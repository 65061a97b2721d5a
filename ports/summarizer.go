package ports

import "context"

// Summarizer shortens text to at most maxLen characters.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLen int) (string, error)
}
