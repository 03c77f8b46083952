package firedoc

import "context"

// TokenCounter counts tokens in text. Used to size the generated
// document for LLM context windows.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
