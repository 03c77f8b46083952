// Package gemini sizes generated documentation with the Gemini local
// tokenizer, so users can tell whether the file fits an LLM context window.
package gemini

import (
	"context"

	"github.com/fwojciec/firedoc"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultTokenizerModel is the model whose vocabulary is used for counting.
const DefaultTokenizerModel = "gemini-2.0-flash"

var _ firedoc.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline using the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model selects DefaultTokenizerModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultTokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, firedoc.Errorf(firedoc.EINTERNAL, "loading tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, firedoc.Errorf(firedoc.EINTERNAL, "counting tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}
