package main

import (
	"context"
	"sync"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/gemini"
)

// lazyTokenCounter loads the Gemini tokenizer on first use, so commands
// that fail before writing never fetch the vocabulary.
type lazyTokenCounter struct {
	once sync.Once
	tc   *gemini.TokenCounter
	err  error
}

var _ firedoc.TokenCounter = (*lazyTokenCounter)(nil)

func (l *lazyTokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	l.once.Do(func() {
		l.tc, l.err = gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
	})
	if l.err != nil {
		return 0, l.err
	}
	return l.tc.CountTokens(ctx, text)
}
