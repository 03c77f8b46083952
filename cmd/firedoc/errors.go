package main

import (
	"context"
	"errors"

	"github.com/fwojciec/firedoc"
)

// errorMessage returns the text printed after "error: " for err.
func errorMessage(err error) string {
	var e *firedoc.Error
	switch {
	case errors.As(err, &e):
		return e.Message
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case err != nil:
		return err.Error()
	}
	return ""
}
