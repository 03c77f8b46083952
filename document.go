package firedoc

import (
	"context"
	"strings"
)

// DocumentHeader is written at the top of every output file.
const DocumentHeader = "# Technical Documentation Overview\n\nGenerated with Firecrawl\n\n"

// Document is an ordered, append-only collection of formatted page blocks.
type Document struct {
	blocks []string
}

// NewDocument returns a document holding the given blocks in order.
func NewDocument(blocks ...string) *Document {
	d := &Document{}
	for _, b := range blocks {
		d.Append(b)
	}
	return d
}

// Append adds a formatted block to the end of the document.
func (d *Document) Append(block string) {
	d.blocks = append(d.blocks, block)
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Blocks returns a copy of the blocks in order.
func (d *Document) Blocks() []string {
	return append([]string(nil), d.blocks...)
}

// String renders the header followed by all blocks joined with newlines.
func (d *Document) String() string {
	return DocumentHeader + strings.Join(d.blocks, "\n")
}

// DocumentWriter flushes a document to its destination.
type DocumentWriter interface {
	// WriteDocument writes doc to path, replacing any existing content.
	// Returns EIO if the destination cannot be written.
	WriteDocument(ctx context.Context, path string, doc *Document) error
}
