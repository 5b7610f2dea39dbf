// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notion converts sectioned Markdown into typed Notion blocks and
// delivers them to a page through the paginated block-children append API.
package notion

import (
	"encoding/json"
	"strings"
)

// BlockKind is the closed set of block types the converter emits. Exactly
// one kind applies to each non-blank Markdown line.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading1
	Heading2
	Heading3
	BulletItem
	NumberedItem
)

func (k BlockKind) String() string {
	switch k {
	case Heading1:
		return "heading1"
	case Heading2:
		return "heading2"
	case Heading3:
		return "heading3"
	case BulletItem:
		return "bullet"
	case NumberedItem:
		return "numbered"
	default:
		return "paragraph"
	}
}

// wireType returns the Notion API block type for the kind.
func (k BlockKind) wireType() string {
	switch k {
	case Heading1:
		return "heading_1"
	case Heading2:
		return "heading_2"
	case Heading3:
		return "heading_3"
	case BulletItem:
		return "bulleted_list_item"
	case NumberedItem:
		return "numbered_list_item"
	default:
		return "paragraph"
	}
}

// Block is one typed, text-bearing unit of output content. Blocks are
// immutable values; Text carries the line content with its classification
// prefix stripped and surrounding whitespace removed.
type Block struct {
	Kind BlockKind
	Text string
}

// NewBlock pairs a kind with whitespace-trimmed content.
func NewBlock(kind BlockKind, content string) Block {
	return Block{Kind: kind, Text: strings.TrimSpace(content)}
}

// ClassifyLine maps a single Markdown line to a block kind and its content.
// Rules are literal prefixes checked in order; the first match wins. Only the
// marker "1. " denotes a numbered item — "2. ", "3. " and so on fall through
// to Paragraph, matching the upstream converter's behavior. Likewise a header
// with no space after the hashes ("####Text") is a Paragraph. Callers must
// filter blank lines first; ClassifyLine is undefined for them.
func ClassifyLine(line string) (BlockKind, string) {
	switch {
	case strings.HasPrefix(line, "### "):
		return Heading3, line[len("### "):]
	case strings.HasPrefix(line, "## "):
		return Heading2, line[len("## "):]
	case strings.HasPrefix(line, "# "):
		return Heading1, line[len("# "):]
	case strings.HasPrefix(line, "- "):
		return BulletItem, line[len("- "):]
	case strings.HasPrefix(line, "1. "):
		return NumberedItem, line[len("1. "):]
	default:
		return Paragraph, line
	}
}

// wire-format JSON structures for the block-children append API.

type blockBody struct {
	RichText []richText `json:"rich_text"`
}

type richText struct {
	Type string      `json:"type"`
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

// MarshalJSON renders the block as a Notion API block object: an envelope
// with object "block", the type name, and a rich_text body keyed by the type.
func (b Block) MarshalJSON() ([]byte, error) {
	wt := b.Kind.wireType()
	body := blockBody{
		RichText: []richText{{Type: "text", Text: textContent{Content: b.Text}}},
	}
	return json.Marshal(map[string]any{
		"object": "block",
		"type":   wt,
		wt:       body,
	})
}
