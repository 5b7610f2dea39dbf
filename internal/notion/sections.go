// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import "strings"

// SplitSections partitions a Markdown document into contiguous sections,
// splitting at top-level header boundaries. A line opens a new section when
// it starts with '#' and the current section already holds at least one
// line, so a document that begins with a header does not produce an empty
// leading section. Sections cover the document exactly once, in order;
// joining them with newlines reproduces the input. Empty input yields no
// sections.
func SplitSections(markdown string) []string {
	if markdown == "" {
		return nil
	}

	var sections []string
	var current []string

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "#") && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}

	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}
	return sections
}

// BuildBlocks converts a Markdown document into its ordered block sequence:
// sections in document order, one block per non-blank line, blank lines
// skipped. Block order is a strict refinement of line order.
func BuildBlocks(markdown string) []Block {
	var blocks []Block
	for _, section := range SplitSections(markdown) {
		for _, line := range strings.Split(section, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			kind, content := ClassifyLine(line)
			blocks = append(blocks, NewBlock(kind, content))
		}
	}
	return blocks
}
