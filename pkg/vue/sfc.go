package vue

import (
	"fmt"
	"strings"
)

// BlockKind classifies top-level SFC blocks.
type BlockKind string

// Block kinds.
const (
	BlockTemplate BlockKind = "template"
	BlockScript   BlockKind = "script"
	BlockStyle    BlockKind = "style"
	BlockCustom   BlockKind = "custom"
)

// Block is one top-level section of a single-file component.
type Block struct {
	Kind BlockKind

	// Tag is the element name, e.g. "i18n" for a custom block.
	Tag string

	// Lang is the value of the lang attribute, if any.
	Lang string

	// Setup marks <script setup>.
	Setup bool

	Attrs []Attribute

	// Range covers the block including its tags.
	Range Range

	// ContentRange covers the text between the tags.
	ContentRange Range

	// Content is the text between the tags.
	Content string
}

// String renders a short description such as "script setup lang=ts".
func (b Block) String() string {
	var parts []string
	parts = append(parts, string(b.Kind))
	if b.Kind == BlockCustom {
		parts[0] = b.Tag
	}
	if b.Setup {
		parts = append(parts, "setup")
	}
	if b.Lang != "" {
		parts = append(parts, "lang="+b.Lang)
	}
	return strings.Join(parts, " ")
}

// SplitSFC returns the top-level blocks of a single-file component in
// document order. Only <template> content is scanned; every other block is
// taken verbatim up to its closing tag.
func SplitSFC(src string) ([]Block, error) {
	root, err := newScanner(src, true).scan()
	if err != nil {
		return nil, err
	}

	var blocks []Block
	templates, scripts, setups := 0, 0, 0
	for _, child := range root.Children {
		if child.Type != NodeElement {
			continue
		}

		block := Block{
			Tag:          child.Tag,
			Attrs:        child.Attrs,
			Range:        child.Range,
			ContentRange: child.ContentRange,
			Content:      Text(src, child.ContentRange),
		}
		if lang, ok := child.Attr("lang"); ok {
			block.Lang = lang.Value
		}
		_, block.Setup = child.Attr("setup")

		switch child.Tag {
		case "template":
			block.Kind = BlockTemplate
			templates++
			if !child.Closed {
				return nil, &SyntaxError{Offset: child.Range.Start, Message: "unterminated <template> block"}
			}
		case "script":
			block.Kind = BlockScript
			if block.Setup {
				setups++
			} else {
				scripts++
			}
		case "style":
			block.Kind = BlockStyle
		default:
			block.Kind = BlockCustom
		}

		blocks = append(blocks, block)
	}

	switch {
	case templates > 1:
		return nil, fmt.Errorf("%w: more than one <template> block", ErrSyntax)
	case scripts > 1:
		return nil, fmt.Errorf("%w: more than one <script> block", ErrSyntax)
	case setups > 1:
		return nil, fmt.Errorf("%w: more than one <script setup> block", ErrSyntax)
	}

	return blocks, nil
}
