package extract

import (
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/fix"
	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/vue"
)

// ExtractVue splits a single-file component into blocks and extracts
// them with ExtractDocument.
func (e *Extractor) ExtractVue(ctx context.Context, src string, policies Policies) (*Result, error) {
	blocks, err := vue.SplitSFC(src)
	if err != nil {
		return nil, fmt.Errorf("split component: %w", err)
	}
	return e.ExtractDocument(ctx, src, blocks, policies)
}

// ExtractDocument extracts the blocks of a single-file component and
// rewrites src. Script blocks are processed first, in document order, then
// the template, so keys read top-down through the component's logic.
// Style and custom blocks are left untouched. Blocks must not overlap and
// their content ranges must index into src.
func (e *Extractor) ExtractDocument(ctx context.Context, src string, blocks []vue.Block, policies Policies) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}

	ordered := slices.Clone(blocks)
	slices.SortStableFunc(ordered, func(a, b vue.Block) int {
		return blockRank(a) - blockRank(b)
	})

	logger := logging.FromContext(ctx)
	result := newResult()
	var spans fix.SpanSet
	templateSeen := false

	for _, block := range ordered {
		var (
			sub *Result
			err error
		)

		switch block.Kind {
		case vue.BlockScript:
			dialect, ok := jsast.ParseDialect(block.Lang)
			if !ok {
				result.Warnings = append(result.Warnings, skippedBlock(block))
				continue
			}
			sub, err = e.ExtractScript(ctx, block.Content, dialect, policies.ScriptPolicy(block.Setup, dialect))
		case vue.BlockTemplate:
			if templateSeen {
				continue
			}
			templateSeen = true
			if block.Lang != "" && block.Lang != "html" {
				result.Warnings = append(result.Warnings, skippedBlock(block))
				continue
			}
			sub, err = e.ExtractTemplate(ctx, block.Content, templateDialect(blocks), policies.Template)
		case vue.BlockStyle, vue.BlockCustom:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s block at offset %d: %w", block, block.ContentRange.Start, err)
		}
		if sub == nil {
			continue
		}

		logger.Debug("block extracted",
			logging.FieldBlock, block.String(),
			logging.FieldKeysExtracted, len(sub.TextMap),
		)

		result.TextMap.Merge(sub.TextMap)
		result.Warnings = append(result.Warnings, shiftWarnings(sub.Warnings, block.ContentRange.Start)...)
		spans.Append(sub.Spans, block.ContentRange.Start)
	}

	prepared, err := fix.Prepare(spans.Spans, len(src))
	if err != nil {
		return nil, fmt.Errorf("prepare replacements: %w", err)
	}
	result.Spans = prepared
	result.Text = fix.Apply(src, prepared)

	slices.SortStableFunc(result.Warnings, func(a, b Warning) int {
		return a.Offset - b.Offset
	})
	return result, nil
}

// templateDialect is TypeScript when any script block is, so template
// expressions may use "as" and "!".
func templateDialect(blocks []vue.Block) jsast.Dialect {
	for _, b := range blocks {
		if b.Kind != vue.BlockScript {
			continue
		}
		if dialect, ok := jsast.ParseDialect(b.Lang); ok && dialect != jsast.DialectJS {
			return jsast.DialectTS
		}
	}
	return jsast.DialectJS
}

// blockRank orders scripts before the template.
func blockRank(b vue.Block) int {
	switch b.Kind {
	case vue.BlockScript:
		return 0
	case vue.BlockTemplate:
		return 1
	default:
		return 2
	}
}

func skippedBlock(b vue.Block) Warning {
	return Warning{
		Message: "unsupported block language " + b.Lang,
		Value:   b.String(),
		Kind:    WarningSkippedBlock,
		Offset:  b.Range.Start,
	}
}
