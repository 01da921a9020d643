package jsast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langex/pkg/jsast"
)

func TestNode_Slots(t *testing.T) {
	t.Parallel()

	call := jsast.NewNode(jsast.KindCallExpression, jsast.Range{Start: 0, End: 10})
	callee := jsast.NewNode(jsast.KindIdentifier, jsast.Range{Start: 0, End: 1})
	callee.Name = "f"

	call.Set(jsast.FieldCallee, callee)
	call.Set(jsast.FieldTest, nil)
	call.Add(jsast.FieldArguments,
		jsast.NewNode(jsast.KindLiteral, jsast.Range{Start: 6, End: 9}),
		nil,
		jsast.NewNode(jsast.KindLiteral, jsast.Range{Start: 2, End: 5}),
	)

	assert.Same(t, callee, call.Child(jsast.FieldCallee))
	assert.Nil(t, call.Child(jsast.FieldTest))
	assert.Len(t, call.List(jsast.FieldArguments), 2)
	assert.Equal(t, []jsast.Field{jsast.FieldCallee, jsast.FieldArguments}, call.Fields())

	starts := []int{}
	for _, child := range call.Children() {
		starts = append(starts, child.Range.Start)
	}
	assert.Equal(t, []int{0, 2, 6}, starts)

	assert.True(t, callee.Is(jsast.KindLiteral, jsast.KindIdentifier))
	var missing *jsast.Node
	assert.False(t, missing.Is(jsast.KindIdentifier))
}

func TestWalk_SkipsChildren(t *testing.T) {
	t.Parallel()

	root := jsast.NewNode(jsast.KindProgram, jsast.Range{End: 20})
	call := jsast.NewNode(jsast.KindCallExpression, jsast.Range{Start: 0, End: 10})
	call.Add(jsast.FieldArguments, jsast.NewNode(jsast.KindLiteral, jsast.Range{Start: 2, End: 5}))
	lit := jsast.NewNode(jsast.KindLiteral, jsast.Range{Start: 12, End: 18})
	root.Add(jsast.FieldBody, call, lit)

	var visited []jsast.Kind
	jsast.Walk(root, func(n *jsast.Node) bool {
		visited = append(visited, n.Kind)
		return n.Kind != jsast.KindCallExpression
	})
	assert.Equal(t, []jsast.Kind{jsast.KindProgram, jsast.KindCallExpression, jsast.KindLiteral}, visited)

	found := jsast.Find(root, func(n *jsast.Node) bool { return n.Kind == jsast.KindLiteral })
	require.NotNil(t, found)
	assert.Equal(t, 2, found.Range.Start)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TemplateLiteral", jsast.KindTemplateLiteral.String())
	assert.Equal(t, "JSXText", jsast.KindJSXText.String())
	assert.Equal(t, "Kind(999)", jsast.Kind(999).String())
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		want jsast.Dialect
		ok   bool
	}{
		{"", jsast.DialectJS, true},
		{"jsx", jsast.DialectJS, true},
		{".mjs", jsast.DialectJS, true},
		{"ts", jsast.DialectTS, true},
		{"typescript", jsast.DialectTS, true},
		{".tsx", jsast.DialectTSX, true},
		{"coffee", "", false},
	}

	for _, tt := range tests {
		got, ok := jsast.ParseDialect(tt.lang)
		assert.Equal(t, tt.ok, ok, tt.lang)
		assert.Equal(t, tt.want, got, tt.lang)
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	var err error = &jsast.ParseError{Dialect: jsast.DialectTS, Offset: 7, Snippet: "{"}
	assert.True(t, errors.Is(err, jsast.ErrParse))
	assert.False(t, errors.Is(err, jsast.ErrTooDeep))
	assert.Contains(t, err.Error(), "offset 7")

	err = &jsast.DepthError{Limit: 10, Offset: 3}
	assert.True(t, errors.Is(err, jsast.ErrTooDeep))
}
