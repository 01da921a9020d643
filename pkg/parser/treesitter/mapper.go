package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/net/html"

	"github.com/yaklabco/langex/pkg/jsast"
	"github.com/yaklabco/langex/pkg/textutil"
)

// mapper converts a tree-sitter tree into a jsast.Node tree.
type mapper struct {
	content  []byte
	maxDepth int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte, maxDepth int) *mapper {
	return &mapper{content: content, maxDepth: maxDepth}
}

func (m *mapper) text(n *sitter.Node) string {
	return string(m.content[n.StartByte():n.EndByte()])
}

func rangeOf(n *sitter.Node) jsast.Range {
	return jsast.Range{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "html_comment":
		return true
	}
	return false
}

// namedChildren returns the named, non-comment children of n.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := range count {
		child := n.NamedChild(i)
		if child == nil || isComment(child) {
			continue
		}
		children = append(children, child)
	}
	return children
}

// fieldChildren returns every child of n stored under the tree-sitter field
// name. ChildByFieldName only returns the first.
func fieldChildren(n *sitter.Node, name string) []*sitter.Node {
	var children []*sitter.Node
	for i := range int(n.ChildCount()) {
		if n.FieldNameForChild(i) != name {
			continue
		}
		if child := n.Child(i); child != nil && !isComment(child) {
			children = append(children, child)
		}
	}
	return children
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if children := namedChildren(n); len(children) > 0 {
		return children[0]
	}
	return nil
}

// mapAll maps each node, stopping at the first error.
func (m *mapper) mapAll(nodes []*sitter.Node, depth int) ([]*jsast.Node, error) {
	mapped := make([]*jsast.Node, 0, len(nodes))
	for _, n := range nodes {
		child, err := m.mapNode(n, depth)
		if err != nil {
			return nil, err
		}
		mapped = append(mapped, child)
	}
	return mapped, nil
}

// slot describes how a tree-sitter field becomes a jsast slot.
type slot struct {
	from string
	to   jsast.Field
}

// simpleNodes maps tree-sitter node types whose children translate field
// by field.
//
//nolint:gochecknoglobals // lookup table
var simpleNodes = map[string]struct {
	kind  jsast.Kind
	slots []slot
}{
	"variable_declarator":             {jsast.KindVariableDeclarator, []slot{{"name", jsast.FieldID}, {"value", jsast.FieldInit}}},
	"if_statement":                    {jsast.KindIfStatement, []slot{{"condition", jsast.FieldTest}, {"consequence", jsast.FieldConsequent}, {"alternative", jsast.FieldAlternate}}},
	"for_statement":                   {jsast.KindForStatement, []slot{{"initializer", jsast.FieldInit}, {"condition", jsast.FieldTest}, {"increment", jsast.FieldUpdate}, {"body", jsast.FieldBody}}},
	"for_in_statement":                {jsast.KindForInStatement, []slot{{"left", jsast.FieldLeft}, {"right", jsast.FieldRight}, {"body", jsast.FieldBody}}},
	"while_statement":                 {jsast.KindWhileStatement, []slot{{"condition", jsast.FieldTest}, {"body", jsast.FieldBody}}},
	"do_statement":                    {jsast.KindDoWhileStatement, []slot{{"body", jsast.FieldBody}, {"condition", jsast.FieldTest}}},
	"try_statement":                   {jsast.KindTryStatement, []slot{{"body", jsast.FieldBlock}, {"handler", jsast.FieldHandler}, {"finalizer", jsast.FieldFinalizer}}},
	"catch_clause":                    {jsast.KindCatchClause, []slot{{"body", jsast.FieldBody}}},
	"finally_clause":                  {jsast.KindBlockStatement, []slot{{"body", jsast.FieldBody}}},
	"labeled_statement":               {jsast.KindLabeledStatement, []slot{{"body", jsast.FieldBody}}},
	"switch_statement":                {jsast.KindSwitchStatement, []slot{{"value", jsast.FieldDiscriminant}}},
	"ternary_expression":              {jsast.KindConditionalExpression, []slot{{"condition", jsast.FieldTest}, {"consequence", jsast.FieldConsequent}, {"alternative", jsast.FieldAlternate}}},
	"assignment_expression":           {jsast.KindAssignmentExpression, []slot{{"left", jsast.FieldLeft}, {"right", jsast.FieldRight}}},
	"augmented_assignment_expression": {jsast.KindAssignmentExpression, []slot{{"left", jsast.FieldLeft}, {"right", jsast.FieldRight}}},
	"assignment_pattern":              {jsast.KindAssignmentPattern, []slot{{"left", jsast.FieldLeft}, {"right", jsast.FieldRight}}},
	"object_assignment_pattern":       {jsast.KindAssignmentPattern, []slot{{"left", jsast.FieldLeft}, {"right", jsast.FieldRight}}},
	"required_parameter":              {jsast.KindAssignmentPattern, []slot{{"pattern", jsast.FieldLeft}, {"value", jsast.FieldRight}}},
	"optional_parameter":              {jsast.KindAssignmentPattern, []slot{{"pattern", jsast.FieldLeft}, {"value", jsast.FieldRight}}},
	"member_expression":               {jsast.KindMemberExpression, []slot{{"object", jsast.FieldObject}, {"property", jsast.FieldProperty}}},
	"unary_expression":                {jsast.KindUnaryExpression, []slot{{"argument", jsast.FieldArgument}}},
	"update_expression":               {jsast.KindUpdateExpression, []slot{{"argument", jsast.FieldArgument}}},
	"class_declaration":               {jsast.KindClassDeclaration, []slot{{"name", jsast.FieldID}, {"body", jsast.FieldBody}}},
	"abstract_class_declaration":      {jsast.KindClassDeclaration, []slot{{"name", jsast.FieldID}, {"body", jsast.FieldBody}}},
	"class":                           {jsast.KindClassDeclaration, []slot{{"name", jsast.FieldID}, {"body", jsast.FieldBody}}},
	"field_definition":                {jsast.KindPropertyDefinition, []slot{{"property", jsast.FieldKey}, {"value", jsast.FieldValue}}},
	"public_field_definition":         {jsast.KindPropertyDefinition, []slot{{"name", jsast.FieldKey}, {"value", jsast.FieldValue}}},
	"pair":                            {jsast.KindProperty, []slot{{"key", jsast.FieldKey}, {"value", jsast.FieldValue}}},
	"jsx_opening_element":             {jsast.KindJSXOpeningElement, []slot{{"attribute", jsast.FieldAttributes}}},
	"jsx_self_closing_element":        {jsast.KindJSXOpeningElement, []slot{{"attribute", jsast.FieldAttributes}}},
}

// wrapperNodes map to a kind whose single slot holds the first named child.
//
//nolint:gochecknoglobals // lookup table
var wrapperNodes = map[string]struct {
	kind jsast.Kind
	to   jsast.Field
}{
	"expression_statement":     {jsast.KindExpressionStatement, jsast.FieldExpression},
	"return_statement":         {jsast.KindReturnStatement, jsast.FieldArgument},
	"throw_statement":          {jsast.KindThrowStatement, jsast.FieldArgument},
	"parenthesized_expression": {jsast.KindParenthesizedExpression, jsast.FieldExpression},
	"await_expression":         {jsast.KindAwaitExpression, jsast.FieldArgument},
	"yield_expression":         {jsast.KindYieldExpression, jsast.FieldArgument},
	"spread_element":           {jsast.KindSpreadElement, jsast.FieldArgument},
	"else_clause":              {jsast.KindBlockStatement, jsast.FieldBody},
	"class_heritage":           {jsast.KindUnknown, jsast.FieldSuperclass},
	"jsx_expression":           {jsast.KindJSXExpressionContainer, jsast.FieldExpression},
}

// listNodes map to a kind whose slot holds every named child.
//
//nolint:gochecknoglobals // lookup table
var listNodes = map[string]struct {
	kind jsast.Kind
	to   jsast.Field
}{
	"program":              {jsast.KindProgram, jsast.FieldBody},
	"statement_block":      {jsast.KindBlockStatement, jsast.FieldBody},
	"class_static_block":   {jsast.KindBlockStatement, jsast.FieldBody},
	"class_body":           {jsast.KindClassBody, jsast.FieldBody},
	"lexical_declaration":  {jsast.KindVariableDeclaration, jsast.FieldDeclarations},
	"variable_declaration": {jsast.KindVariableDeclaration, jsast.FieldDeclarations},
	"object":               {jsast.KindObjectExpression, jsast.FieldProperties},
	"array":                {jsast.KindArrayExpression, jsast.FieldElements},
	"sequence_expression":  {jsast.KindSequenceExpression, jsast.FieldExpressions},
	"switch_body":          {jsast.KindUnknown, jsast.FieldCases},
}

// identifierTypes are leaves that carry a name.
//
//nolint:gochecknoglobals // lookup table
var identifierTypes = map[string]bool{
	"identifier":                            true,
	"property_identifier":                   true,
	"private_property_identifier":           true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"statement_identifier":                  true,
	"type_identifier":                       true,
	"this":                                  true,
	"super":                                 true,
	"jsx_namespace_name":                    true,
	"nested_identifier":                     true,
}

// typeOnlyTypes never hold runtime values.
//
//nolint:gochecknoglobals // lookup table
var typeOnlyTypes = map[string]bool{
	"type_annotation":        true,
	"type_arguments":         true,
	"type_parameters":        true,
	"type_alias_declaration": true,
	"interface_declaration":  true,
	"enum_declaration":       true,
	"ambient_declaration":    true,
	"module":                 true,
	"internal_module":        true,
	"decorator":              true,
}

// mapNode converts a single tree-sitter node. Types the walker does not
// need map to KindUnknown without children.
func (m *mapper) mapNode(n *sitter.Node, depth int) (*jsast.Node, error) {
	if n == nil {
		return nil, nil
	}
	if depth > m.maxDepth {
		return nil, &jsast.DepthError{Limit: m.maxDepth, Offset: int(n.StartByte())}
	}

	typ := n.Type()
	next := depth + 1

	if identifierTypes[typ] {
		node := jsast.NewNode(jsast.KindIdentifier, rangeOf(n))
		node.Name = m.text(n)
		return node, nil
	}
	if typeOnlyTypes[typ] {
		return jsast.NewNode(jsast.KindUnknown, rangeOf(n)), nil
	}

	if shape, ok := simpleNodes[typ]; ok {
		node := jsast.NewNode(shape.kind, rangeOf(n))
		for _, s := range shape.slots {
			children, err := m.mapAll(fieldChildren(n, s.from), next)
			if err != nil {
				return nil, err
			}
			node.Add(s.to, children...)
		}
		if err := m.decorate(node, n, next); err != nil {
			return nil, err
		}
		return node, nil
	}

	if shape, ok := wrapperNodes[typ]; ok {
		node := jsast.NewNode(shape.kind, rangeOf(n))
		child, err := m.mapNode(firstNamed(n), next)
		if err != nil {
			return nil, err
		}
		node.Set(shape.to, child)
		return node, nil
	}

	if shape, ok := listNodes[typ]; ok {
		node := jsast.NewNode(shape.kind, rangeOf(n))
		children, err := m.mapAll(namedChildren(n), next)
		if err != nil {
			return nil, err
		}
		node.Add(shape.to, children...)
		return node, nil
	}

	switch typ {
	case "string":
		return m.mapString(n), nil
	case "number":
		node := jsast.NewNode(jsast.KindNumericLiteral, rangeOf(n))
		node.Raw = m.text(n)
		return node, nil
	case "template_string":
		return m.mapTemplate(n, next)
	case "call_expression":
		return m.mapCall(n, next)
	case "new_expression":
		return m.mapNew(n, next)
	case "subscript_expression":
		return m.mapSubscript(n, next)
	case "binary_expression":
		return m.mapBinary(n, next)
	case "function_declaration", "generator_function_declaration":
		return m.mapFunction(n, jsast.KindFunctionDeclaration, next)
	case "function_expression", "function", "generator_function":
		return m.mapFunction(n, jsast.KindFunctionExpression, next)
	case "arrow_function":
		return m.mapFunction(n, jsast.KindArrowFunctionExpression, next)
	case "method_definition":
		return m.mapFunction(n, jsast.KindMethodDefinition, next)
	case "switch_case", "switch_default":
		return m.mapSwitchCase(n, next)
	case "import_statement":
		return jsast.NewNode(jsast.KindImportDeclaration, rangeOf(n)), nil
	case "export_statement":
		return m.mapExport(n, next)
	case "as_expression", "satisfies_expression", "non_null_expression", "type_assertion":
		return m.mapTSExpression(n, next)
	case "jsx_element":
		return m.mapJSXElement(n, next)
	case "jsx_attribute":
		return m.mapJSXAttribute(n, next)
	case "jsx_text", "html_character_reference":
		return m.mapJSXText(n, n), nil
	}

	return jsast.NewNode(jsast.KindUnknown, rangeOf(n)), nil
}

// decorate fills in names and structure that the field table cannot
// express.
func (m *mapper) decorate(node *jsast.Node, n *sitter.Node, depth int) error {
	switch node.Kind {
	case jsast.KindSwitchStatement:
		body, err := m.mapNode(n.ChildByFieldName("body"), depth)
		if err != nil || body == nil {
			return err
		}
		node.Add(jsast.FieldCases, body.List(jsast.FieldCases)...)
	case jsast.KindClassDeclaration:
		for _, child := range namedChildren(n) {
			if child.Type() != "class_heritage" {
				continue
			}
			heritage, err := m.mapNode(child, depth)
			if err != nil {
				return err
			}
			node.Set(jsast.FieldSuperclass, heritage.Child(jsast.FieldSuperclass))
		}
	case jsast.KindUnaryExpression:
		if op := n.ChildByFieldName("operator"); op != nil {
			node.Name = m.text(op)
		}
	case jsast.KindProperty, jsast.KindPropertyDefinition:
		if key := node.Child(jsast.FieldKey); key != nil {
			node.Name = propertyName(key)
		}
	case jsast.KindJSXOpeningElement:
		if name := n.ChildByFieldName("name"); name != nil {
			node.Name = m.text(name)
		}
	}
	return nil
}

// propertyName returns the static name of an object key.
func propertyName(key *jsast.Node) string {
	switch key.Kind {
	case jsast.KindIdentifier:
		return key.Name
	case jsast.KindLiteral, jsast.KindNumericLiteral:
		if key.Value != "" {
			return key.Value
		}
		return key.Raw
	}
	return ""
}

func (m *mapper) mapString(n *sitter.Node) *jsast.Node {
	node := jsast.NewNode(jsast.KindLiteral, rangeOf(n))
	node.Raw = m.text(n)
	if len(node.Raw) >= 2 {
		node.Value = textutil.CookString(node.Raw[1 : len(node.Raw)-1])
	}
	return node
}

// mapTemplate splits a template string into quasis and expressions. The
// quasis are the gaps between substitutions, so they exist even where the
// grammar emits no fragment node.
func (m *mapper) mapTemplate(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindTemplateLiteral, rangeOf(n))
	node.Raw = m.text(n)

	start, end := int(n.StartByte())+1, int(n.EndByte())-1
	if end < start {
		end = start
	}

	cursor := start
	for _, child := range namedChildren(n) {
		if child.Type() != "template_substitution" {
			continue
		}
		node.Add(jsast.FieldQuasis, m.templateElement(cursor, int(child.StartByte())))

		expr, err := m.mapNode(firstNamed(child), depth)
		if err != nil {
			return nil, err
		}
		if expr == nil {
			expr = jsast.NewNode(jsast.KindUnknown, rangeOf(child))
		}
		node.Add(jsast.FieldExpressions, expr)
		cursor = int(child.EndByte())
	}
	node.Add(jsast.FieldQuasis, m.templateElement(cursor, end))

	return node, nil
}

func (m *mapper) templateElement(start, end int) *jsast.Node {
	node := jsast.NewNode(jsast.KindTemplateElement, jsast.Range{Start: start, End: end})
	node.Raw = string(m.content[start:end])
	node.Value = textutil.CookString(node.Raw)
	return node
}

func (m *mapper) mapCall(n *sitter.Node, depth int) (*jsast.Node, error) {
	callee, err := m.mapNode(n.ChildByFieldName("function"), depth)
	if err != nil {
		return nil, err
	}

	args := n.ChildByFieldName("arguments")
	if args != nil && args.Type() == "template_string" {
		node := jsast.NewNode(jsast.KindTaggedTemplateExpression, rangeOf(n))
		node.Set(jsast.FieldTag, callee)
		quasi, err := m.mapTemplate(args, depth)
		if err != nil {
			return nil, err
		}
		node.Set(jsast.FieldQuasi, quasi)
		return node, nil
	}

	node := jsast.NewNode(jsast.KindCallExpression, rangeOf(n))
	node.Set(jsast.FieldCallee, callee)
	arguments, err := m.mapAll(namedChildren(args), depth)
	if err != nil {
		return nil, err
	}
	node.Add(jsast.FieldArguments, arguments...)
	return node, nil
}

func (m *mapper) mapNew(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindNewExpression, rangeOf(n))
	callee, err := m.mapNode(n.ChildByFieldName("constructor"), depth)
	if err != nil {
		return nil, err
	}
	node.Set(jsast.FieldCallee, callee)

	arguments, err := m.mapAll(namedChildren(n.ChildByFieldName("arguments")), depth)
	if err != nil {
		return nil, err
	}
	node.Add(jsast.FieldArguments, arguments...)
	return node, nil
}

func (m *mapper) mapSubscript(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindMemberExpression, rangeOf(n))
	node.Computed = true

	object, err := m.mapNode(n.ChildByFieldName("object"), depth)
	if err != nil {
		return nil, err
	}
	node.Set(jsast.FieldObject, object)

	index, err := m.mapNode(n.ChildByFieldName("index"), depth)
	if err != nil {
		return nil, err
	}
	node.Set(jsast.FieldProperty, index)
	return node, nil
}

func (m *mapper) mapBinary(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindBinaryExpression, rangeOf(n))
	if op := n.ChildByFieldName("operator"); op != nil {
		node.Name = m.text(op)
	}

	left, err := m.mapNode(n.ChildByFieldName("left"), depth)
	if err != nil {
		return nil, err
	}
	right, err := m.mapNode(n.ChildByFieldName("right"), depth)
	if err != nil {
		return nil, err
	}
	node.Set(jsast.FieldLeft, left)
	node.Set(jsast.FieldRight, right)
	return node, nil
}

func (m *mapper) mapFunction(n *sitter.Node, kind jsast.Kind, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(kind, rangeOf(n))
	if name := n.ChildByFieldName("name"); name != nil {
		node.Name = m.text(name)
	}

	var params []*sitter.Node
	if list := n.ChildByFieldName("parameters"); list != nil {
		params = namedChildren(list)
	} else if single := n.ChildByFieldName("parameter"); single != nil {
		params = []*sitter.Node{single}
	}
	mapped, err := m.mapAll(params, depth)
	if err != nil {
		return nil, err
	}
	node.Add(jsast.FieldParams, mapped...)

	body, err := m.mapNode(n.ChildByFieldName("body"), depth)
	if err != nil {
		return nil, err
	}
	node.Set(jsast.FieldBody, body)
	return node, nil
}

func (m *mapper) mapSwitchCase(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindSwitchCase, rangeOf(n))

	test, err := m.mapNode(n.ChildByFieldName("value"), depth)
	if err != nil {
		return nil, err
	}
	node.Set(jsast.FieldTest, test)

	body, err := m.mapAll(fieldChildren(n, "body"), depth)
	if err != nil {
		return nil, err
	}
	node.Add(jsast.FieldConsequent, body...)
	return node, nil
}

func (m *mapper) mapExport(n *sitter.Node, depth int) (*jsast.Node, error) {
	kind := jsast.KindExportNamedDeclaration
	for i := range int(n.ChildCount()) {
		if child := n.Child(i); child != nil && child.Type() == "default" {
			kind = jsast.KindExportDefaultDeclaration
			break
		}
	}

	node := jsast.NewNode(kind, rangeOf(n))
	for _, name := range []string{"declaration", "value"} {
		decl, err := m.mapNode(n.ChildByFieldName(name), depth)
		if err != nil {
			return nil, err
		}
		node.Set(jsast.FieldDeclaration, decl)
	}
	return node, nil
}

func (m *mapper) mapTSExpression(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindTSExpression, rangeOf(n))
	for _, child := range namedChildren(n) {
		if typeOnlyTypes[child.Type()] {
			continue
		}
		expr, err := m.mapNode(child, depth)
		if err != nil {
			return nil, err
		}
		node.Set(jsast.FieldExpression, expr)
		break
	}
	return node, nil
}

// mapJSXElement maps an element and its children. Adjacent text and
// character references merge into one JSXText node.
func (m *mapper) mapJSXElement(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindJSXElement, rangeOf(n))

	open, err := m.mapNode(n.ChildByFieldName("open_tag"), depth)
	if err != nil {
		return nil, err
	}
	node.Set(jsast.FieldOpeningElement, open)
	if open != nil {
		node.Name = open.Name
	}

	var textStart *sitter.Node
	var textEnd *sitter.Node
	flush := func() {
		if textStart != nil {
			node.Add(jsast.FieldChildren, m.mapJSXText(textStart, textEnd))
			textStart, textEnd = nil, nil
		}
	}

	for i := range int(n.NamedChildCount()) {
		child := n.NamedChild(i)
		if child == nil || isComment(child) {
			continue
		}
		switch child.Type() {
		case "jsx_opening_element", "jsx_closing_element":
			continue
		case "jsx_text", "html_character_reference":
			if textStart == nil {
				textStart = child
			}
			textEnd = child
			continue
		}

		flush()
		mapped, err := m.mapNode(child, depth)
		if err != nil {
			return nil, err
		}
		node.Add(jsast.FieldChildren, mapped)
	}
	flush()

	return node, nil
}

// mapJSXText covers first through last. Character references are decoded
// in Value; Raw keeps the source.
func (m *mapper) mapJSXText(first, last *sitter.Node) *jsast.Node {
	r := jsast.Range{Start: int(first.StartByte()), End: int(last.EndByte())}
	node := jsast.NewNode(jsast.KindJSXText, r)
	node.Raw = string(m.content[r.Start:r.End])
	node.Value = html.UnescapeString(node.Raw)
	return node
}

func (m *mapper) mapJSXAttribute(n *sitter.Node, depth int) (*jsast.Node, error) {
	node := jsast.NewNode(jsast.KindJSXAttribute, rangeOf(n))

	children := namedChildren(n)
	if len(children) == 0 {
		return node, nil
	}
	node.Name = m.text(children[0])

	if len(children) < 2 {
		return node, nil
	}
	value, err := m.mapNode(children[1], depth)
	if err != nil {
		return nil, err
	}
	if value.Kind == jsast.KindLiteral && len(value.Raw) >= 2 {
		// JSX attribute strings take HTML entities, not JS escapes.
		value.Value = html.UnescapeString(value.Raw[1 : len(value.Raw)-1])
	}
	node.Set(jsast.FieldValue, value)
	return node, nil
}
