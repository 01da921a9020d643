// Package jsast defines a small ESTree-shaped syntax tree for JavaScript,
// TypeScript and JSX. Only the structure needed to find translatable
// literals is kept; every node carries its byte range in the parsed source.
package jsast

import "slices"

// Kind classifies the type of a syntax node.
type Kind uint16

// Node kinds, named after their ESTree counterparts.
const (
	KindUnknown Kind = iota

	// Statements and declarations.
	KindProgram
	KindExpressionStatement
	KindVariableDeclaration
	KindVariableDeclarator
	KindBlockStatement
	KindReturnStatement
	KindThrowStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindWhileStatement
	KindDoWhileStatement
	KindSwitchStatement
	KindSwitchCase
	KindTryStatement
	KindCatchClause
	KindLabeledStatement
	KindFunctionDeclaration
	KindClassDeclaration
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindImportDeclaration
	KindExportNamedDeclaration
	KindExportDefaultDeclaration

	// Expressions.
	KindIdentifier
	KindLiteral
	KindNumericLiteral
	KindTemplateLiteral
	KindTemplateElement
	KindTaggedTemplateExpression
	KindFunctionExpression
	KindArrowFunctionExpression
	KindMemberExpression
	KindCallExpression
	KindNewExpression
	KindConditionalExpression
	KindBinaryExpression
	KindUnaryExpression
	KindUpdateExpression
	KindAssignmentExpression
	KindAssignmentPattern
	KindSequenceExpression
	KindParenthesizedExpression
	KindAwaitExpression
	KindYieldExpression
	KindSpreadElement
	KindObjectExpression
	KindProperty
	KindArrayExpression
	KindTSExpression

	// JSX.
	KindJSXElement
	KindJSXOpeningElement
	KindJSXAttribute
	KindJSXExpressionContainer
	KindJSXText
)

//nolint:gochecknoglobals // lookup table
var kindNames = [...]string{
	KindUnknown:                  "Unknown",
	KindProgram:                  "Program",
	KindExpressionStatement:      "ExpressionStatement",
	KindVariableDeclaration:      "VariableDeclaration",
	KindVariableDeclarator:       "VariableDeclarator",
	KindBlockStatement:           "BlockStatement",
	KindReturnStatement:          "ReturnStatement",
	KindThrowStatement:           "ThrowStatement",
	KindIfStatement:              "IfStatement",
	KindForStatement:             "ForStatement",
	KindForInStatement:           "ForInStatement",
	KindWhileStatement:           "WhileStatement",
	KindDoWhileStatement:         "DoWhileStatement",
	KindSwitchStatement:          "SwitchStatement",
	KindSwitchCase:               "SwitchCase",
	KindTryStatement:             "TryStatement",
	KindCatchClause:              "CatchClause",
	KindLabeledStatement:         "LabeledStatement",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindClassDeclaration:         "ClassDeclaration",
	KindClassBody:                "ClassBody",
	KindMethodDefinition:         "MethodDefinition",
	KindPropertyDefinition:       "PropertyDefinition",
	KindImportDeclaration:        "ImportDeclaration",
	KindExportNamedDeclaration:   "ExportNamedDeclaration",
	KindExportDefaultDeclaration: "ExportDefaultDeclaration",
	KindIdentifier:               "Identifier",
	KindLiteral:                  "Literal",
	KindNumericLiteral:           "NumericLiteral",
	KindTemplateLiteral:          "TemplateLiteral",
	KindTemplateElement:          "TemplateElement",
	KindTaggedTemplateExpression: "TaggedTemplateExpression",
	KindFunctionExpression:       "FunctionExpression",
	KindArrowFunctionExpression:  "ArrowFunctionExpression",
	KindMemberExpression:         "MemberExpression",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindUpdateExpression:         "UpdateExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindAssignmentPattern:        "AssignmentPattern",
	KindSequenceExpression:       "SequenceExpression",
	KindParenthesizedExpression:  "ParenthesizedExpression",
	KindAwaitExpression:          "AwaitExpression",
	KindYieldExpression:          "YieldExpression",
	KindSpreadElement:            "SpreadElement",
	KindObjectExpression:         "ObjectExpression",
	KindProperty:                 "Property",
	KindArrayExpression:          "ArrayExpression",
	KindTSExpression:             "TSExpression",
	KindJSXElement:               "JSXElement",
	KindJSXOpeningElement:        "JSXOpeningElement",
	KindJSXAttribute:             "JSXAttribute",
	KindJSXExpressionContainer:   "JSXExpressionContainer",
	KindJSXText:                  "JSXText",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + itoa(int(k)) + ")"
}

// Field names a child slot of a node.
type Field uint8

// Child slots.
const (
	FieldBody Field = iota
	FieldExpression
	FieldDeclarations
	FieldID
	FieldInit
	FieldUpdate
	FieldArgument
	FieldTest
	FieldConsequent
	FieldAlternate
	FieldLeft
	FieldRight
	FieldCallee
	FieldArguments
	FieldObject
	FieldProperty
	FieldParams
	FieldElements
	FieldProperties
	FieldKey
	FieldValue
	FieldQuasis
	FieldExpressions
	FieldTag
	FieldQuasi
	FieldBlock
	FieldHandler
	FieldFinalizer
	FieldDiscriminant
	FieldCases
	FieldDeclaration
	FieldSuperclass
	FieldOpeningElement
	FieldChildren
	FieldAttributes
)

// Range is a half-open byte range [Start, End) into the parsed source.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// Node is a single syntax node.
type Node struct {
	// Kind identifies what type of node this is.
	Kind Kind

	// Range locates the node in the parsed source.
	Range Range

	// Name holds identifier names, property and attribute names, element
	// tag names and operators.
	Name string

	// Raw is the source text of literals, template elements and JSX text.
	Raw string

	// Value is the decoded value of string literals, template elements and
	// JSX text.
	Value string

	// Computed marks member expressions written with brackets.
	Computed bool

	fields map[Field][]*Node
}

// NewNode creates a node of the given kind covering r.
func NewNode(kind Kind, r Range) *Node {
	return &Node{Kind: kind, Range: r}
}

// Set stores child in slot f, replacing earlier content. A nil child
// leaves the slot empty.
func (n *Node) Set(f Field, child *Node) {
	if child == nil {
		return
	}
	if n.fields == nil {
		n.fields = make(map[Field][]*Node)
	}
	n.fields[f] = []*Node{child}
}

// Add appends children to slot f, skipping nils.
func (n *Node) Add(f Field, children ...*Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		if n.fields == nil {
			n.fields = make(map[Field][]*Node)
		}
		n.fields[f] = append(n.fields[f], child)
	}
}

// Child returns the first node in slot f, or nil.
func (n *Node) Child(f Field) *Node {
	if list := n.fields[f]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// List returns every node in slot f.
func (n *Node) List(f Field) []*Node {
	return n.fields[f]
}

// Fields returns the occupied slots in ascending order.
func (n *Node) Fields() []Field {
	fields := make([]Field, 0, len(n.fields))
	for f := range n.fields {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Is reports whether n is non-nil and of one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	return n != nil && slices.Contains(kinds, n.Kind)
}

func itoa(num int) string {
	if num == 0 {
		return "0"
	}
	var buf [20]byte
	idx := len(buf)
	for num > 0 {
		idx--
		buf[idx] = byte('0' + num%10)
		num /= 10
	}
	return string(buf[idx:])
}
