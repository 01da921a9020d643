package extract

import (
	"cmp"
	"slices"

	"github.com/yaklabco/langex/pkg/jsast"
)

// childFields lists, per kind, the slots the script walker descends into.
// Kinds missing from the table have no children as far as extraction is
// concerned. Object keys, member properties, import sources, parameter
// names and type-only constructs are deliberately absent.
//
//nolint:gochecknoglobals // dispatch table
var childFields = map[jsast.Kind][]jsast.Field{
	jsast.KindProgram:                  {jsast.FieldBody},
	jsast.KindExpressionStatement:      {jsast.FieldExpression},
	jsast.KindVariableDeclaration:      {jsast.FieldDeclarations},
	jsast.KindVariableDeclarator:       {jsast.FieldInit},
	jsast.KindBlockStatement:           {jsast.FieldBody},
	jsast.KindReturnStatement:          {jsast.FieldArgument},
	jsast.KindThrowStatement:           {jsast.FieldArgument},
	jsast.KindIfStatement:              {jsast.FieldTest, jsast.FieldConsequent, jsast.FieldAlternate},
	jsast.KindForStatement:             {jsast.FieldInit, jsast.FieldTest, jsast.FieldUpdate, jsast.FieldBody},
	jsast.KindForInStatement:           {jsast.FieldRight, jsast.FieldBody},
	jsast.KindWhileStatement:           {jsast.FieldTest, jsast.FieldBody},
	jsast.KindDoWhileStatement:         {jsast.FieldBody, jsast.FieldTest},
	jsast.KindSwitchStatement:          {jsast.FieldDiscriminant, jsast.FieldCases},
	jsast.KindSwitchCase:               {jsast.FieldTest, jsast.FieldConsequent},
	jsast.KindTryStatement:             {jsast.FieldBlock, jsast.FieldHandler, jsast.FieldFinalizer},
	jsast.KindCatchClause:              {jsast.FieldBody},
	jsast.KindLabeledStatement:         {jsast.FieldBody},
	jsast.KindFunctionDeclaration:      {jsast.FieldParams, jsast.FieldBody},
	jsast.KindFunctionExpression:       {jsast.FieldParams, jsast.FieldBody},
	jsast.KindArrowFunctionExpression:  {jsast.FieldParams, jsast.FieldBody},
	jsast.KindMethodDefinition:         {jsast.FieldParams, jsast.FieldBody},
	jsast.KindClassDeclaration:         {jsast.FieldSuperclass, jsast.FieldBody},
	jsast.KindClassBody:                {jsast.FieldBody},
	jsast.KindPropertyDefinition:       {jsast.FieldValue},
	jsast.KindExportNamedDeclaration:   {jsast.FieldDeclaration},
	jsast.KindExportDefaultDeclaration: {jsast.FieldDeclaration},
	jsast.KindTemplateLiteral:          {jsast.FieldExpressions},
	jsast.KindTaggedTemplateExpression: {jsast.FieldTag},
	jsast.KindMemberExpression:         {jsast.FieldObject},
	jsast.KindCallExpression:           {jsast.FieldCallee, jsast.FieldArguments},
	jsast.KindNewExpression:            {jsast.FieldCallee, jsast.FieldArguments},
	jsast.KindConditionalExpression:    {jsast.FieldTest, jsast.FieldConsequent, jsast.FieldAlternate},
	jsast.KindBinaryExpression:         {jsast.FieldLeft, jsast.FieldRight},
	jsast.KindUnaryExpression:          {jsast.FieldArgument},
	jsast.KindUpdateExpression:         {jsast.FieldArgument},
	jsast.KindAssignmentExpression:     {jsast.FieldLeft, jsast.FieldRight},
	jsast.KindAssignmentPattern:        {jsast.FieldRight},
	jsast.KindSequenceExpression:       {jsast.FieldExpressions},
	jsast.KindParenthesizedExpression:  {jsast.FieldExpression},
	jsast.KindAwaitExpression:          {jsast.FieldArgument},
	jsast.KindYieldExpression:          {jsast.FieldArgument},
	jsast.KindSpreadElement:            {jsast.FieldArgument},
	jsast.KindObjectExpression:         {jsast.FieldProperties},
	jsast.KindProperty:                 {jsast.FieldValue},
	jsast.KindArrayExpression:          {jsast.FieldElements},
	jsast.KindTSExpression:             {jsast.FieldExpression},
	jsast.KindJSXElement:               {jsast.FieldOpeningElement, jsast.FieldChildren},
	jsast.KindJSXOpeningElement:        {jsast.FieldAttributes},
	jsast.KindJSXExpressionContainer:   {jsast.FieldExpression},
}

// childNodes returns the children of n the walker visits, in source order.
func childNodes(n *jsast.Node) []*jsast.Node {
	fields := childFields[n.Kind]
	if len(fields) == 0 {
		return nil
	}

	var children []*jsast.Node
	for _, f := range fields {
		children = append(children, n.List(f)...)
	}
	slices.SortStableFunc(children, func(a, b *jsast.Node) int {
		return cmp.Compare(a.Range.Start, b.Range.Start)
	})
	return children
}
