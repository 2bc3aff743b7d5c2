package syntax

// Node kind names as produced by the tree-sitter JavaScript grammar.
// Kinds are plain strings in tree-sitter; the constants below cover the
// subset this tool dispatches on.
const (
	KindProgram = "program"

	KindFunctionDeclaration          = "function_declaration"
	KindFunctionExpression           = "function_expression"
	KindFunction                     = "function" // older grammar name for function_expression
	KindGeneratorFunction            = "generator_function"
	KindGeneratorFunctionDeclaration = "generator_function_declaration"
	KindArrowFunction                = "arrow_function"
	KindMethodDefinition             = "method_definition"

	KindAwaitExpression = "await_expression"
	KindCallExpression  = "call_expression"
	KindNewExpression   = "new_expression"

	KindMemberExpression     = "member_expression"
	KindSubscriptExpression  = "subscript_expression"
	KindIdentifier           = "identifier"
	KindPropertyIdentifier   = "property_identifier"
	KindShorthandProperty    = "shorthand_property_identifier"
	KindStatementBlock       = "statement_block"
	KindObject               = "object"
	KindArray                = "array"
	KindLexicalDeclaration   = "lexical_declaration"
	KindVariableDeclaration  = "variable_declaration"
	KindVariableDeclarator   = "variable_declarator"
	KindFormalParameters     = "formal_parameters"
	KindParenthesized        = "parenthesized_expression"
	KindArguments            = "arguments"
	KindError                = "ERROR"
)

// functionKinds lists every construct that opens a new function scope.
var functionKinds = map[string]struct{}{
	KindFunctionDeclaration:          {},
	KindFunctionExpression:           {},
	KindFunction:                     {},
	KindGeneratorFunction:            {},
	KindGeneratorFunctionDeclaration: {},
	KindArrowFunction:                {},
	KindMethodDefinition:             {},
}

// IsFunctionKind reports whether kind opens a function scope.
func IsFunctionKind(kind string) bool {
	_, ok := functionKinds[kind]
	return ok
}

// IsDeclarationKind reports whether kind is a variable declaration statement
// (const/let or var).
func IsDeclarationKind(kind string) bool {
	return kind == KindLexicalDeclaration || kind == KindVariableDeclaration
}
