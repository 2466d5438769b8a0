// Package parser builds a brew AST from a token stream.
package parser

import (
	"fmt"
	"strconv"

	"github.com/zurustar/brew/pkg/compiler/ast"
	"github.com/zurustar/brew/pkg/compiler/token"
)

// Precedence levels for operators, weakest first.
const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	OR          // ||
	AND         // &&
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // +
	PRODUCT     // *
	PREFIX      // -X or !X
	CALL        // myFunction(X), array[index], object.member
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:   ASSIGN,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: CALL,
	token.DOT:      CALL,
}

// ParseError reports malformed input: what the grammar expected and the
// token that was found instead.
type ParseError struct {
	Expected string
	Found    token.Token
	Span     token.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s, found %s at %d:%d",
		e.Expected, e.Found.Describe(), e.Span.StartLine, e.Span.StartColumn)
}

// Parser parses brew tokens into an AST.
type Parser struct {
	tokens   []token.Token
	position int
	err      *ParseError

	curToken  token.Token
	peekToken token.Token

	loopDepth     int
	functionDepth int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parse parses a complete token stream, as produced by lexer.Tokenize.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// New creates a new Parser.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	// Register prefix parse functions
	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(token.FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(token.FN, p.parseFunctionLiteral)

	// Register infix parse functions
	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, tt := range []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE,
		token.AND, token.OR,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(token.ASSIGN, p.parseAssignExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// ParseProgram parses the entire program. Parsing stops at the first error.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Statements: []ast.Statement{}}
	start := p.curToken

	for !p.curTokenIs(token.EOF) {
		// Skip empty statements
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}

	program.Span = start.Span.To(p.curToken.Span)
	return program, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET, token.OBJ:
		return p.parseLetStatement(true)
	case token.FUNCTION, token.FN:
		if p.peekTokenIs(token.IDENT) {
			return p.parseFunctionStatement()
		}
		return p.parseExpressionStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `let NAME [= VALUE]`. The trailing semicolon is
// consumed only when terminated is set; a for-loop header owns its own.
func (p *Parser) parseLetStatement(terminated bool) *ast.LetStatement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT, "variable name") {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(ASSIGN)
		if p.err != nil {
			return nil
		}
	}
	stmt.Span = stmt.Token.Span.To(p.curToken.Span)

	if terminated {
		p.skipSemicolon()
	}
	return stmt
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken}
	fn, ok := p.parseFunctionLiteral().(*ast.FunctionLiteral)
	if !ok || p.err != nil {
		return nil
	}
	stmt.Name = fn.Name
	stmt.Function = fn
	stmt.Span = fn.Span
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	stmt.Span = stmt.Expression.Pos()
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE, "'{' after if condition") {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()
	if p.err != nil {
		return nil
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()

		switch {
		case p.peekTokenIs(token.IF):
			p.nextToken()
			stmt.Alternative = p.parseIfStatement()
		case p.expectPeek(token.LBRACE, "'if' or '{' after else"):
			stmt.Alternative = p.parseBlockStatement()
		}
		if p.err != nil {
			return nil
		}
	}

	stmt.Span = stmt.Token.Span.To(p.curToken.Span)
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE, "'{' after while condition") {
		return nil
	}
	stmt.Body = p.parseLoopBody()
	if p.err != nil {
		return nil
	}

	stmt.Span = stmt.Token.Span.To(p.curToken.Span)
	return stmt
}

// parseForStatement parses `for (init; cond; step) { ... }`. The parentheses
// around the header are optional.
func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	parenthesized := p.peekTokenIs(token.LPAREN)
	if parenthesized {
		p.nextToken()
	}

	// init
	p.nextToken()
	if !p.curTokenIs(token.SEMICOLON) {
		if p.curTokenIs(token.LET) || p.curTokenIs(token.OBJ) {
			stmt.Init = p.parseLetStatement(false)
		} else {
			exprStmt := &ast.ExpressionStatement{Token: p.curToken}
			exprStmt.Expression = p.parseExpression(LOWEST)
			if p.err == nil {
				exprStmt.Span = exprStmt.Expression.Pos()
			}
			stmt.Init = exprStmt
		}
		if p.err != nil {
			return nil
		}
		if !p.expectPeek(token.SEMICOLON, "';' after for initializer") {
			return nil
		}
	}

	// condition
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Condition = p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
	}
	if !p.expectPeek(token.SEMICOLON, "';' after for condition") {
		return nil
	}

	// step
	closer := token.TokenType(token.LBRACE)
	if parenthesized {
		closer = token.RPAREN
	}
	if !p.peekTokenIs(closer) {
		p.nextToken()
		stmt.Step = p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
	}
	if parenthesized && !p.expectPeek(token.RPAREN, "')' after for clauses") {
		return nil
	}

	if !p.expectPeek(token.LBRACE, "'{' before for body") {
		return nil
	}
	stmt.Body = p.parseLoopBody()
	if p.err != nil {
		return nil
	}

	stmt.Span = stmt.Token.Span.To(p.curToken.Span)
	return stmt
}

func (p *Parser) parseLoopBody() *ast.BlockStatement {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.parseBlockStatement()
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.functionDepth == 0 {
		p.fail("statement ('return' is only valid inside a function)", p.curToken)
		return nil
	}

	if !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
	}

	stmt.Span = stmt.Token.Span.To(p.curToken.Span)
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	if p.loopDepth == 0 {
		p.fail("statement ('break' is only valid inside a loop)", p.curToken)
		return nil
	}
	stmt := &ast.BreakStatement{Token: p.curToken, Span: p.curToken.Span}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	if p.loopDepth == 0 {
		p.fail("statement ('continue' is only valid inside a loop)", p.curToken)
		return nil
	}
	stmt := &ast.ContinueStatement{Token: p.curToken, Span: p.curToken.Span}
	p.skipSemicolon()
	return stmt
}

// parseTryStatement parses try/catch/finally. The catch binding may be written
// `catch (e)`, `catch e` or omitted.
func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.TryStatement{Token: p.curToken}

	if !p.expectPeek(token.LBRACE, "'{' after try") {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if p.err != nil {
		return nil
	}

	if p.peekTokenIs(token.CATCH) {
		p.nextToken()
		switch {
		case p.peekTokenIs(token.LPAREN):
			p.nextToken()
			if !p.expectPeek(token.IDENT, "catch parameter name") {
				return nil
			}
			stmt.CatchName = p.curToken.Literal
			if !p.expectPeek(token.RPAREN, "')' after catch parameter") {
				return nil
			}
		case p.peekTokenIs(token.IDENT):
			p.nextToken()
			stmt.CatchName = p.curToken.Literal
		}
		if !p.expectPeek(token.LBRACE, "'{' before catch body") {
			return nil
		}
		stmt.Catch = p.parseBlockStatement()
		if p.err != nil {
			return nil
		}
	}

	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE, "'{' after finally") {
			return nil
		}
		stmt.Finally = p.parseBlockStatement()
		if p.err != nil {
			return nil
		}
	}

	if stmt.Catch == nil && stmt.Finally == nil {
		p.fail("'catch' or 'finally' after try block", p.peekToken)
		return nil
	}

	stmt.Span = stmt.Token.Span.To(p.curToken.Span)
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	stmt.Span = stmt.Token.Span.To(p.curToken.Span)
	p.skipSemicolon()
	return stmt
}

// parseBlockStatement parses `{ ... }` with curToken on the opening brace and
// leaves curToken on the closing brace.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken, Statements: []ast.Statement{}}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.fail("'}'", p.curToken)
			return nil
		}
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}

	block.Span = block.Token.Span.To(p.curToken.Span)
	return block
}

// Expressions

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.fail("expression", p.curToken)
		return nil
	}
	leftExp := prefix()

	for p.err == nil && !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
	}

	if p.err != nil {
		return nil
	}
	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal, Span: p.curToken.Span}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.fail("number literal", p.curToken)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value, Span: p.curToken.Span}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal, Span: p.curToken.Span}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE), Span: p.curToken.Span}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken, Span: p.curToken.Span}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	array := &ast.ArrayLiteral{Token: p.curToken}
	array.Elements = p.parseExpressionList(token.RBRACKET)
	if p.err != nil {
		return nil
	}
	array.Span = array.Token.Span.To(p.curToken.Span)
	return array
}

// parseObjectLiteral parses `{key: value, ...}`. Keys are identifiers,
// keywords or string literals.
func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken, Pairs: []ast.ObjectPair{}}

	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.STRING) && !token.IsKeyword(p.curToken.Type) {
			p.fail("object key", p.curToken)
			return nil
		}
		key := p.curToken.Literal
		if !p.expectPeek(token.COLON, "':' after object key") {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(ASSIGN)
		if p.err != nil {
			return nil
		}
		obj.Pairs = append(obj.Pairs, ast.ObjectPair{Key: key, Value: value})

		if !p.peekTokenIs(token.RBRACE) && !p.expectPeek(token.COMMA, "',' or '}' in object literal") {
			return nil
		}
	}
	p.nextToken()

	obj.Span = obj.Token.Span.To(p.curToken.Span)
	return obj
}

// parseFunctionLiteral parses `function NAME?(PARAMS) { BODY }`.
func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curToken, Parameters: []string{}}

	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = p.curToken.Literal
	}

	if !p.expectPeek(token.LPAREN, "'(' before parameters") {
		return nil
	}
	fn.Parameters = p.parseFunctionParameters()
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE, "'{' before function body") {
		return nil
	}

	outerLoops := p.loopDepth
	p.loopDepth = 0
	p.functionDepth++
	fn.Body = p.parseBlockStatement()
	p.functionDepth--
	p.loopDepth = outerLoops
	if p.err != nil {
		return nil
	}

	fn.Span = fn.Token.Span.To(p.curToken.Span)
	return fn
}

func (p *Parser) parseFunctionParameters() []string {
	params := []string{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	if !p.expectPeek(token.IDENT, "parameter name") {
		return nil
	}
	params = append(params, p.curToken.Literal)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT, "parameter name") {
			return nil
		}
		params = append(params, p.curToken.Literal)
	}

	if !p.expectPeek(token.RPAREN, "')' after parameters") {
		return nil
	}
	return params
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if p.err != nil {
		return nil
	}

	expression.Span = expression.Token.Span.To(expression.Right.Pos())
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if p.err != nil {
		return nil
	}

	expression.Span = left.Pos().To(expression.Right.Pos())
	return expression
}

// parseAssignExpression is right associative: a = b = c assigns c to both.
func (p *Parser) parseAssignExpression(target ast.Expression) ast.Expression {
	switch target.(type) {
	case *ast.Identifier, *ast.IndexExpression, *ast.MemberExpression:
	default:
		p.fail("assignable target before '='", p.curToken)
		return nil
	}

	expression := &ast.AssignExpression{Token: p.curToken, Target: target}
	p.nextToken()
	expression.Value = p.parseExpression(ASSIGN - 1)
	if p.err != nil {
		return nil
	}

	expression.Span = target.Pos().To(expression.Value.Pos())
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN, "')'") {
		return nil
	}

	return exp
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}
	exp.Arguments = p.parseExpressionList(token.RPAREN)
	if p.err != nil {
		return nil
	}
	exp.Span = function.Pos().To(p.curToken.Span)
	return exp
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.RBRACKET, "']'") {
		return nil
	}

	exp.Span = left.Pos().To(p.curToken.Span)
	return exp
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	exp := &ast.MemberExpression{Token: p.curToken, Object: object}

	p.nextToken()
	if !p.curTokenIs(token.IDENT) && !token.IsKeyword(p.curToken.Type) {
		p.fail("property name after '.'", p.curToken)
		return nil
	}
	exp.Property = p.curToken.Literal

	exp.Span = object.Pos().To(p.curToken.Span)
	return exp
}

// parseExpressionList parses comma separated expressions up to end. A trailing
// comma is allowed.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	for !p.peekTokenIs(end) {
		p.nextToken()
		expr := p.parseExpression(ASSIGN)
		if p.err != nil {
			return nil
		}
		list = append(list, expr)

		if !p.peekTokenIs(end) && !p.expectPeek(token.COMMA, fmt.Sprintf("',' or '%s'", end)) {
			return nil
		}
	}
	p.nextToken()

	return list
}

// Helpers

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the next token has type t and records a
// ParseError otherwise.
func (p *Parser) expectPeek(t token.TokenType, expected string) bool {
	if p.err != nil {
		return false
	}
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.fail(expected, p.peekToken)
	return false
}

func (p *Parser) skipSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.tokenAt(p.position)
	p.position++
}

// tokenAt returns the token at index i, or a synthetic EOF past the end.
func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	tok := token.Token{Type: token.EOF}
	if len(p.tokens) > 0 {
		tok.Span = p.tokens[len(p.tokens)-1].Span
	}
	return tok
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

// fail records the first error; later errors are consequences of it.
func (p *Parser) fail(expected string, found token.Token) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{Expected: expected, Found: found, Span: found.Span}
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
