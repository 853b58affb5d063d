package taicc

import "fmt"

const DefaultMaxDepth = 1000

// Parser is a recursive descent parser over a token slice. The cursor only
// moves forward.
type Parser struct {
	src      *Source
	tokens   []Token
	idx      int
	depth    int
	maxDepth int
}

func NewParser(src *Source, tokens []Token) *Parser {
	return &Parser{
		src:      src,
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth bounds the recursion depth; n <= 0 restores the default.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

func (p *Parser) Current() Token {
	if p.idx >= len(p.tokens) {
		// a well-formed token sequence always ends with EOF
		offset := 0
		if p.src != nil {
			offset = len(p.src.Content)
		}
		return Token{Kind: TokenEOF, Offset: offset}
	}
	return p.tokens[p.idx]
}

func (p *Parser) AtEOF() bool {
	return p.Current().Kind == TokenEOF
}

func (p *Parser) advance() {
	if p.idx < len(p.tokens) {
		p.idx++
	}
}

func (p *Parser) errorAt(tok Token, err error) error {
	return WithPos(err, Pos{Source: p.src, Offset: tok.Offset})
}

// consume advances past the operator sym if it is current.
func (p *Parser) consume(sym byte) bool {
	if !p.Current().Is(sym) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(sym byte) error {
	tok := p.Current()
	if !tok.Is(sym) {
		return p.errorAt(tok, &SyntaxError{
			Offset:   tok.Offset,
			Expected: fmt.Sprintf("'%c'", sym),
		})
	}
	p.advance()
	return nil
}

func (p *Parser) expectNumber() (Token, error) {
	tok := p.Current()
	if tok.Kind != TokenNumber {
		return tok, p.errorAt(tok, &SyntaxError{
			Offset:   tok.Offset,
			Expected: "a number",
		})
	}
	p.advance()
	return tok, nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(p.Current(), &NestingError{
			Offset: p.Current().Offset,
			Limit:  p.maxDepth,
		})
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// Expr parses
//
//	expr    := mul (('+' | '-') mul)*
//	mul     := primary (('*' | '/') primary)*
//	primary := NUMBER | '(' expr ')'
//
// It does not require the input to end after the expression.
func (p *Parser) Expr() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	node, err := p.mul()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.Current()
		var op Op
		switch {
		case p.consume('+'):
			op = OpAdd
		case p.consume('-'):
			op = OpSub
		default:
			return node, nil
		}
		rhs, err := p.mul()
		if err != nil {
			return nil, err
		}
		node = &BinaryOp{
			Op:     op,
			Left:   node,
			Right:  rhs,
			Offset: tok.Offset,
		}
	}
}

func (p *Parser) mul() (Node, error) {
	node, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.Current()
		var op Op
		switch {
		case p.consume('*'):
			op = OpMul
		case p.consume('/'):
			op = OpDiv
		default:
			return node, nil
		}
		rhs, err := p.primary()
		if err != nil {
			return nil, err
		}
		node = &BinaryOp{
			Op:     op,
			Left:   node,
			Right:  rhs,
			Offset: tok.Offset,
		}
	}
}

func (p *Parser) primary() (Node, error) {
	if p.consume('(') {
		node, err := p.Expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return node, nil
	}

	tok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	return &Number{
		Value:  tok.Value,
		Offset: tok.Offset,
	}, nil
}

// Parse parses one complete expression; tokens left after it are an error.
func Parse(src *Source, tokens []Token) (Node, error) {
	p := NewParser(src, tokens)
	return p.parseAll()
}

func (p *Parser) parseAll() (Node, error) {
	node, err := p.Expr()
	if err != nil {
		return nil, err
	}
	if tok := p.Current(); tok.Kind != TokenEOF {
		return nil, p.errorAt(tok, &SyntaxError{
			Offset:   tok.Offset,
			Expected: "end of input",
		})
	}
	return node, nil
}
