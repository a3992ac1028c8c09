package sandbox

import "unicode"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokLParen
	tokRParen
	tokComma
	tokOp
	tokErr
)

type token struct {
	text string
	kind tokenKind
}

// lexer produces tokens for a single expression.
type lexer struct {
	input  []rune
	pos    int
	peeked *token
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (lx *lexer) peek() token {
	if lx.peeked == nil {
		t := lx.scan()
		lx.peeked = &t
	}

	return *lx.peeked
}

// peekOp reports whether the next token is a + or - operator.
func (lx *lexer) peekOp() (byte, bool) {
	t := lx.peek()
	if t.kind != tokOp {
		return 0, false
	}

	return t.text[0], true
}

func (lx *lexer) next() token {
	if lx.peeked != nil {
		t := *lx.peeked
		lx.peeked = nil

		return t
	}

	return lx.scan()
}

func (lx *lexer) scan() token {
	for lx.pos < len(lx.input) && unicode.IsSpace(lx.input[lx.pos]) {
		lx.pos++
	}

	if lx.pos >= len(lx.input) {
		return token{kind: tokEOF}
	}

	r := lx.input[lx.pos]

	switch {
	case r == '(':
		lx.pos++
		return token{kind: tokLParen, text: "("}

	case r == ')':
		lx.pos++
		return token{kind: tokRParen, text: ")"}

	case r == ',':
		lx.pos++
		return token{kind: tokComma, text: ","}

	case r == '+' || r == '-':
		lx.pos++
		return token{kind: tokOp, text: string(r)}

	case r == '"' || r == '\'':
		return lx.scanString(r)

	case unicode.IsDigit(r):
		return lx.scanWhile(tokNumber, func(r rune) bool {
			return unicode.IsDigit(r) || r == '.'
		})

	case unicode.IsLetter(r) || r == '_':
		return lx.scanWhile(tokIdent, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		})

	default:
		lx.pos++
		return token{kind: tokErr, text: string(r)}
	}
}

func (lx *lexer) scanString(quote rune) token {
	lx.pos++ // opening quote
	start := lx.pos

	for lx.pos < len(lx.input) && lx.input[lx.pos] != quote {
		lx.pos++
	}

	if lx.pos >= len(lx.input) {
		return token{kind: tokErr, text: string(lx.input[start-1:])}
	}

	text := string(lx.input[start:lx.pos])
	lx.pos++ // closing quote

	return token{kind: tokString, text: text}
}

func (lx *lexer) scanWhile(kind tokenKind, valid func(rune) bool) token {
	start := lx.pos

	for lx.pos < len(lx.input) && valid(lx.input[lx.pos]) {
		lx.pos++
	}

	return token{kind: kind, text: string(lx.input[start:lx.pos])}
}
