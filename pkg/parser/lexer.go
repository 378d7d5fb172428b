package parser

import (
	"fmt"

	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Lexer tokenizes Hoshi input. It produces COMMENT tokens; skipping them
// is left to the parser.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	start   int  // start offset of the token being scanned

	peeked  *token.Token
	peekErr error
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize lexes the whole input, including the trailing EOF token.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next token and advances past it.
func (l *Lexer) Next() (token.Token, error) {
	if l.peeked != nil || l.peekErr != nil {
		tok, err := l.Peek()
		l.peeked, l.peekErr = nil, nil
		return tok, err
	}
	return l.scan()
}

// Peek returns the next token without consuming it. The result is cached
// until the next call to Next.
func (l *Lexer) Peek() (token.Token, error) {
	if l.peeked == nil && l.peekErr == nil {
		tok, err := l.scan()
		if err != nil {
			l.peekErr = err
		} else {
			l.peeked = &tok
		}
	}
	if l.peekErr != nil {
		return token.Token{}, l.peekErr
	}
	return *l.peeked, nil
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// span closes the current token range at the cursor.
func (l *Lexer) span() token.Range {
	return token.NewRange(l.start, l.pos)
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &LexError{Range: l.span(), Message: fmt.Sprintf(format, args...)}
}

// scan produces one token. The range starts at the first byte after
// whitespace so it covers exactly the lexeme.
func (l *Lexer) scan() (token.Token, error) {
	l.skipWhitespace()
	l.start = l.pos

	if l.atEnd() {
		return token.Token{Type: token.EOF, Range: l.span()}, nil
	}

	switch ch := l.ch; ch {
	case '<':
		return l.twoChar('=', token.LE, token.LT), nil
	case '>':
		return l.twoChar('=', token.GE, token.GT), nil
	case '!':
		l.readChar()
		if l.ch != '=' {
			return token.Token{}, l.errorf(ErrExpectedNotEqual)
		}
		l.readChar()
		return l.emit(token.NE, ""), nil
	case '|':
		l.readChar()
		if l.ch != '>' {
			return token.Token{}, l.errorf(ErrExpectedPipe)
		}
		l.readChar()
		return l.emit(token.PIPE, ""), nil
	case '-':
		if l.peekChar() == '-' {
			return l.readComment(), nil
		}
		l.readChar()
		return l.emit(token.MINUS, ""), nil
	case '"', '\'':
		return l.readString(ch)
	default:
		if t, ok := singleChar[ch]; ok {
			l.readChar()
			return l.emit(t, ""), nil
		}
		if isDigit(ch) {
			return l.readNumber(), nil
		}
		if isIdentStart(ch) {
			return l.readIdentifier(), nil
		}
		l.readChar()
		return token.Token{}, l.errorf(ErrUnexpectedChar, ch)
	}
}

var singleChar = map[byte]token.TokenType{
	'+': token.PLUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'=': token.EQ,
	'.': token.DOT,
	',': token.COMMA,
	';': token.SEMI,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
}

func (l *Lexer) emit(t token.TokenType, literal string) token.Token {
	return token.Token{Type: t, Literal: literal, Range: l.span()}
}

// twoChar scans a one-character operator that may be followed by next.
func (l *Lexer) twoChar(next byte, long, short token.TokenType) token.Token {
	if l.peekChar() == next {
		l.readChar()
		l.readChar()
		return l.emit(long, "")
	}
	l.readChar()
	return l.emit(short, "")
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readComment consumes a -- comment up to, not including, the newline.
func (l *Lexer) readComment() token.Token {
	l.readChar()
	l.readChar()
	textStart := l.pos
	for !l.atEnd() && l.ch != '\n' {
		l.readChar()
	}
	return l.emit(token.COMMENT, l.input[textStart:l.pos])
}

// readNumber consumes digits with at most one decimal point.
func (l *Lexer) readNumber() token.Token {
	seenDot := false
	for isDigit(l.ch) || (l.ch == '.' && !seenDot) {
		if l.ch == '.' {
			seenDot = true
		}
		l.readChar()
	}
	return l.emit(token.NUMBER, l.input[l.start:l.pos])
}

// readString consumes a quoted string. A newline or end of input before
// the closing quote is an error whose range starts at the opening quote.
func (l *Lexer) readString(quote byte) (token.Token, error) {
	l.readChar()
	bodyStart := l.pos
	for l.ch != quote {
		if l.atEnd() || l.ch == '\n' {
			return token.Token{}, l.errorf(ErrUnterminatedString)
		}
		l.readChar()
	}
	body := l.input[bodyStart:l.pos]
	l.readChar()
	return l.emit(token.STRING, body), nil
}

func (l *Lexer) readIdentifier() token.Token {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lit := l.input[l.start:l.pos]
	t := token.LookupIdent(lit)
	switch t {
	case token.IDENT, token.BOOLEAN:
		return l.emit(t, lit)
	}
	return l.emit(t, "")
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '$'
}
