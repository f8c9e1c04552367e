// lexer.go: scanner for Scope source text.
//
// The token set is the language's full lexical surface: every keyword and
// operator is recognized here even when the parser later rejects it as
// reserved (new, instanceof, debugger, scope, <- and ->). Comments come in
// // and /* */ forms; strings accept single or double quotes with the usual
// escapes; numbers are decimal with an optional fraction and exponent.
package scope

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Delimiters
	LPAREN   // "("
	RPAREN   // ")"
	LBRACKET // "["
	RBRACKET // "]"
	LBRACE   // "{"
	RBRACE   // "}"
	COMMA    // ","
	PERIOD   // "."
	SEMI     // ";"
	COLON    // ":"
	QUESTION // "?"

	// Operators
	PLUS    // "+"
	MINUS   // "-"
	STAR    // "*"
	SLASH   // "/"
	PERCENT // "%"
	BITOR   // "|"
	BITAND  // "&"
	BITNOT  // "~"
	BITXOR  // "^"
	LOR     // "||"
	LAND    // "&&"
	LNOT    // "!"
	LSHIFT  // "<<"
	RSHIFT  // ">>"
	LT      // "<"
	LE      // "<="
	GT      // ">"
	GE      // ">="
	EQ      // "=="
	NEQ     // "!="
	SEQ     // "==="
	SNEQ    // "!=="
	LARROW  // "<-"
	RARROW  // "->"
	INCR    // "++"
	DECR    // "--"

	// Assignment operators
	ASSIGN        // "="
	PLUSASSIGN    // "+="
	MINUSASSIGN   // "-="
	STARASSIGN    // "*="
	SLASHASSIGN   // "/="
	PERCENTASSIGN // "%="
	LSHIFTASSIGN  // "<<="
	RSHIFTASSIGN  // ">>="
	ANDASSIGN     // "&="
	ORASSIGN      // "|="
	XORASSIGN     // "^="

	// Literals & identifiers
	IDENT
	NUMBER
	STRING
	BOOLEAN
	NULL

	// Keywords
	BREAK
	CONTINUE
	DEBUGGER
	DELETE
	DO
	ELSE
	FOR
	FUNCTION
	IF
	IN
	INSTANCEOF
	NEW
	RETURN
	SCOPE
	THIS
	TYPEOF
	VAR
	VOID
	WHILE
)

// Token is a lexical token with an optional parsed literal.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any // float64 for NUMBER, string for STRING, bool for BOOLEAN
	Line    int // 1-based
	Col     int // 0-based
}

var keywords = map[string]TokenType{
	"break":      BREAK,
	"continue":   CONTINUE,
	"debugger":   DEBUGGER,
	"delete":     DELETE,
	"do":         DO,
	"else":       ELSE,
	"false":      BOOLEAN,
	"for":        FOR,
	"function":   FUNCTION,
	"if":         IF,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"new":        NEW,
	"null":       NULL,
	"return":     RETURN,
	"scope":      SCOPE,
	"this":       THIS,
	"true":       BOOLEAN,
	"typeof":     TYPEOF,
	"var":        VAR,
	"void":       VOID,
	"while":      WHILE,
}

// Lexer scans a Scope source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of the current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer for src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Scan tokenizes the whole input, appending a final EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		l.skipBlank()
		if l.isAtEnd() {
			break
		}
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line, Col: l.col})
	return l.tokens, nil
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekN(n int) byte {
	if l.cur+n >= len(l.src) {
		return 0
	}
	return l.src[l.cur+n]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

// match consumes the next byte when it equals want.
func (l *Lexer) match(want byte) bool {
	if l.isAtEnd() || l.src[l.cur] != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) add(tt TokenType, lit any) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// skipBlank consumes whitespace and both comment forms.
func (l *Lexer) skipBlank() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			switch l.peekN(1) {
			case '/':
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			case '*':
				l.advance()
				l.advance()
				for !l.isAtEnd() {
					if l.peek() == '*' && l.peekN(1) == '/' {
						l.advance()
						l.advance()
						break
					}
					l.advance()
				}
			default:
				return
			}
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (l *Lexer) scanToken() error {
	ch := l.advance()
	switch ch {
	case '(':
		l.add(LPAREN, nil)
	case ')':
		l.add(RPAREN, nil)
	case '[':
		l.add(LBRACKET, nil)
	case ']':
		l.add(RBRACKET, nil)
	case '{':
		l.add(LBRACE, nil)
	case '}':
		l.add(RBRACE, nil)
	case ',':
		l.add(COMMA, nil)
	case ';':
		l.add(SEMI, nil)
	case ':':
		l.add(COLON, nil)
	case '?':
		l.add(QUESTION, nil)
	case '~':
		l.add(BITNOT, nil)

	case '.':
		if isDigit(l.peek()) {
			return l.scanNumber()
		}
		l.add(PERIOD, nil)

	case '+':
		switch {
		case l.match('+'):
			l.add(INCR, nil)
		case l.match('='):
			l.add(PLUSASSIGN, nil)
		default:
			l.add(PLUS, nil)
		}
	case '-':
		switch {
		case l.match('-'):
			l.add(DECR, nil)
		case l.match('='):
			l.add(MINUSASSIGN, nil)
		case l.match('>'):
			l.add(RARROW, nil)
		default:
			l.add(MINUS, nil)
		}
	case '*':
		if l.match('=') {
			l.add(STARASSIGN, nil)
		} else {
			l.add(STAR, nil)
		}
	case '/':
		// comments were consumed by skipBlank
		if l.match('=') {
			l.add(SLASHASSIGN, nil)
		} else {
			l.add(SLASH, nil)
		}
	case '%':
		if l.match('=') {
			l.add(PERCENTASSIGN, nil)
		} else {
			l.add(PERCENT, nil)
		}

	case '=':
		switch {
		case l.match('='):
			if l.match('=') {
				l.add(SEQ, nil)
			} else {
				l.add(EQ, nil)
			}
		default:
			l.add(ASSIGN, nil)
		}
	case '!':
		switch {
		case l.match('='):
			if l.match('=') {
				l.add(SNEQ, nil)
			} else {
				l.add(NEQ, nil)
			}
		default:
			l.add(LNOT, nil)
		}
	case '<':
		switch {
		case l.match('<'):
			if l.match('=') {
				l.add(LSHIFTASSIGN, nil)
			} else {
				l.add(LSHIFT, nil)
			}
		case l.match('='):
			l.add(LE, nil)
		case l.match('-'):
			l.add(LARROW, nil)
		default:
			l.add(LT, nil)
		}
	case '>':
		switch {
		case l.match('>'):
			if l.match('=') {
				l.add(RSHIFTASSIGN, nil)
			} else {
				l.add(RSHIFT, nil)
			}
		case l.match('='):
			l.add(GE, nil)
		default:
			l.add(GT, nil)
		}
	case '&':
		switch {
		case l.match('&'):
			l.add(LAND, nil)
		case l.match('='):
			l.add(ANDASSIGN, nil)
		default:
			l.add(BITAND, nil)
		}
	case '|':
		switch {
		case l.match('|'):
			l.add(LOR, nil)
		case l.match('='):
			l.add(ORASSIGN, nil)
		default:
			l.add(BITOR, nil)
		}
	case '^':
		if l.match('=') {
			l.add(XORASSIGN, nil)
		} else {
			l.add(BITXOR, nil)
		}

	case '"', '\'':
		return l.scanString(ch)

	default:
		switch {
		case isDigit(ch):
			return l.scanNumber()
		case isAlpha(ch):
			return l.scanIdent()
		default:
			return l.err(fmt.Sprintf("unexpected character %q", string(ch)))
		}
	}
	return nil
}

func (l *Lexer) scanIdent() error {
	for isAlphaNum(l.peek()) {
		l.advance()
	}
	word := l.src[l.start:l.cur]
	if tt, ok := keywords[word]; ok {
		switch tt {
		case BOOLEAN:
			l.add(BOOLEAN, word == "true")
		case NULL:
			l.add(NULL, nil)
		default:
			l.add(tt, nil)
		}
		return nil
	}
	l.add(IDENT, word)
	return nil
}

func (l *Lexer) scanNumber() error {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			l.advance() // e
			l.advance() // sign or first digit
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	f, err := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	if err != nil {
		return l.err("malformed number literal " + l.src[l.start:l.cur])
	}
	l.add(NUMBER, f)
	return nil
}

func (l *Lexer) scanString(quote byte) error {
	var out strings.Builder
	for !l.isAtEnd() {
		ch := l.advance()
		if ch == quote {
			l.add(STRING, out.String())
			return nil
		}
		if ch == '\n' {
			return l.err("unterminated string literal")
		}
		if ch != '\\' {
			out.WriteByte(ch)
			continue
		}
		if l.isAtEnd() {
			return l.err("unfinished escape sequence")
		}
		esc := l.advance()
		switch esc {
		case '"':
			out.WriteByte('"')
		case '\'':
			out.WriteByte('\'')
		case '\\':
			out.WriteByte('\\')
		case '/':
			out.WriteByte('/')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case '0':
			out.WriteByte(0)
		case 'u':
			var hex string
			for i := 0; i < 4; i++ {
				if l.isAtEnd() || !isHex(l.peek()) {
					return l.err("unicode escape expects 4 hex digits")
				}
				hex += string(l.advance())
			}
			v, _ := strconv.ParseInt(hex, 16, 32)
			out.WriteRune(rune(v))
		default:
			return l.err(fmt.Sprintf("unknown escape sequence \\%s", string(esc)))
		}
	}
	return l.err("unterminated string literal")
}
