package jsonc

type tokenType int

const (
	tokenIllegal tokenType = iota
	tokenEOF
	tokenLBrace   // {
	tokenRBrace   // }
	tokenLBracket // [
	tokenRBracket // ]
	tokenColon    // :
	tokenComma    // ,
	tokenString   // "..."
	tokenNumber   // 42, -1.5, 6.02e23
	tokenTrue
	tokenFalse
	tokenNull
)

// String returns a human-readable name used in error messages.
func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenTrue, tokenFalse:
		return "boolean"
	case tokenNull:
		return "null"
	default:
		return "illegal token"
	}
}

// token is a single lexical unit. lit holds the raw source text,
// quotes included for strings.
type token struct {
	typ tokenType
	lit string
	pos Position
	msg string // set on illegal tokens to refine the parse error
}

// end returns the byte offset one past the token.
func (t token) end() int {
	return t.pos.Offset + len(t.lit)
}

// lexer tokenizes JSONC input. Whitespace, line comments (// ...) and
// block comments (/* ... */) are skipped between tokens.
type lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// newLexer creates a new lexer for the given input.
func newLexer(input string) *lexer {
	l := &lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// next returns the next token.
func (l *lexer) next() token {
	l.skipTrivia()

	pos := l.currentPos()

	var tok token
	tok.pos = pos

	switch l.ch {
	case 0:
		tok.typ = tokenEOF
		tok.lit = ""
		return tok
	case '{':
		tok = token{typ: tokenLBrace, lit: "{", pos: pos}
	case '}':
		tok = token{typ: tokenRBrace, lit: "}", pos: pos}
	case '[':
		tok = token{typ: tokenLBracket, lit: "[", pos: pos}
	case ']':
		tok = token{typ: tokenRBracket, lit: "]", pos: pos}
	case ':':
		tok = token{typ: tokenColon, lit: ":", pos: pos}
	case ',':
		tok = token{typ: tokenComma, lit: ",", pos: pos}
	case '"':
		return l.readString(pos)
	default:
		switch {
		case l.ch == '-' || isDigit(l.ch):
			return l.readNumber(pos)
		case isLetter(l.ch):
			return l.readKeyword(pos)
		default:
			tok = token{typ: tokenIllegal, lit: string(l.ch), pos: pos}
		}
	}

	l.readChar()
	return tok
}

// skipTrivia skips whitespace and comments. An unterminated block
// comment runs to end of input.
func (l *lexer) skipTrivia() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar() // skip '/'
			l.readChar() // skip '*'
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // skip '*'
					l.readChar() // skip '/'
					break
				}
				l.readChar()
			}
			continue
		}

		break
	}
}

// readString reads a double-quoted string literal, returning the raw
// text with quotes. Escaped characters are skipped, not decoded; the
// parser decodes literals when it builds nodes.
func (l *lexer) readString(pos Position) token {
	start := l.pos
	l.readChar() // skip opening quote

	for l.ch != 0 && l.ch != '\n' {
		if l.ch == '"' {
			l.readChar() // skip closing quote
			return token{typ: tokenString, lit: l.input[start:l.pos], pos: pos}
		}
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar() // skip escape
		}
		l.readChar()
	}

	return token{typ: tokenIllegal, lit: l.input[start:l.pos], pos: pos, msg: ErrUnterminatedString}
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
// Syntax validation is left to the parser.
func (l *lexer) readNumber(pos Position) token {
	start := l.pos

	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return token{typ: tokenNumber, lit: l.input[start:l.pos], pos: pos}
}

// readKeyword reads a bare word and maps it to true/false/null.
func (l *lexer) readKeyword(pos Position) token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.pos]

	switch lit {
	case "true":
		return token{typ: tokenTrue, lit: lit, pos: pos}
	case "false":
		return token{typ: tokenFalse, lit: lit, pos: pos}
	case "null":
		return token{typ: tokenNull, lit: lit, pos: pos}
	default:
		return token{typ: tokenIllegal, lit: lit, pos: pos}
	}
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
