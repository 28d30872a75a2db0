package decl

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrBufferOverflow = errors.New("string literal not terminated")

type lexer struct {
	buffer string
	cursor string
}

func newLexer(src string) *lexer {
	return &lexer{buffer: src, cursor: src}
}

func (l *lexer) pos() int {
	return len(l.buffer) - len(l.cursor)
}

func (l *lexer) eof() bool {
	l.skipSpace()
	return len(l.cursor) == 0
}

func (l *lexer) skip(n int) {
	l.cursor = l.cursor[n:]
}

func (l *lexer) skipSpace() {
	l.cursor = strings.TrimLeft(l.cursor, " \t")
}

func (l *lexer) peek() byte {
	l.skipSpace()
	if len(l.cursor) == 0 {
		return 0
	}
	return l.cursor[0]
}

// match consumes b if it is the next non-space byte.
func (l *lexer) match(b byte) bool {
	l.skipSpace()
	if len(l.cursor) > 0 && l.cursor[0] == b {
		l.skip(1)
		return true
	}
	return false
}

func identStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '*'
}

func identRest(r rune) bool {
	return identStart(r) || unicode.IsDigit(r) || r == '-'
}

// scanIdentifier returns the identifier at the cursor, or "" if the
// cursor is not at one.  Identifiers may contain '*' and '-' so that
// conventional dynamic-variable names like *indent* and current-output
// lex as single tokens.
func (l *lexer) scanIdentifier() string {
	l.skipSpace()
	r, _ := utf8.DecodeRuneInString(l.cursor)
	if !identStart(r) {
		return ""
	}
	var n int
	for n < len(l.cursor) {
		r, size := utf8.DecodeRuneInString(l.cursor[n:])
		if !identRest(r) {
			break
		}
		n += size
	}
	s := l.cursor[:n]
	l.skip(n)
	return s
}

// scanString scans a double-quoted string literal with the cursor on
// the opening quote, handling the usual backslash escapes.
func (l *lexer) scanString() (string, error) {
	l.skip(1)
	var b strings.Builder
	for i := 0; i < len(l.cursor); i++ {
		c := l.cursor[i]
		switch c {
		case '"':
			l.skip(i + 1)
			return b.String(), nil
		case '\\':
			i++
			if i >= len(l.cursor) {
				return "", ErrBufferOverflow
			}
			switch l.cursor[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"':
				b.WriteByte(l.cursor[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(l.cursor[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", ErrBufferOverflow
}

// peekPrimitive returns the maximal run of bytes that can form a bare
// primitive literal, without consuming it.
func (l *lexer) peekPrimitive() string {
	l.skipSpace()
	n := strings.IndexAny(l.cursor, " \t,")
	if n < 0 {
		return l.cursor
	}
	return l.cursor[:n]
}
