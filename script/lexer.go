package script

import (
	"strconv"
	"strings"
)

// lex splits one already-comment-stripped, already-trimmed source line into
// tokens. It never consults the keyword table itself: every run of
// identifier characters comes back as tokIdent, and the parser decides
// what each one means in context.
func lex(line string) ([]token, error) {
	var toks []token
	i := 0
	n := len(line)

	for i < n {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '(':
			toks = append(toks, token{kind: tokLParen, col: i})
			i++

		case c == ')':
			toks = append(toks, token{kind: tokRParen, col: i})
			i++

		case c == ',':
			toks = append(toks, token{kind: tokComma, col: i})
			i++

		case c == '+':
			toks = append(toks, token{kind: tokPlus, col: i})
			i++

		case c == '-':
			toks = append(toks, token{kind: tokMinus, col: i})
			i++

		case c == '*':
			toks = append(toks, token{kind: tokStar, col: i})
			i++

		case c == '/':
			toks = append(toks, token{kind: tokSlash, col: i})
			i++

		case c == '>':
			if i+1 < n && line[i+1] == '=' {
				toks = append(toks, token{kind: tokGte, col: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokGt, col: i})
				i++
			}

		case c == '<':
			if i+1 < n && line[i+1] == '=' {
				toks = append(toks, token{kind: tokLte, col: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokLt, col: i})
				i++
			}

		case c == '=':
			if i+1 < n && line[i+1] == '=' {
				toks = append(toks, token{kind: tokEqEq, col: i})
				i += 2
			} else {
				// bare '=' is an alias for '=='
				toks = append(toks, token{kind: tokEqEq, col: i})
				i++
			}

		case c == '!':
			if i+1 < n && line[i+1] == '=' {
				toks = append(toks, token{kind: tokNeq, col: i})
				i += 2
			} else {
				return nil, &lexError{col: i, msg: "unexpected '!'"}
			}

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(line[i+1])):
			start := i
			i++
			for i < n && isDigit(line[i]) {
				i++
			}
			if i < n && line[i] == '.' {
				i++
				for i < n && isDigit(line[i]) {
					i++
				}
			}
			if i < n && (line[i] == 'e' || line[i] == 'E') {
				j := i + 1
				if j < n && (line[j] == '+' || line[j] == '-') {
					j++
				}
				if j < n && isDigit(line[j]) {
					i = j
					for i < n && isDigit(line[i]) {
						i++
					}
				}
			}
			text := line[start:i]
			val, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &lexError{col: start, msg: "malformed number " + strconv.Quote(text)}
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: val, col: start})

		case isIdentStart(c):
			start := i
			i++
			for i < n && isIdentPart(line[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: line[start:i], col: start})

		default:
			return nil, &lexError{col: i, msg: "unexpected character " + strconv.QuoteRune(rune(c))}
		}
	}

	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

type lexError struct {
	col int
	msg string
}

func (e *lexError) Error() string { return e.msg }

// stripComment removes a trailing '#' comment, respecting none of the
// quoting rules a general language would need: this DSL has no string
// literals, so the first '#' always starts a comment.
func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}
