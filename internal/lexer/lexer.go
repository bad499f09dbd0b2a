// Package lexer implements the tokenization, comment-stripping, bracket
// expansion and content-hashing primitives every other package builds on.
package lexer

import (
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Token is a lowercased lexical unit produced by Tokenize.
type Token = string

type charClass int

const (
	classOther charClass = iota
	classAlpha
	classDigit
	classSpace
)

func classify(r rune) charClass {
	switch {
	case unicode.IsLetter(r) || r == '-' || r == '{' || r == '}':
		return classAlpha
	case unicode.IsDigit(r) || r == '#':
		return classDigit
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classOther
	}
}

// Tokenize splits a sentence into tokens using a state machine that classifies
// each character as alpha, digit, space or other. A token is emitted on every
// class change and around every "other" character. Tokens equal to ".", "!"
// or "?" are discarded. Digit tokens are returned as written; folding them to
// '#' is done by FoldDigits when a token is used as an identifier.
func Tokenize(sentence string) []Token {
	runes := []rune(sentence)
	tokens := make([]Token, 0, len(runes)/3+1)

	startPos := -1
	lastType := classOther

	emit := func(endPos int) {
		if startPos < 0 {
			return
		}
		tok := strings.ToLower(string(runes[startPos:endPos]))
		if tok == "." || tok == "!" || tok == "?" {
			return
		}
		tokens = append(tokens, tok)
	}

	update := func(c rune, i int) {
		t := classify(c)
		if t != lastType || t == classOther {
			emit(i)
			if t == classSpace {
				startPos = -1
			} else {
				startPos = i
			}
		}
		lastType = t
	}

	for i, r := range runes {
		update(r, i)
	}
	update(' ', len(runes))

	return tokens
}

// IsPlaceholder reports whether a token is a placeholder, i.e. its first
// character is '{' and its last is '}'.
func IsPlaceholder(tok Token) bool {
	return len(tok) >= 2 && tok[0] == '{' && tok[len(tok)-1] == '}'
}

// FoldDigits replaces every digit in tok with '#' if tok consists entirely of
// digits; otherwise tok is returned unchanged. This is the identifier used by
// IdManager to collapse numeric literals into a single bucket.
func FoldDigits(tok Token) Token {
	if tok == "" {
		return tok
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return tok
		}
	}
	return strings.Repeat("#", len([]rune(tok)))
}

// RemoveComments drops lines whose first character is '/' followed by '/'.
func RemoveComments(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "//") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ExpandParentheses interprets '(', '|', ')' tokens as an alternation group
// and returns the cartesian expansion of all such groups in tokens. Groups
// may nest. An empty alternative (e.g. "(foo|)") yields a sentence where the
// group contributes no tokens.
func ExpandParentheses(tokens []Token) [][]Token {
	expanded, _ := expandFrom(tokens, 0)
	return expanded
}

// expandFrom expands tokens starting at index start until a top-level ")" or
// end of input, returning the cartesian product of sentences and the index
// just past the consumed ")" (or len(tokens) if none was found).
func expandFrom(tokens []Token, start int) ([][]Token, int) {
	// results accumulates completed prefixes; each entry is one expansion.
	results := [][]Token{{}}

	i := start
	for i < len(tokens) {
		tok := tokens[i]
		switch tok {
		case "(":
			alternatives, next := collectAlternatives(tokens, i+1)
			var combined [][]Token
			for _, prefix := range results {
				for _, alt := range alternatives {
					altExpanded, _ := expandFrom(alt, 0)
					for _, sub := range altExpanded {
						seq := append(append([]Token{}, prefix...), sub...)
						combined = append(combined, seq)
					}
				}
			}
			if combined == nil {
				combined = results
			}
			results = combined
			i = next
		case ")":
			return results, i + 1
		default:
			for idx := range results {
				results[idx] = append(results[idx], tok)
			}
			i++
		}
	}
	return results, i
}

// collectAlternatives scans tokens starting just after an opening '(' and
// splits into pipe-separated alternatives, each a raw token slice (which may
// itself contain nested groups). It returns those alternatives and the index
// just past the matching ')'.
func collectAlternatives(tokens []Token, start int) ([][]Token, int) {
	var alternatives [][]Token
	var current []Token

	depth := 0
	i := start
	for i < len(tokens) {
		tok := tokens[i]
		switch {
		case tok == "(" :
			depth++
			current = append(current, tok)
			i++
		case tok == ")" && depth > 0:
			depth--
			current = append(current, tok)
			i++
		case tok == ")" && depth == 0:
			alternatives = append(alternatives, current)
			return alternatives, i + 1
		case tok == "|" && depth == 0:
			alternatives = append(alternatives, current)
			current = nil
			i++
		default:
			current = append(current, tok)
			i++
		}
	}
	alternatives = append(alternatives, current)
	return alternatives, i
}

// LinesHash returns a 4-byte content digest of lines, computed by updating an
// xxhash64 state with each line's UTF-8 bytes in order and truncating to the
// low 4 bytes. The reference implementation uses a native 32-bit xxhash; the
// only 32-bit-free variant available is xxhash/v2's 64-bit Sum, so the digest
// here is the low 4 bytes of that 64-bit sum rather than a true xxh32 value.
func LinesHash(lines []string) [4]byte {
	d := xxhash.New()
	for _, line := range lines {
		_, _ = d.Write([]byte(line))
	}
	sum := d.Sum64()
	var out [4]byte
	out[0] = byte(sum)
	out[1] = byte(sum >> 8)
	out[2] = byte(sum >> 16)
	out[3] = byte(sum >> 24)
	return out
}
