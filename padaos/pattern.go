package padaos

import (
	"regexp"
	"strings"
)

var (
	plainParenGroup = regexp.MustCompile(`\(([^|)]*)\)`)
	nonWordRune     = regexp.MustCompile(`\W`)
	optionalEscaped = regexp.MustCompile(`\\[^\w ]`)
	standaloneColon = regexp.MustCompile(`(\s)\\:0(\s)`)
	digitRune       = regexp.MustCompile(`\d`)
)

// createPattern runs the fixed ordered rewrite pipeline (spec §4.L) over one
// raw template line, producing a regex body ready for placeholder/entity
// substitution and anchoring. Each step is its own pass, mirroring the
// reference's ordered list of textual rewrites one-for-one; Go's RE2 engine
// has no lookaround, so steps that the reference expresses with
// lookbehind/lookahead are instead resolved by doing the
// order-dependent, unambiguous replacement first.
func createPattern(line string) string {
	line = protectPlainParens(line)
	line = escapeNonWord(line)
	line = " " + line + " "
	line = unescapeConvenienceChars(line)
	line = restoreGroupsAndAlternation(line)
	line = supportSpecialSymbols(line)
	line = insertWordBoundarySpaces(line)
	line = makeSymbolsOptional(line)
	line = collapseWhitespace(line)
	return line
}

// protectPlainParens wraps a "(...)" group containing no "|" in a {~...~}
// marker so later steps don't mistake a literal parenthesized phrase for an
// alternation group.
func protectPlainParens(s string) string {
	return plainParenGroup.ReplaceAllString(s, `{~($1)~}`)
}

// escapeNonWord backslash-escapes every non-word rune.
func escapeNonWord(s string) string {
	return nonWordRune.ReplaceAllStringFunc(s, func(m string) string { return "\\" + m })
}

func unescapeConvenienceChars(s string) string {
	s = strings.ReplaceAll(s, `\ `, " ")
	s = strings.ReplaceAll(s, `\{`, "{")
	s = strings.ReplaceAll(s, `\}`, "}")
	s = strings.ReplaceAll(s, `\#`, "#")
	return s
}

// restoreGroupsAndAlternation turns the real, unprotected \( \) \| back
// into group/alternation metacharacters, and turns the {~...~} marker
// (by now "{\~\(" ... "\)\~}", its braces already unescaped) back into a
// plain escaped literal paren. The marker ends are swapped for control
// runes first so the group conversion cannot touch them.
func restoreGroupsAndAlternation(s string) string {
	s = strings.ReplaceAll(s, `{\~\(`, "\x00")
	s = strings.ReplaceAll(s, `\)\~}`, "\x01")
	s = strings.ReplaceAll(s, `\(`, `(?:`)
	s = strings.ReplaceAll(s, `\)`, `)`)
	s = strings.ReplaceAll(s, `\|`, `|`)
	s = strings.ReplaceAll(s, "\x00", `\(`)
	s = strings.ReplaceAll(s, "\x01", `\)`)
	return s
}

func supportSpecialSymbols(s string) string {
	s = standaloneColon.ReplaceAllString(s, `$1\w+$2`)
	s = strings.ReplaceAll(s, "#", `\d`)
	s = digitRune.ReplaceAllString(s, `\d`)
	return s
}

// insertWordBoundarySpaces inserts a literal space after a word rune that is
// followed by a non-word rune other than a space or "}" (unless the word
// rune is itself preceded by an escaping backslash), and after a non-word
// rune other than a space, "{" or a backslash that is followed by a word
// rune.
func insertWordBoundarySpaces(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		b.WriteRune(r)
		if i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		if isWordRune(r) && !isEscaped(runes, i) && !isWordRune(next) && next != ' ' && next != '}' {
			b.WriteRune(' ')
			continue
		}
		if !isWordRune(r) && r != '\\' && r != ' ' && r != '{' && isWordRune(next) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func isEscaped(runes []rune, i int) bool {
	return i > 0 && runes[i-1] == '\\'
}

func isWordRune(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// makeSymbolsOptional appends "?" after every backslash-escaped non-word,
// non-space character, making that literal character optional in the
// compiled regex.
func makeSymbolsOptional(s string) string {
	return optionalEscaped.ReplaceAllStringFunc(s, func(m string) string { return m + "?" })
}

// collapseWhitespace replaces every run of literal spaces with \W+ when it
// sits between a word/"}" character and a non-space character, or \W*
// otherwise.
func collapseWhitespace(s string) string {
	runes := []rune(s)
	var b strings.Builder
	i := 0
	for i < len(runes) {
		if runes[i] != ' ' {
			b.WriteRune(runes[i])
			i++
			continue
		}
		start := i
		for i < len(runes) && runes[i] == ' ' {
			i++
		}
		prevWordish := start > 0 && (isWordRune(runes[start-1]) || runes[start-1] == '}')
		nextNonSpace := i < len(runes)
		if prevWordish && nextNonSpace {
			b.WriteString(`\W+`)
		} else {
			b.WriteString(`\W*`)
		}
	}
	return b.String()
}
