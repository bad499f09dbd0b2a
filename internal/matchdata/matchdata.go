// Package matchdata defines the mutable extraction record threaded through
// matching: seeded by Intent, used by every PosIntent as the base for the new
// candidate records it derives (the base record itself is left unchanged),
// and finalized (detokenized) by the public container.
package matchdata

import "github.com/jefflaplante/padatious-go/internal/lexer"

// MatchData is the in-flight scored extraction record used during matching.
// Name == "" denotes "no match". Conf may transiently go negative mid
// computation; callers must clamp/discard negative values before they are
// allowed to escape to the public API.
type MatchData struct {
	Name    string
	Sent    []lexer.Token
	Matches map[string][]lexer.Token
	Conf    float64
}

// New seeds an empty MatchData for name over sent.
func New(name string, sent []lexer.Token) MatchData {
	return MatchData{Name: name, Sent: append([]lexer.Token{}, sent...), Conf: 0}
}

// Clone returns a deep copy safe to mutate independently of m.
func (m MatchData) Clone() MatchData {
	sent := append([]lexer.Token{}, m.Sent...)
	matches := make(map[string][]lexer.Token, len(m.Matches))
	for k, v := range m.Matches {
		matches[k] = append([]lexer.Token{}, v...)
	}
	return MatchData{Name: m.Name, Sent: sent, Matches: matches, Conf: m.Conf}
}
