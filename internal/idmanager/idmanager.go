// Package idmanager implements the bidirectional token<->dense-index mapping
// shared by SimpleIntent and EntityEdge vectorizers.
package idmanager

import (
	"encoding/json"
	"fmt"

	"github.com/jefflaplante/padatious-go/internal/lexer"
)

// Reserved sentinel tokens, always assigned ids 0-4 in a fresh IdManager.
const (
	UnknownRatio = ":0"
	LenBucket1   = ":1"
	LenBucket2   = ":2"
	LenBucket3   = ":3"
	LenBucket4   = ":4"
)

var reserved = []string{UnknownRatio, LenBucket1, LenBucket2, LenBucket3, LenBucket4}

// IdManager assigns a stable, never-reused dense integer to every distinct
// (digit-folded) token it is asked about.
type IdManager struct {
	ids map[lexer.Token]int
}

// New returns an IdManager pre-populated with the reserved sentinel tokens.
func New() *IdManager {
	m := &IdManager{ids: make(map[lexer.Token]int)}
	for _, tok := range reserved {
		m.AddToken(tok)
	}
	return m
}

// NewBare returns an IdManager with no pre-populated tokens, for vectorizers
// that define their own id namespace (e.g. EntityEdge's per-offset bands)
// rather than SimpleIntent's reserved ratio/length-bucket ids.
func NewBare() *IdManager {
	return &IdManager{ids: make(map[lexer.Token]int)}
}

// adjToken folds every digit of tok to '#' when tok consists entirely of
// digits, matching SimpleIntent's numeric-literal bucketing.
func adjToken(tok lexer.Token) lexer.Token {
	return lexer.FoldDigits(tok)
}

// AddToken assigns tok the next available id if it is not already known.
// Returns the assigned (or existing) id.
func (m *IdManager) AddToken(tok lexer.Token) int {
	key := adjToken(tok)
	if id, ok := m.ids[key]; ok {
		return id
	}
	id := len(m.ids)
	m.ids[key] = id
	return id
}

// Contains reports whether tok (after digit-folding) has been assigned an id.
func (m *IdManager) Contains(tok lexer.Token) bool {
	_, ok := m.ids[adjToken(tok)]
	return ok
}

// Len returns the number of distinct ids assigned.
func (m *IdManager) Len() int {
	return len(m.ids)
}

// Vector returns a zero-filled feature vector sized to the current id count.
func (m *IdManager) Vector() []float64 {
	return make([]float64, len(m.ids))
}

// Assign sets v[ids[adj(k)]] = x. k must be a known token; callers must check
// Contains first, matching the reference contract that this is undefined
// behavior for unknown tokens.
func (m *IdManager) Assign(v []float64, k lexer.Token, x float64) {
	id, ok := m.ids[adjToken(k)]
	if !ok {
		panic(fmt.Sprintf("idmanager: assign of unknown token %q", k))
	}
	v[id] = x
}

// IdOf returns the id for a known token and whether it was found.
func (m *IdManager) IdOf(tok lexer.Token) (int, bool) {
	id, ok := m.ids[adjToken(tok)]
	return id, ok
}

// Marshal encodes the token->id map as JSON.
func (m *IdManager) Marshal() ([]byte, error) {
	return json.Marshal(m.ids)
}

// Unmarshal replaces the token->id map verbatim from JSON bytes.
func (m *IdManager) Unmarshal(data []byte) error {
	var ids map[string]int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	m.ids = ids
	return nil
}
