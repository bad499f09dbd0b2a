package intents

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/jefflaplante/padatious-go"
	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/matchdata"
	"github.com/jefflaplante/padatious-go/internal/posintent"
	"github.com/jefflaplante/padatious-go/internal/simpleintent"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/traindata"
)

const posArtifactSuffix = ".pos"

// Intent binds one SimpleIntent with its PosIntents and orchestrates
// extraction and scoring at match time.
type Intent struct {
	name       string
	core       *simpleintent.SimpleIntent
	posIntents []*posintent.PosIntent
}

// NewIntent returns an untrained Intent named name.
func NewIntent(name string) *Intent {
	return &Intent{name: name, core: simpleintent.New(name)}
}

func (it *Intent) Name() string { return it.name }

// Train collects the set of placeholder tokens appearing in this intent's
// positive sentences, in first-discovery order, instantiates and trains one
// PosIntent per token, and trains the SimpleIntent last so its training can
// see the full id map.
func (it *Intent) Train(td *traindata.TrainData) {
	seen := make(map[lexer.Token]bool)
	var tokens []lexer.Token
	for _, s := range td.MySents(it.name) {
		for _, t := range s {
			if lexer.IsPlaceholder(t) && !seen[t] {
				seen[t] = true
				tokens = append(tokens, t)
			}
		}
	}

	posIntents := make([]*posintent.PosIntent, 0, len(tokens))
	for _, tok := range tokens {
		pi := posintent.New(tok, it.name)
		pi.Train(td)
		posIntents = append(posIntents, pi)
	}
	it.posIntents = posIntents

	it.core.Train(td)
}

// entityFinder is satisfied by *entityManager; kept narrow so Intent does
// not need to know the container's internal entity storage.
type entityFinder interface {
	find(intentName string, token lexer.Token) (*Entity, bool)
}

// Match seeds a single empty-extraction candidate, lets each PosIntent (in
// training-discovery order) propose span extractions over every candidate
// accumulated so far, discards negative-confidence candidates, rescales the
// survivors by the SimpleIntent's sentence-level score, and returns the
// single best one.
func (it *Intent) Match(sent []lexer.Token, entities entityFinder) matchdata.MatchData {
	possible := []matchdata.MatchData{matchdata.New(it.name, sent)}

	for _, pi := range it.posIntents {
		var entity posintent.EntityMatcher
		if entities != nil {
			if e, ok := entities.find(it.name, pi.Token); ok {
				entity = e
			}
		}

		snapshot := append([]matchdata.MatchData{}, possible...)
		for _, m := range snapshot {
			possible = append(possible, pi.Match(m, entity)...)
		}
	}

	best := matchdata.MatchData{Name: it.name, Sent: sent, Conf: -1}
	for _, m := range possible {
		if m.Conf < 0 {
			continue
		}
		posScore := 0.5
		if len(m.Matches) > 0 {
			posScore = (m.Conf / float64(len(m.Matches))) + 0.5
		}
		simpleConf := it.core.Match(m.Sent)
		m.Conf = math.Sqrt(math.Max(0, posScore*simpleConf))
		if m.Conf > best.Conf {
			best = m
		}
	}
	return best
}

// Save persists the SimpleIntent, the discovered placeholder tokens (in
// discovery order), and every PosIntent's edge artifacts.
func (it *Intent) Save(s store.Store) error {
	if err := it.core.Save(s); err != nil {
		return err
	}

	tokens := make([]lexer.Token, len(it.posIntents))
	for i, pi := range it.posIntents {
		tokens[i] = pi.Token
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("intent: marshal pos tokens for %q: %w", it.name, err)
	}
	if err := s.Write(it.name, posArtifactSuffix, data); err != nil {
		return fmt.Errorf("intent: save pos tokens for %q: %w", it.name, err)
	}

	for _, pi := range it.posIntents {
		if err := pi.Save(s, it.name); err != nil {
			return err
		}
	}
	return nil
}

// Load rebuilds the SimpleIntent and every PosIntent from s.
func (it *Intent) Load(s store.Store) error {
	if err := it.core.Load(s); err != nil {
		return err
	}

	data, err := s.Read(it.name, posArtifactSuffix)
	if err != nil {
		return fmt.Errorf("intent: pos token list for %q: %w: %w", it.name, padatious.ErrMissingArtifact, err)
	}
	var tokens []lexer.Token
	if err := json.Unmarshal(data, &tokens); err != nil {
		return fmt.Errorf("intent: corrupt pos token list for %q: %w", it.name, err)
	}

	posIntents := make([]*posintent.PosIntent, 0, len(tokens))
	for _, tok := range tokens {
		pi := posintent.New(tok, it.name)
		if err := pi.Load(s, it.name); err != nil {
			return err
		}
		posIntents = append(posIntents, pi)
	}
	it.posIntents = posIntents
	return nil
}
