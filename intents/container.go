// Package intents implements the flat IntentContainer: the public façade
// that registers intents and entities, trains them against one shared
// TrainData, and resolves a free-text query into the best-matching intent
// plus its extracted entity values.
package intents

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/jefflaplante/padatious-go"
	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/matchdata"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/trainable"
	"github.com/jefflaplante/padatious-go/internal/traindata"
)

// MatchData is the public, detokenized result of a match attempt. Name is
// empty when nothing matched (EmptyInput, or no intent registered).
type MatchData struct {
	Name     string
	Sentence string
	Matches  map[string]string
	Conf     float64
}

// IntentContainer registers intents and entities, trains them against one
// shared TrainData, and answers match queries. All exported methods are
// safe for concurrent use: every one of them, matching included, holds the
// container's single lock for its duration.
type IntentContainer struct {
	mu       sync.Mutex
	backing  store.Store
	td       *traindata.TrainData
	tm       *trainable.TrainingManager
	entities *entityManager
	intents  map[string]*Intent
	logger   *log.Logger
}

// New returns an empty IntentContainer persisting artifacts through backing.
// A nil logger defaults to log.New(os.Stderr, "", log.LstdFlags).
func New(backing store.Store, logger *log.Logger) *IntentContainer {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &IntentContainer{
		backing:  backing,
		td:       traindata.New(),
		tm:       trainable.New(backing, ".hash"),
		entities: newEntityManager(backing),
		intents:  make(map[string]*Intent),
		logger:   logger,
	}
}

// AddIntent registers name with its sample lines, replacing any prior
// registration of the same name. Training is deferred to Train.
func (c *IntentContainer) AddIntent(name string, samples []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := NewIntent(name)
	c.intents[name] = it
	c.tm.Add(it)
	c.td.AddLines(name, samples)
}

// LoadIntent registers name by reading its already-trained artifacts from
// the container's backing store, bypassing AddIntent/Train. This is the
// read-only query path: a process that only runs CalcIntent(s) against
// artifacts trained by an earlier process never needs its own TrainData.
func (c *IntentContainer) LoadIntent(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := NewIntent(name)
	if err := it.Load(c.backing); err != nil {
		return err
	}
	c.intents[name] = it
	return nil
}

// RemoveIntent discards name, its training sentences and its persisted
// hash. Its other artifacts (.intent.ids, .intent.net, .pos and the edge
// files) are left in the backing store. Removing a name that was never
// registered is padatious.ErrNoSuchIntent.
func (c *IntentContainer) RemoveIntent(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.intents[name]; !ok {
		return fmt.Errorf("intents: remove %q: %w", name, padatious.ErrNoSuchIntent)
	}

	delete(c.intents, name)
	c.td.RemoveLines(name)
	return c.tm.Remove(name)
}

// AddEntity registers rawName (a bare name or "Skill:name") with its sample
// values, replacing any prior registration of the same name.
func (c *IntentContainer) AddEntity(rawName string, samples []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entities.add(rawName, c.td, samples)
}

// RemoveEntity discards rawName, its training sentences and its persisted
// hash. Its .entity.ids and .entity.net artifacts are left in the backing
// store.
func (c *IntentContainer) RemoveEntity(rawName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entities.remove(rawName, c.td)
}

// Train retrains every intent and entity whose source lines have changed
// since the last Train, persisting artifacts as it goes. Entities are
// trained first so intents' PosIntents see a stable entity set.
func (c *IntentContainer) Train() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.entities.train(c.td); err != nil {
		return err
	}
	if err := c.tm.Train(c.td); err != nil {
		return err
	}
	c.logger.Printf("[intents] trained %d intent(s), %d entit(y/ies)", len(c.intents), len(c.entities.names()))
	return nil
}

// IntentNames returns every registered intent name, in no particular order.
func (c *IntentContainer) IntentNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.intents))
	for name := range c.intents {
		names = append(names, name)
	}
	return names
}

// CalcIntents runs query against every registered intent and returns one
// MatchData per intent, in no particular order. An empty query (no tokens)
// yields an empty slice.
func (c *IntentContainer) CalcIntents(query string) []MatchData {
	c.mu.Lock()
	defer c.mu.Unlock()

	sent := lexer.Tokenize(query)
	if len(sent) == 0 {
		return nil
	}

	out := make([]MatchData, 0, len(c.intents))
	for _, it := range c.intents {
		out = append(out, detokenize(it.Match(sent, c.entities)))
	}
	return out
}

// CalcIntent returns the single best match across every registered intent.
// Ties on confidence are broken in favor of the candidate with the smallest
// total extracted-slot text, the same way a more specific match is
// preferred over a looser one. EmptyInput (no tokens) returns a zero-value
// MatchData with an empty Name and zero Conf.
func (c *IntentContainer) CalcIntent(query string) MatchData {
	c.mu.Lock()
	defer c.mu.Unlock()

	sent := lexer.Tokenize(query)
	if len(sent) == 0 {
		return MatchData{}
	}

	var best matchdata.MatchData
	best.Conf = -1
	haveBest := false
	for _, it := range c.intents {
		m := it.Match(sent, c.entities)
		if !haveBest || m.Conf > best.Conf || (m.Conf == best.Conf && slotLen(m) < slotLen(best)) {
			best = m
			haveBest = true
		}
	}
	if !haveBest {
		return MatchData{}
	}
	return detokenize(best)
}

func slotLen(m matchdata.MatchData) int {
	total := 0
	for _, v := range m.Matches {
		for _, tok := range v {
			total += len(tok)
		}
	}
	return total
}

// detokenize converts an internal MatchData into its public form: Sentence
// and every matched span are rejoined with handleApostrophes, and match
// keys have their surrounding {} stripped.
func detokenize(m matchdata.MatchData) MatchData {
	out := MatchData{
		Name:     m.Name,
		Sentence: handleApostrophes(m.Sent),
		Matches:  make(map[string]string, len(m.Matches)),
		Conf:     m.Conf,
	}
	for k, v := range m.Matches {
		out.Matches[strings.Trim(k, "{}")] = handleApostrophes(v)
	}
	return out
}

// handleApostrophes rejoins tokens with spaces, except a literal "'" token
// always glues to its neighbor with no space and arms a pending flag; the
// next token then glues too if it's length <= 1 (clearing the flag), but
// gets its space back otherwise (leaving the flag armed for the token
// after that). This reproduces the reference tokenizer's contraction
// quirk ("it", "'", "s" -> "it's") verbatim, including cases it doesn't
// fully resolve.
func handleApostrophes(tokens []lexer.Token) string {
	var b strings.Builder
	pending := false
	for i, tok := range tokens {
		switch {
		case i == 0:
			// no leading space
		case tok == "'":
			// glue directly, no space
		case pending && len(tok) <= 1:
			pending = false
			// glue directly, no space
		case pending:
			b.WriteByte(' ')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(string(tok))
		if tok == "'" {
			pending = true
		}
	}
	return b.String()
}
