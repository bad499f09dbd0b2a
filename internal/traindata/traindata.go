// Package traindata holds the per-intent tokenized sentence sets that every
// Trainable reads from during training. Dataflow is strictly one-directional:
// TrainData is passed by reference into train calls and never stores a
// reference back to the objects it trains.
package traindata

import (
	"bufio"
	"os"

	"github.com/jefflaplante/padatious-go/internal/lexer"
)

// Sentence is an ordered sequence of tokens.
type Sentence = []lexer.Token

// TrainData holds the expanded, tokenized training sentences for every
// registered name (an intent or entity name), alongside the raw source lines
// each name was registered with (used for content hashing).
type TrainData struct {
	sents map[string][]Sentence
	raw   map[string][]string
}

// New returns an empty TrainData.
func New() *TrainData {
	return &TrainData{sents: make(map[string][]Sentence), raw: make(map[string][]string)}
}

// AddLines tokenizes and bracket-expands each line (after stripping comment
// lines), replacing any sentences and raw lines previously registered under
// name. Empty sentences are discarded. The raw lines are retained verbatim
// for LinesHash.
func (t *TrainData) AddLines(name string, lines []string) {
	t.raw[name] = append([]string{}, lines...)

	t.sents[name] = nil
	lines = lexer.RemoveComments(lines)
	for _, line := range lines {
		for _, sent := range lexer.ExpandParentheses(lexer.Tokenize(line)) {
			if len(sent) == 0 {
				continue
			}
			t.sents[name] = append(t.sents[name], sent)
		}
	}
}

// AddFile reads path line by line and forwards to AddLines.
func (t *TrainData) AddFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	t.AddLines(name, lines)
	return nil
}

// RemoveLines discards every sentence and raw line registered under name.
func (t *TrainData) RemoveLines(name string) {
	delete(t.sents, name)
	delete(t.raw, name)
}

// Names returns every registered name, in no particular order.
func (t *TrainData) Names() []string {
	names := make([]string, 0, len(t.sents))
	for name := range t.sents {
		names = append(names, name)
	}
	return names
}

// MySents returns the sentences registered directly under name.
func (t *TrainData) MySents(name string) []Sentence {
	return t.sents[name]
}

// OtherSents returns every sentence registered under any name other than
// name.
func (t *TrainData) OtherSents(name string) []Sentence {
	var out []Sentence
	for n, sents := range t.sents {
		if n == name {
			continue
		}
		out = append(out, sents...)
	}
	return out
}

// AllSents returns every sentence registered under any name.
func (t *TrainData) AllSents() []Sentence {
	var out []Sentence
	for _, sents := range t.sents {
		out = append(out, sents...)
	}
	return out
}

// LinesHash returns the content hash of name's raw registered source lines,
// used by Trainables to decide whether retraining can be skipped.
func (t *TrainData) LinesHash(name string) [4]byte {
	return lexer.LinesHash(t.raw[name])
}
