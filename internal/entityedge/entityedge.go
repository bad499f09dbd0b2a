// Package entityedge implements EntityEdge, the left- or right-boundary
// classifier that locates one side of a placeholder's span. Its own source
// file is absent from the retrieved reference implementation; the feature
// encoding and training regime below follow the specification's prose
// description directly, generalizing SimpleIntent's id-map-plus-network
// pattern to a windowed, per-offset feature space.
package entityedge

import (
	"fmt"
	"math"

	"github.com/jefflaplante/padatious-go"
	"github.com/jefflaplante/padatious-go/internal/idmanager"
	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/netutil"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/traindata"
)

// offsets are the eight window positions relative to a candidate boundary
// position p: four tokens on each side.
var offsets = []int{-4, -3, -2, -1, 1, 2, 3, 4}

const (
	maxRestarts      = 10
	epochsPerRestart = 1000
	learningRate     = 0.5
	hiddenUnits      = 10
)

func suffixFor(direction int) string {
	if direction < 0 {
		return ".edge.-1"
	}
	return ".edge.1"
}

// EntityEdge is a SimpleIntent-like scorer for one boundary (Direction: -1
// for left, +1 for right) of one placeholder Token within one Intent's
// training sentences.
type EntityEdge struct {
	Direction int
	Token     lexer.Token
	Intent    string

	ids *idmanager.IdManager
	net *netutil.Network
}

// New returns an untrained EntityEdge for the given placeholder token and
// owning intent name.
func New(direction int, token lexer.Token, intentName string) *EntityEdge {
	return &EntityEdge{
		Direction: direction,
		Token:     token,
		Intent:    intentName,
		ids:       idmanager.NewBare(),
	}
}

func windowKey(offset int, tok lexer.Token) string {
	return fmt.Sprintf("%d|%s", offset, lexer.FoldDigits(tok))
}

func boundaryKey(offset int) string {
	return fmt.Sprintf("%d|:boundary:", offset)
}

func registerWindow(ids *idmanager.IdManager, sent []lexer.Token, p int) {
	for _, k := range offsets {
		idx := p + k
		if idx >= 0 && idx < len(sent) {
			ids.AddToken(windowKey(k, sent[idx]))
		} else {
			ids.AddToken(boundaryKey(k))
		}
	}
}

func vectorizeWindow(ids *idmanager.IdManager, sent []lexer.Token, p int) []float64 {
	v := ids.Vector()
	for _, k := range offsets {
		idx := p + k
		var key string
		if idx >= 0 && idx < len(sent) {
			key = windowKey(k, sent[idx])
		} else {
			key = boundaryKey(k)
		}
		if id, ok := ids.IdOf(key); ok {
			v[id] = 1.0
		}
	}
	return v
}

// Train synthesizes positive examples at every occurrence of Token within
// the owning intent's positive sentences, and negative examples at every
// other position of every positive sentence plus every position of every
// sibling intent's sentences.
func (e *EntityEdge) Train(td *traindata.TrainData) {
	mySents := td.MySents(e.Intent)
	otherSents := td.OtherSents(e.Intent)

	for _, s := range mySents {
		for p := range s {
			registerWindow(e.ids, s, p)
		}
	}
	for _, s := range otherSents {
		for p := range s {
			registerWindow(e.ids, s, p)
		}
	}

	var inputs, outputs [][]float64
	add := func(sent []lexer.Token, p int, target float64) {
		inputs = append(inputs, vectorizeWindow(e.ids, sent, p))
		outputs = append(outputs, []float64{target})
	}

	for _, s := range mySents {
		for p, tok := range s {
			if tok == e.Token {
				add(s, p, 1.0)
			} else {
				add(s, p, 0.0)
			}
		}
	}
	for _, s := range otherSents {
		for p := range s {
			add(s, p, 0.0)
		}
	}

	inputs, outputs = netutil.ResolveConflicts(inputs, outputs)

	width := e.ids.Len()
	for restart := 0; restart < maxRestarts; restart++ {
		e.net = netutil.New([]int{width, hiddenUnits, 1})
		if e.net.Train(inputs, outputs, epochsPerRestart, learningRate) == 0 {
			break
		}
	}
}

// Match returns this edge's confidence, clamped to >= 0, that p is its
// boundary within sent.
func (e *EntityEdge) Match(sent []lexer.Token, p int) float64 {
	if e.net == nil {
		return 0
	}
	out := e.net.Run(vectorizeWindow(e.ids, sent, p))
	return math.Max(0, out[0])
}

// Save persists the id map and network under prefix + direction suffix in s.
func (e *EntityEdge) Save(s store.Store, prefix string) error {
	suffix := suffixFor(e.Direction)

	idsData, err := e.ids.Marshal()
	if err != nil {
		return fmt.Errorf("entityedge: marshal ids for %q%s: %w", prefix, suffix, err)
	}
	if err := s.Write(prefix, suffix+".ids", idsData); err != nil {
		return fmt.Errorf("entityedge: save ids for %q%s: %w", prefix, suffix, err)
	}

	netData, err := e.net.Marshal()
	if err != nil {
		return fmt.Errorf("entityedge: marshal net for %q%s: %w", prefix, suffix, err)
	}
	if err := s.Write(prefix, suffix+".net", netData); err != nil {
		return fmt.Errorf("entityedge: save net for %q%s: %w", prefix, suffix, err)
	}
	return nil
}

// Load rebuilds the id map and network for this edge from s.
func (e *EntityEdge) Load(s store.Store, prefix string) error {
	suffix := suffixFor(e.Direction)

	idsData, err := s.Read(prefix, suffix+".ids")
	if err != nil {
		return fmt.Errorf("entityedge: ids artifact for %q%s: %w: %w", prefix, suffix, padatious.ErrMissingArtifact, err)
	}
	if err := e.ids.Unmarshal(idsData); err != nil {
		return fmt.Errorf("entityedge: corrupt ids artifact for %q%s: %w", prefix, suffix, err)
	}

	netData, err := s.Read(prefix, suffix+".net")
	if err != nil {
		return fmt.Errorf("entityedge: net artifact for %q%s: %w: %w", prefix, suffix, padatious.ErrMissingArtifact, err)
	}
	e.net = netutil.New([]int{e.ids.Len(), hiddenUnits, 1})
	if err := e.net.Unmarshal(netData); err != nil {
		return fmt.Errorf("entityedge: corrupt net artifact for %q%s: %w", prefix, suffix, err)
	}
	return nil
}
