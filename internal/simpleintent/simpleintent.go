// Package simpleintent implements the bag-of-token feed-forward classifier
// shared, in spirit, by intents and entities: a per-name IdManager feeding a
// small network trained with negative sampling against sibling sentences.
package simpleintent

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

// LENIENCE is the target confidence for pollution examples: high enough that
// a classifier dominated by content tokens still fires, low enough that pure
// filler never does.
const LENIENCE = 0.6

const nullToken lexer.Token = ":null:"

const (
	maxRestarts      = 10
	epochsPerRestart = 1000
	learningRate     = 0.5
	hiddenUnits      = 10
)

// DefaultKind is the artifact-suffix namespace used for intents
// ("<name>.intent.ids" / "<name>.intent.net"). Entity wraps a SimpleIntent
// constructed with kind "entity" instead, per the "<entity>.entity.{ids,net}"
// artifact naming.
const DefaultKind = "intent"

// SimpleIntent is a bag-of-token classifier for one intent or entity name.
type SimpleIntent struct {
	name string
	kind string
	ids  *idmanager.IdManager
	net  *netutil.Network
}

// New returns an untrained SimpleIntent for name, using the default
// "intent" artifact namespace.
func New(name string) *SimpleIntent {
	return NewWithKind(name, DefaultKind)
}

// NewWithKind returns an untrained SimpleIntent for name whose artifacts are
// persisted as "<name>.<kind>.ids" / "<name>.<kind>.net".
func NewWithKind(name, kind string) *SimpleIntent {
	return &SimpleIntent{name: name, kind: kind, ids: idmanager.New()}
}

// Name returns the intent or entity name this classifier was built for.
func (si *SimpleIntent) Name() string { return si.name }

func (si *SimpleIntent) suffixIDs() string { return "." + si.kind + ".ids" }
func (si *SimpleIntent) suffixNet() string { return "." + si.kind + ".net" }

// Vectorize encodes sent against the current id map without mutating it.
func Vectorize(ids *idmanager.IdManager, sent []lexer.Token) []float64 {
	v := ids.Vector()
	n := len(sent)
	if n == 0 {
		return v
	}
	unknown := 0
	for _, t := range sent {
		if id, ok := ids.IdOf(t); ok {
			v[id] = 1.0
		} else {
			unknown++
		}
	}
	ids.Assign(v, idmanager.UnknownRatio, float64(unknown)/float64(n))
	ids.Assign(v, idmanager.LenBucket1, float64(n)/1)
	ids.Assign(v, idmanager.LenBucket2, float64(n)/2)
	ids.Assign(v, idmanager.LenBucket3, float64(n)/3)
	ids.Assign(v, idmanager.LenBucket4, float64(n)/4)
	return v
}

func hasSentinelToken(sent []lexer.Token) bool {
	for _, t := range sent {
		if len(t) > 1 && t[0] == ':' {
			return true
		}
	}
	return false
}

func wordWeight(w lexer.Token, sumCubes float64) float64 {
	if lexer.IsPlaceholder(w) || sumCubes == 0 {
		return 0
	}
	return math.Pow(float64(len([]rune(w))), 3) / sumCubes
}

func cubeSum(sent []lexer.Token) float64 {
	var sum float64
	for _, w := range sent {
		sum += math.Pow(float64(len([]rune(w))), 3)
	}
	return sum
}

// Train synthesizes the full training set for Name out of td and fits the
// network, restarting up to maxRestarts times until the bit-fail count
// reaches zero.
func (si *SimpleIntent) Train(td *traindata.TrainData) {
	mySents := td.MySents(si.name)
	otherSents := td.OtherSents(si.name)

	// 1. Register every token of every positive sentence first, so the
	// input width is stable before any network is constructed.
	for _, s := range mySents {
		for _, t := range s {
			si.ids.AddToken(t)
		}
	}

	var inputs, outputs [][]float64
	add := func(sent []lexer.Token, target float64) {
		inputs = append(inputs, Vectorize(si.ids, sent))
		outputs = append(outputs, []float64{target})
	}

	// 2. Positive sentences.
	for _, s := range mySents {
		add(s, 1.0)
	}

	// 3. Word-weight examples.
	for _, s := range mySents {
		sumCubes := cubeSum(s)
		for _, w := range s {
			add([]lexer.Token{w}, wordWeight(w, sumCubes))
		}
	}

	// 4. Pollution.
	for _, s := range mySents {
		if hasSentinelToken(s) {
			continue
		}
		count := int(math.Ceil(float64(len(s)+2) / 3.0))
		filler := make([]lexer.Token, count)
		for i := range filler {
			filler[i] = nullToken
		}
		prefixed := append(append([]lexer.Token{}, filler...), s...)
		add(prefixed, LENIENCE)
		suffixed := append(append([]lexer.Token{}, s...), filler...)
		add(suffixed, LENIENCE)
	}

	// 5. Negative sampling against sibling intents, plus fixed negatives.
	for _, s := range otherSents {
		add(s, 0.0)
	}
	add([]lexer.Token{nullToken}, 0.0)
	add([]lexer.Token{}, 0.0)

	// 6. Placeholder-stripped negative variants.
	for _, s := range mySents {
		hasPlaceholder := false
		for _, w := range s {
			if lexer.IsPlaceholder(w) {
				hasPlaceholder = true
				break
			}
		}
		if !hasPlaceholder {
			continue
		}
		variant := make([]lexer.Token, len(s))
		for i, w := range s {
			if lexer.IsPlaceholder(w) {
				variant[i] = nullToken
			} else {
				variant[i] = w
			}
		}
		add(variant, 0.0)
	}

	// 7. Conflict resolution.
	inputs, outputs = netutil.ResolveConflicts(inputs, outputs)

	// 8. Up to maxRestarts restarts, stopping early on a clean bit-fail pass.
	width := si.ids.Len()
	for restart := 0; restart < maxRestarts; restart++ {
		si.net = netutil.New([]int{width, hiddenUnits, 1})
		if si.net.Train(inputs, outputs, epochsPerRestart, learningRate) == 0 {
			break
		}
	}
}

// Match returns the classifier's confidence, clamped to >= 0, for sent.
func (si *SimpleIntent) Match(sent []lexer.Token) float64 {
	if si.net == nil {
		return 0
	}
	out := si.net.Run(Vectorize(si.ids, sent))
	return math.Max(0, out[0])
}

// IDs exposes the underlying id map, for callers that need to know whether
// a given token is registered.
func (si *SimpleIntent) IDs() *idmanager.IdManager { return si.ids }

// Save persists the id map and network under Name in s.
func (si *SimpleIntent) Save(s store.Store) error {
	idsData, err := si.ids.Marshal()
	if err != nil {
		return fmt.Errorf("simpleintent: marshal ids for %q: %w", si.name, err)
	}
	if err := s.Write(si.name, si.suffixIDs(), idsData); err != nil {
		return fmt.Errorf("simpleintent: save ids for %q: %w", si.name, err)
	}

	netData, err := si.net.Marshal()
	if err != nil {
		return fmt.Errorf("simpleintent: marshal net for %q: %w", si.name, err)
	}
	if err := s.Write(si.name, si.suffixNet(), netData); err != nil {
		return fmt.Errorf("simpleintent: save net for %q: %w", si.name, err)
	}
	return nil
}

// Load rebuilds the id map and network for Name from s. Absence of either
// artifact is fatal for this intent, per the reference persistence contract.
func (si *SimpleIntent) Load(s store.Store) error {
	idsData, err := s.Read(si.name, si.suffixIDs())
	if err != nil {
		return fmt.Errorf("simpleintent: ids artifact for %q: %w: %w", si.name, padatious.ErrMissingArtifact, err)
	}
	if err := si.ids.Unmarshal(idsData); err != nil {
		return fmt.Errorf("simpleintent: corrupt ids artifact for %q: %w", si.name, err)
	}

	netData, err := s.Read(si.name, si.suffixNet())
	if err != nil {
		return fmt.Errorf("simpleintent: net artifact for %q: %w: %w", si.name, padatious.ErrMissingArtifact, err)
	}
	si.net = netutil.New([]int{si.ids.Len(), hiddenUnits, 1})
	if err := si.net.Unmarshal(netData); err != nil {
		return fmt.Errorf("simpleintent: corrupt net artifact for %q: %w", si.name, err)
	}
	return nil
}
