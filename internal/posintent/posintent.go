// Package posintent implements PosIntent, which owns the left/right
// EntityEdge pair for one placeholder within one intent and proposes scored
// span extractions over a MatchData candidate.
package posintent

import (
	"math"

	"github.com/jefflaplante/padatious-go/internal/entityedge"
	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/matchdata"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/traindata"
)

// edgeConfidenceFloor is the minimum boundary confidence a position must
// clear to be considered as a candidate span edge.
const edgeConfidenceFloor = 0.2

// EntityMatcher scores how well a span matches a named entity class. It is
// satisfied by the intents package's Entity type; kept as a narrow interface
// here to avoid an import cycle with the public intents package.
type EntityMatcher interface {
	Match(span []lexer.Token) float64
}

// PosIntent owns exactly the two EntityEdges for one placeholder token
// within one intent.
type PosIntent struct {
	Token  lexer.Token
	Intent string

	Left  *entityedge.EntityEdge
	Right *entityedge.EntityEdge
}

// New returns an untrained PosIntent for token within intentName.
func New(token lexer.Token, intentName string) *PosIntent {
	return &PosIntent{
		Token:  token,
		Intent: intentName,
		Left:   entityedge.New(-1, token, intentName),
		Right:  entityedge.New(1, token, intentName),
	}
}

// Train fits both boundary edges against td.
func (p *PosIntent) Train(td *traindata.TrainData) {
	p.Left.Train(td)
	p.Right.Train(td)
}

func containsPlaceholder(span []lexer.Token) bool {
	for _, tok := range span {
		if lexer.IsPlaceholder(tok) {
			return true
		}
	}
	return false
}

// Match enumerates every valid (lp, rp) span within orig.Sent and returns one
// candidate MatchData per span: the span replaced by Token, Matches[Token]
// set to the extracted tokens, and Conf adjusted by the combined boundary
// and entity confidence.
func (p *PosIntent) Match(orig matchdata.MatchData, entity EntityMatcher) []matchdata.MatchData {
	n := len(orig.Sent)
	if n == 0 {
		return nil
	}

	lconf := make([]float64, n)
	rconf := make([]float64, n)
	for i := 0; i < n; i++ {
		lconf[i] = p.Left.Match(orig.Sent, i)
		rconf[i] = p.Right.Match(orig.Sent, i)
	}

	var results []matchdata.MatchData
	for lp := 0; lp < n; lp++ {
		if lconf[lp] < edgeConfidenceFloor {
			continue
		}
		for rp := lp; rp < n; rp++ {
			if rconf[rp] < edgeConfidenceFloor {
				continue
			}
			if containsPlaceholder(orig.Sent[lp : rp+1]) {
				continue
			}

			extracted := append([]lexer.Token{}, orig.Sent[lp:rp+1]...)
			posConf := ((lconf[lp]-0.5)+(rconf[rp]-0.5))/2 + 0.5
			entConf := 1.0
			if entity != nil {
				entConf = entity.Match(extracted)
			}
			extra := math.Sqrt(math.Max(0, posConf*entConf)) - 0.5

			newSent := make([]lexer.Token, 0, n-(rp-lp)+1)
			newSent = append(newSent, orig.Sent[:lp]...)
			newSent = append(newSent, p.Token)
			newSent = append(newSent, orig.Sent[rp+1:]...)

			newMatches := make(map[string][]lexer.Token, len(orig.Matches)+1)
			for k, v := range orig.Matches {
				newMatches[k] = v
			}
			newMatches[p.Token] = extracted

			results = append(results, matchdata.MatchData{
				Name:    orig.Name,
				Sent:    newSent,
				Matches: newMatches,
				Conf:    orig.Conf + extra,
			})
		}
	}
	return results
}

// Save persists both edges' artifacts under "<intentName>.pos.<token>".
func (p *PosIntent) Save(s store.Store, intentName string) error {
	prefix := intentName + ".pos." + p.Token
	if err := p.Left.Save(s, prefix); err != nil {
		return err
	}
	return p.Right.Save(s, prefix)
}

// Load rebuilds both edges' artifacts from "<intentName>.pos.<token>".
func (p *PosIntent) Load(s store.Store, intentName string) error {
	prefix := intentName + ".pos." + p.Token
	if err := p.Left.Load(s, prefix); err != nil {
		return err
	}
	return p.Right.Load(s, prefix)
}
