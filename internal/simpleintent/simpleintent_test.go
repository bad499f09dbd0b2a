package simpleintent

import (
	"testing"

	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/traindata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTrainData() *traindata.TrainData {
	td := traindata.New()
	td.AddLines("greet", []string{"hi", "hello", "hey there"})
	td.AddLines("weather", []string{"what is the weather", "weather report"})
	return td
}

func TestTrain_PositiveScoresHigherThanNegative(t *testing.T) {
	td := buildTrainData()
	greet := New("greet")
	greet.Train(td)

	posScore := greet.Match(lexer.Tokenize("hello"))
	negScore := greet.Match(lexer.Tokenize("what is the weather"))
	assert.Greater(t, posScore, negScore)
	assert.Greater(t, posScore, 0.5)
}

func TestMatch_EmptySentenceIsLow(t *testing.T) {
	td := buildTrainData()
	greet := New("greet")
	greet.Train(td)

	assert.Less(t, greet.Match(nil), 0.5)
}

func TestSaveLoad_RoundTripPreservesMatch(t *testing.T) {
	td := buildTrainData()
	greet := New("greet")
	greet.Train(td)

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, greet.Save(s))

	loaded := New("greet")
	require.NoError(t, loaded.Load(s))

	want := greet.Match(lexer.Tokenize("hello"))
	got := loaded.Match(lexer.Tokenize("hello"))
	assert.InDelta(t, want, got, 1e-9)
}

func TestLoad_MissingArtifactErrors(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	si := New("ghost")
	assert.Error(t, si.Load(s))
}
