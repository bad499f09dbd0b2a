package entityedge

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
	td.AddLines("weather", []string{"weather in {place}", "what is the weather in {place}"})
	td.AddLines("greet", []string{"hi", "hello there"})
	return td
}

func TestTrain_ScoresPlaceholderPositionAboveSentenceStart(t *testing.T) {
	td := buildTrainData()
	edge := New(-1, "{place}", "weather")
	edge.Train(td)

	sent := lexer.Tokenize("weather in {place}")
	var placeholderPos int
	for i, tok := range sent {
		if tok == "{place}" {
			placeholderPos = i
		}
	}

	atSlot := edge.Match(sent, placeholderPos)
	elsewhere := edge.Match(sent, 0)
	assert.Greater(t, atSlot, elsewhere)
}

func TestSaveLoad_RoundTripPreservesMatch(t *testing.T) {
	td := buildTrainData()
	edge := New(1, "{place}", "weather")
	edge.Train(td)

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, edge.Save(s, "weather.pos.{place}"))

	loaded := New(1, "{place}", "weather")
	require.NoError(t, loaded.Load(s, "weather.pos.{place}"))

	sent := lexer.Tokenize("weather in {place}")
	assert.InDelta(t, edge.Match(sent, 1), loaded.Match(sent, 1), 1e-9)
}

func TestLoad_MissingArtifactErrors(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	edge := New(-1, "{place}", "weather")
	assert.Error(t, edge.Load(s, "weather.pos.{place}"))
}
