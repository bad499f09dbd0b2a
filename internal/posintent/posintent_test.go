package posintent

import (
	"testing"

	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/matchdata"
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

func TestMatch_ExtractsPlausibleSpan(t *testing.T) {
	td := buildTrainData()
	pi := New("{place}", "weather")
	pi.Train(td)

	sent := lexer.Tokenize("weather in paris")
	orig := matchdata.New("weather", sent)

	candidates := pi.Match(orig, nil)
	require.NotEmpty(t, candidates)

	found := false
	for _, c := range candidates {
		if v, ok := c.Matches["{place}"]; ok && len(v) == 1 && v[0] == "paris" {
			found = true
		}
	}
	assert.True(t, found, "expected a candidate extracting {place}=paris")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	td := buildTrainData()
	pi := New("{place}", "weather")
	pi.Train(td)

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, pi.Save(s, "weather"))

	loaded := New("{place}", "weather")
	require.NoError(t, loaded.Load(s, "weather"))

	sent := lexer.Tokenize("weather in paris")
	orig := matchdata.New("weather", sent)
	assert.Equal(t, len(pi.Match(orig, nil)), len(loaded.Match(orig, nil)))
}
