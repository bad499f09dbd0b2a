package intents

import (
	"testing"

	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/traindata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainGreetWeather(t *testing.T) (*traindata.TrainData, *Intent, *Intent, *entityManager) {
	t.Helper()

	td := traindata.New()
	td.AddLines("greet", []string{
		"hello",
		"hi there",
		"good morning",
	})
	td.AddLines("weather", []string{
		"what is the weather in {place}",
		"will it rain in {place}",
		"weather forecast for {place}",
	})

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	em := newEntityManager(s)
	em.add("place", td, []string{"seattle", "denver", "new york"})
	require.NoError(t, em.train(td))

	greet := NewIntent("greet")
	greet.Train(td)

	weather := NewIntent("weather")
	weather.Train(td)

	return td, greet, weather, em
}

func TestIntent_MatchPrefersTrainedIntent(t *testing.T) {
	_, greet, weather, em := trainGreetWeather(t)

	sent := lexer.Tokenize("hello")
	greetMatch := greet.Match(sent, em)
	weatherMatch := weather.Match(sent, em)

	assert.Greater(t, greetMatch.Conf, weatherMatch.Conf)
}

func TestIntent_MatchExtractsEntitySpan(t *testing.T) {
	_, _, weather, em := trainGreetWeather(t)

	sent := lexer.Tokenize("what is the weather in denver")
	m := weather.Match(sent, em)

	require.Contains(t, m.Matches, lexer.Token("{place}"))
	assert.Equal(t, []lexer.Token{"denver"}, m.Matches["{place}"])
}

func TestIntent_SaveLoadRoundTrip(t *testing.T) {
	_, greet, _, _ := trainGreetWeather(t)

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, greet.Save(s))

	loaded := NewIntent("greet")
	require.NoError(t, loaded.Load(s))

	sent := lexer.Tokenize("hello")
	want := greet.Match(sent, nil)
	got := loaded.Match(sent, nil)
	assert.InDelta(t, want.Conf, got.Conf, 1e-9)
}

func TestIntent_MatchEmptySentence(t *testing.T) {
	_, greet, _, em := trainGreetWeather(t)

	m := greet.Match(nil, em)
	assert.Equal(t, 0, len(m.Sent))
}
