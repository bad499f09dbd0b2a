package domain

import (
	"testing"

	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, nil)
}

func TestDomain_IOTAndChitchatScenario(t *testing.T) {
	c := newTestContainer(t)

	c.AddIntent("iot", "lights_on", []string{"turn on the lights", "lights on please"})
	c.AddIntent("iot", "lights_off", []string{"turn off the lights", "lights off please"})
	c.AddIntent("chitchat", "greet", []string{"hello", "hi there", "good morning"})
	c.AddIntent("chitchat", "farewell", []string{"goodbye", "see you later"})

	require.NoError(t, c.Train())

	m := c.CalcIntent("turn on the lights", "")
	assert.Equal(t, "lights_on", m.Name)

	m2 := c.CalcIntent("hello", "")
	assert.Equal(t, "greet", m2.Name)
}

func TestDomain_CalcIntentWithExplicitDomain(t *testing.T) {
	c := newTestContainer(t)
	c.AddIntent("iot", "lights_on", []string{"turn on the lights"})
	c.AddIntent("chitchat", "greet", []string{"hello"})
	require.NoError(t, c.Train())

	m := c.CalcIntent("hello", "iot")
	assert.NotEqual(t, "greet", m.Name)
}

func TestDomain_UnknownDomainYieldsNullMatch(t *testing.T) {
	c := newTestContainer(t)
	c.AddIntent("iot", "lights_on", []string{"turn on the lights"})
	require.NoError(t, c.Train())

	m := c.CalcIntent("anything", "nonexistent")
	assert.Equal(t, "", m.Name)
	assert.Zero(t, m.Conf)
}

func TestDomain_CalcIntentsTopK(t *testing.T) {
	c := newTestContainer(t)
	c.AddIntent("iot", "lights_on", []string{"turn on the lights", "lights on please"})
	c.AddIntent("iot", "lights_off", []string{"turn off the lights", "lights off please"})
	c.AddIntent("chitchat", "greet", []string{"hello", "hi there", "good morning"})
	c.AddIntent("weather", "forecast", []string{"what is the weather", "will it rain today"})
	require.NoError(t, c.Train())

	results := c.CalcIntents("turn on the lights", "", 1)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Contains(t, []string{"lights_on", "lights_off"}, r.Name)
	}
	assert.Equal(t, "lights_on", results[0].Name)
}

func TestDomain_IdenticallyNamedIntentsDoNotCollide(t *testing.T) {
	c := newTestContainer(t)
	c.AddIntent("iot", "status", []string{"is the light on"})
	c.AddIntent("weather", "status", []string{"is it raining"})
	require.NoError(t, c.Train())

	m := c.CalcIntent("is it raining", "weather")
	assert.Equal(t, "status", m.Name)
}
