package padaos

import (
	"errors"
	"testing"

	"github.com/jefflaplante/padatious-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_TimerDurationScenario(t *testing.T) {
	c := New(nil)
	c.AddEntity("number", []string{"one", "two", "three", "four", "five", "5"})
	c.AddEntity("duration", []string{"{number} (minutes|seconds)"})
	c.AddIntent("set_timer", []string{"set timer for {duration}"})

	m, ok := c.CalcIntent("set timer for 5 minutes")
	require.True(t, ok)
	assert.Equal(t, "set_timer", m.Name)
	assert.Equal(t, "5 minutes", m.Entities["duration"])
}

func TestContainer_PlainTemplateMatch(t *testing.T) {
	c := New(nil)
	c.AddIntent("greet", []string{"hello", "hi there"})

	m, ok := c.CalcIntent("hi there")
	require.True(t, ok)
	assert.Equal(t, "greet", m.Name)
}

func TestContainer_NoMatchReturnsFalse(t *testing.T) {
	c := New(nil)
	c.AddIntent("greet", []string{"hello"})

	_, ok := c.CalcIntent("completely unrelated text")
	assert.False(t, ok)
}

func TestContainer_TieBreaksOnSmallestExtractedLength(t *testing.T) {
	c := New(nil)
	c.AddIntent("weather", []string{"weather in {place}"})
	c.AddIntent("weather_alt", []string{"weather in {place} please"})

	m, ok := c.CalcIntent("weather in denver please")
	require.True(t, ok)
	assert.Equal(t, "weather_alt", m.Name)
}

func TestContainer_RemoveIntentStopsMatching(t *testing.T) {
	c := New(nil)
	c.AddIntent("greet", []string{"hello"})
	c.RemoveIntent("greet")

	_, ok := c.CalcIntent("hello")
	assert.False(t, ok)
}

func TestContainer_MalformedTemplateIsSkippedNotFatal(t *testing.T) {
	c := New(nil)
	c.AddIntent("broken", []string{"("})
	c.AddIntent("greet", []string{"hello"})

	m, ok := c.CalcIntent("hello")
	require.True(t, ok)
	assert.Equal(t, "greet", m.Name)

	errs := c.CompileErrors()
	if assert.Len(t, errs, 1) {
		assert.True(t, errors.Is(errs[0], padatious.ErrMalformedTemplate))
	}
}
