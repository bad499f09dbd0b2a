package traindata

import (
	"testing"

	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestAddLines_ExpandsAndFiltersBlank(t *testing.T) {
	td := New()
	td.AddLines("greet", []string{"hi", "", "// comment", "hello (there|)"})

	got := td.MySents("greet")
	assert.Len(t, got, 3)
}

func TestMySentsOtherSents(t *testing.T) {
	td := New()
	td.AddLines("greet", []string{"hi"})
	td.AddLines("weather", []string{"what's the weather"})

	assert.Len(t, td.MySents("greet"), 1)
	assert.Len(t, td.OtherSents("greet"), 1)
	assert.Len(t, td.OtherSents("weather"), 1)
	assert.Len(t, td.AllSents(), 2)
}

func TestRemoveLines(t *testing.T) {
	td := New()
	td.AddLines("greet", []string{"hi"})
	td.RemoveLines("greet")

	assert.Empty(t, td.MySents("greet"))
	assert.Empty(t, td.Names())
}

func TestAddLines_ReplacesPriorRegistration(t *testing.T) {
	td := New()
	td.AddLines("greet", []string{"hi"})
	td.AddLines("greet", []string{"bye"})

	got := td.MySents("greet")
	if assert.Len(t, got, 1) {
		assert.Equal(t, lexer.Token("bye"), got[0][0])
	}
}

func TestLinesHash_StableUntilMutated(t *testing.T) {
	td := New()
	td.AddLines("greet", []string{"hi", "hello"})
	h1 := td.LinesHash("greet")

	td2 := New()
	td2.AddLines("greet", []string{"hi", "hello"})
	h2 := td2.LinesHash("greet")
	assert.Equal(t, h1, h2)

	td.AddLines("greet", []string{"hey there"})
	h3 := td.LinesHash("greet")
	assert.NotEqual(t, h1, h3)
}
