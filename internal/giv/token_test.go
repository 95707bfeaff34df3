package giv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func texts(toks []Token) []string {
	out := []string{}
	for _, t := range toks {
		out = append(out, t.Text)
	}
	return out
}

func TestSplitCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, texts(Split("  a   b c  ")))
}

func TestSplitBlank(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("   "))
	assert.Empty(t, Split(" \r \r"))
}

func TestSplitCarriageReturn(t *testing.T) {
	assert.Equal(t, []string{"m", "1", "2"}, texts(Split("m 1 2\r")))
}

func TestSplitPositionsRecoverRest(t *testing.T) {
	line := "  $balloon   A   triangle  "
	toks := Split(line)
	assert.Len(t, toks, 3)
	assert.Equal(t, 2, toks[0].Pos)
	assert.Equal(t, "A   triangle  ", line[toks[1].Pos:])
}

func TestSplitTabIsNotWhitespace(t *testing.T) {
	assert.Equal(t, []string{"a\tb"}, texts(Split("a\tb")))
}
