package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_Identical(t *testing.T) {
	code := "type T struct {\n\tA int `json:\"a\"`\n}\n"

	out, changed := Compare(code, code, false)
	assert.False(t, changed)
	assert.Empty(t, out)

	out, changed = Compare(code, code, true)
	assert.False(t, changed)
	assert.Empty(t, out)
}

func TestCompare_LineDiff(t *testing.T) {
	existing := "type T struct {\n" +
		"\tA int `json:\"a\"`\n" +
		"\tB string `json:\"b\"`\n" +
		"}\n"
	generated := "type T struct {\n" +
		"\tA int `json:\"a\"`\n" +
		"\tB float64 `json:\"b\"`\n" +
		"\tC bool `json:\"c\"`\n" +
		"}\n"

	out, changed := Compare(existing, generated, false)
	assert.True(t, changed)

	expected := " type T struct {\n" +
		" \tA int `json:\"a\"`\n" +
		"-\tB string `json:\"b\"`\n" +
		"+\tB float64 `json:\"b\"`\n" +
		"+\tC bool `json:\"c\"`\n" +
		" }\n"
	assert.Equal(t, expected, out)
}

func TestCompare_MissingTrailingNewline(t *testing.T) {
	out, changed := Compare("a\nb", "a\nc", false)
	assert.True(t, changed)
	assert.Equal(t, " a\n-b\n+c\n", out)
}

func TestCompare_FromEmpty(t *testing.T) {
	out, changed := Compare("", "type T struct {\n}\n", false)
	assert.True(t, changed)
	assert.Equal(t, "+type T struct {\n+}\n", out)
}

func TestCompare_Colored(t *testing.T) {
	out, changed := Compare("a\nb\n", "a\nc\n", true)
	assert.True(t, changed)
	assert.Contains(t, out, "\x1b[31mb\n\x1b[0m")
	assert.Contains(t, out, "\x1b[32mc\n\x1b[0m")
}
