package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	for _, format := range Formats() {
		parsed, ok := ParseFormat(string(format))
		assert.True(t, ok)
		assert.Equal(t, format, parsed)
	}

	for _, raw := range []string{"", "GENERIC", "yaml", "langchain2"} {
		_, ok := ParseFormat(raw)
		assert.False(t, ok, "format %q must be rejected", raw)
	}
}
