package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgParserPositionalsAndOptions(t *testing.T) {
	ap := argParser{args: []string{"-o", "out", "-d", "a.c", "b.c"}}

	var collected []struct {
		name, value string
	}
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}
		collected = append(collected, struct{ name, value string }{name, value})
	}

	assert.Equal(t, "o", collected[0].name)
	assert.Equal(t, "out", collected[0].value)
	assert.Equal(t, "d", collected[1].name)
	assert.Equal(t, "", collected[2].name)
	assert.Equal(t, "a.c", collected[2].value)
	assert.Equal(t, "", collected[3].name)
	assert.Equal(t, "b.c", collected[3].value)
}

func TestNewDriverFromArgsCollectsPaths(t *testing.T) {
	d := NewDriverFromArgs([]string{"-d", "x.c", "-o", "build", "y.c"})
	assert.True(t, d.debug)
	assert.Equal(t, "build", d.outDir)
	assert.Equal(t, []string{"x.c", "y.c"}, d.paths)
}
