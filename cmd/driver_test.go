package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPathForStripsFromFirstDot(t *testing.T) {
	d := &Driver{}
	assert.Equal(t, filepath.Join("/src", "main.ll"), d.outputPathFor("/src/main.c"))
	assert.Equal(t, filepath.Join("/src", "main.ll"), d.outputPathFor("/src/main.test.c"))
}

func TestOutputPathForHonorsOutDir(t *testing.T) {
	d := &Driver{outDir: "/out"}
	assert.Equal(t, filepath.Join("/out", "util.ll"), d.outputPathFor("/src/util.c"))
}

func TestCompileFileWritesIR(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ret.c")
	assert.NoError(t, os.WriteFile(src, []byte("int main(void) { return 0; }"), 0o644))

	d := &Driver{}
	d.compileFile(src)

	out, err := os.ReadFile(filepath.Join(dir, "ret.ll"))
	assert.NoError(t, err)
	assert.Contains(t, string(out), "define i32 @main")
}
