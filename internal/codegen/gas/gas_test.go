package gas_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcox74/bfcc/internal/codegen/gas"
	"github.com/lcox74/bfcc/internal/core"
)

func compile(t *testing.T, src string) []core.Op {
	t.Helper()
	ops, err := core.Lower(core.Tokenize([]byte(src)))
	require.NoError(t, err)
	return core.OptimiseWithLevel(ops, core.O2)
}

func TestGenerateEmitsBSSAndEntryPoint(t *testing.T) {
	asm := gas.NewGenerator(compile(t, "+.")).Generate()
	assert.Contains(t, asm, ".section .bss")
	assert.Contains(t, asm, ".lcomm tape, 30000")
	assert.Contains(t, asm, "_start:")
	assert.Contains(t, asm, "_bf_read:")
	assert.Contains(t, asm, "_bf_write:")
}

func TestGenerateEmitsAddAndOut(t *testing.T) {
	asm := gas.NewGenerator(compile(t, "+.")).Generate()
	assert.Contains(t, asm, "addb $1, (%r13,%r12)")
	assert.Contains(t, asm, "call _bf_write")
}

func TestGenerateOmitsJumpLabelsForClearLoop(t *testing.T) {
	asm := gas.NewGenerator(compile(t, "+[-]")).Generate()
	// A [-] clear loop is recognised by the optimiser, so no loop
	// labels should survive into the assembly for this program.
	assert.NotContains(t, asm, ".jt_")
	assert.Contains(t, asm, "movb $0, (%r13,%r12)")
}

func TestGenerateEmitsJumpLabelsWhenLoopSurvives(t *testing.T) {
	asm := gas.NewGenerator(compile(t, "+[>+<-]")).Generate()
	assert.True(t, strings.Contains(asm, ".jt_"))
	assert.Contains(t, asm, "jz .jt_")
	assert.Contains(t, asm, "jnz .jt_")
}
