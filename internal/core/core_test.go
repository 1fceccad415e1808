package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcox74/bfcc/internal/core"
)

func compile(t *testing.T, src string, level core.OptLevel) []core.Op {
	t.Helper()
	toks := core.Tokenize([]byte(src))
	ops, err := core.Lower(toks)
	require.NoError(t, err)
	return core.OptimiseWithLevel(ops, level)
}

func TestTokenizeIgnoresNonCommandBytes(t *testing.T) {
	toks := core.Tokenize([]byte("+ hello\n- world"))
	var kinds []core.TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []core.TokenKind{core.TokAdd, core.TokSub, core.TokEOF}, kinds)
}

func TestTokenizeTracksLineAndColumn(t *testing.T) {
	toks := core.Tokenize([]byte("+\n-"))
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 2, toks[1].Pos.Line)
}

func TestLowerEmptyProgram(t *testing.T) {
	ops := compile(t, "", core.O0)
	assert.Empty(t, ops)
}

func TestLowerUnmatchedOpenBracket(t *testing.T) {
	_, err := core.Lower(core.Tokenize([]byte("[+")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched '['")
}

func TestLowerUnmatchedCloseBracket(t *testing.T) {
	_, err := core.Lower(core.Tokenize([]byte("+]")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched ']'")
}

func TestLowerFusesRunsAtO0(t *testing.T) {
	ops := compile(t, "+++++", core.O0)
	require.Len(t, ops, 1)
	assert.Equal(t, core.OpAdd, ops[0].Kind)
	assert.Equal(t, 5, ops[0].Arg)
}

func TestLowerResolvesJumpTargets(t *testing.T) {
	// +  [     >      +      <       -      ]
	// ADD JZ  SHIFT   ADD   SHIFT   ADD    JNZ
	ops := compile(t, "+[>+<-]", core.O0)
	require.Len(t, ops, 7)
	jz := ops[1]
	jnz := ops[6]
	require.Equal(t, core.OpJz, jz.Kind)
	require.Equal(t, core.OpJnz, jnz.Kind)
	assert.Equal(t, 7, jz.Arg)
	assert.Equal(t, 1, jnz.Arg)
}

func TestFusionLawsNetSignedByteValue(t *testing.T) {
	a := compile(t, "+++--", core.O0)
	b := compile(t, "+", core.O0)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, b[0].Arg, a[0].Arg)
}

func TestOptimiseRecognisesClearLoop(t *testing.T) {
	ops := compile(t, "+++[-]", core.O2)
	require.Len(t, ops, 2)
	assert.Equal(t, core.OpZero, ops[1].Kind)
}

func TestOptimiseRemovesEmptyLoop(t *testing.T) {
	ops := compile(t, "+[]-", core.O2)
	require.Len(t, ops, 2)
	assert.Equal(t, core.OpAdd, ops[0].Kind)
	assert.Equal(t, core.OpAdd, ops[1].Kind)
}

func TestOptimiseIsIdempotent(t *testing.T) {
	once := compile(t, "+++>>><<<---[-]>[>+<-]", core.O2)
	twice := core.OptimiseWithLevel(once, core.O2)
	assert.Equal(t, once, twice)
}

func TestO0OnlyPerformsRunFusion(t *testing.T) {
	// Lowering folds the entire mixed +/- run into one ADD node with
	// a net addend of 0, but O0 stops there: it never drops a no-op
	// ADD. O1's removeNoOps pass is what collapses it away.
	o0 := compile(t, "++--", core.O0)
	o1 := compile(t, "++--", core.O1)
	require.Len(t, o0, 1)
	assert.Equal(t, 0, o0[0].Arg)
	assert.Empty(t, o1)
}
