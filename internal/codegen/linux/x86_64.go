// Package linux produces ELF64 x86_64 Linux executables from IR operations.
package linux

import (
	"encoding/binary"

	log "github.com/sirupsen/logrus"

	"github.com/lcox74/bfcc/internal/core"
	"github.com/lcox74/bfcc/pkg/amd64"
	"github.com/lcox74/bfcc/pkg/elf"
)

// Linux syscall numbers
const (
	// sysRead = 0 // Omitted, it's quicker to use xor to zero out
	sysWrite = 1
	sysExit  = 60
)

// EntryVAddr is the fixed virtual address (and file offset) at which
// the code segment is loaded and execution begins.
const EntryVAddr = 0x1000

// jumpFixup records a location that needs to be patched with a relative offset.
type jumpFixup struct {
	offset    int // Offset in code where rel32 starts
	targetIdx int // IR index of the jump target, or a helper marker below
}

const (
	helperRead  = -1 // fixup.targetIdx marker: target is _bf_read
	helperWrite = -2 // fixup.targetIdx marker: target is _bf_write
)

// X86_64Generator produces x86_64 machine code from IR operations.
type X86_64Generator struct {
	ops       []core.Op
	code      []byte
	targets   map[int]bool // IR indices that are jump targets
	labelAddr map[int]int  // IR index -> code offset
	fixups    []jumpFixup  // Jumps/calls that need patching
	needsIn   bool         // ops contains at least one OpIn
	needsOut  bool         // ops contains at least one OpOut

	tapeImmOffset     int // code offset of the tape-base movabs immediate
	helperReadOffset  int
	helperWriteOffset int
}

// NewX86_64Generator creates a new x86_64 machine code generator.
func NewX86_64Generator(ops []core.Op) *X86_64Generator {
	g := &X86_64Generator{
		ops:       ops,
		code:      make([]byte, 0, 4096),
		targets:   make(map[int]bool),
		labelAddr: make(map[int]int),
	}
	g.collectTargets()
	return g
}

// collectTargets finds all jump target indices and whether the I/O
// helper routines are needed at all.
func (g *X86_64Generator) collectTargets() {
	for _, op := range g.ops {
		switch op.Kind {
		case core.OpJz, core.OpJnz:
			g.targets[op.Arg] = true
		case core.OpIn:
			g.needsIn = true
		case core.OpOut:
			g.needsOut = true
		}
	}
}

// Generate produces raw x86_64 machine code, with the tape-base
// immediate left at zero. GenerateELF patches it once the tape's
// virtual address is known and wraps the result in a full ELF image.
func (g *X86_64Generator) Generate() []byte {
	g.emitPrologue()

	for i, op := range g.ops {
		if g.targets[i] {
			g.labelAddr[i] = len(g.code)
		}
		g.emitOp(op)
	}

	// Record the final label address, in case a loop's body runs to
	// exactly end-of-stream.
	if g.targets[len(g.ops)] {
		g.labelAddr[len(g.ops)] = len(g.code)
	}

	g.emitEpilogue()
	g.emitHelpers()
	g.resolveFixups()

	log.WithFields(log.Fields{
		"ops":       len(g.ops),
		"codeBytes": len(g.code),
		"fixups":    len(g.fixups),
	}).Debug("linux/x86_64: code generation complete")

	return g.code
}

// GenerateELF produces a complete ELF64 executable: the code segment
// sits at EntryVAddr, and the tape segment sits at the next page
// boundary strictly above it.
func (g *X86_64Generator) GenerateELF() []byte {
	code := g.Generate()

	tapeVAddr := elf.NextPageBoundary(EntryVAddr + uint64(len(code)))
	binary.LittleEndian.PutUint64(code[g.tapeImmOffset:], tapeVAddr)

	log.WithFields(log.Fields{
		"entry":     EntryVAddr,
		"codeBytes": len(code),
		"tapeVAddr": tapeVAddr,
	}).Debug("linux/x86_64: ELF layout resolved")

	builder := elf.NewBuilder()
	builder.SetEntry(EntryVAddr)
	builder.AddLoadSegment(code, EntryVAddr, elf.PF_R|elf.PF_X)
	builder.AddBSSSegment(tapeVAddr, core.TapeSize, elf.PF_R|elf.PF_W)

	return builder.Build()
}

// emitBytes appends a byte slice to the code buffer.
func (g *X86_64Generator) emitBytes(b []byte) {
	g.code = append(g.code, b...)
}

// emitPrologue outputs the program start: initialize R13 (tape base,
// patched later once the tape's virtual address is known) and zero
// R12 (data pointer).
func (g *X86_64Generator) emitPrologue() {
	g.tapeImmOffset = len(g.code) + 2 // REX + opcode precede the imm64
	g.emitBytes(amd64.MovabsR13(0))   // movabs $0, %r13 (placeholder)
	g.emitBytes(amd64.XorR12R12())    // xorq %r12, %r12
}

// emitEpilogue outputs the exit(0) syscall.
func (g *X86_64Generator) emitEpilogue() {
	g.emitBytes(amd64.MovqImm32RAX(sysExit)) // mov $60, %rax
	g.emitBytes(amd64.XorRDIRDI())           // xor %rdi, %rdi
	g.emitBytes(amd64.Syscall())             // syscall
}

// emitHelpers outputs the I/O helper routines, each only if some op
// actually calls it — a program with no `,`/`.` gets neither, so its
// code segment is exactly INIT followed by EXIT.
func (g *X86_64Generator) emitHelpers() {
	if g.needsIn {
		g.helperReadOffset = len(g.code)
		g.emitBytes(amd64.LeaqR13R12ToRSI()) // leaq (%r13,%r12), %rsi
		g.emitBytes(amd64.XorRAXRAX())       // xorq %rax, %rax - syscall 0 (read)
		g.emitBytes(amd64.XorRDIRDI())       // xorq %rdi, %rdi
		g.emitBytes(amd64.MovqImm32RDX(1))   // movq $1, %rdx
		g.emitBytes(amd64.Syscall())         // syscall
		g.emitBytes(amd64.Ret())             // ret
	}

	if g.needsOut {
		g.helperWriteOffset = len(g.code)
		g.emitBytes(amd64.LeaqR13R12ToRSI())      // leaq (%r13,%r12), %rsi
		g.emitBytes(amd64.MovqImm32RAX(sysWrite)) // movq $1, %rax - syscall 1 (write)
		g.emitBytes(amd64.MovqImm32RDI(1))        // movq $1, %rdi
		g.emitBytes(amd64.MovqImm32RDX(1))        // movq $1, %rdx
		g.emitBytes(amd64.Syscall())              // syscall
		g.emitBytes(amd64.Ret())                  // ret
	}
}

// emitOp outputs machine code for a single IR operation.
func (g *X86_64Generator) emitOp(op core.Op) {
	switch op.Kind {
	case core.OpShift:
		g.emitShift(op.Arg)
	case core.OpAdd:
		g.emitAdd(op.Arg)
	case core.OpZero:
		g.emitZero()
	case core.OpIn:
		g.emitIn()
	case core.OpOut:
		g.emitOut()
	case core.OpJz:
		g.emitJz(op.Arg)
	case core.OpJnz:
		g.emitJnz(op.Arg)
	}
}

// emitShift outputs: addq/subq $k, %r12
func (g *X86_64Generator) emitShift(k int) {
	if k == 0 {
		return
	}
	if k > 0 {
		g.emitBytes(amd64.AddqImm32R12(int32(k)))
	} else {
		g.emitBytes(amd64.SubqImm32R12(int32(-k)))
	}
}

// emitAdd outputs: addb/subb $k, (%r13,%r12). Tape cells are unsigned
// bytes, so a net addend is normalized into a single signed byte
// before choosing add or sub, matching the target instructions' own
// 8-bit wrap semantics for runs longer than one byte's range.
func (g *X86_64Generator) emitAdd(k int) {
	k = ((k % 256) + 256) % 256
	if k == 0 {
		return
	}
	if k <= 127 {
		g.emitBytes(amd64.AddbImm8Mem(uint8(k)))
	} else {
		g.emitBytes(amd64.SubbImm8Mem(uint8(256 - k)))
	}
}

// emitZero outputs: movb $0, (%r13,%r12)
func (g *X86_64Generator) emitZero() {
	g.emitBytes(amd64.MovbZeroMem())
}

// emitIn outputs a call to _bf_read, patched once helper offsets are known.
func (g *X86_64Generator) emitIn() {
	g.fixups = append(g.fixups, jumpFixup{offset: len(g.code) + 1, targetIdx: helperRead})
	g.emitBytes(amd64.CallRel32(0))
}

// emitOut outputs a call to _bf_write, patched once helper offsets are known.
func (g *X86_64Generator) emitOut() {
	g.fixups = append(g.fixups, jumpFixup{offset: len(g.code) + 1, targetIdx: helperWrite})
	g.emitBytes(amd64.CallRel32(0))
}

// emitJz outputs: testb $0xff, (%r13,%r12); jz target
func (g *X86_64Generator) emitJz(target int) {
	g.emitBytes(amd64.TestbMem())
	g.fixups = append(g.fixups, jumpFixup{offset: len(g.code) + 2, targetIdx: target})
	g.emitBytes(amd64.JzRel32(0))
}

// emitJnz outputs: testb $0xff, (%r13,%r12); jnz target
func (g *X86_64Generator) emitJnz(target int) {
	g.emitBytes(amd64.TestbMem())
	g.fixups = append(g.fixups, jumpFixup{offset: len(g.code) + 2, targetIdx: target})
	g.emitBytes(amd64.JnzRel32(0))
}

// resolveFixups patches every recorded jump and call target, now that
// every IR index's code offset and both helper offsets are known.
func (g *X86_64Generator) resolveFixups() {
	for _, fixup := range g.fixups {
		var targetAddr int
		switch fixup.targetIdx {
		case helperRead:
			targetAddr = g.helperReadOffset
		case helperWrite:
			targetAddr = g.helperWriteOffset
		default:
			targetAddr = g.labelAddr[fixup.targetIdx]
		}

		// rel32 is relative to the end of the 4-byte immediate field.
		instrEnd := fixup.offset + 4
		rel32 := int32(targetAddr - instrEnd)
		binary.LittleEndian.PutUint32(g.code[fixup.offset:], uint32(rel32))
	}
}
