package amd64_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcox74/bfcc/pkg/amd64"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}
	return b
}

func TestInstructionEncodings(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{"MovabsR13", amd64.MovabsR13(0x1000), "49 BD 00 10 00 00 00 00 00 00"},
		{"XorR12R12", amd64.XorR12R12(), "4D 31 E4"},
		{"AddqImm32R12", amd64.AddqImm32R12(5), "49 81 C4 05 00 00 00"},
		{"SubqImm32R12", amd64.SubqImm32R12(5), "49 81 EC 05 00 00 00"},
		{"AddbImm8Mem", amd64.AddbImm8Mem(1), "43 80 44 25 00 01"},
		{"SubbImm8Mem", amd64.SubbImm8Mem(1), "43 80 6C 25 00 01"},
		{"MovbZeroMem", amd64.MovbZeroMem(), "43 C6 44 25 00 00"},
		{"TestbMem", amd64.TestbMem(), "43 F6 44 25 00 FF"},
		{"JzRel32", amd64.JzRel32(0), "0F 84 00 00 00 00"},
		{"JnzRel32", amd64.JnzRel32(0), "0F 85 00 00 00 00"},
		{"CallRel32", amd64.CallRel32(0), "E8 00 00 00 00"},
		{"Ret", amd64.Ret(), "C3"},
		{"Syscall", amd64.Syscall(), "0F 05"},
		{"LeaqR13R12ToRSI", amd64.LeaqR13R12ToRSI(), "4B 8D 74 25 00"},
		{"XorRAXRAX", amd64.XorRAXRAX(), "48 31 C0"},
		{"XorRDIRDI", amd64.XorRDIRDI(), "48 31 FF"},
		{"MovqImm32RAX", amd64.MovqImm32RAX(60), "48 C7 C0 3C 00 00 00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, hexBytes(t, tc.want), tc.got)
		})
	}
}

func TestJumpRel32IsSignedAndNegativeCapable(t *testing.T) {
	got := amd64.JzRel32(-16)
	assert.Equal(t, hexBytes(t, "0F 84 F0 FF FF FF"), got)
}
