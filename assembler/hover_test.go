package assembler_test

import (
	"strings"
	"testing"

	"github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"
)

func validateHover(t *testing.T, program *assembler.AssembledResult, line, char int, expected ...string) {
	t.Helper()
	text, ok := program.EvaluateHover(assembler.TextPosition{Line: line, Char: char})
	if !ok {
		t.Errorf("Expected hover at %d:%d", line, char)
		return
	}
	for _, e := range expected {
		if !strings.Contains(text, e) {
			t.Errorf("Expected hover at %d:%d to contain %q, got %q", line, char, e, text)
		}
	}
}

func TestHover(t *testing.T) {
	source := strings.Join([]string{
		"main:\tli $t0, 100000",
		"\tj main",
		"\tjr $ra",
		"\tjal elsewhere",
	}, "\n")
	program := assembler.Assemble(source)
	if len(program.Diagnostics) != 0 {
		t.Fatalf("Unexpected diagnostics %v", program.Diagnostics)
	}

	validateHover(t, program, 0, 1, "Definition of label `main`", "Address of 0x0")
	validateHover(t, program, 0, 6, "Pseudo-instruction", "lui $at 1\nori $t0 $at 34464\n")
	validateHover(t, program, 0, 10, "Register `$t0` (`$8`)")
	validateHover(t, program, 0, 15, "Integer Literal `100000` (`0x186a0`)")
	validateHover(t, program, 1, 3, "Reference to label `main`", "Address of 0x0")
	validateHover(t, program, 2, 1, "Jump register instruction", "`rs` [25:21]", "`0x0000000c`: `03e00008`")
	validateHover(t, program, 3, 6, "Reference to label `elsewhere`", "1 relocation record(s)")
}

func TestHoverNothingToDescribe(t *testing.T) {
	program := assembler.Assemble("\tjr $ra\n")
	positions := []assembler.TextPosition{
		{Line: 0, Char: 0},
		{Line: 0, Char: 3},
		{Line: 1, Char: 0},
		{Line: 5, Char: 0},
		{Line: -1, Char: 0},
	}
	for _, p := range positions {
		if text, ok := program.EvaluateHover(p); ok {
			t.Errorf("Expected no hover at %v, got %q", p, text)
		}
	}
}
