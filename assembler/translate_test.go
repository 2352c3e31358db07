package assembler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"
)

type encodingTest struct {
	name     string
	args     string
	addr     uint32
	expected string
}

func validateEncoding(t *testing.T, tests []encodingTest, symtbl, reltbl *assembler.SymbolTable) {
	t.Helper()
	for _, test := range tests {
		out := bytes.Buffer{}
		err := assembler.TranslateInstruction(&out, test.name, strings.Fields(test.args), test.addr, symtbl, reltbl)
		if err != nil {
			t.Errorf("Expected %s %s to encode, got %v", test.name, test.args, err)
			continue
		}
		if out.String() != test.expected+"\n" {
			t.Errorf("Expected %s %s to be %s, got %q", test.name, test.args, test.expected, out.String())
		}
	}
}

func validateEncodingError(t *testing.T, name, args string, addr uint32, symtbl, reltbl *assembler.SymbolTable, kind error) {
	t.Helper()
	out := bytes.Buffer{}
	err := assembler.TranslateInstruction(&out, name, strings.Fields(args), addr, symtbl, reltbl)
	if !errors.Is(err, kind) {
		t.Errorf("Expected %s %s to fail with %v, got %v", name, args, kind, err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected nothing written for %s %s, got %q", name, args, out.String())
	}
}

func TestEncodeRType(t *testing.T) {
	validateEncoding(t, []encodingTest{
		{"addu", "$t0 $t1 $t2", 0, "012a4021"},
		{"or", "$s0 $s1 $s2", 0, "02328025"},
		{"slt", "$t0 $t1 $t2", 0, "012a402a"},
		{"sltu", "$t0 $t1 $t2", 0, "012a402b"},
		{"xor", "$at $at $t2", 0, "002a0826"},
		{"addu", "$zero $0 $ra", 0, "001f0021"},
		{"sll", "$t0 $t1 4", 0, "00094100"},
		{"sll", "$ra $ra 31", 0, "001fffc0"},
		{"jr", "$ra", 0, "03e00008"},
		{"mult", "$t0 $t1", 0, "01090018"},
		{"div", "$t1 $t2", 0, "012a001a"},
		{"mfhi", "$t0", 0, "00004010"},
		{"mflo", "$t0", 0, "00004012"},
	}, nil, nil)
}

func TestEncodeIType(t *testing.T) {
	validateEncoding(t, []encodingTest{
		{"addiu", "$t0 $0 5", 0, "24080005"},
		{"addiu", "$sp $sp -4", 0, "27bdfffc"},
		{"addiu", "$t0 $t0 32767", 0, "25087fff"},
		{"addiu", "$t0 $t0 -32768", 0, "25088000"},
		{"ori", "$t0 $at 34464", 0, "342886a0"},
		{"ori", "$t0 $at 0xFFFF", 0, "3428ffff"},
		{"lui", "$at 1", 0, "3c010001"},
		{"lui", "$at 65535", 0, "3c01ffff"},
		{"lw", "$t0 0 $sp", 0, "8fa80000"},
		{"sw", "$t0 -4 $sp", 0, "afa8fffc"},
		{"lb", "$t1 3 $a0", 0, "80890003"},
		{"lbu", "$t1 3 $a0", 0, "90890003"},
		{"sb", "$t1 3 $a0", 0, "a0890003"},
	}, nil, nil)
}

func TestEncodeBranch(t *testing.T) {
	symtbl := assembler.NewSymbolTable(assembler.Unique)
	symtbl.Add("start", 0)
	symtbl.Add("label", 8)
	symtbl.Add("far", 131072)

	validateEncoding(t, []encodingTest{
		// (8 - 0 - 4) / 4 = 1
		{"beq", "$t0 $t1 label", 0, "11090001"},
		{"beq", "$t0 $t1 label", 4, "11090000"},
		// (0 - 16 - 4) / 4 = -5
		{"bne", "$t0 $t1 start", 16, "1509fffb"},
		{"beq", "$0 $0 far", 0, "10007fff"},
		{"bne", "$0 $0 start", 131068, "14008000"},
	}, symtbl, nil)
}

func TestEncodeBranchRange(t *testing.T) {
	symtbl := assembler.NewSymbolTable(assembler.Unique)
	symtbl.Add("start", 0)
	symtbl.Add("beyond", 131076)

	validateEncodingError(t, "beq", "$t0 $t1 beyond", 0, symtbl, nil, assembler.ErrUnreachableBranchTarget)
	validateEncodingError(t, "bne", "$t0 $t1 start", 131072, symtbl, nil, assembler.ErrUnreachableBranchTarget)
	validateEncodingError(t, "beq", "$t0 $t1 nowhere", 0, symtbl, nil, assembler.ErrUndefinedSymbol)
	validateEncodingError(t, "beq", "$t0 $t1 9lives", 0, symtbl, nil, assembler.ErrInvalidLabel)
	validateEncodingError(t, "beq", "$t0 $t9 start", 0, symtbl, nil, assembler.ErrInvalidRegister)
}

func TestEncodeJumpRecordsRelocation(t *testing.T) {
	reltbl := assembler.NewSymbolTable(assembler.NonUnique)

	validateEncoding(t, []encodingTest{
		{"j", "label", 12, "08000000"},
		{"jal", "func", 16, "0c000000"},
		{"j", "label", 40, "08000000"},
	}, nil, reltbl)

	expected := []assembler.Symbol{{Name: "label", Addr: 12}, {Name: "func", Addr: 16}, {Name: "label", Addr: 40}}
	entries := reltbl.Entries()
	if len(entries) != len(expected) {
		t.Fatalf("Expected %d relocations, got %d (%v)", len(expected), len(entries), entries)
	}
	for i, e := range entries {
		if e != expected[i] {
			t.Errorf("Expected relocation %d to be %v, got %v", i, expected[i], e)
		}
	}
}

func TestEncodeJumpErrorsLeaveRelocationsUntouched(t *testing.T) {
	reltbl := assembler.NewSymbolTable(assembler.NonUnique)

	validateEncodingError(t, "j", "1abc", 0, nil, reltbl, assembler.ErrInvalidLabel)
	validateEncodingError(t, "jal", "func", 6, nil, reltbl, assembler.ErrMisalignedAddress)
	validateEncodingError(t, "j", "a b", 0, nil, reltbl, assembler.ErrInvalidArgumentCount)

	if reltbl.Len() != 0 {
		t.Errorf("Expected no relocations, got %v", reltbl.Entries())
	}
}

func TestEncodeRequiresTables(t *testing.T) {
	validateEncodingError(t, "beq", "$t0 $t1 label", 0, nil, assembler.NewSymbolTable(assembler.NonUnique), assembler.ErrMissingRequiredTable)
	validateEncodingError(t, "bne", "$t0 $t1 label", 0, nil, nil, assembler.ErrMissingRequiredTable)
	validateEncodingError(t, "j", "label", 0, assembler.NewSymbolTable(assembler.Unique), nil, assembler.ErrMissingRequiredTable)
	validateEncodingError(t, "jal", "label", 0, nil, nil, assembler.ErrMissingRequiredTable)
}

func TestEncodeUnknownMnemonic(t *testing.T) {
	symtbl := assembler.NewSymbolTable(assembler.Unique)
	reltbl := assembler.NewSymbolTable(assembler.NonUnique)
	for _, args := range []string{"", "$t0", "$t0 $t1 $t2", "a b c d e"} {
		validateEncodingError(t, "foobar", args, 0, symtbl, reltbl, assembler.ErrUnknownMnemonic)
		validateEncodingError(t, "foobar", args, 0, nil, nil, assembler.ErrUnknownMnemonic)
	}
	// pseudo-instructions must be expanded first
	validateEncodingError(t, "li", "$t0 5", 0, symtbl, reltbl, assembler.ErrUnknownMnemonic)
	validateEncodingError(t, "ADDU", "$t0 $t1 $t2", 0, symtbl, reltbl, assembler.ErrUnknownMnemonic)
}

func TestEncodeOperandErrors(t *testing.T) {
	tests := []struct {
		name, args string
		kind       error
	}{
		{"addiu", "$t0 $0 40000", assembler.ErrNumberOutOfRange},
		{"addiu", "$t0 $0 -32769", assembler.ErrNumberOutOfRange},
		{"addiu", "$t0 $0 five", assembler.ErrUnparseable},
		{"addiu", "$t0 $0", assembler.ErrInvalidArgumentCount},
		{"ori", "$t0 $0 -1", assembler.ErrNumberOutOfRange},
		{"ori", "$t0 $0 65536", assembler.ErrNumberOutOfRange},
		{"lui", "$t0 65536", assembler.ErrNumberOutOfRange},
		{"lui", "$t0 $t1 1", assembler.ErrInvalidArgumentCount},
		{"sll", "$t0 $t1 32", assembler.ErrNumberOutOfRange},
		{"sll", "$t0 $t1 -1", assembler.ErrNumberOutOfRange},
		{"lw", "$t0 40000 $sp", assembler.ErrNumberOutOfRange},
		{"sw", "$t0 0 sp", assembler.ErrInvalidRegister},
		{"addu", "$t0 $t1 $t9", assembler.ErrInvalidRegister},
		{"addu", "$t0 $t1", assembler.ErrInvalidArgumentCount},
		{"or", "$t0 $t1 $t2 $t3", assembler.ErrInvalidArgumentCount},
		{"jr", "", assembler.ErrInvalidArgumentCount},
		{"jr", "ra", assembler.ErrInvalidRegister},
		{"mult", "$t0", assembler.ErrInvalidArgumentCount},
		{"mfhi", "$hi", assembler.ErrInvalidRegister},
	}
	for _, test := range tests {
		validateEncodingError(t, test.name, test.args, 0, nil, nil, test.kind)
	}
}

func TestEncodeMissingArgument(t *testing.T) {
	out := bytes.Buffer{}
	err := assembler.TranslateInstruction(&out, "addu", []string{"$t0", "", "$t1"}, 0, nil, nil)
	if !errors.Is(err, assembler.ErrMissingArgument) || out.Len() != 0 {
		t.Errorf("Expected ErrMissingArgument with no output, got %v, %q", err, out.String())
	}
}

func TestFieldLayoutsDoNotOverlap(t *testing.T) {
	for _, mnemonic := range assembler.Mnemonics() {
		layout, ok := assembler.FieldLayout(mnemonic)
		if !ok || len(layout) == 0 {
			t.Fatalf("Expected a field layout for %s", mnemonic)
		}
		used := uint32(0)
		for _, f := range layout {
			if f.Shift+f.Width > 32 {
				t.Errorf("%s: field %s runs past bit 31", mnemonic, f.Name)
			}
			if used&f.Mask() != 0 {
				t.Errorf("%s: field %s overlaps an earlier field", mnemonic, f.Name)
			}
			used |= f.Mask()
		}
	}
}

func TestEncodedFieldsRoundTrip(t *testing.T) {
	word, err := assembler.EncodeInstruction("addu", []string{"$s3", "$a2", "$fp"}, 0, nil, nil)
	if err != nil {
		t.Fatalf("Expected addu to encode, got %v", err)
	}
	opcode, rs, rt, rd, shamt, funct := assembler.DecodeRTypeInstruction(word)
	if opcode != 0 || rs != 6 || rt != 30 || rd != 19 || shamt != 0 || funct != assembler.FUNCT_ADDU {
		t.Errorf("Unexpected fields %d %d %d %d %d %d", opcode, rs, rt, rd, shamt, funct)
	}

	word, err = assembler.EncodeInstruction("lw", []string{"$v0", "-8", "$fp"}, 0, nil, nil)
	if err != nil {
		t.Fatalf("Expected lw to encode, got %v", err)
	}
	opcode, rs, rt, imm := assembler.DecodeITypeInstruction(word)
	if opcode != assembler.OPCODE_LW || rs != 30 || rt != 2 || int16(imm) != -8 {
		t.Errorf("Unexpected fields %d %d %d %d", opcode, rs, rt, imm)
	}

	reltbl := assembler.NewSymbolTable(assembler.NonUnique)
	word, err = assembler.EncodeInstruction("jal", []string{"func"}, 4, nil, reltbl)
	if err != nil {
		t.Fatalf("Expected jal to encode, got %v", err)
	}
	opcode, target := assembler.DecodeJTypeInstruction(word)
	if opcode != assembler.OPCODE_JAL || target != 0 {
		t.Errorf("Unexpected fields %d %d", opcode, target)
	}
}

func TestMnemonicsCoverEveryFamily(t *testing.T) {
	expected := []string{"addiu", "addu", "beq", "bne", "div", "j", "jal", "jr", "lb", "lbu", "lui", "lw",
		"mfhi", "mflo", "mult", "or", "ori", "sb", "sll", "slt", "sltu", "sw", "xor"}
	got := assembler.Mnemonics()
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
