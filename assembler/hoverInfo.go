package assembler

type hoverInfoFormatsType struct {
	labelDefinition string
	labelReference  string
	labelRelocation string
	integerLiteral  string
	register        string
	encoding        string
	pseudo          string
}

var hoverInfoFormats = hoverInfoFormatsType{
	labelDefinition: "Definition of label `%s`.\n\n Address of 0x%X",
	labelReference:  "Reference to label `%s`\n\nAddress of 0x%X",
	labelRelocation: "Reference to label `%s`\n\nLeft for the linker; %d relocation record(s)",
	integerLiteral:  "Integer Literal `%d` (`%s`)",
	register:        "Register `%s` (`$%d`). %s",
	encoding:        "%s\n\n%s instruction, format `%s`\n\nFields: %s",
	pseudo:          "%s\n\nPseudo-instruction, expands to:\n\n```\n%s```",
}

var registerDescriptions = map[uint32]string{
	0:  "Always evaluates to `0`",
	1:  "Reserved for the assembler",
	2:  "Function result",
	4:  "Function argument",
	5:  "Function argument",
	6:  "Function argument",
	7:  "Function argument",
	8:  "Temporary, not preserved across calls",
	9:  "Temporary, not preserved across calls",
	10: "Temporary, not preserved across calls",
	11: "Temporary, not preserved across calls",
	16: "Saved, preserved across calls",
	17: "Saved, preserved across calls",
	18: "Saved, preserved across calls",
	19: "Saved, preserved across calls",
	29: "Stack pointer",
	30: "Frame pointer",
	31: "Return address",
}

var instructionDescriptions = map[string]string{
	"addu":  "Add Unsigned Instruction.\n\nExample: `addu $t0, $t1, $t2` is the same as `$t0 = $t1 + $t2`",
	"or":    "OR Instruction.\n\nExample: `or $t0, $t1, $t2` is the same as `$t0 = $t1 | $t2`",
	"slt":   "Set Less Than Instruction.\n\nExample: `slt $t0, $t1, $t2` sets `$t0` to `1` if `$t1 < $t2`, otherwise `0`",
	"sltu":  "Set Less Than Unsigned Instruction.\n\nExample: `sltu $t0, $t1, $t2` sets `$t0` to `1` if `$t1 < $t2`, otherwise `0`\n\nNote that this is an unsigned comparison.",
	"xor":   "XOR Instruction.\n\nExample: `xor $t0, $t1, $t2` is the same as `$t0 = $t1 ^ $t2`",
	"sll":   "Shift Left Logical Instruction.\n\nExample: `sll $t0, $t1, 2` is the same as `$t0 = $t1 << 2`\n\nThe shift amount must be between 0 and 31.",
	"jr":    "Jump Register Instruction.\n\nExample: `jr $ra` is the same as `pc = $ra`",
	"addiu": "Add Immediate Unsigned Instruction.\n\nExample: `addiu $t0, $t1, 40` is the same as `$t0 = $t1 + 40`\n\nNote that the immediate is a signed 16-bit value, so it must be between -32768 and 32767.",
	"ori":   "OR Immediate Instruction.\n\nExample: `ori $t0, $t1, 0xFF` is the same as `$t0 = $t1 | 0xFF`\n\nNote that the immediate is an unsigned 16-bit value, so it must be between 0 and 65535.",
	"lui":   "Load Upper Immediate Instruction.\n\nExample: `lui $t0, 0x1234` is the same as `$t0 = 0x12340000`",
	"lb":    "Load Byte Instruction.\n\nExample: `lb $t0, 4($sp)` is the same as `$t0 = mem[$sp + 4]`, sign extended",
	"lbu":   "Load Byte Unsigned Instruction.\n\nExample: `lbu $t0, 4($sp)` is the same as `$t0 = mem[$sp + 4]`, zero extended",
	"lw":    "Load Word Instruction.\n\nExample: `lw $t0, 4($sp)` is the same as `$t0 = mem[$sp + 4]`",
	"sb":    "Store Byte Instruction.\n\nExample: `sb $t0, 4($sp)` is the same as `mem[$sp + 4] = $t0 & 0xFF`",
	"sw":    "Store Word Instruction.\n\nExample: `sw $t0, 4($sp)` is the same as `mem[$sp + 4] = $t0`",
	"beq":   "Branch Equal Instruction.\n\nExample: `beq $t0, $t1, loop` is the same as `if $t0 == $t1 { goto loop }`\n\nThe label must be within 32768 words of the next instruction.",
	"bne":   "Branch Not Equal Instruction.\n\nExample: `bne $t0, $t1, loop` is the same as `if $t0 != $t1 { goto loop }`\n\nThe label must be within 32768 words of the next instruction.",
	"j":     "Jump Instruction.\n\nExample: `j loop` is the same as `goto loop`\n\nThe target is filled in by the linker.",
	"jal":   "Jump and Link Instruction.\n\nExample: `jal func` is the same as `$ra = pc + 4; goto func`\n\nThe target is filled in by the linker.",
	"mult":  "Multiply Instruction.\n\nExample: `mult $t0, $t1` puts the 64-bit product in `hi` and `lo`",
	"div":   "Divide Instruction.\n\nExample: `div $t0, $t1` puts the quotient in `lo` and the remainder in `hi`",
	"mfhi":  "Move From HI Instruction.\n\nExample: `mfhi $t0` is the same as `$t0 = hi`",
	"mflo":  "Move From LO Instruction.\n\nExample: `mflo $t0` is the same as `$t0 = lo`",

	"li":   "Load Immediate.\n\nExample: `li $t0, 100000` is the same as `$t0 = 100000`",
	"push": "Push.\n\nExample: `push $t0` decrements `$sp` by 4 and stores `$t0` there",
	"pop":  "Pop.\n\nExample: `pop $t0` loads `$t0` from `$sp` and increments `$sp` by 4",
	"mod":  "Modulo.\n\nExample: `mod $t0, $t1, $t2` is the same as `$t0 = $t1 % $t2`",
	"subu": "Subtract Unsigned.\n\nExample: `subu $t0, $t1, $t2` is the same as `$t0 = $t1 - $t2`\n\nNote that this clobbers `$at`.",
}
