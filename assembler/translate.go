package assembler

import (
	"io"
	"math"
	"slices"

	"github.com/samber/lo"
)

type instructionFamily int

const (
	familyRType instructionFamily = iota
	familyShift
	familyJumpRegister
	familyAddImmediate
	familyOrImmediate
	familyLoadUpper
	familyMemory
	familyBranch
	familyJump
	familyMultDiv
	familyMoveFromHiLo
)

// operandContext is everything a family needs to resolve one instruction.
type operandContext struct {
	name   string
	args   []string
	code   uint32 // funct for opcode 0 families, opcode otherwise
	addr   uint32
	symtbl *SymbolTable
	reltbl *SymbolTable
}

type familyInfo struct {
	name   string
	format string
	arity  int
	fields []Field
	// resolve returns one value per entry in fields.
	resolve func(c operandContext) ([]uint32, error)
}

var families = map[instructionFamily]familyInfo{
	familyRType: {
		name:   "R-type",
		format: "<opcode> <rd> <rs> <rt>",
		arity:  3,
		fields: []Field{FieldFunct, FieldRd, FieldRt, FieldRs},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0, 1, 2)
			if err != nil {
				return nil, err
			}
			return []uint32{c.code, regs[0], regs[2], regs[1]}, nil
		},
	},
	familyShift: {
		name:   "Shift",
		format: "<opcode> <rd> <rt> <shamt>",
		arity:  3,
		fields: []Field{FieldFunct, FieldShamt, FieldRd, FieldRt},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0, 1)
			if err != nil {
				return nil, err
			}
			shamt, err := c.immediate(2, 0, 31)
			if err != nil {
				return nil, err
			}
			return []uint32{c.code, uint32(shamt), regs[0], regs[1]}, nil
		},
	},
	familyJumpRegister: {
		name:   "Jump register",
		format: "<opcode> <rs>",
		arity:  1,
		fields: []Field{FieldFunct, FieldRs},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0)
			if err != nil {
				return nil, err
			}
			return []uint32{c.code, regs[0]}, nil
		},
	},
	familyAddImmediate: {
		name:   "I-type",
		format: "<opcode> <rt> <rs> <imm>",
		arity:  3,
		fields: []Field{FieldImm, FieldRt, FieldRs, FieldOpcode},
		resolve: func(c operandContext) ([]uint32, error) {
			return c.immediateArith(math.MinInt16, math.MaxInt16)
		},
	},
	familyOrImmediate: {
		name:   "I-type",
		format: "<opcode> <rt> <rs> <imm>",
		arity:  3,
		fields: []Field{FieldImm, FieldRt, FieldRs, FieldOpcode},
		resolve: func(c operandContext) ([]uint32, error) {
			return c.immediateArith(0, math.MaxUint16)
		},
	},
	familyLoadUpper: {
		name:   "I-type",
		format: "<opcode> <rt> <imm>",
		arity:  2,
		fields: []Field{FieldImm, FieldRt, FieldOpcode},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0)
			if err != nil {
				return nil, err
			}
			imm, err := c.immediate(1, 0, math.MaxUint16)
			if err != nil {
				return nil, err
			}
			return []uint32{uint32(imm), regs[0], c.code}, nil
		},
	},
	familyMemory: {
		name:   "Memory",
		format: "<opcode> <rt> <imm>(<rs>)",
		arity:  3,
		fields: []Field{FieldImm, FieldRt, FieldRs, FieldOpcode},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0, 2)
			if err != nil {
				return nil, err
			}
			imm, err := c.immediate(1, math.MinInt16, math.MaxInt16)
			if err != nil {
				return nil, err
			}
			return []uint32{uint32(imm), regs[0], regs[1], c.code}, nil
		},
	},
	familyBranch: {
		name:   "Branch",
		format: "<opcode> <rs> <rt> <label>",
		arity:  3,
		fields: []Field{FieldImm, FieldRt, FieldRs, FieldOpcode},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0, 1)
			if err != nil {
				return nil, err
			}
			label := c.args[2]
			if !IsValidLabel(label) {
				return nil, newError(ErrInvalidLabel, c.name, label)
			}
			target, ok := c.symtbl.Lookup(label)
			if !ok {
				return nil, newError(ErrUndefinedSymbol, c.name, label)
			}
			if !canBranchTo(c.addr, target) {
				return nil, newError(ErrUnreachableBranchTarget, c.name, label)
			}
			return []uint32{uint32(BranchOffset(c.addr, target)), regs[1], regs[0], c.code}, nil
		},
	},
	familyJump: {
		name:   "J-type",
		format: "<opcode> <label>",
		arity:  1,
		fields: []Field{FieldTarget, FieldOpcode},
		resolve: func(c operandContext) ([]uint32, error) {
			label := c.args[0]
			if !IsValidLabel(label) {
				return nil, newError(ErrInvalidLabel, c.name, label)
			}
			// the target is patched by the linker
			if err := c.reltbl.Add(label, c.addr); err != nil {
				return nil, withMnemonic(err, c.name)
			}
			return []uint32{0, c.code}, nil
		},
	},
	familyMultDiv: {
		name:   "R-type",
		format: "<opcode> <rs> <rt>",
		arity:  2,
		fields: []Field{FieldFunct, FieldRt, FieldRs},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0, 1)
			if err != nil {
				return nil, err
			}
			return []uint32{c.code, regs[1], regs[0]}, nil
		},
	},
	familyMoveFromHiLo: {
		name:   "R-type",
		format: "<opcode> <rd>",
		arity:  1,
		fields: []Field{FieldFunct, FieldRd},
		resolve: func(c operandContext) ([]uint32, error) {
			regs, err := c.registers(0)
			if err != nil {
				return nil, err
			}
			return []uint32{c.code, regs[0]}, nil
		},
	},
}

type encoderSpec struct {
	family instructionFamily
	code   uint32
}

var encoderTable = map[string]encoderSpec{
	"addu":  {familyRType, FUNCT_ADDU},
	"or":    {familyRType, FUNCT_OR},
	"slt":   {familyRType, FUNCT_SLT},
	"sltu":  {familyRType, FUNCT_SLTU},
	"xor":   {familyRType, FUNCT_XOR},
	"sll":   {familyShift, FUNCT_SLL},
	"jr":    {familyJumpRegister, FUNCT_JR},
	"addiu": {familyAddImmediate, OPCODE_ADDIU},
	"ori":   {familyOrImmediate, OPCODE_ORI},
	"lui":   {familyLoadUpper, OPCODE_LUI},
	"lb":    {familyMemory, OPCODE_LB},
	"lbu":   {familyMemory, OPCODE_LBU},
	"lw":    {familyMemory, OPCODE_LW},
	"sb":    {familyMemory, OPCODE_SB},
	"sw":    {familyMemory, OPCODE_SW},
	"beq":   {familyBranch, OPCODE_BEQ},
	"bne":   {familyBranch, OPCODE_BNE},
	"j":     {familyJump, OPCODE_J},
	"jal":   {familyJump, OPCODE_JAL},
	"mult":  {familyMultDiv, FUNCT_MULT},
	"div":   {familyMultDiv, FUNCT_DIV},
	"mfhi":  {familyMoveFromHiLo, FUNCT_MFHI},
	"mflo":  {familyMoveFromHiLo, FUNCT_MFLO},
}

// Mnemonics returns every mnemonic pass two can encode, sorted.
func Mnemonics() []string {
	names := lo.Keys(encoderTable)
	slices.Sort(names)
	return names
}

// FieldLayout returns the fields an encoded mnemonic is built from, in
// placement order.
func FieldLayout(mnemonic string) ([]Field, bool) {
	enc, ok := encoderTable[mnemonic]
	if !ok {
		return nil, false
	}
	return slices.Clone(families[enc.family].fields), true
}

// InstructionFormat returns the family name and operand format of mnemonic.
func InstructionFormat(mnemonic string) (family, format string, ok bool) {
	enc, ok := encoderTable[mnemonic]
	if !ok {
		return "", "", false
	}
	info := families[enc.family]
	return info.name, info.format, true
}

// TranslateInstruction encodes name/args, located at addr, and writes the word
// to w as 8 hex digits and a newline. symtbl must be given for branches and
// reltbl for jumps; a jump appends (label, addr) to reltbl and leaves its
// target field zero. Nothing is written when an error is returned.
func TranslateInstruction(w io.Writer, name string, args []string, addr uint32, symtbl, reltbl *SymbolTable) error {
	instruction, err := EncodeInstruction(name, args, addr, symtbl, reltbl)
	if err != nil {
		Logger.Printf("Error: %v\n", err)
		return err
	}
	return writeInstHex(w, instruction)
}

// EncodeInstruction is TranslateInstruction without the output.
func EncodeInstruction(name string, args []string, addr uint32, symtbl, reltbl *SymbolTable) (uint32, error) {
	enc, ok := encoderTable[name]
	if !ok {
		return 0, newError(ErrUnknownMnemonic, name, "")
	}
	if enc.family == familyBranch && symtbl == nil {
		return 0, newError(ErrMissingRequiredTable, name, "symbol table")
	}
	if enc.family == familyJump && reltbl == nil {
		return 0, newError(ErrMissingRequiredTable, name, "relocation table")
	}

	info := families[enc.family]
	if len(args) != info.arity {
		return 0, newError(ErrInvalidArgumentCount, name, info.format)
	}
	if lo.Contains(args, "") {
		return 0, newError(ErrMissingArgument, name, "")
	}

	values, err := info.resolve(operandContext{
		name:   name,
		args:   args,
		code:   enc.code,
		addr:   addr,
		symtbl: symtbl,
		reltbl: reltbl,
	})
	if err != nil {
		return 0, err
	}
	return compose(info.fields, values), nil
}

// canBranchTo reports whether dest is within a 16-bit word offset of src+4.
func canBranchTo(src, dest uint32) bool {
	diff := int32(dest - src)
	return (diff >= 0 && diff <= 1<<17) || (diff < 0 && diff >= -(1<<17-4))
}

// BranchOffset is the word distance from the instruction after src to dest.
func BranchOffset(src, dest uint32) int32 {
	return (int32(dest-src) - 4) / 4
}

func (c operandContext) registers(indices ...int) ([]uint32, error) {
	regs := make([]uint32, len(indices))
	for i, idx := range indices {
		reg, err := ParseRegister(c.args[idx])
		if err != nil {
			return nil, withMnemonic(err, c.name)
		}
		regs[i] = reg
	}
	return regs, nil
}

func (c operandContext) immediate(idx int, lower, upper int64) (int64, error) {
	imm, err := ParseInteger(c.args[idx], lower, upper)
	if err != nil {
		return 0, withMnemonic(err, c.name)
	}
	return imm, nil
}

// immediateArith resolves the <rt> <rs> <imm> operand order of addiu and ori.
func (c operandContext) immediateArith(lower, upper int64) ([]uint32, error) {
	regs, err := c.registers(0, 1)
	if err != nil {
		return nil, err
	}
	imm, err := c.immediate(2, lower, upper)
	if err != nil {
		return nil, err
	}
	return []uint32{uint32(imm), regs[0], regs[1], c.code}, nil
}
