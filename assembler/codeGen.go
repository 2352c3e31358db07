package assembler

// Field is a fixed bit range inside an encoded instruction word.
type Field struct {
	Name  string
	Shift uint
	Width uint
}

var (
	FieldOpcode = Field{Name: "opcode", Shift: 26, Width: 6}
	FieldRs     = Field{Name: "rs", Shift: 21, Width: 5}
	FieldRt     = Field{Name: "rt", Shift: 16, Width: 5}
	FieldRd     = Field{Name: "rd", Shift: 11, Width: 5}
	FieldShamt  = Field{Name: "shamt", Shift: 6, Width: 5}
	FieldFunct  = Field{Name: "funct", Shift: 0, Width: 6}
	FieldImm    = Field{Name: "imm", Shift: 0, Width: 16}
	FieldTarget = Field{Name: "target", Shift: 0, Width: 26}
)

// Mask returns the bits the field occupies.
func (f Field) Mask() uint32 {
	return ((1 << f.Width) - 1) << f.Shift
}

// Place truncates value to the field width and shifts it into position.
func (f Field) Place(value uint32) uint32 {
	return (value & ((1 << f.Width) - 1)) << f.Shift
}

// Extract reads the field back out of an instruction word.
func (f Field) Extract(instruction uint32) uint32 {
	return (instruction & f.Mask()) >> f.Shift
}

// compose ORs each value into its field. values[i] belongs to fields[i].
func compose(fields []Field, values []uint32) uint32 {
	instr := uint32(0)
	for i, f := range fields {
		instr |= f.Place(values[i])
	}
	return instr
}

func DecodeRTypeInstruction(instruction uint32) (opcode, rs, rt, rd, shamt, funct uint32) {
	opcode = FieldOpcode.Extract(instruction)
	rs = FieldRs.Extract(instruction)
	rt = FieldRt.Extract(instruction)
	rd = FieldRd.Extract(instruction)
	shamt = FieldShamt.Extract(instruction)
	funct = FieldFunct.Extract(instruction)
	return
}

func DecodeITypeInstruction(instruction uint32) (opcode, rs, rt, imm uint32) {
	opcode = FieldOpcode.Extract(instruction)
	rs = FieldRs.Extract(instruction)
	rt = FieldRt.Extract(instruction)
	imm = FieldImm.Extract(instruction)
	return
}

func DecodeJTypeInstruction(instruction uint32) (opcode, target uint32) {
	opcode = FieldOpcode.Extract(instruction)
	target = FieldTarget.Extract(instruction)
	return
}

func GetOpCode(instruction uint32) uint32 {
	return FieldOpcode.Extract(instruction)
}

// opcode conversions
const (
	OPCODE_RTYPE = 0x00
	OPCODE_J     = 0x02
	OPCODE_JAL   = 0x03
	OPCODE_BEQ   = 0x04
	OPCODE_BNE   = 0x05
	OPCODE_ADDIU = 0x09
	OPCODE_ORI   = 0x0d
	OPCODE_LUI   = 0x0f
	OPCODE_LB    = 0x20
	OPCODE_LW    = 0x23
	OPCODE_LBU   = 0x24
	OPCODE_SB    = 0x28
	OPCODE_SW    = 0x2b
)

// funct values for opcode 0
const (
	FUNCT_SLL  = 0x00
	FUNCT_JR   = 0x08
	FUNCT_MFHI = 0x10
	FUNCT_MFLO = 0x12
	FUNCT_MULT = 0x18
	FUNCT_DIV  = 0x1a
	FUNCT_ADDU = 0x21
	FUNCT_OR   = 0x25
	FUNCT_XOR  = 0x26
	FUNCT_SLT  = 0x2a
	FUNCT_SLTU = 0x2b
)
