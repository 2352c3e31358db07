package assembler

type AssembledResult struct {
	Labels            *SymbolTable   // label name to address, unique names
	Relocations       *SymbolTable   // jump targets left for the linker, keyed by the jump's address
	LabelToLineNumber map[string]int // label name to line number
	AddressToLine     map[uint32]int // address to source line number
	PassOne           string         // pseudo-free intermediate listing
	ProgramText       []uint32
	HexText           string // one word per line, 8 lowercase hex digits
	Diagnostics       []Diagnostic
	fileContents      []string    // each line of the file
	FileName          string      // for reflection
	lineLengthDeltas  map[int]int // characters consumed by a label definition at the start of the line
	passOneToLine     []int       // source line of each pass one output line
	addressToWord     map[uint32]uint32
}

// Instruction is a single mnemonic and its ordered arguments.
type Instruction struct {
	Mnemonic string
	Args     []string
}

type AssemblerConfig struct {
	TextBaseAddress  uint32 // must be a multiple of 4
	StopOnFirstError bool
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type CodeDescription struct {
	URL string `json:"href"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range           TextRange          `json:"range"`
	Message         string             `json:"message"`
	Source          string             `json:"source,omitempty"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitempty"`
	Severity        DiagnosticSeverity `json:"severity,omitempty"`
}
