package assembler

import (
	"errors"
)

// Error kinds reported by the table, the validators, pass one and pass two.
var (
	ErrMisalignedAddress       = errors.New("address is not a multiple of 4")
	ErrDuplicateName           = errors.New("name already exists in table")
	ErrInvalidArgumentCount    = errors.New("invalid argument count")
	ErrMissingArgument         = errors.New("missing argument")
	ErrInvalidRegister         = errors.New("invalid register")
	ErrNumberOutOfRange        = errors.New("number out of range")
	ErrUnparseable             = errors.New("unparseable number")
	ErrInvalidLabel            = errors.New("invalid label")
	ErrUndefinedSymbol         = errors.New("undefined symbol")
	ErrUnreachableBranchTarget = errors.New("branch target out of range")
	ErrUnknownMnemonic         = errors.New("unknown mnemonic")
	ErrMissingRequiredTable    = errors.New("missing required table")
)

// TranslationError ties an error kind to the construct that caused it.
type TranslationError struct {
	Kind      error
	Mnemonic  string
	Construct string
}

func (e *TranslationError) Error() string {
	msg := e.Kind.Error()
	if e.Construct != "" {
		msg += ": \"" + e.Construct + "\""
	}
	if e.Mnemonic != "" {
		msg += " (in " + e.Mnemonic + ")"
	}
	return msg
}

func (e *TranslationError) Unwrap() error {
	return e.Kind
}

func newError(kind error, mnemonic, construct string) *TranslationError {
	return &TranslationError{Kind: kind, Mnemonic: mnemonic, Construct: construct}
}

// withMnemonic attaches the instruction name to an error coming out of a validator.
func withMnemonic(err error, mnemonic string) error {
	var te *TranslationError
	if errors.As(err, &te) && te.Mnemonic == "" {
		return newError(te.Kind, mnemonic, te.Construct)
	}
	return err
}

// Errors
type assemblyError struct{}

var Errors assemblyError

func (assemblyError) FromError(err error, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  errorMessage(err),
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) InvalidSymbolName(symbolName string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Invalid symbol name: \"" + symbolName + "\", symbol names must start with a letter or underscore and contain only alphanumeric characters and underscores",
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) DuplicateLabel(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" already exists",
		Source:   "Assembler",
		Severity: Error,
	}
}

// Warnings
type assemblyWarning struct{}

var Warnings assemblyWarning

func (assemblyWarning) IgnoredDirective(directive string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Directive \"" + directive + "\" is ignored",
		Source:   "Assembler",
		Severity: Warning,
	}
}

func errorMessage(err error) string {
	var te *TranslationError
	if !errors.As(err, &te) {
		return err.Error()
	}

	switch te.Kind {
	case ErrInvalidRegister:
		return "Expected register, got: \"" + te.Construct + "\""
	case ErrNumberOutOfRange:
		return "Immediate value \"" + te.Construct + "\" is out of range for " + te.Mnemonic
	case ErrUnparseable:
		return "Expected integer literal, got: \"" + te.Construct + "\""
	case ErrInvalidLabel:
		return "Invalid label: \"" + te.Construct + "\""
	case ErrUndefinedSymbol:
		return "Unresolved symbol name: \"" + te.Construct + "\""
	case ErrUnreachableBranchTarget:
		return "Label \"" + te.Construct + "\" is too far away for " + te.Mnemonic + ". Use j instead"
	case ErrUnknownMnemonic:
		return "Invalid instruction: \"" + te.Mnemonic + "\""
	case ErrInvalidArgumentCount:
		return "Invalid instruction format for " + te.Mnemonic + "\nFormat: " + te.Construct
	}
	return te.Error()
}
