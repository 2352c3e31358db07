package assembler

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	initialTableSize = 5
	scalingFactor    = 2
)

// TableMode selects whether a SymbolTable accepts repeated names.
type TableMode int

const (
	NonUnique TableMode = iota // relocation records, one per referencing instruction
	Unique                     // labels
)

func (m TableMode) String() string {
	if m == Unique {
		return "unique"
	}
	return "non-unique"
}

// Symbol is a name bound to a word-aligned byte address.
type Symbol struct {
	Name string `json:"name"`
	Addr uint32 `json:"addr"`
}

// SymbolTable is an append-only, insertion-ordered store of symbols. It is
// used both for labels (Unique) and for relocation records (NonUnique).
// It is not safe for concurrent use.
type SymbolTable struct {
	entries []Symbol       // len(entries) is the entry count, cap(entries) the backing capacity
	first   map[string]int // name to index of its first entry
	mode    TableMode
}

// Logger receives the diagnostic lines written by table inserts, pass one
// and pass two.
var Logger = log.New(os.Stderr, "", 0)

// FatalHandler is called when the table cannot allocate storage. It must not
// return; the default logs the message and terminates the process.
var FatalHandler = func(msg string) {
	Logger.Println(msg)
	os.Exit(1)
}

// maxTableCapacity bounds the backing storage; growing past it is treated as
// an allocation failure.
var maxTableCapacity = math.MaxInt32

func allocationFailed() {
	FatalHandler("Error: allocation failed")
	panic("assembler: FatalHandler returned after allocation failure")
}

func allocateSymbols(length, capacity int) (s []Symbol) {
	if capacity <= 0 || capacity > maxTableCapacity {
		allocationFailed()
	}
	defer func() {
		if r := recover(); r != nil {
			allocationFailed()
		}
	}()
	return make([]Symbol, length, capacity)
}

// NewSymbolTable creates an empty table with the initial capacity.
func NewSymbolTable(mode TableMode) *SymbolTable {
	return &SymbolTable{
		entries: allocateSymbols(0, initialTableSize),
		first:   make(map[string]int),
		mode:    mode,
	}
}

func (t *SymbolTable) Mode() TableMode {
	return t.mode
}

func (t *SymbolTable) Len() int {
	return len(t.entries)
}

// Cap returns the capacity of the backing storage. It only ever doubles.
func (t *SymbolTable) Cap() int {
	return cap(t.entries)
}

// Add appends name at addr. The table is left unchanged if addr is not word
// aligned or, in Unique mode, if name is already present.
func (t *SymbolTable) Add(name string, addr uint32) error {
	if addr%4 != 0 {
		Logger.Println("Error: address is not a multiple of 4.")
		return newError(ErrMisalignedAddress, "", strconv.FormatUint(uint64(addr), 10))
	}
	if _, ok := t.first[name]; ok && t.mode == Unique {
		Logger.Printf("Error: name '%s' already exists in table.\n", name)
		return newError(ErrDuplicateName, "", name)
	}

	if len(t.entries) == cap(t.entries) {
		t.grow()
	}

	owned := strings.Clone(name)
	t.entries = append(t.entries, Symbol{Name: owned, Addr: addr})
	if _, ok := t.first[owned]; !ok {
		t.first[owned] = len(t.entries) - 1
	}
	return nil
}

func (t *SymbolTable) grow() {
	if cap(t.entries) > maxTableCapacity/scalingFactor {
		allocationFailed()
	}
	grown := allocateSymbols(len(t.entries), cap(t.entries)*scalingFactor)
	copy(grown, t.entries)
	t.entries = grown
}

// Lookup returns the address of the first entry named name.
func (t *SymbolTable) Lookup(name string) (uint32, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.first[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].Addr, true
}

// Entries returns a copy of the entries in insertion order.
func (t *SymbolTable) Entries() []Symbol {
	out := make([]Symbol, len(t.entries))
	copy(out, t.entries)
	return out
}

// WriteTo writes one "<addr>\t<name>\n" line per entry in insertion order.
func (t *SymbolTable) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range t.entries {
		n, err := fmt.Fprintf(w, "%d\t%s\n", s.Addr, s.Name)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Destroy releases every entry. The table is empty afterwards and must not
// be reused.
func (t *SymbolTable) Destroy() {
	t.entries = nil
	t.first = nil
}
