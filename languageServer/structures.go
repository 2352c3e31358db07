package languageServer

import "github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"

// Only the subset of the protocol the MIPS server answers is modelled here.
// Positions and diagnostics reuse the assembler's types, which already carry
// the protocol's JSON names.

type DocumentURI string

// Documents
type (
	TextDocumentItem struct {
		URI        DocumentURI `json:"uri"`
		LanguageID string      `json:"languageId"`
		Version    int         `json:"version"`
		Text       string      `json:"text"`

		lastAssembledResult *assembler.AssembledResult
	}

	TextDocumentIdentifier struct {
		URI DocumentURI `json:"uri"`
	}

	VersionedTextDocumentIdentifier struct {
		URI     DocumentURI `json:"uri"`
		Version int         `json:"version"`
	}

	// only full document sync is registered, so a change carries the whole text
	TextDocumentContentChangeEvent struct {
		Text string `json:"text"`
	}

	DidOpenTextDocumentParams struct {
		TextDocument TextDocumentItem `json:"textDocument"`
	}

	DidCloseTextDocumentParams struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}

	DidChangeTextDocumentParams struct {
		TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
		ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
	}

	DocumentWillSaveWaitUntilParams struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
		Reason       int                    `json:"reason"`
	}

	TextEdit struct {
		Range   assembler.TextRange `json:"range"`
		NewText string              `json:"newText"`
	}
)

// Diagnostics
type (
	DocumentDiagnosticsParams struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}

	DocumentDiagnosticsReport struct {
		Kind  string                 `json:"kind"` // always "full"
		Items []assembler.Diagnostic `json:"items"`
	}

	PublishDiagnosticsParams struct {
		URI         DocumentURI            `json:"uri"`
		Version     int                    `json:"version"`
		Diagnostics []assembler.Diagnostic `json:"diagnostics"`
	}
)

// Hover
type (
	TextDocumentPositionParams struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
		Position     assembler.TextPosition `json:"position"`
	}

	MarkupContent struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}

	Hover struct {
		Contents MarkupContent `json:"contents"`
	}
)

// Lifecycle and capabilities
type (
	InitializeParams struct {
		ProcessID int    `json:"processId"`
		RootURI   string `json:"rootUri,omitempty"`
	}

	ServerInfo struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	}

	ServerCapabilities struct {
		TextDocumentSync int  `json:"textDocumentSync"` // 1 is full sync
		HoverProvider    bool `json:"hoverProvider"`
	}

	InitializeResult struct {
		Capabilities ServerCapabilities `json:"capabilities"`
		ServerInfo   ServerInfo         `json:"serverInfo"`
	}

	DocumentFilter struct {
		Language string `json:"language"`
		Scheme   string `json:"scheme"`
	}

	TextDocumentRegistrationOptions struct {
		DocumentSelector []DocumentFilter `json:"documentSelector"`
	}

	Registration struct {
		ID              string      `json:"id"`
		Method          string      `json:"method"`
		RegisterOptions interface{} `json:"registerOptions"`
	}

	RegistrationParams struct {
		Registrations []Registration `json:"registrations"`
	}
)
