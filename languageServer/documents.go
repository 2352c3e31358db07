package languageServer

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/util"
)

func (h *handler) assembleAndReportDiagnostics(uri DocumentURI) []assembler.Diagnostic {
	doc := h.documents[string(uri)]

	assembledRes := assembler.Assemble(doc.Text)
	if assembledRes.Diagnostics == nil {
		assembledRes.Diagnostics = make([]assembler.Diagnostic, 0)
	}
	doc.lastAssembledResult = assembledRes
	h.documents[string(uri)] = doc
	return assembledRes.Diagnostics
}

func (h *handler) documentOpenNotification(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	h.documents[string(decodedParams.TextDocument.URI)] = decodedParams.TextDocument

	diagnostics := h.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     decodedParams.TextDocument.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentCloseNotification(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	delete(h.documents, string(decodedParams.TextDocument.URI))
}

func (h *handler) documentChangeNotification(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) || len(decodedParams.ContentChanges) == 0 {
		return
	}

	doc := h.documents[string(decodedParams.TextDocument.URI)]
	doc.URI = decodedParams.TextDocument.URI
	doc.Text = decodedParams.ContentChanges[len(decodedParams.ContentChanges)-1].Text
	doc.Version = decodedParams.TextDocument.Version
	h.documents[string(decodedParams.TextDocument.URI)] = doc

	diagnostics := h.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentDiagnostics(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	diagnostics := h.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Reply(ctx, req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// reformatDocument indents every instruction line past the longest label and
// puts a single space after each label definition.
func reformatDocument(text string) string {
	assembledRes := assembler.Assemble(text)

	maxLabelLength := lo.Max(lo.Map(assembledRes.Labels.Entries(), func(s assembler.Symbol, _ int) int {
		return len(s.Name)
	}))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		withoutComment, comment, hasComment := strings.Cut(line, "#")
		lineWithoutWhitespace := strings.Join(strings.Fields(withoutComment), " ")
		if hasComment {
			comment = "#" + strings.TrimRight(comment, " \t\r")
			if lineWithoutWhitespace != "" {
				comment = " " + comment
			}
		}

		if lineWithoutWhitespace == "" {
			lines[i] = comment
		} else if strings.HasPrefix(lineWithoutWhitespace, ".") {
			lines[i] = lineWithoutWhitespace + comment
		} else if label, rest, found := strings.Cut(lineWithoutWhitespace, ":"); found {
			rest = strings.TrimLeft(rest, " ")
			if rest == "" {
				lines[i] = label + ":" + comment
			} else {
				lines[i] = label + ": " + rest + comment
			}
		} else {
			lines[i] = strings.Repeat(" ", maxLabelLength+2) + lineWithoutWhitespace + comment
		}
	}
	return strings.Join(lines, "\n")
}

func (h *handler) documentWillSaveWaitUntil(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	text := h.documents[string(decodedParams.TextDocument.URI)].Text
	lines := strings.Split(text, "\n")

	edits := []TextEdit{
		{
			Range: assembler.TextRange{
				Start: assembler.TextPosition{Line: 0, Char: 0},
				End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
			},
			NewText: reformatDocument(text),
		},
	}

	conn.Reply(ctx, req.ID, edits)
	util.LogF("MIPS Language Server: reformatted document")
}
