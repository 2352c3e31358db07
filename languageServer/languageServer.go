package languageServer

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/util"
)

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// ListenAndServe serves a single client over stdin and stdout.
func ListenAndServe() {
	<-Serve(context.Background(), stdrwc{}).DisconnectNotify()
}

// Serve starts a language server connection over rwc.
func Serve(ctx context.Context, rwc io.ReadWriteCloser) *jsonrpc2.Conn {
	h := newHandler()
	return jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), h)
}

// ListenAndServeTCP accepts clients on addr so the server can be debugged
// remotely.
func ListenAndServeTCP(addr string) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen for tcp traffic: %v", err)
	}
	defer lis.Close()

	log.Println("MIPS Language Server: listening for TCP connections on", addr)

	connectionCount := 0
	for {
		conn, err := lis.Accept()
		if err != nil {
			log.Fatalf("failed to accept incoming connection: %v", err)
		}
		connectionCount = connectionCount + 1
		connectionID := connectionCount
		log.Printf("MIPS Language Server: received incoming connection #%d\n", connectionID)
		jsonrpc2Connection := Serve(context.Background(), conn)
		go func() {
			<-jsonrpc2Connection.DisconnectNotify()
			log.Printf("MIPS Language Server: connection #%d closed\n", connectionID)
		}()
	}
}

type handler struct {
	mu        sync.Mutex
	documents map[string]TextDocumentItem // uri to document
}

func newHandler() *handler {
	return &handler{documents: make(map[string]TextDocumentItem)}
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("MIPS Language Server: received request: %s", req.Method)
	h.mu.Lock()
	defer h.mu.Unlock()

	switch req.Method {
	case "initialize":
		h.handleInitialize(ctx, conn, req)
	case "textDocument/didOpen":
		h.documentOpenNotification(ctx, conn, req)
	case "textDocument/didClose":
		h.documentCloseNotification(ctx, conn, req)
	case "textDocument/didChange":
		h.documentChangeNotification(ctx, conn, req)
	case "textDocument/diagnostic":
		h.documentDiagnostics(ctx, conn, req)
	case "textDocument/willSaveWaitUntil":
		h.documentWillSaveWaitUntil(ctx, conn, req)
	case "textDocument/hover":
		h.hoverRequest(ctx, conn, req)

	// quitting
	case "shutdown":
		conn.Reply(ctx, req.ID, nil)
	case "exit":
		conn.Close()
	default:
		if !req.Notif {
			conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method})
		}
	}
}

// decodeParams unmarshals the request parameters, replying with an error if
// they are missing or malformed.
func decodeParams(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, v interface{}) bool {
	if req.Params != nil && json.Unmarshal(*req.Params, v) == nil {
		return true
	}
	if !req.Notif {
		rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(ctx, req.ID, &rpcErr)
	}
	return false
}

func (h *handler) handleInitialize(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if !decodeParams(ctx, conn, req, &decodedParams) {
		return
	}

	util.LogF("MIPS Language Server: client process %d, root %q", decodedParams.ProcessID, decodedParams.RootURI)
	conn.Reply(ctx, req.ID, InitializeResult{
		Capabilities: ServerCapabilities{TextDocumentSync: 1, HoverProvider: true},
		ServerInfo:   ServerInfo{Name: "mipsasm"},
	})

	registerRemainingCapabilities(conn)
}

func registerRemainingCapabilities(conn *jsonrpc2.Conn) {
	util.LogF("MIPS Language Server: registering remaining capabilities")
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: "mips",
						},
					},
				},
			},
		},
	}

	go conn.Call(context.Background(), "client/registerCapability", params, nil)
}
