// Package webserver hosts a page that assembles MIPS source sent over a
// websocket and shows the intermediate listing, the encoded words and both
// tables.
package webserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/util"
)

type message struct {
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
}

// Result is the reply to an "assemble" message.
type Result struct {
	Type        string                 `json:"type"` // always "result"
	PassOne     string                 `json:"passOne"`
	Hex         string                 `json:"hex"`
	Labels      []assembler.Symbol     `json:"labels"`
	Relocations []assembler.Symbol     `json:"relocations"`
	Diagnostics []assembler.Diagnostic `json:"diagnostics"`
}

type errorReply struct {
	Type string `json:"type"` // always "error"
	Text string `json:"text"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func NewResult(res *assembler.AssembledResult) Result {
	diagnostics := res.Diagnostics
	if diagnostics == nil {
		diagnostics = []assembler.Diagnostic{}
	}
	return Result{
		Type:        "result",
		PassOne:     res.PassOne,
		Hex:         res.HexText,
		Labels:      res.Labels.Entries(),
		Relocations: res.Relocations.Entries(),
		Diagnostics: diagnostics,
	}
}

func handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			util.LogF("read: %v", err)
			return
		}

		msg := message{}
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			conn.WriteJSON(errorReply{Type: "error", Text: "invalid message: " + err.Error()})
			continue
		}

		switch msg.Type {
		case "assemble":
			res := assembler.Assemble(msg.Source)
			if err := conn.WriteJSON(NewResult(res)); err != nil {
				log.Println("write:", err)
				return
			}
		default:
			conn.WriteJSON(errorReply{Type: "error", Text: "unknown message type: " + msg.Type})
		}
	}
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

// Handler serves the page at / and the websocket at /ws.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleSocket)
	mux.HandleFunc("/", handleGetPage)
	return mux
}

func ListenAndServe(addr string) error {
	log.Println("Connect to the assembler at http://localhost" + addr)
	return http.ListenAndServe(addr, Handler())
}

var htmlPage = `<html>
<head>
	<title>MIPS Assembler</title>
</head>
<body style="background-color: #1E1E1E; color: white; font-family: monospace;">
	<h1 style="display: inline-block;">MIPS Assembler</h1>
	<button id="assembleButton" style="margin-left: 50px; height: 40px; width: 100px;">ASSEMBLE</button>
	<br/>
	<textarea id="source" style="width: 980px; height: 300px; background-color: black; color: white;"></textarea>
	<div style="display: flex; gap: 20px;">
		<div><h2>Pass One</h2><pre id="passOne"></pre></div>
		<div><h2>Machine Code</h2><pre id="hex"></pre></div>
		<div><h2>Symbols</h2><pre id="labels"></pre></div>
		<div><h2>Relocations</h2><pre id="relocations"></pre></div>
	</div>
	<h2>Diagnostics</h2>
	<pre id="diagnostics"></pre>

	<script>
		var socket;

		function table(entries) {
			return entries.map(function(e) { return e.addr + "\t" + e.name; }).join("\n");
		}

		function connect() {
			socket = new WebSocket("ws://" + window.location.host + "/ws");
			socket.onmessage = function(event) {
				var data = JSON.parse(event.data);
				if (data.type == "result") {
					document.getElementById("passOne").textContent = data.passOne;
					document.getElementById("hex").textContent = data.hex;
					document.getElementById("labels").textContent = table(data.labels);
					document.getElementById("relocations").textContent = table(data.relocations);
					document.getElementById("diagnostics").textContent = data.diagnostics.map(function(d) {
						return (d.range.start.line + 1) + ":" + d.range.start.character + ": " + d.message;
					}).join("\n");
				} else if (data.type == "error") {
					document.getElementById("diagnostics").textContent = data.text;
				}
			};
			// when the socket closes, try to reconnect every 3 seconds
			socket.onclose = function() {
				setTimeout(connect, 3000);
			};
		}
		connect();

		document.getElementById("assembleButton").onclick = function() {
			socket.send(JSON.stringify({
				type: "assemble",
				source: document.getElementById("source").value
			}));
		};
	</script>
</body>
</html>`
