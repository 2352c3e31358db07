package webserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/webserver"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(webserver.Handler())
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestAssembleOverWebsocket(t *testing.T) {
	conn := dial(t)

	source := "main: li $t0, 100000\n\tj main\n\tfoo"
	if err := conn.WriteJSON(map[string]string{"type": "assemble", "source": source}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	res := webserver.Result{}
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if res.Type != "result" {
		t.Errorf("Expected a result, got %q", res.Type)
	}
	if res.PassOne != "lui $at 1\nori $t0 $at 34464\nj main\nfoo\n" {
		t.Errorf("Unexpected pass one output %q", res.PassOne)
	}
	if res.Hex != "3c010001\n342886a0\n08000000\n" {
		t.Errorf("Unexpected hex output %q", res.Hex)
	}
	if len(res.Labels) != 1 || res.Labels[0] != (assembler.Symbol{Name: "main", Addr: 0}) {
		t.Errorf("Unexpected labels %v", res.Labels)
	}
	if len(res.Relocations) != 1 || res.Relocations[0] != (assembler.Symbol{Name: "main", Addr: 8}) {
		t.Errorf("Unexpected relocations %v", res.Relocations)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Message != "Invalid instruction: \"foo\"" {
		t.Errorf("Unexpected diagnostics %v", res.Diagnostics)
	}
}

func TestRejectsUnknownMessages(t *testing.T) {
	conn := dial(t)

	reply := map[string]string{}
	conn.WriteJSON(map[string]string{"type": "run"})
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if reply["type"] != "error" || !strings.Contains(reply["text"], "unknown message type: run") {
		t.Errorf("Unexpected reply %v", reply)
	}

	conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
	reply = map[string]string{}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if reply["type"] != "error" || !strings.HasPrefix(reply["text"], "invalid message") {
		t.Errorf("Unexpected reply %v", reply)
	}
}

func TestServesPage(t *testing.T) {
	server := httptest.NewServer(webserver.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.Header.Get("Content-Type") != "text/html" || !strings.Contains(string(body), "MIPS Assembler") {
		t.Errorf("Unexpected page %q", body)
	}
}
