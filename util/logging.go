package util

import (
	"fmt"
	"log"
	"net/http"
	"strings"
)

var LoggingEnabled = false

// LogEndpoint, when set, receives each message as a text/plain POST instead
// of the standard logger.
var LogEndpoint = ""

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	message := fmt.Sprintf(format, args...)
	if LogEndpoint == "" {
		log.Println(message)
		return
	}
	go http.Post(LogEndpoint, "text/plain", strings.NewReader(message))
}
