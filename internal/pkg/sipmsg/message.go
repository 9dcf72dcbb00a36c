// Package sipmsg parses SIP request/response text embedded in CDC signaling
// records. The input is decoded dump text, not wire traffic: vendors
// truncate, re-wrap and partially hex-encode it, so parsing is
// line-oriented and tolerant rather than RFC-strict. Nothing here ever
// transmits SIP.
package sipmsg

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/endorses/cdcat/internal/pkg/constants"
)

// Content is the parsed view of one SIP message.
type Content struct {
	IsRequest  bool     `json:"isRequest,omitempty"`
	IsResponse bool     `json:"isResponse,omitempty"`
	Method     string   `json:"method,omitempty"`
	StatusCode int      `json:"statusCode,omitempty"`
	StatusText string   `json:"statusText,omitempty"`
	Headers    *Headers `json:"headers"`
}

// Message pairs the raw embedded text with its parsed view. Content is kept
// verbatim for audit even when parsing recovers nothing.
type Message struct {
	Content string   `json:"content"`
	Parsed  *Content `json:"parsed"`
}

var responseLineRE = regexp.MustCompile(`^SIP/\d\.\d\s+(\d{3})\s*(.*)$`)

// Parse parses decoded SIP text. It never fails: a message with no
// recognizable start line still yields header parsing over the remaining
// lines, and an empty input yields an empty parsed view.
func Parse(raw string) *Message {
	msg := &Message{Content: raw, Parsed: &Content{Headers: NewHeaders()}}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	if len(text) > constants.MaxSipMessageSize {
		text = text[:constants.MaxSipMessageSize]
	}
	lines := strings.Split(text, "\n")

	startSeen := false
	headerCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if startSeen {
				break // body begins; headers are done
			}
			continue
		}
		if !startSeen {
			startSeen = true
			parseStartLine(trimmed, msg.Parsed)
			continue
		}
		if headerCount >= constants.MaxSipHeaders {
			break
		}
		name, value, ok := strings.Cut(trimmed, ":")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		msg.Parsed.Headers.Add(name, strings.TrimSpace(value))
		headerCount++
	}
	return msg
}

func parseStartLine(line string, c *Content) {
	if m := responseLineRE.FindStringSubmatch(line); m != nil {
		c.IsResponse = true
		c.StatusCode, _ = strconv.Atoi(m[1])
		c.StatusText = m[2]
		return
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	c.IsRequest = true
	c.Method = fields[0]
}

// CallID returns the message's Call-ID header value.
func (m *Message) CallID() (string, bool) {
	if m == nil || m.Parsed == nil {
		return "", false
	}
	return m.Parsed.Headers.Get("Call-ID")
}
