// Package chat reassembles exported chat transcripts into messages.
//
// A transcript is a sequence of lines where each logical message starts with
// a header such as "[1/1/24, 10:00] John: 3BHK for rent" and may continue on
// unmarked lines until the next header.
package chat

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// Message is one sender's logical message.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"message"`
}

// headerRE matches "[<timestamp>] <sender>: <text>".
var headerRE = regexp.MustCompile(`^\[[^\]]+\]\s+(.+?):\s+(.*)`)

// ParseHeader splits a header line into sender and first text fragment.
// The sender has leading non-word characters stripped; ok is false when the
// line is not a header.
func ParseHeader(line string) (sender, text string, ok bool) {
	m := headerRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	sender = strings.TrimLeftFunc(strings.TrimSpace(m[1]), isNonWord)
	return sender, strings.TrimSpace(m[2]), true
}

func isNonWord(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

// accumulator collects the fragments of the message being read.
type accumulator struct {
	sender    string
	fragments []string
}

func (a *accumulator) message() Message {
	return Message{
		Sender: a.sender,
		Text:   strings.TrimSpace(strings.Join(a.fragments, " ")),
	}
}

// Reassemble turns raw transcript lines into messages in input order.
//
// Lines before the first header are dropped. Continuation lines, blank ones
// included, are appended to the open message. A header whose sender is empty
// after stripping opens a message that is discarded with its continuations.
func Reassemble(lines []string) []Message {
	var messages []Message
	var current *accumulator

	flush := func() {
		if current != nil && current.sender != "" {
			messages = append(messages, current.message())
		}
	}

	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)

		if sender, text, ok := ParseHeader(line); ok {
			flush()
			current = &accumulator{sender: sender, fragments: []string{text}}
			continue
		}

		if current != nil {
			current.fragments = append(current.fragments, line)
		}
	}
	flush()

	return messages
}

// ReadTranscript reads a transcript file as a whole and splits it into lines.
// A leading BOM is removed, CRLF endings are normalized and invalid UTF-8 is
// replaced rather than rejected.
func ReadTranscript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits transcript content into lines without end-of-line markers.
func SplitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ToValidUTF8(content, "\uFFFD")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
