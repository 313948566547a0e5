package notifier

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Transcript writes outgoing mail as plain-text files instead of talking to
// an SMTP server. One file per message, named after the send time and the
// recipient.
type Transcript struct {
	dir string
}

func NewTranscript(dir string) (*Transcript, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create email dir: %w", err)
	}

	return &Transcript{dir: dir}, nil
}

func (t *Transcript) Send(to, subject, body string) (string, error) {
	ts := time.Now().UTC().Format("20060102T150405Z")
	safe := strings.ReplaceAll(to, "@", "_at_")
	name := filepath.Join(t.dir, fmt.Sprintf("email_%s_%s.txt", ts, safe))

	content := fmt.Sprintf("To: %s\nSubject: %s\n\n%s\n", to, subject, body)
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return name, nil
}
