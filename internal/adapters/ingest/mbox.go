package ingest

import (
	"fmt"
	"io"

	"github.com/emersion/go-mbox"
	"github.com/jobsy/jobmail-analyzer/internal/core"
)

// ReadMbox reads every message out of an mbox stream. Messages that
// fail to parse are skipped.
func ReadMbox(r io.Reader) ([]*core.RawEmail, error) {
	mr := mbox.NewReader(r)

	var emails []*core.RawEmail
	for {
		msg, err := mr.NextMessage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read mbox message: %w", err)
		}

		email, err := ParseMessage(msg)
		if err != nil {
			continue
		}
		emails = append(emails, email)
	}

	return emails, nil
}
