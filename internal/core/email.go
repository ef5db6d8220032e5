package core

import "strings"

// Email represents an inbound email message. It is supplied by the ingest
// adapter and treated as immutable by the triage engine.
type Email struct {
	ID            string
	FromName      string
	FromAddress   string
	To            []string
	Subject       string
	Body          string
	Attachments   []string
	HasAttachment bool
	Headers       map[string][]string
}

// SenderDomain returns the lower-cased domain part of the sender address,
// or an empty string when the address is not well formed.
func (e *Email) SenderDomain() string {
	parts := strings.Split(e.FromAddress, "@")
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}
