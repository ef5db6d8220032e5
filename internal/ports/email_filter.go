package ports

import (
	"context"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
)

// EmailFilter defines the interface for email ingest adapters
type EmailFilter interface {
	// ProcessEmail triages an email directly
	ProcessEmail(ctx context.Context, email *core.Email) (*core.TriageResult, error)

	// Start starts the ingest adapter
	Start() error

	// Stop stops the ingest adapter
	Stop() error
}
