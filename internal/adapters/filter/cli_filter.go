package filter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
)

// CliFilter triages a single email and prints the result to stdout.
type CliFilter struct {
	service *core.TriageService
	logger  *zap.Logger
	verbose bool
}

// NewCliFilter creates a new CLI filter
func NewCliFilter(service *core.TriageService, logger *zap.Logger, verbose bool) (*CliFilter, error) {
	return &CliFilter{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessEmail triages an email and displays the results
func (f *CliFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.TriageResult, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.FromAddress))

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s <%s>\n", email.FromName, email.FromAddress)
	fmt.Printf("To: %s\n", strings.Join(email.To, ", "))
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))
	if len(email.Attachments) > 0 {
		fmt.Printf("Attachments: %s\n", strings.Join(email.Attachments, ", "))
	}

	if f.verbose {
		preview := email.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Triage ===\n")
	result := f.service.Triage(ctx, email)
	classification := result.Classification

	fmt.Printf("Category: %s\n", classification.Category)
	fmt.Printf("Group: %s\n", classification.Group)
	fmt.Printf("Confidence: %d\n", classification.Confidence)
	fmt.Printf("Doubtful: %t\n", classification.IsDoubtful)
	fmt.Printf("Reasoning: %s\n", classification.Reasoning)

	detection := result.CVDetection
	fmt.Printf("\n=== CV Detection ===\n")
	fmt.Printf("State: %s\n", detection.State)
	if detection.Light != nil {
		fmt.Printf("Light confidence: %d\n", detection.Light.Confidence)
		fmt.Printf("Likely CV: %t\n", detection.Light.IsLikelyCV)
	}
	if extraction := detection.Extraction; extraction != nil && extraction.Data != nil {
		data := extraction.Data
		fmt.Printf("\n=== Candidate ===\n")
		fmt.Printf("Name: %s\n", data.Name)
		fmt.Printf("Email: %s\n", data.Email)
		fmt.Printf("Phone: %s\n", data.Phone)
		fmt.Printf("Target position: %s\n", data.TargetPosition)
		fmt.Printf("Skills: %s\n", strings.Join(data.Skills, ", "))
		fmt.Printf("Years of experience: %d\n", data.YearsExperience)
		fmt.Printf("Education: %s\n", data.Education)
		fmt.Printf("Languages: %s\n", strings.Join(data.Languages, ", "))
		fmt.Printf("Model used: %s\n", extraction.ModelUsed)
	}
	for _, msg := range detection.Errors {
		fmt.Printf("Extraction error: %s\n", msg)
	}

	fmt.Printf("\nProcessing time: %v\n", result.Duration)

	return result, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
