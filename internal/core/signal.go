package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SignalType identifies where a piece of classification evidence came from.
type SignalType string

const (
	SignalFilename       SignalType = "filename"
	SignalSubjectKeyword SignalType = "subject-keyword"
	SignalBodyKeyword    SignalType = "body-keyword"
	SignalAttachmentKind SignalType = "attachment-kind"
	SignalSenderDomain   SignalType = "sender-domain"
)

// Signal is one weighted piece of evidence supporting a category. Signals are
// computed per classification call and never stored.
type Signal struct {
	Type        SignalType
	Value       string
	Category    Category
	Weight      int
	Description string
}

// Signal weights. Small positive integers reflecting how strongly a signal
// predicts its category. Values preserved from the reference behavior.
const (
	weightCVFilename      = 5
	weightInvoiceFilename = 4
	weightQuoteFilename   = 4
	weightExtensionBonus  = 2
	weightInternalSender  = 4
	weightPlatformSender  = 4
	weightPlatformVendor  = 2
)

// keyword couples a search term with its base weight.
type keyword struct {
	term   string
	weight int
}

// categoryKeywords holds the per-category keyword tables tested against both
// subject and body. Categories without entries (the system categories) are
// only reachable through fallback paths.
var categoryKeywords = map[Category][]keyword{
	CategoryCVUnsolicited: {
		{"spontaneous application", 3},
		{"unsolicited application", 3},
		{"open application", 3},
		{"my cv", 2},
		{"my resume", 2},
		{"curriculum vitae", 2},
		{"looking for opportunities", 2},
	},
	CategoryCVResponse: {
		{"application for the position", 3},
		{"position advertised", 3},
		{"your job posting", 3},
		{"in response to your offer", 2},
		{"apply for", 2},
		{"job offer", 2},
	},
	CategoryInterview: {
		{"interview", 3},
		{"schedule a call", 2},
		{"meet the team", 2},
		{"availability", 1},
		{"video call", 1},
	},
	CategoryCandidateFollowup: {
		{"following up on my application", 3},
		{"status of my application", 3},
		{"follow up", 2},
		{"any update", 1},
	},
	CategoryReferenceCheck: {
		{"reference check", 3},
		{"recommendation letter", 2},
		{"referee", 2},
		{"worked together", 1},
	},
	CategoryPlatformNotification: {
		{"new applicant", 3},
		{"has applied", 2},
		{"new candidate", 2},
		{"job alert", 2},
		{"talent pool", 2},
	},
	CategoryInvoice: {
		{"invoice", 3},
		{"payment due", 2},
		{"amount due", 2},
		{"payment reminder", 2},
		{"billing", 2},
	},
	CategoryQuote: {
		{"quotation", 3},
		{"quote", 2},
		{"estimate", 2},
		{"pricing", 2},
		{"proposal", 1},
	},
	CategoryContract: {
		{"contract", 3},
		{"signature required", 2},
		{"agreement", 2},
		{"terms and conditions", 1},
	},
	CategoryPartnership: {
		{"partnership", 3},
		{"collaboration", 2},
		{"joint venture", 2},
		{"collaborate", 2},
	},
	CategoryVendor: {
		{"service provider", 2},
		{"our services", 2},
		{"renewal", 2},
		{"account manager", 1},
		{"subscription", 1},
	},
	CategoryInternalTeam: {
		{"team meeting", 2},
		{"all hands", 2},
		{"standup", 2},
		{"sprint", 1},
		{"retro", 1},
	},
	CategoryMeeting: {
		{"calendar invite", 3},
		{"reschedule", 2},
		{"meeting", 2},
		{"agenda", 2},
		{"conference room", 1},
	},
	CategoryNewsletter: {
		{"newsletter", 3},
		{"weekly digest", 3},
		{"unsubscribe", 2},
		{"roundup", 2},
	},
	CategoryNotification: {
		{"automated message", 3},
		{"do not reply", 2},
		{"noreply", 2},
		{"confirmation", 2},
	},
	CategorySpam: {
		{"lottery", 3},
		{"free money", 3},
		{"100% free", 3},
		{"act now", 2},
		{"click here", 2},
		{"winner", 2},
	},
	CategoryPhishing: {
		{"verify your account", 3},
		{"confirm your password", 3},
		{"urgent action required", 3},
		{"security alert", 2},
		{"account suspended", 2},
	},
	CategoryAdvertising: {
		{"special offer", 3},
		{"limited offer", 3},
		{"sale ends", 3},
		{"discount", 2},
		{"promo", 2},
	},
	CategoryPersonal: {
		{"birthday", 2},
		{"congratulations", 1},
		{"dinner", 1},
		{"weekend", 1},
	},
}

// Filename pattern families. A match emits a filename signal; combined with a
// document-like extension it also emits an attachment-kind bonus.
var (
	cvFilenameMarkers      = []string{"cv", "resume", "cover letter", "cover_letter", "coverletter", "curriculum"}
	invoiceFilenameMarkers = []string{"invoice", "inv_", "bill", "receipt"}
	quoteFilenameMarkers   = []string{"quote", "quotation", "estimate", "proposal"}
	documentExtensions     = []string{".pdf", ".doc", ".docx"}
)

// DomainChecker classifies sender domains. Implemented by internal/domains.
type DomainChecker interface {
	// IsInternal reports whether the address belongs to the company itself.
	IsInternal(address string) bool
	// IsPlatform reports whether the address belongs to a known hiring platform.
	IsPlatform(address string) bool
}

// SignalExtractor scans an email for weighted classification signals. It is
// stateless and safe for concurrent use.
type SignalExtractor struct {
	domains DomainChecker
}

// ExtractorOption configures a SignalExtractor.
type ExtractorOption func(*SignalExtractor)

// WithDomainChecker wires sender-domain signals. Without it no sender signals
// are emitted.
func WithDomainChecker(checker DomainChecker) ExtractorOption {
	return func(e *SignalExtractor) {
		e.domains = checker
	}
}

// NewSignalExtractor creates a new signal extractor.
func NewSignalExtractor(opts ...ExtractorOption) *SignalExtractor {
	e := &SignalExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans subject, body, sender and attachment filenames and returns
// every matched signal. Pure function of its input: no side effects, no
// stored state. Each keyword fires at most once per field; subject and body
// are scored independently.
func (e *SignalExtractor) Extract(email *Email) []Signal {
	subject := strings.ToLower(email.Subject)
	body := strings.ToLower(email.Body)

	var signals []Signal

	for _, category := range allCategories {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(subject, kw.term) {
				signals = append(signals, Signal{
					Type:        SignalSubjectKeyword,
					Value:       kw.term,
					Category:    category,
					Weight:      kw.weight,
					Description: fmt.Sprintf("subject contains %q", kw.term),
				})
			}
			if strings.Contains(body, kw.term) {
				signals = append(signals, Signal{
					Type:        SignalBodyKeyword,
					Value:       kw.term,
					Category:    category,
					Weight:      kw.weight,
					Description: fmt.Sprintf("body contains %q", kw.term),
				})
			}
		}
	}

	for _, name := range email.Attachments {
		signals = append(signals, extractFilenameSignals(name)...)
	}

	signals = append(signals, e.extractSenderSignals(email.FromAddress)...)

	return signals
}

// ExtractCVSignals restricts extraction to the CV-relevant signal family used
// by light detection: CV-shaped filenames, their extension bonus, and CV
// keywords in subject or body.
func (e *SignalExtractor) ExtractCVSignals(email *Email) []Signal {
	var cvSignals []Signal
	for _, sig := range e.Extract(email) {
		if sig.Category != CategoryCVUnsolicited && sig.Category != CategoryCVResponse {
			continue
		}
		cvSignals = append(cvSignals, sig)
	}
	return cvSignals
}

// extractFilenameSignals emits the pattern-family signals for one attachment
// filename.
func extractFilenameSignals(name string) []Signal {
	lower := strings.ToLower(name)
	ext := filepath.Ext(lower)

	var signals []Signal

	emit := func(markers []string, category Category, filenameWeight int, kind string) {
		for _, marker := range markers {
			if !strings.Contains(lower, marker) {
				continue
			}
			signals = append(signals, Signal{
				Type:        SignalFilename,
				Value:       name,
				Category:    category,
				Weight:      filenameWeight,
				Description: fmt.Sprintf("%s-shaped filename %q", kind, name),
			})
			if isDocumentExtension(ext) {
				signals = append(signals, Signal{
					Type:        SignalAttachmentKind,
					Value:       ext,
					Category:    category,
					Weight:      weightExtensionBonus,
					Description: fmt.Sprintf("document extension %s on %s-shaped file", ext, kind),
				})
			}
			return
		}
	}

	emit(cvFilenameMarkers, CategoryCVUnsolicited, weightCVFilename, "cv")
	emit(invoiceFilenameMarkers, CategoryInvoice, weightInvoiceFilename, "invoice")
	emit(quoteFilenameMarkers, CategoryQuote, weightQuoteFilename, "quote")

	return signals
}

// extractSenderSignals emits domain-membership signals for the sender.
func (e *SignalExtractor) extractSenderSignals(address string) []Signal {
	if e.domains == nil || address == "" {
		return nil
	}

	if e.domains.IsInternal(address) {
		return []Signal{{
			Type:        SignalSenderDomain,
			Value:       address,
			Category:    CategoryInternalTeam,
			Weight:      weightInternalSender,
			Description: "internal sender domain",
		}}
	}

	if e.domains.IsPlatform(address) {
		return []Signal{
			{
				Type:        SignalSenderDomain,
				Value:       address,
				Category:    CategoryPlatformNotification,
				Weight:      weightPlatformSender,
				Description: "hiring platform sender domain",
			},
			{
				Type:        SignalSenderDomain,
				Value:       address,
				Category:    CategoryVendor,
				Weight:      weightPlatformVendor,
				Description: "platform vendor domain",
			},
		}
	}

	return nil
}

func isDocumentExtension(ext string) bool {
	for _, candidate := range documentExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
