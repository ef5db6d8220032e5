package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDomains is a fixed-answer DomainChecker for tests.
type stubDomains struct {
	internal bool
	platform bool
}

func (s stubDomains) IsInternal(string) bool { return s.internal }
func (s stubDomains) IsPlatform(string) bool { return s.platform }

func signalsFor(signals []Signal, category Category) []Signal {
	var out []Signal
	for _, sig := range signals {
		if sig.Category == category {
			out = append(out, sig)
		}
	}
	return out
}

func totalWeight(signals []Signal) int {
	total := 0
	for _, sig := range signals {
		total += sig.Weight
	}
	return total
}

func TestExtract_SubjectAndBodyScoreIndependently(t *testing.T) {
	extractor := NewSignalExtractor()
	email := &Email{
		ID:      "msg-1",
		Subject: "Sending you my CV",
		Body:    "Please find my CV attached.",
	}

	signals := signalsFor(extractor.Extract(email), CategoryCVUnsolicited)
	require.Len(t, signals, 2)

	types := map[SignalType]bool{}
	for _, sig := range signals {
		assert.Equal(t, "my cv", sig.Value)
		assert.Equal(t, 2, sig.Weight)
		types[sig.Type] = true
	}
	assert.True(t, types[SignalSubjectKeyword])
	assert.True(t, types[SignalBodyKeyword])
}

func TestExtract_FilenameSignals(t *testing.T) {
	extractor := NewSignalExtractor()

	tests := []struct {
		name       string
		attachment string
		category   Category
		wantTotal  int
	}{
		{
			name:       "cv pdf gets filename weight plus extension bonus",
			attachment: "John_Doe_CV.pdf",
			category:   CategoryCVUnsolicited,
			wantTotal:  7,
		},
		{
			name:       "invoice pdf",
			attachment: "invoice_2024_001.pdf",
			category:   CategoryInvoice,
			wantTotal:  6,
		},
		{
			name:       "quote spreadsheet has no document extension bonus",
			attachment: "quote_website.xlsx",
			category:   CategoryQuote,
			wantTotal:  4,
		},
		{
			name:       "resume docx",
			attachment: "resume-final.docx",
			category:   CategoryCVUnsolicited,
			wantTotal:  7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := &Email{
				ID:            "msg-2",
				Attachments:   []string{tt.attachment},
				HasAttachment: true,
			}
			signals := signalsFor(extractor.Extract(email), tt.category)
			assert.Equal(t, tt.wantTotal, totalWeight(signals))
		})
	}
}

func TestExtract_UnrelatedAttachmentEmitsNothing(t *testing.T) {
	extractor := NewSignalExtractor()
	email := &Email{
		ID:            "msg-3",
		Attachments:   []string{"holiday_photo.jpg"},
		HasAttachment: true,
	}
	assert.Empty(t, extractor.Extract(email))
}

func TestExtract_SenderSignals(t *testing.T) {
	t.Run("internal sender", func(t *testing.T) {
		extractor := NewSignalExtractor(WithDomainChecker(stubDomains{internal: true}))
		email := &Email{ID: "msg-4", FromAddress: "colleague@acme.example"}

		signals := extractor.Extract(email)
		require.Len(t, signals, 1)
		assert.Equal(t, SignalSenderDomain, signals[0].Type)
		assert.Equal(t, CategoryInternalTeam, signals[0].Category)
		assert.Equal(t, 4, signals[0].Weight)
	})

	t.Run("platform sender splits between platform and vendor", func(t *testing.T) {
		extractor := NewSignalExtractor(WithDomainChecker(stubDomains{platform: true}))
		email := &Email{ID: "msg-5", FromAddress: "jobs-noreply@linkedin.com"}

		signals := extractor.Extract(email)
		require.Len(t, signals, 2)
		assert.Equal(t, CategoryPlatformNotification, signals[0].Category)
		assert.Equal(t, 4, signals[0].Weight)
		assert.Equal(t, CategoryVendor, signals[1].Category)
		assert.Equal(t, 2, signals[1].Weight)
	})

	t.Run("no checker means no sender signals", func(t *testing.T) {
		extractor := NewSignalExtractor()
		email := &Email{ID: "msg-6", FromAddress: "someone@linkedin.com"}
		assert.Empty(t, extractor.Extract(email))
	})
}

func TestExtractCVSignals_FiltersToCVFamily(t *testing.T) {
	extractor := NewSignalExtractor()
	email := &Email{
		ID:            "msg-7",
		Subject:       "Application for the position of backend engineer",
		Body:          "Invoice attached for last month. Also my resume.",
		Attachments:   []string{"invoice_77.pdf", "resume.pdf"},
		HasAttachment: true,
	}

	signals := extractor.ExtractCVSignals(email)
	require.NotEmpty(t, signals)
	for _, sig := range signals {
		assert.Contains(t, []Category{CategoryCVUnsolicited, CategoryCVResponse}, sig.Category)
	}
}
