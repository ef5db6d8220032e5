package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedJitter(offset int) JitterFunc {
	return func(int) int { return offset }
}

func newTestClassifier(opts ...ClassifierOption) *Classifier {
	base := []ClassifierOption{WithJitter(fixedJitter(0))}
	return NewClassifier(NewSignalExtractor(), zap.NewNop(), append(base, opts...)...)
}

func TestClassify_UnsolicitedCV(t *testing.T) {
	classifier := newTestClassifier()
	email := &Email{
		ID:            "cv-1",
		FromAddress:   "jane.doe@gmail.com",
		Subject:       "Spontaneous application",
		Body:          "Hello, please find attached my CV for your consideration.",
		Attachments:   []string{"CV_Jane_Doe.pdf"},
		HasAttachment: true,
	}

	result := classifier.Classify(email)

	assert.Equal(t, CategoryCVUnsolicited, result.Category)
	assert.Equal(t, GroupRecruitment, result.Group)
	assert.GreaterOrEqual(t, result.Confidence, 85)
	assert.False(t, result.IsDoubtful)
	assert.NotEmpty(t, result.Reasoning)
}

func TestClassify_EmptyEmailFallsBack(t *testing.T) {
	classifier := newTestClassifier()
	email := &Email{ID: "empty-1"}

	result := classifier.Classify(email)

	assert.Equal(t, CategoryDoubtful, result.Category)
	assert.Equal(t, GroupOther, result.Group)
	assert.LessOrEqual(t, result.Confidence, 50)
	assert.True(t, result.IsDoubtful)
	assert.Contains(t, result.Reasoning, "insufficient signal")
}

func TestClassify_WeakSignalForcedDoubtful(t *testing.T) {
	classifier := newTestClassifier()
	email := &Email{
		ID:   "weak-1",
		Body: "Any update?",
	}

	result := classifier.Classify(email)

	// One weight-1 keyword lands well below the doubt threshold, so the raw
	// winner is discarded.
	assert.Equal(t, CategoryDoubtful, result.Category)
	assert.Equal(t, GroupOther, result.Group)
	assert.True(t, result.IsDoubtful)
}

func TestClassify_TieBreaksByDeclarationOrder(t *testing.T) {
	classifier := newTestClassifier(WithDoubtThreshold(0))
	email := &Email{
		ID:   "tie-1",
		Body: "Please review the quotation and the contract.",
	}

	result := classifier.Classify(email)

	// quote and contract both score 3; quote is declared first.
	assert.Equal(t, CategoryQuote, result.Category)
	assert.Equal(t, GroupBusiness, result.Group)
	assert.False(t, result.IsDoubtful)
}

func TestClassify_ConfidenceClamped(t *testing.T) {
	email := &Email{
		ID:      "clamp-1",
		Subject: "Invoice for services",
	}

	high := NewClassifier(NewSignalExtractor(), zap.NewNop(), WithJitter(fixedJitter(1000)))
	assert.Equal(t, 100, high.Classify(email).Confidence)

	low := NewClassifier(NewSignalExtractor(), zap.NewNop(), WithJitter(fixedJitter(-1000)))
	assert.Equal(t, 0, low.Classify(email).Confidence)
}

func TestClassify_Totality(t *testing.T) {
	classifier := newTestClassifier()
	validGroups := make(map[Group]bool)
	for _, g := range AllGroups() {
		validGroups[g] = true
	}

	emails := []*Email{
		{ID: "t-1"},
		{ID: "t-2", Subject: "?????", Body: "###"},
		{ID: "t-3", Subject: "Lottery winner, act now", Body: "click here for free money"},
		{ID: "t-4", Subject: "Team meeting agenda", FromAddress: "boss@corp.example"},
		{ID: "t-5", Attachments: []string{"cover_letter.docx"}, HasAttachment: true},
	}

	for _, email := range emails {
		result := classifier.Classify(email)
		require.NotEmpty(t, result.Category, "email %s produced empty category", email.ID)
		assert.True(t, validGroups[result.Group], "email %s produced unknown group %q", email.ID, result.Group)
		assert.GreaterOrEqual(t, result.Confidence, 0)
		assert.LessOrEqual(t, result.Confidence, 100)
	}
}

func TestClassify_DoubtInvariant(t *testing.T) {
	classifier := newTestClassifier()

	emails := []*Email{
		{ID: "d-1"},
		{ID: "d-2", Body: "follow up"},
		{ID: "d-3", Subject: "Spontaneous application", Attachments: []string{"cv.pdf"}, HasAttachment: true},
	}

	for _, email := range emails {
		result := classifier.Classify(email)
		if result.IsDoubtful {
			assert.Equal(t, CategoryDoubtful, result.Category)
			assert.Equal(t, GroupOther, result.Group)
		} else {
			assert.NotEqual(t, CategoryDoubtful, result.Category)
		}
	}
}
