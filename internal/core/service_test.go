package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *TriageService {
	extractor := NewSignalExtractor()
	classifier := NewClassifier(extractor, zap.NewNop(), WithJitter(fixedJitter(0)))
	funnel := NewCVDetectionFunnel(extractor, &mockExtractorClient{
		result: &CVExtractionResult{Data: &ExtractedCandidateData{Name: "Jane Doe"}},
	}, zap.NewNop())
	return NewTriageService(classifier, funnel, zap.NewNop())
}

func TestTriage_CombinesBothAnalyses(t *testing.T) {
	service := newTestService()

	result := service.Triage(context.Background(), cvEmail())

	assert.NotEmpty(t, result.ProcessingID)
	assert.Equal(t, "cv-mail", result.EmailID)
	require.NotNil(t, result.Classification)
	require.NotNil(t, result.CVDetection)
	assert.Equal(t, CategoryCVUnsolicited, result.Classification.Category)
	assert.Equal(t, StateCompleted, result.CVDetection.State)
	assert.False(t, result.ProcessedAt.IsZero())
}

func TestTriage_UniqueProcessingIDs(t *testing.T) {
	service := newTestService()
	email := invoiceEmail()

	first := service.Triage(context.Background(), email)
	second := service.Triage(context.Background(), email)

	assert.NotEqual(t, first.ProcessingID, second.ProcessingID)
	assert.Equal(t, first.Classification.Category, second.Classification.Category)
}

func TestTriageBatch_PreservesInputOrder(t *testing.T) {
	service := newTestService()

	emails := make([]*Email, 20)
	for i := range emails {
		emails[i] = &Email{
			ID:      fmt.Sprintf("batch-%d", i),
			Subject: "Your invoice",
		}
	}

	results := service.TriageBatch(context.Background(), emails, 4)
	require.Len(t, results, len(emails))
	for i, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, emails[i].ID, result.EmailID)
	}
}

func TestTriageBatch_SingleWorkerFloor(t *testing.T) {
	service := newTestService()
	emails := []*Email{{ID: "one"}, {ID: "two"}}

	results := service.TriageBatch(context.Background(), emails, 0)
	require.Len(t, results, 2)
	assert.Equal(t, "one", results[0].EmailID)
	assert.Equal(t, "two", results[1].EmailID)
}

func TestTriageBatch_CancelledContextStopsDispatch(t *testing.T) {
	service := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emails := make([]*Email, 50)
	for i := range emails {
		emails[i] = &Email{ID: fmt.Sprintf("c-%d", i)}
	}

	results := service.TriageBatch(ctx, emails, 2)
	require.Len(t, results, len(emails), "result slice keeps its shape even when cancelled")

	// Undispatched emails are left as nil entries per the documented
	// contract; completed ones stay aligned with their input index.
	undispatched := 0
	for i, result := range results {
		if result == nil {
			undispatched++
			continue
		}
		assert.Equal(t, emails[i].ID, result.EmailID)
	}
	assert.Positive(t, undispatched, "a pre-cancelled context leaves at least one email undispatched")
}
