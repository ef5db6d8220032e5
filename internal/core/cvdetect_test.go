package core

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockExtractorClient counts calls and returns a canned result or error.
type mockExtractorClient struct {
	calls  atomic.Int64
	result *CVExtractionResult
	err    error
	block  bool
}

func (m *mockExtractorClient) ExtractCandidate(ctx context.Context, email *Email) (*CVExtractionResult, error) {
	m.calls.Add(1)
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func cvEmail() *Email {
	return &Email{
		ID:            "cv-mail",
		Subject:       "Spontaneous application",
		Body:          "Please find attached my CV.",
		Attachments:   []string{"CV_Jane.pdf"},
		HasAttachment: true,
	}
}

func invoiceEmail() *Email {
	return &Email{
		ID:            "invoice-mail",
		Subject:       "Your invoice for March",
		Body:          "Amount due: 1200 EUR. Payment due in 30 days.",
		Attachments:   []string{"invoice_march.pdf"},
		HasAttachment: true,
	}
}

func TestRunLightDetection(t *testing.T) {
	funnel := NewCVDetectionFunnel(NewSignalExtractor(), nil, zap.NewNop())

	t.Run("cv email scores high", func(t *testing.T) {
		light := funnel.RunLightDetection(cvEmail())
		assert.Equal(t, 100, light.Confidence)
		assert.True(t, light.IsLikelyCV)
		assert.NotEmpty(t, light.Signals)
	})

	t.Run("invoice email never looks like a cv", func(t *testing.T) {
		light := funnel.RunLightDetection(invoiceEmail())
		assert.Equal(t, 0, light.Confidence)
		assert.False(t, light.IsLikelyCV)
	})

	t.Run("empty email yields zero without failing", func(t *testing.T) {
		light := funnel.RunLightDetection(&Email{ID: "empty"})
		assert.Equal(t, 0, light.Confidence)
		assert.False(t, light.IsLikelyCV)
	})
}

func TestProcess_GatesExtraction(t *testing.T) {
	t.Run("below threshold rests at light detection", func(t *testing.T) {
		client := &mockExtractorClient{}
		funnel := NewCVDetectionFunnel(NewSignalExtractor(), client, zap.NewNop())

		detection := funnel.Process(context.Background(), invoiceEmail())

		assert.Equal(t, StateLightDetection, detection.State)
		assert.Nil(t, detection.Extraction)
		assert.Empty(t, detection.Errors)
		assert.Equal(t, int64(0), client.calls.Load(), "extraction must not run below threshold")
	})

	t.Run("above threshold completes with extraction", func(t *testing.T) {
		client := &mockExtractorClient{
			result: &CVExtractionResult{
				EmailID:     "cv-mail",
				Data:        &ExtractedCandidateData{Name: "Jane Doe"},
				Confidence:  88,
				ModelUsed:   "test-model",
				ExtractedAt: time.Now(),
			},
		}
		funnel := NewCVDetectionFunnel(NewSignalExtractor(), client, zap.NewNop())

		detection := funnel.Process(context.Background(), cvEmail())

		assert.Equal(t, StateCompleted, detection.State)
		require.NotNil(t, detection.Extraction)
		assert.Equal(t, "Jane Doe", detection.Extraction.Data.Name)
		assert.Equal(t, int64(1), client.calls.Load())
	})
}

func TestProcess_ExtractionFailure(t *testing.T) {
	client := &mockExtractorClient{
		err: NewExtractionFailed(errors.New("boom"), "provider exploded"),
	}
	funnel := NewCVDetectionFunnel(NewSignalExtractor(), client, zap.NewNop())

	detection := funnel.Process(context.Background(), cvEmail())

	assert.Equal(t, StateFailed, detection.State)
	assert.Nil(t, detection.Extraction)
	require.NotEmpty(t, detection.Errors)
	assert.Equal(t, string(ExtractionFailed), detection.Errors[0])
	assert.Contains(t, detection.Errors, "provider exploded")
}

func TestProcess_ExtractionTimeout(t *testing.T) {
	client := &mockExtractorClient{block: true}
	funnel := NewCVDetectionFunnel(NewSignalExtractor(), client, zap.NewNop(),
		WithExtractionTimeout(10*time.Millisecond))

	detection := funnel.Process(context.Background(), cvEmail())

	assert.Equal(t, StateFailed, detection.State)
	require.NotEmpty(t, detection.Errors)
	assert.Equal(t, string(ExtractionTimeout), detection.Errors[0])
}

func TestProcess_NilClientFailsGatedExtraction(t *testing.T) {
	funnel := NewCVDetectionFunnel(NewSignalExtractor(), nil, zap.NewNop())

	detection := funnel.Process(context.Background(), cvEmail())

	assert.Equal(t, StateFailed, detection.State)
	assert.Contains(t, detection.Errors, "no extraction provider configured")
}

func TestProcess_ThresholdOverride(t *testing.T) {
	client := &mockExtractorClient{result: &CVExtractionResult{EmailID: "weak-cv"}}
	// Raise the gate so a single weak keyword no longer clears it.
	funnel := NewCVDetectionFunnel(NewSignalExtractor(), client, zap.NewNop(),
		WithCVThreshold(90))

	email := &Email{ID: "weak-cv", Body: "I attach my resume."}
	detection := funnel.Process(context.Background(), email)

	assert.Equal(t, StateLightDetection, detection.State)
	assert.Equal(t, int64(0), client.calls.Load())
}
