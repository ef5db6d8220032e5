package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// CVDetectionState is the per-email state of the detection funnel.
type CVDetectionState string

const (
	StatePending        CVDetectionState = "pending"
	StateLightDetection CVDetectionState = "light_detection"
	StateFullExtraction CVDetectionState = "full_extraction"
	StateCompleted      CVDetectionState = "completed"
	StateFailed         CVDetectionState = "failed"
)

const (
	// DefaultCVThreshold gates the expensive extraction step: light
	// detection must reach this confidence before extraction runs.
	DefaultCVThreshold = 40

	// lightDetectionScale maps summed signal weights into 0-100.
	lightDetectionScale = 10

	// DefaultExtractionTimeout bounds the provider call.
	DefaultExtractionTimeout = 30 * time.Second
)

// LightCVDetection is the cheap first-stage result.
type LightCVDetection struct {
	EmailID    string
	Confidence int
	IsLikelyCV bool
	Signals    []Signal
}

// CVDetection is the funnel outcome for one email. When light detection stays
// below threshold the machine rests at StateLightDetection: not completed,
// not failed, extraction never attempted.
type CVDetection struct {
	EmailID    string
	State      CVDetectionState
	Light      *LightCVDetection
	Extraction *CVExtractionResult
	Errors     []string
}

// CVDetectionFunnel runs the two-stage CV detection: a keyword-only light
// pass gating a provider-backed full extraction. The machine never moves
// backward; retrying a failed extraction means re-entering Process, which is
// the caller's call.
type CVDetectionFunnel struct {
	extractor *SignalExtractor
	client    ExtractorClient
	logger    *zap.Logger
	threshold int
	timeout   time.Duration
}

// FunnelOption configures a CVDetectionFunnel.
type FunnelOption func(*CVDetectionFunnel)

// WithCVThreshold overrides the light-detection gate.
func WithCVThreshold(threshold int) FunnelOption {
	return func(f *CVDetectionFunnel) {
		f.threshold = threshold
	}
}

// WithExtractionTimeout bounds the provider call.
func WithExtractionTimeout(timeout time.Duration) FunnelOption {
	return func(f *CVDetectionFunnel) {
		f.timeout = timeout
	}
}

// NewCVDetectionFunnel creates a funnel. client may be nil for deployments
// that only run light detection; a gated-in extraction then fails with a
// typed error instead of hanging.
func NewCVDetectionFunnel(extractor *SignalExtractor, client ExtractorClient, logger *zap.Logger, opts ...FunnelOption) *CVDetectionFunnel {
	f := &CVDetectionFunnel{
		extractor: extractor,
		client:    client,
		logger:    logger,
		threshold: DefaultCVThreshold,
		timeout:   DefaultExtractionTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RunLightDetection runs the cheap pass. It never fails: zero matched signals
// simply yield zero confidence.
func (f *CVDetectionFunnel) RunLightDetection(email *Email) *LightCVDetection {
	signals := f.extractor.ExtractCVSignals(email)

	total := 0
	for _, sig := range signals {
		total += sig.Weight
	}
	confidence := total * lightDetectionScale
	if confidence > 100 {
		confidence = 100
	}

	return &LightCVDetection{
		EmailID:    email.ID,
		Confidence: confidence,
		IsLikelyCV: confidence >= f.threshold,
		Signals:    signals,
	}
}

// Process drives the machine from pending to its terminal state for one
// email. Extraction runs only when light detection clears the threshold.
func (f *CVDetectionFunnel) Process(ctx context.Context, email *Email) *CVDetection {
	detection := &CVDetection{
		EmailID: email.ID,
		State:   StatePending,
	}

	detection.State = StateLightDetection
	detection.Light = f.RunLightDetection(email)

	if !detection.Light.IsLikelyCV {
		f.logger.Debug("Light detection below threshold, skipping extraction",
			zap.String("email_id", email.ID),
			zap.Int("confidence", detection.Light.Confidence),
			zap.Int("threshold", f.threshold))
		return detection
	}

	detection.State = StateFullExtraction

	if f.client == nil {
		detection.State = StateFailed
		detection.Errors = []string{"no extraction provider configured"}
		return detection
	}

	extractCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	result, err := f.client.ExtractCandidate(extractCtx, email)
	if err != nil {
		detection.State = StateFailed
		detection.Errors = extractionMessages(err, extractCtx)
		f.logger.Warn("Full extraction failed",
			zap.String("email_id", email.ID),
			zap.Strings("errors", detection.Errors))
		return detection
	}

	detection.State = StateCompleted
	detection.Extraction = result
	f.logger.Debug("Full extraction completed",
		zap.String("email_id", email.ID),
		zap.Int("confidence", result.Confidence),
		zap.String("model", result.ModelUsed))
	return detection
}

// extractionMessages normalizes provider errors into the typed message list,
// tagging deadline hits as timeouts.
func extractionMessages(err error, ctx context.Context) []string {
	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		messages := make([]string, 0, len(extErr.Messages)+1)
		messages = append(messages, string(extErr.Kind))
		messages = append(messages, extErr.Messages...)
		return messages
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		timeout := NewExtractionTimeout(err, "provider call exceeded deadline")
		return []string{string(timeout.Kind), timeout.Messages[0]}
	}

	failed := NewExtractionFailed(err, "provider error")
	return []string{string(failed.Kind), err.Error()}
}
