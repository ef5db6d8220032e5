package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TriageResult bundles the two independent analyses of one email.
type TriageResult struct {
	ProcessingID   string
	EmailID        string
	Classification *ClassificationResult
	CVDetection    *CVDetection
	ProcessedAt    time.Time
	Duration       time.Duration
}

// TriageService is the core entry point: it classifies an email and runs the
// CV detection funnel. Both computations are pure over already-resident data
// and share no mutable state, so they run concurrently per email and the
// whole service is safe for parallel use across emails.
type TriageService struct {
	classifier *Classifier
	funnel     *CVDetectionFunnel
	logger     *zap.Logger
}

// NewTriageService creates a new triage service.
func NewTriageService(classifier *Classifier, funnel *CVDetectionFunnel, logger *zap.Logger) *TriageService {
	return &TriageService{
		classifier: classifier,
		funnel:     funnel,
		logger:     logger,
	}
}

// Classifier exposes the underlying classifier.
func (s *TriageService) Classifier() *Classifier {
	return s.classifier
}

// Funnel exposes the underlying CV detection funnel.
func (s *TriageService) Funnel() *CVDetectionFunnel {
	return s.funnel
}

// Triage runs classification and CV detection for one email.
func (s *TriageService) Triage(ctx context.Context, email *Email) *TriageResult {
	start := time.Now()

	var (
		wg             sync.WaitGroup
		classification *ClassificationResult
		detection      *CVDetection
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		classification = s.classifier.Classify(email)
	}()
	go func() {
		defer wg.Done()
		detection = s.funnel.Process(ctx, email)
	}()
	wg.Wait()

	result := &TriageResult{
		ProcessingID:   uuid.NewString(),
		EmailID:        email.ID,
		Classification: classification,
		CVDetection:    detection,
		ProcessedAt:    time.Now(),
		Duration:       time.Since(start),
	}

	s.logger.Info("Triaged email",
		zap.String("processing_id", result.ProcessingID),
		zap.String("email_id", email.ID),
		zap.String("category", string(classification.Category)),
		zap.Int("confidence", classification.Confidence),
		zap.String("cv_state", string(detection.State)),
		zap.Duration("duration", result.Duration))

	return result
}

// TriageBatch fans a list of emails out over a bounded worker pool. Results
// keep the input order; elements are independent and unordered between
// themselves. When ctx is cancelled mid-batch the slice keeps its full
// length and emails that were never dispatched are left as nil entries, so
// callers that may cancel must nil-check while ranging.
func (s *TriageService) TriageBatch(ctx context.Context, emails []*Email, workers int) []*TriageResult {
	if workers < 1 {
		workers = 1
	}

	results := make([]*TriageResult, len(emails))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.Triage(ctx, emails[i])
			}
		}()
	}

	for i := range emails {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
