package core

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Policy constants. The precise values are load-bearing for the doubt and
// gating invariants and are preserved from the reference behavior.
const (
	// DefaultDoubtThreshold is the confidence below which a result is
	// forced to the doubtful category.
	DefaultDoubtThreshold = 70

	// MaxBaseConfidence caps the score-derived confidence base.
	MaxBaseConfidence = 95

	confidenceFloor   = 40
	confidenceSlope   = 5
	zeroScoreBase     = 35
	defaultJitterSpan = 5
)

// ClassificationResult is the outcome of classifying one email.
type ClassificationResult struct {
	EmailID    string
	Category   Category
	Group      Group
	Confidence int
	IsDoubtful bool
	Reasoning  string
}

// JitterFunc produces the model-uncertainty term mixed into the confidence
// base. span is the maximum absolute offset.
type JitterFunc func(span int) int

// Classifier assigns one of the 21 categories to an email. Classification is
// total: every email yields a result, worst case a low-confidence fallback.
type Classifier struct {
	extractor      *SignalExtractor
	logger         *zap.Logger
	doubtThreshold int
	jitterSpan     int
	jitter         JitterFunc
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithDoubtThreshold overrides the doubt threshold.
func WithDoubtThreshold(threshold int) ClassifierOption {
	return func(c *Classifier) {
		c.doubtThreshold = threshold
	}
}

// WithJitter replaces the confidence jitter source. Tests pass a fixed
// function to make classification reproducible.
func WithJitter(jitter JitterFunc) ClassifierOption {
	return func(c *Classifier) {
		c.jitter = jitter
	}
}

// NewClassifier creates a classifier over the given extractor.
func NewClassifier(extractor *SignalExtractor, logger *zap.Logger, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		extractor:      extractor,
		logger:         logger,
		doubtThreshold: DefaultDoubtThreshold,
		jitterSpan:     defaultJitterSpan,
		jitter: func(span int) int {
			return rand.Intn(2*span+1) - span
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scores every category against the email's signals and returns the
// winner with a confidence score and the doubt flag applied.
func (c *Classifier) Classify(email *Email) *ClassificationResult {
	signals := c.extractor.Extract(email)

	scores := make(map[Category]int, len(allCategories))
	for _, sig := range signals {
		scores[sig.Category] += sig.Weight
	}

	// Ties break by declaration order: strict > keeps the earlier category.
	winner := CategoryUnclassified
	winning := 0
	for _, category := range allCategories {
		if scores[category] > winning {
			winner = category
			winning = scores[category]
		}
	}

	confidence := c.confidence(winning)
	isDoubtful := confidence < c.doubtThreshold
	reasoning := buildReasoning(winner, winning, signals)

	result := &ClassificationResult{
		EmailID:    email.ID,
		Category:   winner,
		Confidence: confidence,
		IsDoubtful: isDoubtful,
		Reasoning:  reasoning,
	}
	if group, ok := GroupOf(winner); ok {
		result.Group = group
	}

	// Below the doubt threshold the raw winner is discarded entirely.
	if isDoubtful {
		result.Category = CategoryDoubtful
		result.Group = GroupOther
	}

	c.logger.Debug("Classified email",
		zap.String("email_id", email.ID),
		zap.String("category", string(result.Category)),
		zap.Int("score", winning),
		zap.Int("confidence", confidence),
		zap.Bool("doubtful", isDoubtful))

	return result
}

// confidence derives the confidence value from the winning score: a
// monotonic base capped at MaxBaseConfidence plus the jitter term, clamped
// into [0,100].
func (c *Classifier) confidence(winningScore int) int {
	base := zeroScoreBase
	if winningScore > 0 {
		base = confidenceFloor + confidenceSlope*winningScore
		if base > MaxBaseConfidence {
			base = MaxBaseConfidence
		}
	}

	confidence := base + c.jitter(c.jitterSpan)
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// buildReasoning names the top contributing signal types for the winning
// category, or a generic message when nothing fired.
func buildReasoning(winner Category, winningScore int, signals []Signal) string {
	if winningScore == 0 {
		return "insufficient signal: no keyword, filename or sender evidence matched"
	}

	byType := make(map[SignalType]int)
	for _, sig := range signals {
		if sig.Category == winner {
			byType[sig.Type] += sig.Weight
		}
	}

	types := make([]SignalType, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if byType[types[i]] != byType[types[j]] {
			return byType[types[i]] > byType[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) > 2 {
		types = types[:2]
	}

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return fmt.Sprintf("%s evidence (%s, score %d)", winner, strings.Join(names, ", "), winningScore)
}
