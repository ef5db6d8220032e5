// Package simulator provides a deterministic stand-in for the extraction
// provider. It fabricates plausible candidate data from the email itself, so
// development and tests never pay for a real completion call.
package simulator

import (
	"context"
	"hash/fnv"
	"strings"
	"time"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"go.uber.org/zap"
)

// Client implements core.ExtractorClient without any network calls.
type Client struct {
	logger *zap.Logger
}

var skillPool = [][]string{
	{"Go", "PostgreSQL", "Docker"},
	{"TypeScript", "React", "Node.js"},
	{"Python", "Django", "AWS"},
	{"Java", "Spring", "Kubernetes"},
	{"C#", ".NET", "Azure"},
}

var languagePool = [][]string{
	{"English"},
	{"English", "French"},
	{"English", "Spanish"},
	{"English", "German"},
}

var educationPool = []string{
	"BSc Computer Science",
	"MSc Software Engineering",
	"Engineering degree",
	"Self-taught",
}

// NewClient creates a new simulator client.
func NewClient(logger *zap.Logger) *Client {
	return &Client{logger: logger}
}

// ExtractCandidate fabricates candidate data seeded by the email, so the same
// email always produces the same result.
func (c *Client) ExtractCandidate(_ context.Context, email *core.Email) (*core.CVExtractionResult, error) {
	seed := hashEmail(email)

	name := strings.TrimSpace(email.FromName)
	if name == "" {
		name = localPart(email.FromAddress)
	}

	position := positionFromSubject(email.Subject)

	data := &core.ExtractedCandidateData{
		Name:            name,
		Email:           email.FromAddress,
		Phone:           "",
		TargetPosition:  position,
		Skills:          skillPool[seed%uint32(len(skillPool))],
		YearsExperience: int(seed%12) + 1,
		Education:       educationPool[seed%uint32(len(educationPool))],
		Languages:       languagePool[seed%uint32(len(languagePool))],
		Summary:         "Simulated extraction: candidate profile generated from email metadata.",
	}

	result := &core.CVExtractionResult{
		EmailID:     email.ID,
		Data:        data,
		Confidence:  75 + int(seed%21),
		ModelUsed:   "simulator",
		ExtractedAt: time.Now(),
	}

	c.logger.Debug("Simulated candidate extraction",
		zap.String("email_id", email.ID),
		zap.String("candidate", data.Name),
		zap.Int("confidence", result.Confidence))

	return result, nil
}

func hashEmail(email *core.Email) uint32 {
	h := fnv.New32a()
	h.Write([]byte(email.ID))
	h.Write([]byte(email.FromAddress))
	h.Write([]byte(email.Subject))
	return h.Sum32()
}

func localPart(address string) string {
	if i := strings.Index(address, "@"); i > 0 {
		return address[:i]
	}
	return address
}

// positionFromSubject guesses the target role from the subject line, falling
// back to a generic label.
func positionFromSubject(subject string) string {
	lower := strings.ToLower(subject)
	for _, marker := range []string{"developer", "engineer", "designer", "manager", "analyst"} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			start := idx
			// Include up to two preceding words ("full stack developer").
			for words := 0; start > 0 && words < 2; {
				prev := strings.LastIndexByte(lower[:start-1], ' ')
				if prev < 0 {
					start = 0
					break
				}
				start = prev + 1
				words++
			}
			position := strings.TrimSpace(subject[start : idx+len(marker)])
			return trimFillerWords(position)
		}
	}
	return "Not specified"
}

// trimFillerWords drops leading prepositions picked up by the word scan, so
// "for backend engineer" comes out as "backend engineer".
func trimFillerWords(position string) string {
	words := strings.Fields(position)
	for len(words) > 1 {
		switch strings.ToLower(words[0]) {
		case "for", "of", "the", "a", "an", "as":
			words = words[1:]
		default:
			return strings.Join(words, " ")
		}
	}
	return strings.Join(words, " ")
}
