package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/utils"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client implements core.ExtractorClient using Google Gemini.
type Client struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// candidateResponse is the structured JSON the model is asked to return.
type candidateResponse struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	TargetPosition  string   `json:"target_position"`
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience"`
	Education       string   `json:"education"`
	Languages       []string `json:"languages"`
	Summary         string   `json:"summary"`
	Confidence      int      `json:"confidence"`
}

const extractionPrompt = `You are a recruitment assistant. Extract structured candidate data from the following email and its CV content.
Respond with a JSON object containing:
- name: string (candidate full name)
- email: string (candidate contact email)
- phone: string (candidate phone number, empty if absent)
- target_position: string (the role the candidate is applying for)
- skills: array of strings
- years_experience: integer
- education: string (highest or most relevant qualification)
- languages: array of strings
- summary: string (two sentences at most)
- confidence: integer between 0 and 100 (how confident you are in the extraction)

Email:
From: %s <%s>
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`

// NewClient creates a new Gemini extraction client.
func NewClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*Client, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Client{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat:  extractionPrompt,
	}, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ExtractCandidate asks the model for structured candidate data.
func (c *Client) ExtractCandidate(ctx context.Context, email *core.Email) (*core.CVExtractionResult, error) {
	body := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, email.FromName, email.FromAddress, email.Subject, body)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, core.NewExtractionFailed(err, "gemini generation failed")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, core.NewExtractionFailed(nil, "empty response from gemini")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}

	parsed, err := parseCandidateJSON(text)
	if err != nil {
		return nil, err
	}

	return &core.CVExtractionResult{
		EmailID: email.ID,
		Data: &core.ExtractedCandidateData{
			Name:            parsed.Name,
			Email:           parsed.Email,
			Phone:           parsed.Phone,
			TargetPosition:  parsed.TargetPosition,
			Skills:          parsed.Skills,
			YearsExperience: parsed.YearsExperience,
			Education:       parsed.Education,
			Languages:       parsed.Languages,
			Summary:         parsed.Summary,
		},
		Confidence:  parsed.Confidence,
		ModelUsed:   c.modelName,
		ExtractedAt: time.Now(),
	}, nil
}

// parseCandidateJSON parses the model output, tolerating prose around the
// JSON object.
func parseCandidateJSON(text string) (*candidateResponse, error) {
	var parsed candidateResponse
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return &parsed, nil
	}

	jsonStart := -1
	jsonEnd := -1
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			jsonStart = i
			break
		}
	}
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}
	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, core.NewExtractionFailed(nil, "no JSON object in model response")
	}

	if err := json.Unmarshal([]byte(text[jsonStart:jsonEnd]), &parsed); err != nil {
		return nil, core.NewExtractionFailed(err, "failed to parse model response as JSON")
	}
	return &parsed, nil
}
