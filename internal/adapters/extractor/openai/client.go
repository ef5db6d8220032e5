package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client implements core.ExtractorClient using OpenAI chat completions.
type Client struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
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
Attachments: %s
Body:
%s

Respond only with the JSON object and nothing else.`

// NewClient creates a new OpenAI extraction client.
func NewClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	return &Client{
		client:        openai.NewClient(apiKey),
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat:  extractionPrompt,
	}
}

// ExtractCandidate asks the model for structured candidate data.
func (c *Client) ExtractCandidate(ctx context.Context, email *core.Email) (*core.CVExtractionResult, error) {
	prompt := formatPrompt(c.promptFormat, email, c.textProcessor.ProcessText(email.Body, c.maxBodySize))

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a candidate data extraction system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}
	responseFormat := openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	req.ResponseFormat = &responseFormat

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, core.NewExtractionFailed(err, "openai chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return nil, core.NewExtractionFailed(nil, "empty response from openai")
	}

	parsed, err := parseCandidateJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &core.CVExtractionResult{
		EmailID:     email.ID,
		Data:        parsed.toCandidateData(),
		Confidence:  parsed.Confidence,
		ModelUsed:   c.modelName,
		ExtractedAt: time.Now(),
	}, nil
}

func (r *candidateResponse) toCandidateData() *core.ExtractedCandidateData {
	return &core.ExtractedCandidateData{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		TargetPosition:  r.TargetPosition,
		Skills:          r.Skills,
		YearsExperience: r.YearsExperience,
		Education:       r.Education,
		Languages:       r.Languages,
		Summary:         r.Summary,
	}
}

// formatPrompt fills the prompt template with email details.
func formatPrompt(format string, email *core.Email, body string) string {
	attachments := "none"
	if len(email.Attachments) > 0 {
		attachments = ""
		for i, name := range email.Attachments {
			if i > 0 {
				attachments += ", "
			}
			attachments += name
		}
	}
	return fmt.Sprintf(format, email.FromName, email.FromAddress, email.Subject, attachments, body)
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
