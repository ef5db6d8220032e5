package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// Client implements core.ExtractorClient using Amazon Bedrock.
type Client struct {
	client        *bedrockruntime.Client
	modelID       string
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
Body:
%s

Respond only with the JSON object and nothing else.`

// NewClient creates a new Bedrock extraction client.
func NewClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	return &Client{
		client:        client,
		modelID:       modelID,
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
	body := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, email.FromName, email.FromAddress, email.Subject, body)

	var payload []byte
	var err error

	if c.isAnthropicModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": c.maxTokens,
			"temperature":          c.temperature,
			"top_p":                c.topP,
		})
	} else if c.isAmazonTitanModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": c.maxTokens,
				"temperature":   c.temperature,
				"topP":          c.topP,
			},
		})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"top_p":       c.topP,
		})
	}
	if err != nil {
		return nil, core.NewExtractionFailed(err, "failed to marshal request payload")
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, core.NewExtractionFailed(err, "failed to invoke Bedrock model")
	}

	responseText, err := c.responseText(resp.Body)
	if err != nil {
		return nil, err
	}

	parsed, err := parseCandidateJSON(responseText)
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
		ModelUsed:   c.modelID,
		ExtractedAt: time.Now(),
	}, nil
}

// responseText extracts the completion text from a model-specific response
// body.
func (c *Client) responseText(body []byte) (string, error) {
	if c.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", core.NewExtractionFailed(err, "failed to unmarshal Claude response")
		}
		return claudeResp.Completion, nil
	}

	if c.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", core.NewExtractionFailed(err, "failed to unmarshal Titan response")
		}
		if len(titanResp.Results) == 0 {
			return "", core.NewExtractionFailed(nil, "empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	}

	var genericResp struct {
		Output   string `json:"output"`
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &genericResp); err != nil {
		return "", core.NewExtractionFailed(err, "failed to unmarshal generic response")
	}
	switch {
	case genericResp.Output != "":
		return genericResp.Output, nil
	case genericResp.Text != "":
		return genericResp.Text, nil
	case genericResp.Response != "":
		return genericResp.Response, nil
	}
	return string(body), nil
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

// isAnthropicModel checks if the model is an Anthropic Claude model
func (c *Client) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (c *Client) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}
