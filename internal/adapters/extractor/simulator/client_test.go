package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
)

func TestExtractCandidate_Deterministic(t *testing.T) {
	client := NewClient(zap.NewNop())
	email := &core.Email{
		ID:          "sim-1",
		FromName:    "Jane Doe",
		FromAddress: "jane.doe@gmail.com",
		Subject:     "Application for backend engineer",
	}

	first, err := client.ExtractCandidate(context.Background(), email)
	require.NoError(t, err)
	second, err := client.ExtractCandidate(context.Background(), email)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestExtractCandidate_Fields(t *testing.T) {
	client := NewClient(zap.NewNop())
	email := &core.Email{
		ID:          "sim-2",
		FromName:    "Jane Doe",
		FromAddress: "jane.doe@gmail.com",
		Subject:     "Application for backend engineer",
	}

	result, err := client.ExtractCandidate(context.Background(), email)
	require.NoError(t, err)

	assert.Equal(t, "sim-2", result.EmailID)
	assert.Equal(t, "simulator", result.ModelUsed)
	assert.GreaterOrEqual(t, result.Confidence, 75)
	assert.LessOrEqual(t, result.Confidence, 95)
	assert.False(t, result.ExtractedAt.IsZero())

	require.NotNil(t, result.Data)
	assert.Equal(t, "Jane Doe", result.Data.Name)
	assert.Equal(t, "jane.doe@gmail.com", result.Data.Email)
	assert.Equal(t, "backend engineer", result.Data.TargetPosition)
	assert.NotEmpty(t, result.Data.Skills)
	assert.NotEmpty(t, result.Data.Languages)
	assert.Positive(t, result.Data.YearsExperience)
}

func TestExtractCandidate_NameFallsBackToLocalPart(t *testing.T) {
	client := NewClient(zap.NewNop())
	email := &core.Email{
		ID:          "sim-3",
		FromAddress: "john.smith@example.com",
		Subject:     "My application",
	}

	result, err := client.ExtractCandidate(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, "john.smith", result.Data.Name)
	assert.Equal(t, "Not specified", result.Data.TargetPosition)
}

func TestPositionFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Application for backend engineer", "backend engineer"},
		{"Senior full stack developer position", "full stack developer"},
		{"Designer", "Designer"},
		{"Hello there", "Not specified"},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, positionFromSubject(tt.subject))
		})
	}
}
