package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultConfig() *Config {
	return NewFromViper(NewEmptyViper())
}

func TestDefaults(t *testing.T) {
	cfg := newDefaultConfig()

	triage := cfg.GetTriage()
	assert.Equal(t, 70, triage.DoubtThreshold)
	assert.Equal(t, 40, triage.CVThreshold)
	assert.Equal(t, 4, triage.BatchWorkers)

	extraction := cfg.GetExtraction()
	assert.Equal(t, "simulator", extraction.Provider)

	timeout, err := cfg.GetDuration("extraction.timeout")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	store := cfg.GetStore()
	assert.Equal(t, "memory", store.Type)
}

func TestServerDefaults(t *testing.T) {
	server := newDefaultConfig().GetServer()

	assert.Equal(t, "smtp", server.FilterType)
	assert.Equal(t, "0.0.0.0:10025", server.ListenAddress)
	assert.False(t, server.BlockUndesirable)
	assert.Equal(t, "X-Triage-Category", server.CategoryHeader)
	assert.Equal(t, "X-Triage-Group", server.GroupHeader)
	assert.Equal(t, "X-Triage-Confidence", server.ConfidenceHeader)
	assert.Equal(t, "X-Triage-Reasoning", server.ReasoningHeader)
	assert.Equal(t, "X-Triage-CV", server.CVHeader)
	assert.True(t, server.RelayEnabled)
	assert.Equal(t, "127.0.0.1", server.RelayAddress)
	assert.Equal(t, 10026, server.RelayPort)
}

func TestOverridesTakePrecedence(t *testing.T) {
	v := NewEmptyViper()
	v.Set("triage.doubt_threshold", 80)
	v.Set("extraction.provider", "openai")
	v.Set("openai.model_name", "gpt-4o")
	v.Set("signals.internal_domains", []string{"acme.example"})
	cfg := NewFromViper(v)

	assert.Equal(t, 80, cfg.GetTriage().DoubtThreshold)
	assert.Equal(t, "openai", cfg.GetExtraction().Provider)
	assert.Equal(t, "gpt-4o", cfg.GetOpenAI().ModelName)
	assert.Equal(t, []string{"acme.example"}, cfg.GetSignals().InternalDomains)
}

func TestGetDurationRejectsMalformedValues(t *testing.T) {
	v := NewEmptyViper()
	v.Set("extraction.timeout", "soon")
	cfg := NewFromViper(v)

	_, err := cfg.GetDuration("extraction.timeout")
	assert.Error(t, err)
}
