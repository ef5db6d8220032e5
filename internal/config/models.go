package config

// TriageConfig represents the classification policy configuration
type TriageConfig struct {
	DoubtThreshold int
	CVThreshold    int
	BatchWorkers   int
}

// ExtractionConfig represents the extraction provider configuration
type ExtractionConfig struct {
	Provider string
	Timeout  string
}

// SignalsConfig represents the sender-domain signal configuration
type SignalsConfig struct {
	InternalDomains []string
	PlatformDomains []string
}

// ServerConfig represents the ingest server configuration
type ServerConfig struct {
	FilterType       string
	ListenAddress    string
	BlockUndesirable bool
	CategoryHeader   string
	GroupHeader      string
	ConfidenceHeader string
	ReasoningHeader  string
	CVHeader         string
	RelayEnabled     bool
	RelayAddress     string
	RelayPort        int
}

// StoreConfig represents the category config store configuration
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GetTriage returns the triage policy configuration
func (c *Config) GetTriage() TriageConfig {
	return TriageConfig{
		DoubtThreshold: c.GetInt("triage.doubt_threshold"),
		CVThreshold:    c.GetInt("triage.cv_threshold"),
		BatchWorkers:   c.GetInt("triage.batch_workers"),
	}
}

// GetExtraction returns the extraction provider configuration
func (c *Config) GetExtraction() ExtractionConfig {
	return ExtractionConfig{
		Provider: c.GetString("extraction.provider"),
		Timeout:  c.GetString("extraction.timeout"),
	}
}

// GetSignals returns the sender-domain signal configuration
func (c *Config) GetSignals() SignalsConfig {
	return SignalsConfig{
		InternalDomains: c.GetStringSlice("signals.internal_domains"),
		PlatformDomains: c.GetStringSlice("signals.platform_domains"),
	}
}

// GetServer returns the ingest server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		FilterType:       c.GetString("server.filter_type"),
		ListenAddress:    c.GetString("server.listen_address"),
		BlockUndesirable: c.GetBool("server.block_undesirable"),
		CategoryHeader:   c.GetString("server.headers.category"),
		GroupHeader:      c.GetString("server.headers.group"),
		ConfidenceHeader: c.GetString("server.headers.confidence"),
		ReasoningHeader:  c.GetString("server.headers.reasoning"),
		CVHeader:         c.GetString("server.headers.cv"),
		RelayEnabled:     c.GetBool("server.relay.enabled"),
		RelayAddress:     c.GetString("server.relay.address"),
		RelayPort:        c.GetInt("server.relay.port"),
	}
}

// GetStore returns the category store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}
