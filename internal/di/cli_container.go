package di

import (
	"flag"
	"strings"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/config"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/domains"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/factory"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/logging"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/ports"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Extraction provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Triage policy flags
	DoubtThreshold int
	CVThreshold    int

	// Sender signal flags
	InternalDomains string
	PlatformDomains string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Extraction provider flags
	flag.StringVar(&flags.Provider, "provider", "simulator", "Extraction provider (simulator, bedrock, gemini, openai)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 1000, "Maximum tokens for extraction response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.1, "Temperature for extraction generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for extraction generation")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum email body size to send for extraction")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4", "OpenAI model name")

	// Triage policy flags
	flag.IntVar(&flags.DoubtThreshold, "doubt-threshold", core.DefaultDoubtThreshold, "Confidence below which an email is marked doubtful")
	flag.IntVar(&flags.CVThreshold, "cv-threshold", core.DefaultCVThreshold, "Light detection confidence required to run extraction")

	// Sender signal flags
	flag.StringVar(&flags.InternalDomains, "internal-domains", "", "Comma-separated internal sender domains")
	flag.StringVar(&flags.PlatformDomains, "platform-domains", "", "Comma-separated extra recruitment platform domains")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewExtractorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register extraction client
	if err := container.Provide(func(f *factory.ExtractorFactory) (core.ExtractorClient, error) {
		return f.CreateExtractorClient()
	}); err != nil {
		return nil, err
	}

	// Register sender domain checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *domains.Checker {
		signalsCfg := cfg.GetSignals()
		return domains.NewChecker(signalsCfg.InternalDomains, signalsCfg.PlatformDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register signal extractor
	if err := container.Provide(func(checker *domains.Checker) *core.SignalExtractor {
		return core.NewSignalExtractor(core.WithDomainChecker(checker))
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(extractor *core.SignalExtractor, cfg *config.Config, logger *zap.Logger) *core.Classifier {
		return core.NewClassifier(extractor, logger,
			core.WithDoubtThreshold(cfg.GetTriage().DoubtThreshold))
	}); err != nil {
		return nil, err
	}

	// Register CV detection funnel
	if err := container.Provide(func(
		extractor *core.SignalExtractor,
		client core.ExtractorClient,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.CVDetectionFunnel, error) {
		timeout, err := cfg.GetDuration("extraction.timeout")
		if err != nil {
			return nil, err
		}
		return core.NewCVDetectionFunnel(extractor, client, logger,
			core.WithCVThreshold(cfg.GetTriage().CVThreshold),
			core.WithExtractionTimeout(timeout)), nil
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(core.NewTriageService); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.filter_type", "cli")
	v.Set("cli.verbose", flags.Verbose)

	// Set extraction provider
	v.Set("extraction.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
		v.Set("bedrock.max_body_size", flags.MaxBodySize)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
		v.Set("gemini.max_body_size", flags.MaxBodySize)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
		v.Set("openai.max_body_size", flags.MaxBodySize)
	}

	// Set triage policy
	v.Set("triage.doubt_threshold", flags.DoubtThreshold)
	v.Set("triage.cv_threshold", flags.CVThreshold)

	// Set sender signal domains
	v.Set("signals.internal_domains", splitDomains(flags.InternalDomains))
	v.Set("signals.platform_domains", splitDomains(flags.PlatformDomains))

	return config.NewFromViper(v)
}

func splitDomains(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
