package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/adapters/extractor/bedrock"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/adapters/extractor/gemini"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/adapters/extractor/openai"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/adapters/extractor/simulator"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/config"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/utils"
)

// ExtractorFactory creates candidate extraction clients
type ExtractorFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ExtractorFactory {
	return &ExtractorFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateExtractorClient creates an extraction client based on the configuration
func (f *ExtractorFactory) CreateExtractorClient() (core.ExtractorClient, error) {
	extractionCfg := f.cfg.GetExtraction()

	switch extractionCfg.Provider {
	case "simulator":
		return simulator.NewClient(f.logger), nil
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		factory := openai.NewFactory(
			openaiCfg.APIKey,
			openaiCfg.ModelName,
			openaiCfg.MaxTokens,
			openaiCfg.Temperature,
			openaiCfg.TopP,
			openaiCfg.MaxBodySize,
			f.logger,
			f.textProcessor,
		)
		return factory.CreateExtractorClient()
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		factory := gemini.NewFactory(
			geminiCfg.APIKey,
			geminiCfg.ModelName,
			geminiCfg.MaxTokens,
			geminiCfg.Temperature,
			geminiCfg.TopP,
			geminiCfg.MaxBodySize,
			f.logger,
			f.textProcessor,
		)
		return factory.CreateExtractorClient()
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateExtractorClient()
	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", extractionCfg.Provider)
	}
}
