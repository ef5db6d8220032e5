package di

import (
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

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewExtractorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
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

	// Register category config store
	if err := container.Provide(func(f *factory.StoreFactory) (core.CategoryConfigStore, error) {
		return f.CreateCategoryStore()
	}); err != nil {
		return nil, err
	}

	// Register sender domain checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *domains.Checker {
		signalsCfg := cfg.GetSignals()
		if len(signalsCfg.InternalDomains) > 0 {
			logger.Info("Loaded internal domains", zap.Strings("domains", signalsCfg.InternalDomains))
		}
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

	// Register category registry
	if err := container.Provide(core.NewCategoryRegistry); err != nil {
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
