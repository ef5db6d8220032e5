package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/adapters/filter"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/config"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/ports"
)

// FilterFactory creates email ingest filters based on configuration
type FilterFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	triageService *core.TriageService
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, triageService *core.TriageService) *FilterFactory {
	return &FilterFactory{
		cfg:           cfg,
		logger:        logger,
		triageService: triageService,
	}
}

// CreateEmailFilter creates an email filter based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	serverCfg := f.cfg.GetServer()

	switch serverCfg.FilterType {
	case "smtp":
		return filter.NewSMTPFilter(
			f.triageService,
			f.logger,
			filter.SMTPOptions{
				ListenAddr:       serverCfg.ListenAddress,
				BlockUndesirable: serverCfg.BlockUndesirable,
				CategoryHeader:   serverCfg.CategoryHeader,
				GroupHeader:      serverCfg.GroupHeader,
				ConfidenceHeader: serverCfg.ConfidenceHeader,
				ReasoningHeader:  serverCfg.ReasoningHeader,
				CVHeader:         serverCfg.CVHeader,
				RelayEnabled:     serverCfg.RelayEnabled,
				RelayAddr:        serverCfg.RelayAddress,
				RelayPort:        serverCfg.RelayPort,
			},
		), nil
	case "cli":
		return filter.NewCliFilter(
			f.triageService,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", serverCfg.FilterType)
	}
}
