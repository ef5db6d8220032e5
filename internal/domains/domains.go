package domains

import (
	"strings"

	"go.uber.org/zap"
)

// defaultPlatformDomains covers the hiring platforms recognized out of the
// box; deployments extend the list via configuration.
var defaultPlatformDomains = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"monster.com",
	"ziprecruiter.com",
	"greenhouse.io",
	"lever.co",
	"workday.com",
}

// Checker classifies sender addresses by domain membership. It implements
// core.DomainChecker.
type Checker struct {
	internal []string
	platform []string
	logger   *zap.Logger
}

// NewChecker creates a checker from the configured domain lists. Platform
// domains extend the built-in defaults; internal domains are deployment-only.
func NewChecker(internalDomains, platformDomains []string, logger *zap.Logger) *Checker {
	c := &Checker{
		internal: normalize(internalDomains),
		platform: normalize(append(append([]string{}, defaultPlatformDomains...), platformDomains...)),
		logger:   logger,
	}

	if len(c.internal) > 0 && logger != nil {
		logger.Info("Initialized domain checker", zap.Strings("internal_domains", c.internal))
	}

	return c
}

// IsInternal reports whether the address belongs to one of the company's own
// domains.
func (c *Checker) IsInternal(address string) bool {
	return c.matches(address, c.internal)
}

// IsPlatform reports whether the address belongs to a known hiring platform.
func (c *Checker) IsPlatform(address string) bool {
	return c.matches(address, c.platform)
}

func (c *Checker) matches(address string, domains []string) bool {
	if len(domains) == 0 {
		return false
	}

	parts := strings.Split(address, "@")
	if len(parts) != 2 {
		return false
	}
	domain := strings.ToLower(parts[1])

	for _, candidate := range domains {
		if candidate == domain {
			return true
		}
	}
	return false
}

func normalize(domains []string) []string {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			normalized = append(normalized, domain)
		}
	}
	return normalized
}
