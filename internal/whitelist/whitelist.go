package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultFreeMailDomains covers the common free-mail providers whose
// domain labels never identify an employer.
var DefaultFreeMailDomains = []string{
	"gmail", "hotmail", "outlook", "yahoo", "icloud", "yandex",
	"protonmail", "live", "msn", "aol", "mail",
}

// Checker decides whether a sender address belongs to a free-mail
// provider rather than a company domain
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a new free-mail domain checker
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	if len(domains) == 0 {
		domains = DefaultFreeMailDomains
	}
	normalized := make([]string, len(domains))
	for i, domain := range domains {
		normalized[i] = strings.ToLower(strings.TrimSpace(domain))
	}

	if logger != nil {
		logger.Debug("Initialized free-mail checker", zap.Strings("domains", normalized))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// IsFreeMail reports whether the sender's domain label matches a known
// free-mail provider. The comparison uses only the first label of the
// domain, so "user@gmail.com.tr" still counts as free mail.
func (c *Checker) IsFreeMail(from string) bool {
	label := DomainLabel(from)
	if label == "" {
		return false
	}

	for _, d := range c.domains {
		if d == label {
			if c.logger != nil {
				c.logger.Debug("Sender uses a free-mail provider",
					zap.String("label", label),
					zap.String("email", from))
			}
			return true
		}
	}

	return false
}

// DomainLabel extracts the first label of the sender's domain,
// lowercased. Returns an empty string for malformed addresses.
func DomainLabel(from string) string {
	parts := strings.Split(from, "@")
	if len(parts) != 2 {
		return ""
	}
	domain := strings.ToLower(strings.TrimSpace(parts[1]))
	domain = strings.TrimSuffix(domain, ">")
	if i := strings.IndexByte(domain, '.'); i > 0 {
		return domain[:i]
	}
	return domain
}
