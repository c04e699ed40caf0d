package validation

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Upload limits for seminar documents
const (
	// SeminarMaxBytes is the upload size ceiling for seminar documents (10 MiB)
	SeminarMaxBytes = 10 << 20
)

// SeminarAllowedExtensions is the whitelist of accepted seminar document types
var SeminarAllowedExtensions = []string{".pdf", ".doc", ".docx"}

// Name validation min/max length
var (
	NameMinLength = 1
	NameMaxLength = 50
)

// IsAllowedSeminarFile reports whether the filename carries a whitelisted
// document extension. Matching is case-insensitive.
func IsAllowedSeminarFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range SeminarAllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// HasInstitutionalDomain reports whether the email address belongs to the
// institutional domain (e.g. "name@ams.edu.mk" for domain "ams.edu.mk").
func HasInstitutionalDomain(email, domain string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return email[at+1:] == strings.ToLower(domain)
}

// ValidateProjectURL checks that raw is an absolute http(s) URL whose host is
// the allowed hosting domain or a subdomain of it. Returns a descriptive error
// suitable for surfacing as a validation message.
func ValidateProjectURL(raw, allowedHost string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %q", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	allowed := strings.ToLower(allowedHost)
	if host != allowed && !strings.HasSuffix(host, "."+allowed) {
		return fmt.Errorf("project URL must be hosted on %s", allowedHost)
	}
	return nil
}
