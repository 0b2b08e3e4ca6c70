package slugs

import (
	"fmt"
	"net/url"
	"strings"
)

// IsSameHost checks if rawURL is served by the given host.
func IsSameHost(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}

// Normalize accepts either a bare slug ("Some-Title-08-18") or a full article
// URL on baseURL's host and returns the slug. Query strings and fragments are
// dropped.
func Normalize(input string, baseURL string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty slug")
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid slug %q: %w", input, err)
	}

	if parsed.IsAbs() {
		base, err := url.Parse(baseURL)
		if err != nil {
			return "", fmt.Errorf("parsing base URL: %w", err)
		}
		if !IsSameHost(input, base.Host) {
			return "", fmt.Errorf("%s is not an article on %s", input, base.Host)
		}
	}

	slug := strings.Trim(parsed.Path, "/")
	if slug == "" {
		return "", fmt.Errorf("no article slug in %q", input)
	}
	if strings.Contains(slug, "/") {
		return "", fmt.Errorf("%q is not a single article slug", slug)
	}
	return slug, nil
}

// Collect normalizes every input and returns the unique slugs in order.
func Collect(inputs []string, baseURL string) ([]string, error) {
	q := NewQueue()
	for _, in := range inputs {
		slug, err := Normalize(in, baseURL)
		if err != nil {
			return nil, err
		}
		q.Add(slug)
	}
	return q.All(), nil
}
