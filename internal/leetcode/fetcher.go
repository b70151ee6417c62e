// Package leetcode fetches problem metadata from LeetCode's GraphQL API.
package leetcode

import (
	"context"
	"regexp"
)

// Metadata is the subset of a LeetCode question the journal stores.
type Metadata struct {
	ExternalID  int      `json:"externalId"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	PaidOnly    bool     `json:"paidOnly"`
}

// Fetcher resolves a problem slug to its metadata.
type Fetcher interface {
	Fetch(ctx context.Context, slug string) (*Metadata, error)
}

var problemURL = regexp.MustCompile(`leetcode\.com/problems/([^/?#]+)`)

// ParseSlug extracts the problem slug from a URL such as
// https://leetcode.com/problems/two-sum/description/.
func ParseSlug(url string) (string, error) {
	m := problemURL.FindStringSubmatch(url)
	if m == nil {
		return "", ErrInvalidURL
	}
	return m[1], nil
}

// FetchURL parses url and fetches its metadata with f.
func FetchURL(ctx context.Context, f Fetcher, url string) (*Metadata, error) {
	slug, err := ParseSlug(url)
	if err != nil {
		return nil, err
	}
	return f.Fetch(ctx, slug)
}
