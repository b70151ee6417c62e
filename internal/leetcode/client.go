package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const questionQuery = `query getQuestionDetail($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionFrontendId
    title
    titleSlug
    difficulty
    content
    topicTags { name slug }
    isPaidOnly
  }
}`

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// Client talks to the GraphQL endpoint directly.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data *struct {
		Question *question `json:"question"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type question struct {
	QuestionFrontendID string  `json:"questionFrontendId"`
	Title              string  `json:"title"`
	TitleSlug          string  `json:"titleSlug"`
	Difficulty         string  `json:"difficulty"`
	Content            *string `json:"content"`
	TopicTags          []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"topicTags"`
	IsPaidOnly bool `json:"isPaidOnly"`
}

func (c *Client) Fetch(ctx context.Context, slug string) (*Metadata, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query:     questionQuery,
		Variables: map[string]any{"titleSlug": slug},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com/problems/"+slug+"/")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &ErrUnavailable{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if err := classifyStatus(resp, body); err != nil {
		return nil, err
	}

	if err := validatePayload(body); err != nil {
		return nil, err
	}

	var gr graphQLResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, &ErrInvalidResponse{Body: body, Err: err}
	}
	if gr.Data == nil || gr.Data.Question == nil {
		if len(gr.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, gr.Errors[0].Message)
		}
		return nil, ErrNotFound
	}
	return toMetadata(gr.Data.Question, body)
}

func classifyStatus(resp *http.Response, body []byte) error {
	switch code := resp.StatusCode; {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        errors.New(http.StatusText(code)),
		}
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &ErrUnavailable{StatusCode: code}
	default:
		return &ErrInvalidResponse{Body: body, Err: fmt.Errorf("unexpected status %d", code)}
	}
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func toMetadata(q *question, body []byte) (*Metadata, error) {
	id, err := strconv.Atoi(q.QuestionFrontendID)
	if err != nil {
		return nil, &ErrInvalidResponse{Body: body, Err: fmt.Errorf("questionFrontendId %q: %w", q.QuestionFrontendID, err)}
	}
	m := &Metadata{
		ExternalID: id,
		Title:      q.Title,
		Slug:       q.TitleSlug,
		Difficulty: strings.ToLower(q.Difficulty),
		Tags:       make([]string, 0, len(q.TopicTags)),
		PaidOnly:   q.IsPaidOnly,
	}
	if q.Content != nil {
		m.Description = *q.Content
	}
	for _, t := range q.TopicTags {
		m.Tags = append(m.Tags, t.Name)
	}
	return m, nil
}
