package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mattw23n/wayfinders/venue"
)

const (
	// DefaultBaseURL is the Anthropic API endpoint.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultModel is used when the config does not name one.
	DefaultModel = "claude-haiku-4-5-20251001"

	// DefaultTimeout bounds the single explanation call. Routes are returned
	// with fallback text if the call does not finish in time.
	DefaultTimeout = 20 * time.Second

	apiVersion = "2023-06-01"
	maxTokens  = 1024
)

// Fallback annotations used when the LLM is unavailable or its response
// cannot be matched to a route.
const (
	FallbackDisabled    = "Explanation not available."
	FallbackRecommended = "Recommended route with lowest crowdedness."
	FallbackAlternative = "Alternative route option."
	FallbackTimeout     = "Route explanation timed out."
	FallbackError       = "Could not generate explanation due to an error."
)

// Explainer generates route explanations via the Anthropic messages API.
// A nil Explainer, or one built without an API key, annotates every route
// with FallbackDisabled.
type Explainer struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New creates an explainer. Empty baseURL and model select the defaults; an
// empty apiKey disables LLM calls entirely.
func New(baseURL, apiKey, model string, timeout time.Duration) *Explainer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Explainer{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Annotate fills the Explanation field of every scored route in place. It
// never returns an error: failures degrade to fallback text.
func (e *Explainer) Annotate(ctx context.Context, routes []venue.ScoredRoute) {
	if len(routes) == 0 {
		return
	}
	if e == nil || e.apiKey == "" {
		for i := range routes {
			routes[i].Explanation = FallbackDisabled
		}
		return
	}

	text, err := e.complete(ctx, prompt(routes))
	if err != nil {
		fallback := FallbackError
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			fallback = FallbackTimeout
		}
		for i := range routes {
			routes[i].Explanation = fallback
		}
		return
	}

	for i, expl := range parseExplanations(text, len(routes)) {
		routes[i].Explanation = expl
	}
}

// prompt formats every route into a single instruction asking for one
// "Route N:" line per route. The first route is always the recommended one.
func prompt(routes []venue.ScoredRoute) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are helping a user choose between %d pedestrian route options.\n", len(routes))
	b.WriteString("The crowdedness score is lower for less crowded routes.\n\nHere are ALL the route options:\n\n")

	for i, sr := range routes {
		fmt.Fprintf(&b, "Route %d:\n", i+1)
		fmt.Fprintf(&b, "  - Duration: %.1f minutes\n", sr.Route.DurationSeconds/60)
		fmt.Fprintf(&b, "  - Distance: %.0f meters\n", sr.Route.DistanceMeters)
		fmt.Fprintf(&b, "  - Crowdedness score: %.0f\n", sr.PenaltyScore)
		fmt.Fprintf(&b, "  - Busy venues on route: %d\n", len(sr.CriticalVenues))

		limit := len(sr.CriticalVenues)
		if limit > 3 {
			limit = 3
		}
		for _, cv := range sr.CriticalVenues[:limit] {
			people := 0
			for _, c := range cv.CriticalClasses {
				people += c.Size
			}
			fmt.Fprintf(&b, "  - Busy venue: %s (%d people)\n", cv.RoomName, people)
		}
		b.WriteString("\n")
	}

	b.WriteString("Provide a very short, one-sentence explanation for EACH route in order.\n")
	b.WriteString("Format your response EXACTLY as:\n")
	for i := range routes {
		fmt.Fprintf(&b, "Route %d: [explanation]\n", i+1)
	}
	b.WriteString("\nRoute 1 is ALWAYS the recommended route (lowest crowdedness score).\n")
	b.WriteString("For Route 1, start with \"Best choice:\" and explain why.\n")
	b.WriteString("For other routes, explain the trade-off compared to Route 1.\n")
	b.WriteString("Mention specific venue names and crowd sizes when relevant.\n")
	b.WriteString("ONE sentence per route maximum.\n")
	return b.String()
}

// parseExplanations matches "Route N:" lines back to routes. Routes without
// a matching line get the position-dependent fallback.
func parseExplanations(text string, n int) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		pattern := fmt.Sprintf("Route %d:", i)
		expl := ""
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, pattern) {
				expl = strings.TrimSpace(strings.TrimPrefix(trimmed, pattern))
				break
			}
		}
		if expl == "" {
			if i == 1 {
				expl = FallbackRecommended
			} else {
				expl = FallbackAlternative
			}
		}
		out = append(out, expl)
	}
	return out
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// complete performs one messages API call and returns the concatenated text
// content.
func (e *Explainer) complete(ctx context.Context, userPrompt string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     e.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: userPrompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encode explanation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build explanation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", fmt.Errorf("fetch explanation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read explanation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from LLM API", resp.StatusCode)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parse explanation response: %w", err)
	}
	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
