package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Fixed fallback replies. Upstream failure never fails the chat call:
// the conversation always gets an assistant turn, at worst one of these.
const (
	ModelLoadingReply = "The AI model is still loading. Please try again in a moment."
	AuthFailureReply  = "There's an issue with the AI service authentication. Please contact the administrator."
	GenericReply      = "Sorry, I couldn't process your request at the moment. Please try again later."
	EmptyReply        = "I received your message but couldn't generate a proper response. Please try again."
)

// requestTimeout is the single bounded wait on the upstream call.
// There is no retry; exceeding it is a hard failure.
const requestTimeout = 60 * time.Second

// Client calls a hosted-inference API to generate assistant replies.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

// NewClient creates a generator client for the given inference endpoint.
func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxLength      int     `json:"max_length"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends prompt text upstream and returns the generated reply,
// or a fixed fallback string. It never returns an error: every failure
// mode maps to degraded content, so callers always have a reply to
// persist.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	body, err := json.Marshal(generateRequest{
		Inputs: fmt.Sprintf("<s>[INST] %s [/INST]</s>", prompt),
		Parameters: generateParameters{
			MaxLength:      500,
			Temperature:    0.7,
			TopP:           0.9,
			DoSample:       true,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return GenericReply
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.model, bytes.NewReader(body))
	if err != nil {
		return GenericReply
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// A timed-out wait usually means the model is still spinning up.
		if isTimeout(err) {
			log.Printf("assistant: upstream timed out: %v", err)
			return ModelLoadingReply
		}
		log.Printf("assistant: upstream request failed: %v", err)
		return GenericReply
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return ModelLoadingReply
	case resp.StatusCode == http.StatusUnauthorized:
		return AuthFailureReply
	case resp.StatusCode != http.StatusOK:
		log.Printf("assistant: unexpected upstream status %d", resp.StatusCode)
		return GenericReply
	}

	var results []generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Printf("assistant: could not decode upstream response: %v", err)
		return EmptyReply
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		return EmptyReply
	}
	return results[0].GeneratedText
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}
