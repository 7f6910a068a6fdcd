package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nevindra/fiscus"
)

// Provider implements fiscus.Provider for any OpenAI-compatible API.
type Provider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	name    string
	opts    []Option
}

// NewProvider creates an OpenAI-compatible chat provider.
//
// baseURL is the API base (e.g. "https://api.openai.com/v1",
// "http://localhost:11434/v1"). The /chat/completions path is appended
// automatically.
//
// Provider-level options (WithOptions(WithTemperature(...)), etc.) are
// applied to every request; a Temperature on the fiscus.ChatRequest
// overrides them.
func NewProvider(apiKey, model, baseURL string, opts ...ProviderOption) *Provider {
	p := &Provider{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{},
		name:    "openai",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name (default "openai", configurable via WithName).
func (p *Provider) Name() string { return p.name }

// requestOptions returns the provider's base options with per-request
// overrides appended. Per-request values win because options are applied
// in order (last wins).
func (p *Provider) requestOptions(req fiscus.ChatRequest) []Option {
	if req.Temperature == nil {
		return p.opts
	}
	opts := make([]Option, len(p.opts), len(p.opts)+1)
	copy(opts, p.opts)
	return append(opts, WithTemperature(*req.Temperature))
}

// Chat sends a chat request and returns the complete response.
func (p *Provider) Chat(ctx context.Context, req fiscus.ChatRequest) (fiscus.ChatResponse, error) {
	body := BuildBody(req.Messages, p.model, p.requestOptions(req)...)

	resp, err := p.sendHTTP(ctx, body)
	if err != nil {
		return fiscus.ChatResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fiscus.ChatResponse{}, p.httpErr(resp)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return fiscus.ChatResponse{}, &fiscus.ErrLLM{Provider: p.name, Message: fmt.Sprintf("decode response: %v", err)}
	}

	return ParseResponse(chatResp)
}

// sendHTTP marshals the request body and sends it to the chat completions
// endpoint.
func (p *Provider) sendHTTP(ctx context.Context, body ChatRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &fiscus.ErrLLM{Provider: p.name, Message: fmt.Sprintf("marshal request: %v", err)}
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &fiscus.ErrLLM{Provider: p.name, Message: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	return p.client.Do(httpReq)
}

// httpErr reads the response body and returns an ErrHTTP for the retry
// middleware. Parses the Retry-After header when present (429/503 responses).
func (p *Provider) httpErr(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &fiscus.ErrHTTP{
		Status:     resp.StatusCode,
		Body:       string(body),
		RetryAfter: fiscus.ParseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// Compile-time interface check.
var _ fiscus.Provider = (*Provider)(nil)
