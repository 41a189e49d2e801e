// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultSupabaseTimeout = 10 * time.Second

// SupabaseConfig holds the identity provider connection settings.
type SupabaseConfig struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
	JWTSecret      string
	Timeout        time.Duration
	HTTPClient     *http.Client
}

// supabaseClient performs raw calls against the Supabase Auth (GoTrue) REST API.
type supabaseClient struct {
	baseURL    string
	httpClient *http.Client
}

// supabaseResponse is a buffered Auth API response.
type supabaseResponse struct {
	StatusCode int
	Body       []byte
}

func newSupabaseClient(cfg SupabaseConfig) *supabaseClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultSupabaseTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &supabaseClient{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		httpClient: httpClient,
	}
}

// do sends a request authenticated with bearer and identified by apiKey.
func (c *supabaseClient) do(ctx context.Context, method, path, apiKey, bearer string) (*supabaseResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &supabaseResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// OK reports whether the response has a 2xx status.
func (r *supabaseResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Message extracts the human readable error text the Auth API returned.
func (r *supabaseResponse) Message() string {
	var errResp struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}

	if err := json.Unmarshal(r.Body, &errResp); err == nil {
		for _, candidate := range []string{errResp.Msg, errResp.Message, errResp.ErrorDescription, errResp.Error} {
			if candidate != "" {
				return candidate
			}
		}
	}

	return fmt.Sprintf("identity provider returned status %d", r.StatusCode)
}
