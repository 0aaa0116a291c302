package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultD1BaseURL is the Cloudflare API root the D1 query endpoint hangs off
const DefaultD1BaseURL = "https://api.cloudflare.com/client/v4"

// D1Config carries everything the client needs; it is read once at startup
type D1Config struct {
	AccountID  string
	DatabaseID string
	APIToken   string
	// BaseURL overrides DefaultD1BaseURL (tests, proxies)
	BaseURL string
	// Timeout bounds a whole round trip; zero means no client-side timeout
	Timeout time.Duration
	// HTTPClient replaces the default client when set
	HTTPClient *http.Client
}

// Validate reports which of the required settings are missing
func (c D1Config) Validate() error {
	var missing []string
	if c.AccountID == "" {
		missing = append(missing, "account id")
	}
	if c.DatabaseID == "" {
		missing = append(missing, "database id")
	}
	if c.APIToken == "" {
		missing = append(missing, "api token")
	}
	if len(missing) > 0 {
		return errs.NewConfigMissingError(missing...)
	}
	return nil
}

// D1QueryRequest is the body posted to the D1 query endpoint
type D1QueryRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// D1Response is the Cloudflare API envelope around query results.
// Result is kept raw so an unexpected shape can be told apart from a failure.
type D1Response struct {
	Result   json.RawMessage `json:"result"`
	Success  *bool           `json:"success"`
	Errors   []D1Error       `json:"errors"`
	Messages []D1Error       `json:"messages"`
}

// D1Result is one statement's result set
type D1Result struct {
	Results json.RawMessage `json:"results"`
}

// D1Error is an error or message entry in the envelope
type D1Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// D1Client executes SQL against a Cloudflare D1 database over HTTPS.
// Each Query is one independent POST: no retries, no caching, no shared per-call state.
type D1Client struct {
	endpoint   string
	apiToken   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewD1Client(cfg D1Config) (*D1Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultD1BaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &D1Client{
		endpoint:   fmt.Sprintf("%s/accounts/%s/d1/database/%s/query", baseURL, cfg.AccountID, cfg.DatabaseID),
		apiToken:   cfg.APIToken,
		httpClient: httpClient,
		logger:     log.With().Str("service", "d1").Str("databaseID", cfg.DatabaseID).Logger(),
	}, nil
}

// Query posts sql and params and returns the rows of the first result set.
// A well-formed response without that nesting yields no rows rather than an error.
func (c *D1Client) Query(ctx context.Context, sql string, params []any) ([]map[string]any, error) {
	if params == nil {
		params = []any{}
	}

	jsonPayload, err := json.Marshal(D1QueryRequest{SQL: sql, Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal D1 query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create D1 request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("requestID", requestID).Msg("D1 request failed")
		return nil, errs.NewBackendCallError("D1 query", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewBackendCallError("reading D1 response", err)
	}

	c.logger.Debug().
		Str("requestID", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("D1 query")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := errorMessage(bodyBytes)
		c.logger.Error().
			Str("requestID", requestID).
			Int("status", resp.StatusCode).
			Str("message", message).
			Msg("D1 returned an error status")
		return nil, errs.NewBackendUnavailableError(resp.StatusCode, message)
	}

	if !json.Valid(bodyBytes) {
		return nil, errs.NewBackendUnavailableError(resp.StatusCode, "undecodable response: "+strings.TrimSpace(string(bodyBytes)))
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		c.logger.Warn().Str("requestID", requestID).Msg("D1 response is not an object, returning no rows")
		return []map[string]any{}, nil
	}

	var success *bool
	if err := json.Unmarshal(envelope["success"], &success); err == nil && success != nil && !*success {
		return nil, errs.NewBackendUnavailableError(resp.StatusCode, errorMessage(bodyBytes))
	}

	return resultRows(envelope["result"]), nil
}

// resultRows extracts result[0].results. Any other shape yields no rows.
func resultRows(raw json.RawMessage) []map[string]any {
	rows := []map[string]any{}

	var results []json.RawMessage
	if err := json.Unmarshal(raw, &results); err != nil || len(results) == 0 {
		return rows
	}

	var first D1Result
	if err := json.Unmarshal(results[0], &first); err != nil || len(first.Results) == 0 {
		return rows
	}

	// numbers stay json.Number so large integer ids survive decoding
	var decoded []map[string]any
	decoder := json.NewDecoder(bytes.NewReader(first.Results))
	decoder.UseNumber()
	if err := decoder.Decode(&decoded); err != nil || decoded == nil {
		return rows
	}
	return decoded
}

// errorMessage prefers the envelope's error messages and falls back to the raw body
func errorMessage(body []byte) string {
	var envelope D1Response
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return strings.Join(messages, "; ")
	}
	return strings.TrimSpace(string(body))
}
