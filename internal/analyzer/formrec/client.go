package formrec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"docintake-backend/internal/analyzer"
)

const (
	analyzePath  = "/formrecognizer/documentModels/prebuilt-document:analyze"
	apiVersion   = "2023-07-31"
	keyHeader    = "Ocp-Apim-Subscription-Key"
	statusFailed = "failed"
	statusDone   = "succeeded"
)

// Client calls an Azure Document Intelligence-style REST service: submit the
// document bytes, then poll the returned operation until it reaches a
// terminal status. Failures are not retried; the caller surfaces them as-is.
type Client struct {
	endpoint     string
	apiKey       string
	httpClient   *http.Client
	pollInterval time.Duration
}

// NewClient constructs a client for the configured analysis service.
func NewClient(endpoint, apiKey string) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("ANALYZER_ENDPOINT is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ANALYZER_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("ANALYZER_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		endpoint:     strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: timeout},
		pollInterval: 2 * time.Second,
	}, nil
}

type operationResponse struct {
	Status        string         `json:"status"`
	AnalyzeResult *analyzeResult `json:"analyzeResult,omitempty"`
	Error         *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type analyzeResult struct {
	Documents []struct {
		DocType    string  `json:"docType"`
		Confidence float64 `json:"confidence"`
		Fields     map[string]struct {
			Content     string `json:"content"`
			ValueString string `json:"valueString"`
		} `json:"fields"`
	} `json:"documents"`
	KeyValuePairs []struct {
		Key struct {
			Content string `json:"content"`
		} `json:"key"`
		Value struct {
			Content string `json:"content"`
		} `json:"value"`
	} `json:"keyValuePairs"`
}

// Analyze submits the local copy of the document and polls for the result.
func (c *Client) Analyze(ctx context.Context, location, localPath string) (analyzer.Result, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return analyzer.Result{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	operationURL, err := c.submit(ctx, f)
	if err != nil {
		return analyzer.Result{}, err
	}

	op, err := c.poll(ctx, operationURL)
	if err != nil {
		return analyzer.Result{}, err
	}
	return mapResult(op.AnalyzeResult), nil
}

func (c *Client) submit(ctx context.Context, body io.Reader) (string, error) {
	url := fmt.Sprintf("%s%s?api-version=%s", c.endpoint, analyzePath, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set(keyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit document: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}
	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("analysis service returned no Operation-Location")
	}
	return operationURL, nil
}

func (c *Client) poll(ctx context.Context, operationURL string) (operationResponse, error) {
	for {
		op, err := c.fetchOperation(ctx, operationURL)
		if err != nil {
			return operationResponse{}, err
		}

		switch op.Status {
		case statusDone:
			return op, nil
		case statusFailed:
			msg := "analysis failed"
			if op.Error != nil && op.Error.Message != "" {
				msg = op.Error.Message
			}
			return operationResponse{}, fmt.Errorf("analysis service: %s", msg)
		}

		select {
		case <-ctx.Done():
			return operationResponse{}, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) fetchOperation(ctx context.Context, operationURL string) (operationResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	if err != nil {
		return operationResponse{}, fmt.Errorf("build poll request: %w", err)
	}
	req.Header.Set(keyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return operationResponse{}, fmt.Errorf("poll operation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return operationResponse{}, fmt.Errorf("analysis poll returned status %d", resp.StatusCode)
	}

	var op operationResponse
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return operationResponse{}, fmt.Errorf("decode operation: %w", err)
	}
	return op, nil
}

func mapResult(ar *analyzeResult) analyzer.Result {
	result := analyzer.Result{Fields: []analyzer.Field{}}
	if ar == nil {
		return result
	}

	if len(ar.Documents) > 0 {
		doc := ar.Documents[0]
		result.DocumentType = doc.DocType
		result.Confidence = doc.Confidence
		for name, val := range doc.Fields {
			value := val.ValueString
			if value == "" {
				value = val.Content
			}
			result.Fields = append(result.Fields, analyzer.Field{Name: name, Value: value})
		}
		// Field maps iterate in random order; keep output stable.
		sort.Slice(result.Fields, func(i, j int) bool {
			return result.Fields[i].Name < result.Fields[j].Name
		})
	}

	for _, kv := range ar.KeyValuePairs {
		if kv.Key.Content == "" {
			continue
		}
		result.Fields = append(result.Fields, analyzer.Field{Name: kv.Key.Content, Value: kv.Value.Content})
	}

	return result
}

var _ analyzer.Analyzer = (*Client)(nil)
