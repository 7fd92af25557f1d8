package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/selimozcann/StrengthLens/internal/model"
	"github.com/selimozcann/StrengthLens/internal/platform/errs"
)

// maxResponseBody caps how much of an answer is read.
const maxResponseBody = 1 << 20

var errEmptyBody = errors.New("empty response body")

// Client posts passwords to the scoring service.
type Client struct {
	http     *http.Client
	endpoint string
	logger   *slog.Logger
}

// NewClient returns a Client for the /analyze endpoint at endpoint.
func NewClient(endpoint string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{http: httpClient, endpoint: endpoint, logger: logger}
}

// Analyze sends password to the scoring service. Failures are *errs.AppError
// of kind Transport, Parse or Backend.
func (c *Client) Analyze(ctx context.Context, password string) (*model.AnalysisResponse, error) {
	body, err := json.Marshal(model.AnalyzeRequest{Password: password})
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Unknown, Message: "encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Transport, Message: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Transport, Message: "scoring service unreachable", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Transport, Status: resp.StatusCode, Message: "read response", Cause: err}
	}

	out, decodeErr := decode(data)
	switch {
	case decodeErr == nil && out.Error != "":
		return nil, &errs.AppError{Kind: errs.Backend, Status: resp.StatusCode, Message: out.Error}
	case resp.StatusCode >= 400:
		return nil, &errs.AppError{
			Kind:    errs.Transport,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("scoring service answered %d", resp.StatusCode),
			Cause:   decodeErr,
		}
	case decodeErr != nil:
		return nil, &errs.AppError{Kind: errs.Parse, Status: resp.StatusCode, Message: "malformed analysis response", Cause: decodeErr}
	}

	c.logger.Debug("analysis received",
		"status", resp.StatusCode,
		"empty", out.Analysis.Empty(),
		"attack_vectors", len(out.AttackVectors),
	)
	return out, nil
}

func decode(data []byte) (*model.AnalysisResponse, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyBody
	}
	var out *model.AnalysisResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errEmptyBody
	}
	return out, nil
}
