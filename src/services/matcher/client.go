package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"Backend-Bioattend-003/src/utils"
)

// DatabaseEntry is one candidate sent to the match service.
type DatabaseEntry struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId,omitempty"`
	Label     string `json:"label"`
	ImageData []byte `json:"imageData"`
}

type matchRequest struct {
	QueryImage       []byte          `json:"queryImage"`
	Database         []DatabaseEntry `json:"database"`
	IsDuplicateCheck bool            `json:"is_duplicate_check"`
}

// BestMatch is the single highest-scoring candidate in a response.
type BestMatch struct {
	ID          string  `json:"id" validate:"required"`
	OwnerID     string  `json:"ownerId" validate:"required"`
	Label       string  `json:"label"`
	StudentName string  `json:"studentName"`
	Score       float64 `json:"score" validate:"min=0,max=100"`
	Confidence  float64 `json:"confidence" validate:"min=0,max=100"`
}

// MatchResponse is the strict shape of a 200 reply. Anything that does not
// decode and validate against it is treated as a fatal service error.
type MatchResponse struct {
	Success       bool       `json:"success"`
	Matched       bool       `json:"matched"`
	BestMatch     *BestMatch `json:"bestMatch,omitempty"`
	TotalCompared int        `json:"totalCompared" validate:"min=0"`
	Error         string     `json:"error,omitempty"`
}

// Scorer is the match-service call the engine depends on. The concrete
// Client talks HTTP; tests substitute stubs.
type Scorer interface {
	Match(ctx context.Context, query []byte, database []DatabaseEntry, duplicateCheck bool) (*MatchResponse, error)
}

// Client calls the remote match service with retry on 503 and on
// network-level failures. Other non-2xx replies are fatal.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Retrier    *Retrier
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Retrier:    NewRetrier(),
	}
}

func (c *Client) Match(ctx context.Context, query []byte, database []DatabaseEntry, duplicateCheck bool) (*MatchResponse, error) {
	var resp *MatchResponse
	err := c.Retrier.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.doMatch(ctx, query, database, duplicateCheck)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) doMatch(ctx context.Context, query []byte, database []DatabaseEntry, duplicateCheck bool) (*MatchResponse, error) {
	body, err := json.Marshal(matchRequest{
		QueryImage:       query,
		Database:         database,
		IsDuplicateCheck: duplicateCheck,
	})
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/match", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		// network-level failure follows the same backoff schedule as a 503
		return nil, fmt.Errorf("%w: %v", ErrMatcherUnavailable, err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)

	if res.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("%w: status 503", ErrMatcherUnavailable)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &Error{Status: res.StatusCode, Message: string(raw)}
	}

	var out MatchResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{Message: fmt.Sprintf("decode response: %v", err)}
	}
	if !out.Success {
		return nil, &Error{Message: "service reported failure: " + out.Error}
	}
	if out.Matched && out.BestMatch == nil {
		return nil, &Error{Message: "matched response missing bestMatch"}
	}
	if out.BestMatch != nil {
		if err := utils.Validate.Struct(out.BestMatch); err != nil {
			return nil, &Error{Message: fmt.Sprintf("invalid bestMatch: %v", err)}
		}
	}
	if err := utils.Validate.Struct(&out); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid response: %v", err)}
	}
	return &out, nil
}
