package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"io"
	"net/http"
	"time"
)

// Client sends scan images to a remote model service for
// classification.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a Client that posts to endpoint and gives up
// after timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type predictionRequest struct {
	Image string `json:"image"`
}

// Predict encodes img, posts it to the model service and maps the
// response onto the known labels.
func (c *Client) Predict(ctx context.Context, img image.Image) (Result, error) {
	payload, err := EncodePayload(img)
	if err != nil {
		return Result{}, err
	}

	requestBody, err := json.Marshal(predictionRequest{Image: payload})
	if err != nil {
		return Result{}, &EncodeError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return Result{}, &NetworkError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Result{}, &APIError{StatusCode: resp.StatusCode}
	}

	var rr RemoteResult
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return Result{}, &APIError{StatusCode: resp.StatusCode, Reason: "malformed response body"}
	}

	return MapRemote(rr), nil
}
