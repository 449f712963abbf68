package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/infrastructure/metrics"
)

// HTTPClassifier sends images to an NSFW model server. The server takes a
// JPEG body and answers with [{"className": "...", "probability": 0.0}].
type HTTPClassifier struct {
	endpoint   string
	httpClient *http.Client
	labels     map[string]bool
}

var _ service.ImageClassifier = (*HTTPClassifier)(nil)

func NewHTTPClassifier(endpoint string, timeout time.Duration) *HTTPClassifier {
	labels := make(map[string]bool, len(entity.ClassificationLabels))
	for _, l := range entity.ClassificationLabels {
		labels[l] = true
	}
	return &HTTPClassifier{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		labels:     labels,
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, img image.Image) ([]entity.Prediction, error) {
	var body bytes.Buffer
	if err := jpeg.Encode(&body, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode image for classifier: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ClassifierLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classifier responded %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var raw []entity.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}

	predictions := make([]entity.Prediction, 0, len(raw))
	for _, p := range raw {
		if !c.labels[p.ClassName] {
			continue
		}
		predictions = append(predictions, entity.Prediction{ClassName: p.ClassName, Probability: clamp(p.Probability)})
	}
	return predictions, nil
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
