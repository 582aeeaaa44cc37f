// Package predict produces hemorrhage classifications for normalized
// CT scan images, either by calling a remote model service or by
// simulating one locally.
package predict

import (
	"context"
	"image"
	"strings"
)

// Labels holds the five hemorrhage types the classifier distinguishes,
// in the order the model service reports probabilities.
var Labels = [5]string{
	"Epidural Hemorrhage",
	"Subdural Hemorrhage",
	"Subarachnoid Hemorrhage",
	"Intraventricular Hemorrhage",
	"Intracerebral Hemorrhage",
}

// ShortLabel strips the common " Hemorrhage" suffix for use in
// space-constrained output such as chart axes.
func ShortLabel(label string) string {
	return strings.TrimSuffix(label, " Hemorrhage")
}

// Source identifies where a prediction came from.
type Source string

const (
	SourceSimulated Source = "simulation"
	SourceModel     Source = "model"
)

// LabelProbability pairs a hemorrhage label with the probability the
// model assigned to it.
type LabelProbability struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// Result is a single prediction. Breakdown carries the full per-label
// distribution when the model service produced one; simulated results
// leave it empty.
type Result struct {
	Source     Source             `json:"source"`
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	Breakdown  []LabelProbability `json:"breakdown,omitempty"`
}

// Predictor classifies a normalized scan image.
type Predictor interface {
	Predict(ctx context.Context, img image.Image) (Result, error)
}

// RemoteResult is the response body of the model service's
// /predict_base64 endpoint.
type RemoteResult struct {
	PredictedType string    `json:"predicted_type"`
	Confidence    float64   `json:"confidence"`
	Probabilities []float64 `json:"probabilities"`
}

// MapRemote converts a model service response into a Result, zipping
// the probability vector with the known labels. Missing probabilities
// are filled with zero, extras are dropped.
func MapRemote(rr RemoteResult) Result {
	breakdown := make([]LabelProbability, len(Labels))
	for i, label := range Labels {
		var p float64
		if i < len(rr.Probabilities) {
			p = rr.Probabilities[i]
		}
		breakdown[i] = LabelProbability{Label: label, Probability: p}
	}
	return Result{
		Source:     SourceModel,
		Label:      rr.PredictedType,
		Confidence: rr.Confidence,
		Breakdown:  breakdown,
	}
}
