// Command mockmodel stands in for the real classification service.
// It accepts the same /predict_base64 requests and answers with a
// random probability distribution, which makes it useful for running
// the analyzer in remote mode without the model weights.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"math/rand"
	"net/http"
	"os"

	"github.com/m-a-mohsen/brainct-analyzer/internal/predict"
)

type predictionRequest struct {
	Image string `json:"image"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/predict_base64", predictHandler)

	port := getEnv("PORT", "8000")
	log.Printf("Mock model service starting on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func predictHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var request predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(request.Image)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Image must be base64-encoded PNG")
		return
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		sendError(w, http.StatusBadRequest, "Image must be base64-encoded PNG")
		return
	}
	if cfg.Width != 224 || cfg.Height != 224 {
		sendError(w, http.StatusBadRequest,
			fmt.Sprintf("Image must be 224x224, got %dx%d", cfg.Width, cfg.Height))
		return
	}

	probs := randomProbabilities()
	maxIdx := 0
	for i, p := range probs {
		if p > probs[maxIdx] {
			maxIdx = i
		}
	}

	response := predict.RemoteResult{
		PredictedType: predict.Labels[maxIdx],
		Confidence:    probs[maxIdx],
		Probabilities: probs,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding response: %v", err)
		return
	}

	log.Printf("Prediction request processed: %s (%.2f)", response.PredictedType, response.Confidence)
}

// randomProbabilities draws a vector over the known labels that sums
// to one.
func randomProbabilities() []float64 {
	probs := make([]float64, len(predict.Labels))
	var sum float64
	for i := range probs {
		probs[i] = rand.ExpFloat64()
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sendError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
