package main

import (
	"log"
	"net/http"
	"time"

	"github.com/m-a-mohsen/brainct-analyzer/internal/config"
	"github.com/m-a-mohsen/brainct-analyzer/internal/handlers"
	"github.com/m-a-mohsen/brainct-analyzer/internal/predict"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func main() {
	cfg := config.Load()

	var predictor predict.Predictor
	switch cfg.Predict.Mode {
	case config.ModeRemote:
		timeout := time.Duration(cfg.Predict.TimeoutSeconds) * time.Second
		predictor = predict.NewClient(cfg.Predict.Endpoint, timeout)
		log.Printf("Using model service at %s (timeout %s)", cfg.Predict.Endpoint, timeout)
	case config.ModeSimulate:
		delay := time.Duration(cfg.Predict.SimDelaySeconds) * time.Second
		predictor = predict.NewSimulator(nil, delay)
		log.Printf("Using simulated predictions (delay %s)", delay)
	default:
		log.Fatalf("Unknown PREDICT_MODE %q, want %q or %q", cfg.Predict.Mode, config.ModeSimulate, config.ModeRemote)
	}

	handler := handlers.NewHandler(predictor)

	http.HandleFunc("/", enableCORS(handler.Index))
	http.HandleFunc("/analyze", enableCORS(handler.Analyze))
	http.HandleFunc("/api/analyze", enableCORS(handler.AnalyzeAPI))
	http.HandleFunc("/health", enableCORS(handler.Health))

	log.Printf("Server starting on port %s", cfg.Port)
	log.Println("Endpoints:")
	log.Println("  GET  /            - Upload page")
	log.Println("  POST /analyze     - Analyze a DICOM scan (HTML)")
	log.Println("  POST /api/analyze - Analyze a DICOM scan (JSON)")
	log.Println("  GET  /health      - Health check")
	log.Printf("\n💡 Upload test: curl -X POST -F \"scan=@head.dcm\" http://localhost:%s/api/analyze\n\n", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
