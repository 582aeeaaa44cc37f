package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/m-a-mohsen/brainct-analyzer/internal/predict"
	"github.com/m-a-mohsen/brainct-analyzer/internal/scan"
)

// maxUploadSize caps multipart parsing (32MB).
const maxUploadSize = 32 << 20

var (
	errBadForm       = errors.New("could not parse upload form")
	errMissingUpload = errors.New("no scan file provided")
)

type Handler struct {
	predictor predict.Predictor
}

func NewHandler(predictor predict.Predictor) *Handler {
	return &Handler{
		predictor: predictor,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Index serves the upload page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	renderPage(w, &pageView{})
}

// Analyze accepts a DICOM upload and renders the analysis back as
// HTML. Pipeline failures come back on the same page as a notice.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a, err := h.runPipeline(r)
	if err != nil {
		renderPage(w, &pageView{Notice: noticeFor(err)})
		return
	}
	renderPage(w, buildView(a))
}

// AnalyzeAPI is the JSON variant of Analyze for programmatic callers.
func (h *Handler) AnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a, err := h.runPipeline(r)
	if err != nil {
		log.Printf("analysis failed: %v", err)
		sendError(w, statusFor(err), noticeFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analyzeResponse{
		ID:         a.ID,
		Source:     a.Result.Source,
		Label:      a.Result.Label,
		Confidence: a.Result.Confidence,
		Breakdown:  a.Result.Breakdown,
	})
}

// analysis carries one upload through the decode, normalize and
// predict stages.
type analysis struct {
	ID       string
	Scan     *scan.Scan
	ImagePNG []byte
	Result   predict.Result
}

func (h *Handler) runPipeline(r *http.Request) (*analysis, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, errBadForm
	}

	file, header, err := r.FormFile("scan")
	if err != nil {
		return nil, errMissingUpload
	}
	defer file.Close()

	id := uuid.New().String()
	log.Printf("analysis %s: received %s (%d bytes)", id, header.Filename, header.Size)

	s, err := scan.Decode(file)
	if err != nil {
		return nil, err
	}

	gray, err := scan.Normalize(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, &predict.EncodeError{Err: err}
	}

	result, err := h.predictor.Predict(r.Context(), gray)
	if err != nil {
		return nil, err
	}

	log.Printf("analysis %s: %s (%.2f confidence, %s)", id, result.Label, result.Confidence, result.Source)

	return &analysis{ID: id, Scan: s, ImagePNG: buf.Bytes(), Result: result}, nil
}

// noticeFor turns a pipeline error into the message shown to the
// user.
func noticeFor(err error) string {
	var de *scan.DecodeError
	var ne *predict.NetworkError
	var ae *predict.APIError

	switch {
	case errors.Is(err, errMissingUpload):
		return "No scan file provided. Use 'scan' as the form field name."
	case errors.Is(err, errBadForm):
		return "Could not read the upload form."
	case errors.Is(err, scan.ErrConstantImage):
		return "Error processing DICOM file: the image has no intensity variation."
	case errors.As(err, &de):
		return fmt.Sprintf("Error processing DICOM file: %v", de.Err)
	case errors.As(err, &ne):
		return fmt.Sprintf("Network error: %v", ne.Err)
	case errors.As(err, &ae):
		if ae.Reason != "" {
			return fmt.Sprintf("Model API error: %d (%s)", ae.StatusCode, ae.Reason)
		}
		return fmt.Sprintf("Model API error: %d", ae.StatusCode)
	default:
		return fmt.Sprintf("Error processing DICOM file: %v", err)
	}
}

// statusFor maps a pipeline error to an HTTP status for the JSON API.
func statusFor(err error) int {
	var ne *predict.NetworkError
	var ae *predict.APIError
	if errors.As(err, &ne) || errors.As(err, &ae) {
		return http.StatusServiceUnavailable
	}
	var de *scan.DecodeError
	var ee *predict.EncodeError
	switch {
	case errors.Is(err, errMissingUpload), errors.Is(err, errBadForm),
		errors.Is(err, scan.ErrConstantImage), errors.As(err, &de), errors.As(err, &ee):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type analyzeResponse struct {
	ID         string                     `json:"id"`
	Source     predict.Source             `json:"source"`
	Label      string                     `json:"label"`
	Confidence float64                    `json:"confidence"`
	Breakdown  []predict.LabelProbability `json:"breakdown,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func sendError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
