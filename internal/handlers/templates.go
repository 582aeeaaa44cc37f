package handlers

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/m-a-mohsen/brainct-analyzer/internal/plot"
	"github.com/m-a-mohsen/brainct-analyzer/internal/predict"
	"github.com/m-a-mohsen/brainct-analyzer/internal/scan"
)

type breakdownView struct {
	Label   string
	Percent string
}

// pageView is the template data for the analyzer page. A zero value
// renders the bare upload form.
type pageView struct {
	Notice     string
	HasResult  bool
	ID         string
	Caption    string
	Image      template.URL
	Simulated  bool
	Label      string
	Confidence string
	Breakdown  []breakdownView
	Chart      template.URL
	ChartNote  string
}

func buildView(a *analysis) *pageView {
	v := &pageView{
		HasResult:  true,
		ID:         a.ID,
		Caption:    captionFor(a.Scan),
		Image:      dataURL("image/png", a.ImagePNG),
		Simulated:  a.Result.Source == predict.SourceSimulated,
		Label:      a.Result.Label,
		Confidence: fmt.Sprintf("%.2f%%", a.Result.Confidence*100),
	}
	if v.Simulated {
		return v
	}

	for _, lp := range a.Result.Breakdown {
		v.Breakdown = append(v.Breakdown, breakdownView{
			Label:   predict.ShortLabel(lp.Label),
			Percent: fmt.Sprintf("%.2f%%", lp.Probability*100),
		})
	}

	chartPNG, err := plot.Probabilities(a.Result.Breakdown)
	if err != nil {
		log.Printf("analysis %s: chart render failed: %v", a.ID, err)
		v.ChartNote = "Probability chart unavailable."
		return v
	}
	v.Chart = dataURL("image/png", chartPNG)
	return v
}

func captionFor(s *scan.Scan) string {
	modality := s.Modality
	if modality == "" {
		modality = "CT"
	}
	caption := fmt.Sprintf("Uploaded %s scan, %dx%d", modality, s.Cols, s.Rows)
	if s.StudyDate != "" {
		caption += ", study date " + s.StudyDate
	}
	return caption
}

func dataURL(mime string, data []byte) template.URL {
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}

func renderPage(w http.ResponseWriter, view *pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		log.Printf("render page: %v", err)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Brain CT Scan Analyzer</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { font-size: 1.6rem; }
form { margin: 1.5rem 0; padding: 1rem; border: 1px dashed #999; border-radius: 6px; }
img.scan, img.chart { max-width: 100%; border-radius: 4px; }
.notice { background: #fdecea; border: 1px solid #f5c6cb; color: #721c24; padding: 0.75rem 1rem; border-radius: 4px; margin: 1rem 0; }
.result { background: #e8f5e9; border: 1px solid #c3e6cb; padding: 0.75rem 1rem; border-radius: 4px; margin: 1rem 0; }
.caption, .muted { color: #666; font-size: 0.9rem; }
ul.breakdown { list-style: none; padding: 0; }
ul.breakdown li { padding: 0.15rem 0; }
</style>
</head>
<body>
<h1>🧠 Brain CT Scan Analyzer</h1>

<h2>📋 Instructions</h2>
<ol>
<li>Upload a Brain CT Scan (.dcm file)</li>
<li>View the medical image</li>
<li>Get AI-powered analysis</li>
</ol>

<form method="post" action="/analyze" enctype="multipart/form-data">
<label for="scan">Upload DICOM Brain CT Scan</label><br>
<input id="scan" type="file" name="scan" accept=".dcm" required>
<button type="submit">Analyze Scan</button>
</form>

{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}

{{if .HasResult}}
<h2>📸 Brain CT Scan</h2>
<img class="scan" src="{{.Image}}" alt="Normalized CT scan">
<p class="caption">{{.Caption}}</p>

<h2>🤖 AI Analysis</h2>
<div class="result">Predicted Hemorrhage Type: <strong>{{.Label}}</strong></div>
<p>Confidence: {{.Confidence}}</p>

{{if .Simulated}}
<p class="muted">Simulated prediction for demonstration only, not a medical diagnosis.</p>
{{else}}
{{if .Chart}}<img class="chart" src="{{.Chart}}" alt="Hemorrhage type probabilities">{{end}}
{{if .ChartNote}}<p class="muted">{{.ChartNote}}</p>{{end}}
<h3>Detailed Analysis</h3>
<ul class="breakdown">
{{range .Breakdown}}<li>{{.Label}}: {{.Percent}}</li>{{end}}
</ul>
{{end}}

<p class="muted">Analysis ID: {{.ID}}</p>
{{end}}

<hr>
<h3>ℹ️ About This Tool</h3>
<ul>
<li>This is a demonstration of medical image analysis</li>
<li>Actual predictions require a trained AI model</li>
<li>Always consult medical professionals for accurate diagnoses</li>
</ul>
</body>
</html>
`
