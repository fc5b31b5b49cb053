package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"samvad/internal/analysis"
	"samvad/internal/model"
	"samvad/internal/service"
)

// Callers must supply substantial text per speaker; trivially short entries
// are dropped before analysis (caller-side policy, not a core invariant).
const minNarrativeTextLen = 50

const maxUploadBytes = 50 << 20 // 50MB

// AnalysisHandler handles dialogue analysis endpoints
type AnalysisHandler struct {
	analysisSvc *service.AnalysisService
	transcriber *service.Transcriber
	uploadDir   string
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc *service.AnalysisService, transcriber *service.Transcriber, uploadDir string) *AnalysisHandler {
	return &AnalysisHandler{
		analysisSvc: analysisSvc,
		transcriber: transcriber,
		uploadDir:   uploadDir,
	}
}

// AnalyzeRequest is the request body for dialogue analysis
type AnalyzeRequest struct {
	Narratives []model.Narrative `json:"narratives"`
}

// AnalyzeSummary carries the headline counts alongside the report
type AnalyzeSummary struct {
	Speakers         int `json:"speakers"`
	HiddenAgreements int `json:"hiddenAgreements"`
}

// AnalyzeResponse is returned for both text and audio analysis
type AnalyzeResponse struct {
	AnalysisID string         `json:"analysisId"`
	Report     string         `json:"report"`
	Transcript string         `json:"transcript,omitempty"`
	Summary    AnalyzeSummary `json:"summary"`
}

// Analyze handles POST /v1/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	narratives := filterNarratives(req.Narratives)
	if len(narratives) < 2 {
		writeError(w, http.StatusBadRequest, "need at least 2 speakers with substantial text")
		return
	}

	record, err := h.analysisSvc.AnalyzeDialogue(r.Context(), narratives, model.SourceText)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		AnalysisID: record.ID,
		Report:     record.Report,
		Summary: AnalyzeSummary{
			Speakers:         record.NumSpeakers,
			HiddenAgreements: record.NumAgreements,
		},
	})
}

// AnalyzeAudio handles POST /v1/analyze-audio
func (h *AnalysisHandler) AnalyzeAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no audio file uploaded")
		return
	}
	defer file.Close()

	// Spool the upload to disk so the request body is released before the
	// (slow) transcription call.
	path, err := h.spoolUpload(header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer os.Remove(path)

	audio, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read upload")
		return
	}
	defer audio.Close()

	transcript, err := h.transcriber.Transcribe(r.Context(), header.Filename, audio)
	if err != nil {
		if errors.Is(err, service.ErrTranscriptionDisabled) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	narratives := h.transcriber.Segment(transcript)
	if len(narratives) < 2 {
		writeError(w, http.StatusBadRequest, "could not extract enough dialogue from audio")
		return
	}

	record, err := h.analysisSvc.AnalyzeDialogue(r.Context(), narratives, model.SourceAudio)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		AnalysisID: record.ID,
		Report:     record.Report,
		Transcript: transcript,
		Summary: AnalyzeSummary{
			Speakers:         record.NumSpeakers,
			HiddenAgreements: record.NumAgreements,
		},
	})
}

// Get handles GET /v1/analyses/{id}
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.analysisSvc.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// List handles GET /v1/analyses
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(10)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	summaries, err := h.analysisSvc.GetRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"analyses": summaries})
}

// Statistics handles GET /v1/statistics
func (h *AnalysisHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analysisSvc.GetStatistics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *AnalysisHandler) spoolUpload(filename string, src io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.CreateTemp(h.uploadDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// filterNarratives drops entries with a blank speaker or trivially short
// text, mirroring the documented caller-side input policy.
func filterNarratives(narratives []model.Narrative) []model.Narrative {
	filtered := make([]model.Narrative, 0, len(narratives))
	for _, n := range narratives {
		speaker := strings.TrimSpace(n.Speaker)
		text := strings.TrimSpace(n.Text)
		if speaker == "" || len(text) < minNarrativeTextLen {
			continue
		}
		position := strings.TrimSpace(n.Position)
		if position == "" {
			position = text
			if len(position) > 80 {
				position = position[:80]
			}
		}
		filtered = append(filtered, model.Narrative{
			Speaker:  speaker,
			Text:     text,
			Position: position,
		})
	}
	return filtered
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrTooFewSpeakers), errors.Is(err, service.ErrInvalidNarrative):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
