package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"samvad/internal/config"
	"samvad/internal/model"
)

// ErrTranscriptionDisabled is returned when no speech-to-text API key is
// configured.
var ErrTranscriptionDisabled = errors.New("transcription is not configured")

// Segmentation policy for turning a flat transcript into narratives: keep
// sentence-like units above the minimum length, at most maxSegments of them.
const (
	minSegmentLen = 50
	maxSegments   = 5
)

// Transcriber sends uploaded audio to an external speech-to-text service and
// segments the transcript into narratives. The underlying HTTP client is an
// explicitly owned handle, initialized once on first use; there is no
// process-wide model state.
type Transcriber struct {
	config *config.TranscribeConfig

	initOnce sync.Once
	client   *http.Client
}

// NewTranscriber creates a transcriber with the given configuration.
func NewTranscriber(cfg *config.TranscribeConfig) *Transcriber {
	return &Transcriber{config: cfg}
}

func (t *Transcriber) init() {
	t.initOnce.Do(func() {
		t.client = &http.Client{
			Timeout: time.Duration(t.config.TimeoutMS) * time.Millisecond,
		}
	})
}

// Transcribe uploads the audio and returns the raw transcript text.
func (t *Transcriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if !t.config.IsEnabled() {
		return "", ErrTranscriptionDisabled
	}
	t.init()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("reading audio: %w", err)
	}
	if err := writer.WriteField("model", t.config.Model); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.BaseURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.config.APIKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling transcription API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("transcription API returned %d: %s", resp.StatusCode, string(data))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding transcription response: %w", err)
	}
	return parsed.Text, nil
}

// Segment splits a transcript into sentence-like units and synthesizes
// Speaker_N labels. The resulting narratives are treated exactly like
// manually entered ones; fewer than two units means the audio did not carry
// enough dialogue.
func (t *Transcriber) Segment(transcript string) []model.Narrative {
	var narratives []model.Narrative
	for _, sentence := range strings.Split(transcript, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minSegmentLen {
			continue
		}

		position := sentence
		if len(position) > 80 {
			position = position[:80]
		}
		narratives = append(narratives, model.Narrative{
			Speaker:  fmt.Sprintf("Speaker_%d", len(narratives)+1),
			Text:     sentence,
			Position: position,
		})
		if len(narratives) == maxSegments {
			break
		}
	}
	return narratives
}
