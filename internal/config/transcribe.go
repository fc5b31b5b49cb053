package config

// TranscribeConfig holds settings for the external speech-to-text service.
type TranscribeConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultTranscribeConfig returns the default transcription configuration.
func DefaultTranscribeConfig() *TranscribeConfig {
	return &TranscribeConfig{
		APIKey:    getEnvOrDefault("TRANSCRIBE_API_KEY", ""),
		BaseURL:   getEnvOrDefault("TRANSCRIBE_BASE_URL", "https://api.openai.com/v1/audio/transcriptions"),
		Model:     getEnvOrDefault("TRANSCRIBE_MODEL", "whisper-1"),
		TimeoutMS: 120000, // transcription of long audio is slow
	}
}

// IsEnabled returns true if the transcription API is configured.
func (c *TranscribeConfig) IsEnabled() bool {
	return c.APIKey != ""
}
