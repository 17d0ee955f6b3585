package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://texttospeech.googleapis.com"
	defaultVoice   = "en-US-Neural2-D"
)

// Synthesizer turns text into a playable audio data URL.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Config tunes the Google voice. Zero values fall back to the defaults used
// by the coach narration.
type Config struct {
	APIKey       string
	BaseURL      string
	VoiceName    string
	VoiceGender  string
	SpeakingRate float64
	Pitch        float64
	VolumeGainDb float64
}

type GoogleSynthesizer struct {
	cfg    Config
	client *http.Client
}

var _ Synthesizer = &GoogleSynthesizer{}

func NewGoogleSynthesizer(cfg Config) *GoogleSynthesizer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.VoiceName == "" {
		cfg.VoiceName = defaultVoice
	}
	if cfg.SpeakingRate == 0 {
		cfg.SpeakingRate = 1.0
	}
	return &GoogleSynthesizer{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
	SsmlGender   string `json:"ssmlGender"`
}

type audioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate"`
	Pitch         float64 `json:"pitch"`
	VolumeGainDb  float64 `json:"volumeGainDb"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
	Error        *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Gender resolves the SSML gender: an explicit MALE/FEMALE config wins,
// otherwise it is inferred from the voice name suffix.
func (g *GoogleSynthesizer) Gender() string {
	if env := strings.ToUpper(g.cfg.VoiceGender); env == "MALE" || env == "FEMALE" {
		return env
	}
	if strings.Contains(g.cfg.VoiceName, "-F") || strings.Contains(g.cfg.VoiceName, "-C") {
		return "FEMALE"
	}
	return "MALE"
}

// Synthesize calls the text:synthesize endpoint and returns the MP3 audio
// as a data URL ready for an <audio> element.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", fmt.Errorf("google tts not configured")
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text is required")
	}

	reqPayload := synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceSelection{
			LanguageCode: "en-US",
			Name:         g.cfg.VoiceName,
			SsmlGender:   g.Gender(),
		},
		AudioConfig: audioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  g.cfg.SpeakingRate,
			Pitch:         g.cfg.Pitch,
			VolumeGainDb:  g.cfg.VolumeGainDb,
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text:synthesize?key=%s", g.cfg.BaseURL, g.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var synthResp synthesizeResponse
	if err := json.Unmarshal(bodyBytes, &synthResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if synthResp.Error != nil {
			return "", fmt.Errorf("google tts error (%s): %s", synthResp.Error.Status, synthResp.Error.Message)
		}
		return "", fmt.Errorf("google tts error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if synthResp.AudioContent == "" {
		return "", fmt.Errorf("failed to generate audio")
	}

	// The API already base64-encodes the audio bytes.
	return "data:audio/mp3;base64," + synthResp.AudioContent, nil
}
