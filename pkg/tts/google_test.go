package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenderDetection(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		expect string
	}{
		{"explicit female wins", Config{VoiceName: "en-US-Neural2-D", VoiceGender: "female"}, "FEMALE"},
		{"explicit male wins", Config{VoiceName: "en-US-Neural2-C", VoiceGender: "MALE"}, "MALE"},
		{"invalid override falls back to name", Config{VoiceName: "en-US-Neural2-F", VoiceGender: "robot"}, "FEMALE"},
		{"C suffix is female", Config{VoiceName: "en-US-Neural2-C"}, "FEMALE"},
		{"default voice is male", Config{}, "MALE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoogleSynthesizer(tt.cfg)
			assert.Equal(t, tt.expect, g.Gender())
		})
	}
}

func TestSynthesize(t *testing.T) {
	var captured synthesizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text:synthesize", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]string{"audioContent": "bW9jaw=="})
	}))
	defer srv.Close()

	g := NewGoogleSynthesizer(Config{APIKey: "secret", BaseURL: srv.URL})
	got, err := g.Synthesize(context.Background(), "Welcome to the plate.")
	require.NoError(t, err)

	assert.Equal(t, "data:audio/mp3;base64,bW9jaw==", got)
	assert.Equal(t, "Welcome to the plate.", captured.Input.Text)
	assert.Equal(t, "en-US-Neural2-D", captured.Voice.Name)
	assert.Equal(t, "MP3", captured.AudioConfig.AudioEncoding)
	assert.Equal(t, 1.0, captured.AudioConfig.SpeakingRate)
}

func TestSynthesizeErrors(t *testing.T) {
	g := NewGoogleSynthesizer(Config{})
	_, err := g.Synthesize(context.Background(), "hello")
	assert.ErrorContains(t, err, "not configured")

	g = NewGoogleSynthesizer(Config{APIKey: "secret"})
	_, err = g.Synthesize(context.Background(), "   ")
	assert.ErrorContains(t, err, "text is required")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "status": "PERMISSION_DENIED", "message": "denied"},
		})
	}))
	defer srv.Close()

	g = NewGoogleSynthesizer(Config{APIKey: "secret", BaseURL: srv.URL})
	_, err = g.Synthesize(context.Background(), "hello")
	assert.ErrorContains(t, err, "PERMISSION_DENIED")
}
