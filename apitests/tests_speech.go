package apitests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/lingualearn/api-contract-tests/harness"
	"github.com/lingualearn/api-contract-tests/shape"
)

// silentWAV is a minimal RIFF/WAVE header with an empty data chunk, enough for a
// backend to accept it as an audio upload.
var silentWAV = []byte(
	"RIFF$\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00" +
		"\x40\x1f\x00\x00\x80>\x00\x00\x00\x00\x00\x00data\x00\x00\x00\x00")

var recognitionShape = shape.Object(
	shape.Required("text", shape.String()),
	shape.Required("confidence", shape.NumberBetween(0, 1)),
)

// degradedRecognitionShape describes what a 200 response to non-audio input may
// look like: no usable text, no confidence, or both.
var degradedRecognitionShape = shape.AnyOf(
	shape.Object(shape.Required("text", shape.EqualTo(ldvalue.String("")))),
	shape.KeyAbsentOrNull("text"),
	shape.Object(shape.Required("confidence", shape.EqualTo(ldvalue.Int(0)))),
	shape.KeyAbsentOrNull("confidence"),
)

var synthesisShape = shape.Object(
	shape.Required("audioUrl", shape.StringPrefix("http")),
)

type synthesisBody struct {
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
	Voice    string `json:"voice,omitempty"`
}

func DoSpeechTests(t *T) {
	t.Run("recognize", doRecognizeTests)
	t.Run("synthesize", doSynthesizeTests)
}

func doRecognizeTests(t *T) {
	t.Run("valid audio yields text and confidence", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "recognize valid audio",
			Method: "POST",
			Path:   "/speech/recognize",
			Body: harness.MultipartFile{
				Field:       "audio",
				FileName:    "test.wav",
				ContentType: "audio/wav",
				Content:     silentWAV,
			},
			Status: harness.Status(200),
			Shape:  recognitionShape,
		})
	})

	t.Run("non-audio upload is handled gracefully", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "recognize non-audio upload",
			Method: "POST",
			Path:   "/speech/recognize",
			Body: harness.MultipartFile{
				Field:       "audio",
				FileName:    "test.txt",
				ContentType: "text/plain",
				Content:     []byte("This is not audio data"),
			},
			// anything but a server error; a 200 must at least not claim a
			// confident transcription of garbage
			Status: harness.StatusBelow(500),
			Shape:  degradedRecognitionShape,
		})
	})

	t.Run("missing file is rejected", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "recognize with no file",
			Method: "POST",
			Path:   "/speech/recognize",
			Body:   harness.EmptyMultipart{},
			Status: harness.StatusRange(400, 500),
		})
	})
}

func doSynthesizeTests(t *T) {
	t.Run("valid request yields an audio URL", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "synthesize valid text",
			Method: "POST",
			Path:   "/speech/synthesize",
			Body:   harness.JSONBody(synthesisBody{Text: "Hello, world!", Language: "en", Voice: "default"}),
			Status: harness.Status(200),
			Shape:  synthesisShape,
		})
	})

	invalidBodies := []struct {
		desc string
		body synthesisBody
	}{
		{"missing text", synthesisBody{Language: "en", Voice: "default"}},
		{"missing language", synthesisBody{Text: "Hello again", Voice: "default"}},
		{"missing voice", synthesisBody{Text: "Hello once more", Language: "en"}},
		{"invalid language", synthesisBody{Text: "Bonjour", Language: "xx-invalid", Voice: "default"}},
		{"invalid voice", synthesisBody{Text: "Hola", Language: "es", Voice: "unknown-voice"}},
	}

	for _, invalid := range invalidBodies {
		invalid := invalid
		t.Run(invalid.desc+" is rejected", func(t *T) {
			t.RequirePass(harness.Scenario{
				Name:   "synthesize with " + invalid.desc,
				Method: "POST",
				Path:   "/speech/synthesize",
				Body:   harness.JSONBody(invalid.body),
				Status: harness.StatusAtLeast(400),
			})
		})
	}
}
