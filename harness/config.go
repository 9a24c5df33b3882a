package harness

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:8081"
const defaultTimeout = time.Second * 30

// Credentials is a known-valid account on the backend under test. These are test
// fixtures supplied by the environment, never production secrets.
type Credentials struct {
	Email    string
	Password string
}

// Corpus is the fixed test data the scenarios exercise the backend with.
type Corpus struct {
	// LanguageCodes are the language codes the /languages endpoint must include.
	LanguageCodes []string

	// LessonLevel is a level value known to exist in the lesson catalog, used for
	// filter checks.
	LessonLevel string

	// LessonLanguage is a language name accepted by the lesson filter.
	LessonLanguage string
}

// RunConfig is the read-only configuration for a test run. It is constructed once
// at process start and never mutated by scenario execution.
type RunConfig struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials Credentials
	Corpus      Corpus
}

// LoadConfig builds a RunConfig from the environment. A .env file in the working
// directory is honored if present. Values not set in the environment fall back to
// the defaults used against a local backend.
func LoadConfig() RunConfig {
	_ = godotenv.Load() // absence of a .env file is not an error

	return RunConfig{
		BaseURL: envOr("TEST_BASE_URL", defaultBaseURL),
		Timeout: defaultTimeout,
		Credentials: Credentials{
			Email:    envOr("TEST_VALID_EMAIL", "test@example.com"),
			Password: envOr("TEST_VALID_PASSWORD", "password123"),
		},
		Corpus: Corpus{
			LanguageCodes:  []string{"en", "es", "fr", "it", "hr", "zh"},
			LessonLevel:    "B1",
			LessonLanguage: "English",
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
