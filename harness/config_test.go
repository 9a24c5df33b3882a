package harness

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("TEST_BASE_URL")
	os.Unsetenv("TEST_VALID_EMAIL")
	os.Unsetenv("TEST_VALID_PASSWORD")

	config := LoadConfig()

	assert.Equal(t, "http://localhost:8081", config.BaseURL)
	assert.Equal(t, time.Second*30, config.Timeout)
	assert.Equal(t, "test@example.com", config.Credentials.Email)
	assert.Equal(t, "password123", config.Credentials.Password)
	assert.Equal(t, []string{"en", "es", "fr", "it", "hr", "zh"}, config.Corpus.LanguageCodes)
	assert.Equal(t, "B1", config.Corpus.LessonLevel)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	os.Setenv("TEST_BASE_URL", "http://backend.test:9999")
	os.Setenv("TEST_VALID_EMAIL", "someone@example.org")
	defer os.Unsetenv("TEST_BASE_URL")
	defer os.Unsetenv("TEST_VALID_EMAIL")

	config := LoadConfig()

	assert.Equal(t, "http://backend.test:9999", config.BaseURL)
	assert.Equal(t, "someone@example.org", config.Credentials.Email)
}
