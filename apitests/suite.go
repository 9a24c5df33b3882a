package apitests

import (
	"github.com/lingualearn/api-contract-tests/framework"
	"github.com/lingualearn/api-contract-tests/harness"
)

// RunTestSuite executes every scenario group against the backend described by
// the runner's configuration. Scenario failures are isolated: a broken endpoint
// fails its own scenarios and the run continues.
func RunTestSuite(
	runner *harness.Runner,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, runner)

		t.Run("auth", DoAuthTests)
		t.Run("lessons", DoLessonTests)
		t.Run("gamification", DoGamificationTests)
		t.Run("languages", DoLanguageTests)
		t.Run("language settings", DoLanguageSettingsTests)
		t.Run("speech", DoSpeechTests)
	})
}
