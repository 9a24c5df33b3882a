package apitests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/lingualearn/api-contract-tests/harness"
	"github.com/lingualearn/api-contract-tests/shape"
)

func DoLanguageSettingsTests(t *T) {
	t.Run("update echoes submitted fields", func(t *T) {
		// The same values drive both the request body and the echo check, so the
		// round-trip comparison cannot drift out of sync with what was sent.
		submitted := map[string]ldvalue.Value{
			"mainLanguage":     ldvalue.String("en"),
			"targetLanguage":   ldvalue.String("fr"),
			"showTranslations": ldvalue.Bool(true),
			"showPhonetics":    ldvalue.Bool(false),
		}
		t.RequirePass(harness.Scenario{
			Name:   "update language settings",
			Method: "PUT",
			Path:   "/user/language-settings",
			Body:   harness.JSONBody(submitted),
			Status: harness.Status(200),
			Shape:  shape.EchoOf(submitted),
		})
	})

	invalidBodies := []struct {
		desc string
		body interface{}
	}{
		{"empty object", map[string]interface{}{}},
		{"mainLanguage of wrong type", map[string]interface{}{
			"mainLanguage": 123, "targetLanguage": "fr", "showTranslations": true, "showPhonetics": false,
		}},
		{"null targetLanguage", map[string]interface{}{
			"mainLanguage": "en", "targetLanguage": nil, "showTranslations": true, "showPhonetics": false,
		}},
		{"showTranslations of wrong type", map[string]interface{}{
			"mainLanguage": "en", "targetLanguage": "fr", "showTranslations": "yes", "showPhonetics": false,
		}},
		{"missing showPhonetics", map[string]interface{}{
			"mainLanguage": "en", "targetLanguage": "fr", "showTranslations": true,
		}},
	}

	for _, invalid := range invalidBodies {
		invalid := invalid
		t.Run(invalid.desc+" is rejected", func(t *T) {
			t.RequirePass(harness.Scenario{
				Name:   "update settings with " + invalid.desc,
				Method: "PUT",
				Path:   "/user/language-settings",
				Body:   harness.JSONBody(invalid.body),
				Status: harness.StatusRange(400, 500),
			})
		})
	}
}
