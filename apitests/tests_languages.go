package apitests

import (
	"github.com/lingualearn/api-contract-tests/harness"
	"github.com/lingualearn/api-contract-tests/shape"
)

var languageShape = shape.Object(
	shape.Required("code", shape.NonEmptyString()),
	shape.Required("name", shape.NonEmptyString()),
	shape.Required("nativeName", shape.NonEmptyString()),
	shape.Required("flag", shape.NonEmptyString()),
)

func DoLanguageTests(t *T) {
	t.Run("supported languages", func(t *T) {
		codes := t.Config().Corpus.LanguageCodes
		t.RequirePass(harness.Scenario{
			Name:   "supported languages",
			Method: "GET",
			Path:   "/languages",
			Status: harness.Status(200),
			Shape: shape.AllOf(
				shape.ListOf(languageShape),
				shape.CodesInclude("code", codes...),
			),
		})
	})
}
