package apitests

import (
	"net/url"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/lingualearn/api-contract-tests/harness"
	"github.com/lingualearn/api-contract-tests/shape"
)

// lessonCatalogScenarioName keys the captured full lesson list; the lesson-start
// scenarios derive their lessonId from it.
const lessonCatalogScenarioName = "lesson catalog"

var lessonShape = shape.Object(
	shape.Required("lessonId", shape.NonEmptyString()),
	shape.Required("title", shape.String()),
	shape.Required("level", shape.String()),
)

func DoLessonTests(t *T) {
	t.Run("list", doLessonListTests)
	t.Run("start", doLessonStartTests)
}

func doLessonListTests(t *T) {
	corpus := t.Config().Corpus

	t.Run("full catalog", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:        lessonCatalogScenarioName,
			Method:      "GET",
			Path:        "/lessons",
			Status:      harness.Status(200),
			Shape:       shape.ListOf(lessonShape),
			CaptureBody: true,
		})
	})

	t.Run("filtered by level", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "lessons filtered by level",
			Method: "GET",
			Path:   "/lessons",
			Query:  url.Values{"level": {corpus.LessonLevel}},
			Status: harness.Status(200),
			// every returned lesson must carry exactly the requested level
			Shape: shape.ListOf(shape.AllOf(
				lessonShape,
				shape.Object(shape.Required("level", shape.EqualTo(ldvalue.String(corpus.LessonLevel)))),
			)),
		})
	})

	t.Run("filtered by level and language", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "lessons filtered by level and language",
			Method: "GET",
			Path:   "/lessons",
			Query:  url.Values{"level": {corpus.LessonLevel}, "language": {corpus.LessonLanguage}},
			Status: harness.Status(200),
			Shape: shape.ListOf(shape.AllOf(
				lessonShape,
				shape.Object(shape.Required("level", shape.EqualTo(ldvalue.String(corpus.LessonLevel)))),
			)),
		})
	})

	t.Run("filtered by language only", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "lessons filtered by language",
			Method: "GET",
			Path:   "/lessons",
			Query:  url.Values{"language": {corpus.LessonLanguage}},
			Status: harness.Status(200),
			Shape:  shape.ListOf(lessonShape),
		})
	})

	// The backend's behavior for malformed filter values is genuinely
	// unspecified: some deployments return 400, others return 200 with an empty
	// list. The accepted set is configurable per scenario and the observed
	// outcome is flagged in the report rather than resolved here.
	t.Run("invalid level value", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "lessons with invalid level",
			Method: "GET",
			Path:   "/lessons",
			Query:  url.Values{"level": {"Z9"}, "language": {corpus.LessonLanguage}},
			Status: harness.StatusIn(200, 400).MarkAmbiguous(),
			Shape:  shape.List(),
		})
	})

	t.Run("invalid language value", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "lessons with invalid language",
			Method: "GET",
			Path:   "/lessons",
			Query:  url.Values{"level": {corpus.LessonLevel}, "language": {"1234$%"}},
			Status: harness.StatusIn(200, 400).MarkAmbiguous(),
			Shape:  shape.List(),
		})
	})
}

func doLessonStartTests(t *T) {
	t.Run("first lesson from the catalog", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "start first lesson",
			Method: "POST",
			Path:   "/lessons/{lessonId}/start",
			Derivations: []harness.Derivation{
				{Param: "lessonId", FromScenario: lessonCatalogScenarioName, Path: "0.lessonId"},
			},
			Status: harness.Status(200),
		})
	})

	invalidIDs := []struct {
		desc string
		id   string
	}{
		{"empty id", ""},
		{"unknown id", "invalidLesson123"},
		{"zero UUID", "00000000-0000-0000-0000-000000000000"},
	}

	for _, invalid := range invalidIDs {
		invalid := invalid
		t.Run(invalid.desc+" is rejected", func(t *T) {
			t.RequirePass(harness.Scenario{
				Name:       "start lesson with " + invalid.desc,
				Method:     "POST",
				Path:       "/lessons/{lessonId}/start",
				PathParams: map[string]string{"lessonId": invalid.id},
				Status:     harness.StatusIn(400, 404),
			})
		})
	}
}
