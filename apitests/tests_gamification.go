package apitests

import (
	"github.com/lingualearn/api-contract-tests/harness"
	"github.com/lingualearn/api-contract-tests/shape"
)

var gamificationStateShape = shape.Object(
	shape.Required("xp", shape.Int()),
	shape.Required("level", shape.Int()),
	shape.Required("streak", shape.Int()),
	shape.Required("hearts", shape.Int()),
	shape.Required("gems", shape.Int()),
	shape.Required("achievements", shape.ListOf(shape.String())),
)

var achievementShape = shape.Object(
	shape.Required("id", shape.NonEmptyString()),
	shape.Required("name", shape.NonEmptyString()),
	shape.Required("description", shape.String()),
	shape.Required("icon", shape.String()),
	shape.Required("unlocked", shape.Bool()),
)

func DoGamificationTests(t *T) {
	t.Run("state", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "gamification state",
			Method: "GET",
			Path:   "/gamification/state",
			Status: harness.Status(200),
			Shape:  gamificationStateShape,
		})
	})

	t.Run("achievements", func(t *T) {
		t.RequirePass(harness.Scenario{
			Name:   "achievements list",
			Method: "GET",
			Path:   "/gamification/achievements",
			Status: harness.Status(200),
			Shape:  shape.ListOf(achievementShape),
		})
	})
}
