package designers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterUpdates(t *testing.T) {
	t.Run("maps aliases onto columns", func(t *testing.T) {
		got := FilterUpdates(map[string]interface{}{
			"shortDescription": "hello",
			"logo":             "https://cdn/logo.png",
			"about":            "story",
		})
		assert.Equal(t, map[string]interface{}{
			"short_description": "hello",
			"logo_url":          "https://cdn/logo.png",
			"about":             "story",
		}, got)
	})

	t.Run("drops unknown and identity keys", func(t *testing.T) {
		got := FilterUpdates(map[string]interface{}{
			"user_id":     uint(9),
			"id":          "abc",
			"is_approved": true,
			"favoriteDog": "samoyed",
		})
		assert.Empty(t, got)
	})

	t.Run("drops wrongly typed values", func(t *testing.T) {
		got := FilterUpdates(map[string]interface{}{
			"shortDescription": 42,
			"about":            true,
		})
		assert.Empty(t, got)
	})

	t.Run("null clears the column", func(t *testing.T) {
		got := FilterUpdates(map[string]interface{}{
			"shortDescription": nil,
		})
		assert.Equal(t, map[string]interface{}{"short_description": ""}, got)
	})
}
