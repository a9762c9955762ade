package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := objectKey("designers", "image/png")
	assert.True(t, strings.HasPrefix(key, "designers/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	key = objectKey("", "application/octet-stream")
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.False(t, strings.Contains(key, "."), "unknown content types get no extension")

	a := objectKey("designers", "image/jpeg")
	b := objectKey("designers", "image/jpeg")
	assert.NotEqual(t, a, b, "keys must be unique per upload")
}
