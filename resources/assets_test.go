package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsAreEmbedded(t *testing.T) {
	for _, name := range []string{IconPomodoro, IconBreak, IconIdle} {
		resource, err := Icon(name)
		require.NoError(t, err, name)
		assert.Equal(t, "icons/"+name, resource.Name())
		assert.Contains(t, string(resource.Content()), "<svg")
	}
}

func TestIconIsCached(t *testing.T) {
	first := MustIcon(IconPomodoro)
	second := MustIcon(IconPomodoro)
	assert.Same(t, first, second)
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("missing.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
