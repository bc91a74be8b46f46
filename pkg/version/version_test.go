package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	version = "v1.4.0"
	assert.Equal(t, "v1.4.0", GetVersion())

	version = ""
	assert.NotEmpty(t, GetVersion())
}

func TestBuildMetadataDefaults(t *testing.T) {
	origCommit, origDate := gitCommit, buildDate
	t.Cleanup(func() { gitCommit, buildDate = origCommit, origDate })

	gitCommit, buildDate = "", ""
	assert.Equal(t, "unknown", GetGitCommit())
	assert.Equal(t, "unknown", GetBuildDate())

	gitCommit, buildDate = "abc123", "2026-10-19"
	assert.Equal(t, "abc123", GetGitCommit())
	assert.Equal(t, "2026-10-19", GetBuildDate())
}
