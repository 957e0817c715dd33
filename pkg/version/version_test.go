package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v, commit string) {
	t.Helper()
	oldV, oldC := version, gitCommit
	version, gitCommit = v, commit
	t.Cleanup(func() { version, gitCommit = oldV, oldC })
}

func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.False(t, IsRelease(), "development builds are not releases")
}

func TestString(t *testing.T) {
	withVersion(t, "1.2.3", "")
	assert.Equal(t, "1.2.3", String())

	withVersion(t, "1.2.3", "abc123")
	assert.Equal(t, "1.2.3 (abc123)", String())
	assert.Equal(t, "abc123", GetGitCommit())
}

func TestParse(t *testing.T) {
	sv, err := Parse("v0.4.1")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), sv.Minor())

	_, err = Parse("latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid version "latest"`)
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"1.0.0", true},
		{"v2.3.4", true},
		{"1.0.0-rc.1", false},
		{"dev", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			withVersion(t, tt.version, "")
			assert.Equal(t, tt.want, IsRelease())
		})
	}
}

func TestSatisfies(t *testing.T) {
	withVersion(t, "0.3.0", "")

	ok, err := Satisfies(">= 0.2.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Satisfies("< 0.3.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Satisfies("not a constraint")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	ok, err := Check("v1.2.0", ">= 1.0.0, < 2.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Check("2.0.0", ">= 1.0.0, < 2.0.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Check("dev", ">= 1.0.0")
	require.Error(t, err)

	_, err = ParseConstraint("soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid constraint "soon"`)

	assert.True(t, IsReleaseVersion("1.0.0"))
	assert.False(t, IsReleaseVersion("1.0.0-beta"))
}
