package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	prevVersion, prevCommit, prevDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = prevVersion, prevCommit, prevDate })

	Version, Commit, BuildDate = "1.2.0", "abc1234", "2024-05-01"
	assert.Equal(t, "changelint 1.2.0 (commit abc1234, built 2024-05-01, "+runtime.GOOS+"/"+runtime.GOARCH+")", String())
	assert.False(t, IsDevBuild())

	Version = "dev"
	assert.True(t, IsDevBuild())
}
