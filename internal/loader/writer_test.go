package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

func TestWriteRepositories(t *testing.T) {
	repos := []domain.Repository{
		{
			Name: "api", PrimaryLanguage: "Go", Licence: "MIT",
			Stars: 12, Forks: 3, Watchers: 4, PullRequests: 7, Commits: 250,
			CreatedAt: time.Date(2020, time.May, 1, 10, 0, 0, 0, time.UTC),
		},
		{Name: "docs, site", Stars: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRepositories(&buf, repos))

	assert.Equal(t, `name,primary_language,licence,stars_count,forks_count,watchers,pull_requests,commit_count,created_at
api,Go,MIT,12,3,4,7,250,2020-05-01T10:00:00Z
"docs, site",,,1,0,0,0,0,
`, buf.String())

	path := filepath.Join(t.TempDir(), "repository_data.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	table, err := NewLoader(zap.NewNop()).Load(path, TableBSchema)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	row := table.Row(0)
	assert.Equal(t, "api", row[0].Str)
	assert.Equal(t, 250.0, row[7].Num)
	assert.True(t, row[8].Time.Equal(repos[0].CreatedAt))

	row = table.Row(1)
	assert.Equal(t, "docs, site", row[0].Str)
	assert.False(t, row[2].Valid, "empty licence loads as absent")
	assert.False(t, row[8].Valid, "missing creation time loads as absent")
}
