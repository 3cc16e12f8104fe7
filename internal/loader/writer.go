package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// WriteRepositories writes repos as comma separated values whose header is exactly
// TableBSchema, so the output loads back as the extended dataset. An empty licence or
// language and a zero creation time are written as empty cells.
func WriteRepositories(w io.Writer, repos []domain.Repository) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TableBSchema.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range repos {
		created := ""
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			r.Name,
			r.PrimaryLanguage,
			r.Licence,
			strconv.Itoa(r.Stars),
			strconv.Itoa(r.Forks),
			strconv.Itoa(r.Watchers),
			strconv.Itoa(r.PullRequests),
			strconv.Itoa(r.Commits),
			created,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write repository %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush repositories: %w", err)
	}
	return nil
}
