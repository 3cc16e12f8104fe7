package loader

import "github.com/naka-gawa/github-dashboard/internal/domain"

// Schema declares the columns a source file must provide and how each is typed.
// Columns present in the file but not declared here are ignored.
type Schema struct {
	Name    string
	Columns []domain.Column
}

// Names returns the declared column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// TableASchema is the smaller repository dataset.
var TableASchema = Schema{
	Name: "github_dataset",
	Columns: []domain.Column{
		{Name: "repositories", Kind: domain.KindString},
		{Name: "language", Kind: domain.KindString},
		{Name: "stars_count", Kind: domain.KindNumber},
		{Name: "forks_count", Kind: domain.KindNumber},
		{Name: "issues_count", Kind: domain.KindNumber},
		{Name: "pull_requests", Kind: domain.KindNumber},
		{Name: "contributors", Kind: domain.KindNumber},
	},
}

// TableBSchema is the extended repository dataset with licence, commit count and
// creation timestamp.
var TableBSchema = Schema{
	Name: "repository_data",
	Columns: []domain.Column{
		{Name: "name", Kind: domain.KindString},
		{Name: "primary_language", Kind: domain.KindString},
		{Name: "licence", Kind: domain.KindString},
		{Name: "stars_count", Kind: domain.KindNumber},
		{Name: "forks_count", Kind: domain.KindNumber},
		{Name: "watchers", Kind: domain.KindNumber},
		{Name: "pull_requests", Kind: domain.KindNumber},
		{Name: "commit_count", Kind: domain.KindNumber},
		{Name: "created_at", Kind: domain.KindTime},
	},
}
