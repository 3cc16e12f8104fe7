// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Repository holds the metadata of a single repository in the shape of the extended
// ("Table B") dataset. It is produced by the gateway and written out by the collect command.
type Repository struct {
	Name            string    `json:"name"`
	PrimaryLanguage string    `json:"primary_language"`
	Licence         string    `json:"licence"`
	Stars           int       `json:"stars_count"`
	Forks           int       `json:"forks_count"`
	Watchers        int       `json:"watchers"`
	PullRequests    int       `json:"pull_requests"`
	Commits         int       `json:"commit_count"`
	CreatedAt       time.Time `json:"created_at"`
}
