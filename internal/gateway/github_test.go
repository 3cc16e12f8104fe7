package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        zap.NewNop(),
	}

	return gateway, server
}

func TestGitHubGateway_ListRepositories(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.Repository
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - follows pagination",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orgs/acme/repos", r.URL.Path)
				if r.URL.Query().Get("page") == "" {
					w.Header().Set("Link", fmt.Sprintf(`<http://%s/orgs/acme/repos?page=2>; rel="next"`, r.Host))
					fmt.Fprint(w, `[{"name":"api","language":"Go","license":{"spdx_id":"MIT"},"stargazers_count":12,"forks_count":3,"watchers_count":12,"created_at":"2020-05-01T10:00:00Z"}]`)
					return
				}
				fmt.Fprint(w, `[{"name":"docs","stargazers_count":1,"created_at":"2022-01-02T03:04:05Z"}]`)
			},
			expected: []domain.Repository{
				{
					Name: "api", PrimaryLanguage: "Go", Licence: "MIT", Stars: 12, Forks: 3, Watchers: 12,
					CreatedAt: time.Date(2020, time.May, 1, 10, 0, 0, 0, time.UTC),
				},
				{
					Name: "docs", Stars: 1,
					CreatedAt: time.Date(2022, time.January, 2, 3, 4, 5, 0, time.UTC),
				},
			},
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to list repositories with REST API",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()
			repos, err := gateway.ListRepositories(context.Background(), "acme")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			require.Len(t, repos, len(tc.expected))
			for i := range tc.expected {
				assert.True(t, tc.expected[i].CreatedAt.Equal(repos[i].CreatedAt))
				repos[i].CreatedAt = tc.expected[i].CreatedAt
			}
			assert.Equal(t, tc.expected, repos)
		})
	}
}

func TestGitHubGateway_FetchActivity(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       *Activity
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path",
			responseBody: `{"data":{"repository":{"pullRequests":{"totalCount":7},"defaultBranchRef":{"target":{"history":{"totalCount":250}}}}}}`,
			expected:     &Activity{PullRequests: 7, Commits: 250},
		},
		{
			name:         "empty repository has no default branch",
			responseBody: `{"data":{"repository":{"pullRequests":{"totalCount":0},"defaultBranchRef":null}}}`,
			expected:     &Activity{},
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Could not resolve to a Repository"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for acme/api",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)

				assert.Contains(t, string(body), `"owner":"acme"`)
				assert.Contains(t, string(body), `"name":"api"`)

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			activity, err := gateway.FetchActivity(context.Background(), "acme", "api")

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, activity)
			}
		})
	}
}
