// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

// Searcher defines the behavior of a gateway that lists repositories
// matching a search query.
type Searcher interface {
	SearchRepositories(ctx context.Context, query string) ([]domain.RepositoryRecord, error)
}

// GitHubGateway is the concrete implementation of the Searcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
	perPage       int
	maxPages      int
}

// Option adjusts gateway construction.
type Option func(*GitHubGateway)

// WithPageLimits overrides the default page size and page cap of a search.
func WithPageLimits(perPage, maxPages int) Option {
	return func(g *GitHubGateway) {
		g.perPage = perPage
		g.maxPages = maxPages
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token may be empty; an unauthenticated client works against the public
// search API with lower rate limits, and topic backfill is skipped because
// the GraphQL API requires authentication.
func NewGitHubGateway(token string, logger *log.Logger, opts ...Option) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	g := &GitHubGateway{
		logger:   logger,
		perPage:  100,
		maxPages: 10,
	}
	if token == "" {
		g.restClient = github.NewClient(&http.Client{Transport: rateLimitWaiter})
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient := &http.Client{
			Transport: &oauth2.Transport{
				Base:   rateLimitWaiter,
				Source: ts,
			},
		}
		g.restClient = github.NewClient(httpClient)
		g.graphqlClient = githubv4.NewClient(httpClient)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SearchRepositories runs a paginated repository search sorted by stars and
// converts each hit into a RepositoryRecord. Any network error, timeout, or
// non-2xx status is classified into the domain error taxonomy so the caller
// can decide whether to fall back to the snapshot.
func (g *GitHubGateway) SearchRepositories(ctx context.Context, query string) ([]domain.RepositoryRecord, error) {
	g.logger.Printf("Fetching repositories for query: %s", query)
	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: g.perPage},
	}

	var records []domain.RepositoryRecord
	for page := 1; page <= g.maxPages; page++ {
		opts.Page = page
		result, resp, err := g.restClient.Search.Repositories(ctx, query, opts)
		if err != nil {
			return nil, classify("gateway.search_repositories", err)
		}
		for _, repo := range result.Repositories {
			records = append(records, recordFromRepo(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		g.logger.Println("  Fetching next page of repositories...")
	}

	if err := g.backfillTopics(ctx, records); err != nil {
		// Topic backfill is best-effort enrichment; a failure here must not
		// discard an otherwise successful search.
		g.logger.Printf("Topic backfill skipped: %v", err)
	}

	g.logger.Printf("Completed fetching %d repositories.", len(records))
	return records, nil
}

// repositoryTopicsQuery fetches the topics of a single repository.
type repositoryTopicsQuery struct {
	Repository struct {
		RepositoryTopics struct {
			Nodes []struct {
				Topic struct {
					Name string
				}
			}
		} `graphql:"repositoryTopics(first: 20)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// backfillTopics fills in missing Topics via the GraphQL API. The REST search
// endpoint omits topics on some result shapes; records that already carry
// topics are left untouched.
func (g *GitHubGateway) backfillTopics(ctx context.Context, records []domain.RepositoryRecord) error {
	if g.graphqlClient == nil {
		return nil
	}
	for i := range records {
		if len(records[i].Topics) > 0 {
			continue
		}
		owner, name, ok := splitRepoURL(records[i].URL)
		if !ok {
			continue
		}
		var q repositoryTopicsQuery
		variables := map[string]interface{}{
			"owner": githubv4.String(owner),
			"name":  githubv4.String(name),
		}
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return fmt.Errorf("failed to execute GraphQL query for topics of %s/%s: %w", owner, name, err)
		}
		for _, node := range q.Repository.RepositoryTopics.Nodes {
			records[i].Topics = append(records[i].Topics, node.Topic.Name)
		}
	}
	return nil
}

// splitRepoURL extracts owner and repository name from an html_url like
// https://github.com/owner/name.
func splitRepoURL(rawURL string) (owner, name string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// recordFromRepo maps a go-github search hit onto the source-agnostic record
// shape shared with the snapshot loader.
func recordFromRepo(repo *github.Repository) domain.RepositoryRecord {
	rec := domain.RepositoryRecord{
		Name:        repo.GetName(),
		Stars:       repo.GetStargazersCount(),
		LastUpdated: repo.GetPushedAt().Time,
		FirstCommit: repo.GetCreatedAt().Time,
		URL:         repo.GetHTMLURL(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		Language:    repo.GetLanguage(),
		Description: repo.GetDescription(),
		Topics:      repo.Topics,
	}
	if license := repo.GetLicense(); license != nil {
		rec.License = license.GetName()
	}
	return rec
}

// classify maps client errors onto the domain error taxonomy.
func classify(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &domain.OpError{Op: op, Kind: domain.KindHTTPError, Status: ghErr.Response.StatusCode, Err: err}
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &domain.OpError{Op: op, Kind: domain.KindHTTPError, Status: rateErr.Response.StatusCode, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.OpError{Op: op, Kind: domain.KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.OpError{Op: op, Kind: domain.KindTimeout, Err: err}
	}
	return &domain.OpError{Op: op, Kind: domain.KindNetworkUnavailable, Err: err}
}
