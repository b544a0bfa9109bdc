// Copyright 2026 The Tugboat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	tugerrors "github.com/tugboathq/tugboat/internal/errors"
)

// Compile-time interface satisfaction check.
var _ Client = (*RESTClient)(nil)

// RESTClient implements Client using the go-github library.
type RESTClient struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
//
// endpoint is the API base URL; pass a GitHub Enterprise URL such as
// "https://ghe.example.com/api/v3/" to target a self-hosted instance.
func NewClient(token, endpoint string) (*RESTClient, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	if err := setBaseURL(client, endpoint); err != nil {
		return nil, err
	}

	return &RESTClient{gh: client}, nil
}

// NewClientWithHTTPClient creates a RESTClient with a custom http.Client and
// base URL. This constructor is intended for testing, allowing injection of
// an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, endpoint, token string) (*RESTClient, error) {
	client := gh.NewClient(httpClient).WithAuthToken(token)
	if err := setBaseURL(client, endpoint); err != nil {
		return nil, err
	}
	return &RESTClient{gh: client}, nil
}

// setBaseURL points the go-github client at the given API endpoint.
// go-github requires the base URL to end in a slash.
func setBaseURL(client *gh.Client, endpoint string) error {
	if endpoint == "" {
		return nil // keep go-github's default (https://api.github.com/)
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parsing API endpoint: %w", err)
	}
	client.BaseURL = u
	return nil
}

// GetRepository verifies the repository exists and returns its canonical ref.
func (c *RESTClient) GetRepository(ctx context.Context, ref RepoRef) (RepoRef, error) {
	repo, resp, err := c.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return RepoRef{}, fmt.Errorf("looking up repository %s: %w", ref, classifyAPIError(err))
	}

	logRateLimit(resp, ref.FullName(), 0, 1)

	return RepoRef{
		Owner: repo.GetOwner().GetLogin(),
		Name:  repo.GetName(),
	}, nil
}

// ListUserRepositories retrieves one page of the named user's repositories.
func (c *RESTClient) ListUserRepositories(ctx context.Context, user string, opts ListOptions) (*RepositoryPage, error) {
	listOpts := &gh.RepositoryListByUserOptions{
		ListOptions: restListOptions(opts),
	}

	repos, resp, err := c.gh.Repositories.ListByUser(ctx, user, listOpts)
	if err != nil {
		return nil, fmt.Errorf("listing repositories for user %q (page %d): %w", user, opts.Page, classifyAPIError(err))
	}

	logRateLimit(resp, "users/"+user+"/repos", opts.Page, len(repos))

	return mapRepositoryPage(repos, resp), nil
}

// ListOrgRepositories retrieves one page of the named organization's repositories.
func (c *RESTClient) ListOrgRepositories(ctx context.Context, org string, opts ListOptions) (*RepositoryPage, error) {
	listOpts := &gh.RepositoryListByOrgOptions{
		ListOptions: restListOptions(opts),
	}

	repos, resp, err := c.gh.Repositories.ListByOrg(ctx, org, listOpts)
	if err != nil {
		return nil, fmt.Errorf("listing repositories for organization %q (page %d): %w", org, opts.Page, classifyAPIError(err))
	}

	logRateLimit(resp, "orgs/"+org+"/repos", opts.Page, len(repos))

	return mapRepositoryPage(repos, resp), nil
}

// ListOpenPullRequests retrieves one page of the repository's open pull requests.
func (c *RESTClient) ListOpenPullRequests(ctx context.Context, repo RepoRef, opts ListOptions) (*PullRequestPage, error) {
	listOpts := &gh.PullRequestListOptions{
		State:       "open",
		ListOptions: restListOptions(opts),
	}

	prs, resp, err := c.gh.PullRequests.List(ctx, repo.Owner, repo.Name, listOpts)
	if err != nil {
		return nil, fmt.Errorf("listing open pull requests for %s (page %d): %w", repo, opts.Page, classifyAPIError(err))
	}

	logRateLimit(resp, repo.FullName()+"/pulls", opts.Page, len(prs))

	page := &PullRequestPage{
		PullRequests: make([]PullRequest, 0, len(prs)),
		NextPage:     resp.NextPage,
	}
	for _, pr := range prs {
		page.PullRequests = append(page.PullRequests, mapPullRequest(repo, pr))
	}
	return page, nil
}

// GetPullRequest retrieves a single pull request. Unlike list responses,
// the single-PR endpoint carries the mergeable flag once GitHub has
// finished computing it.
func (c *RESTClient) GetPullRequest(ctx context.Context, repo RepoRef, number int) (*PullRequest, error) {
	pr, resp, err := c.gh.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s#%d: %w", repo, number, classifyAPIError(err))
	}

	logRateLimit(resp, fmt.Sprintf("%s/pulls/%d", repo, number), 0, 1)

	mapped := mapPullRequest(repo, pr)
	return &mapped, nil
}

// restListOptions converts ListOptions to go-github's form, applying the
// default page size.
func restListOptions(opts ListOptions) gh.ListOptions {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPageSize
	}
	return gh.ListOptions{Page: opts.Page, PerPage: perPage}
}

// mapRepositoryPage converts a go-github repository listing to a RepositoryPage.
func mapRepositoryPage(repos []*gh.Repository, resp *gh.Response) *RepositoryPage {
	page := &RepositoryPage{
		Repos:    make([]RepoRef, 0, len(repos)),
		NextPage: resp.NextPage,
	}
	for _, repo := range repos {
		page.Repos = append(page.Repos, RepoRef{
			Owner: repo.GetOwner().GetLogin(),
			Name:  repo.GetName(),
		})
	}
	return page
}

// mapPullRequest converts a go-github PullRequest to the domain type.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(repo RepoRef, pr *gh.PullRequest) PullRequest {
	return PullRequest{
		Repo:      repo,
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Author:    pr.GetUser().GetLogin(),
		URL:       pr.GetHTMLURL(),
		HeadLabel: pr.GetHead().GetLabel(),
		BaseLabel: pr.GetBase().GetLabel(),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
		Mergeable: mapMergeable(pr.Mergeable),
	}
}

// mapMergeable converts a *bool (GitHub's tri-state mergeable field) to a
// MergeableState. nil means GitHub hasn't computed it yet; true means
// mergeable; false means conflicted.
func mapMergeable(mergeable *bool) MergeableState {
	if mergeable == nil {
		return MergeableUnknown
	}
	if *mergeable {
		return MergeableClean
	}
	return MergeableConflicted
}

// classifyAPIError maps go-github errors onto the sentinel taxonomy so the
// CLI can translate them to exit codes. Errors that fit no category are
// returned unchanged.
func classifyAPIError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("quota resets at %s: %w",
			rateErr.Rate.Reset.Time.Format(time.Kitchen), tugerrors.ErrRateLimit)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("secondary rate limit hit: %w", tugerrors.ErrRateLimit)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", respErr.Message, tugerrors.ErrBadCredentials)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", respErr.Message, tugerrors.ErrNotFound)
		case http.StatusForbidden:
			// Exhausted quota surfaces as 403 on older GHE versions that
			// go-github does not turn into a RateLimitError.
			if respErr.Response.Header.Get("X-RateLimit-Remaining") == "0" {
				return fmt.Errorf("%s: %w", respErr.Message, tugerrors.ErrRateLimit)
			}
			return fmt.Errorf("%s: %w", respErr.Message, tugerrors.ErrBadCredentials)
		}
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%v: %w", urlErr, tugerrors.ErrNetworkFailure)
	}

	return err
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
