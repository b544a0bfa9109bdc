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

// Package fetch retrieves every open pull request for a set of repositories,
// resolving each pull request's mergeable state.
package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tugboathq/tugboat/internal/github"
)

// mergeableRetries is the number of re-fetches attempted for a pull request
// whose mergeable state GitHub is still computing. After the last attempt
// the state is recorded as unknown; there is no further polling.
const mergeableRetries = 1

// ProgressFunc is invoked twice per repository: once before its pull
// requests are fetched (pulls == nil), and once after (pulls holds the
// fetched list). idx is the zero-based position within the repository set.
type ProgressFunc func(idx, total int, repo github.RepoRef, pulls []github.PullRequest)

// Options configures a Fetcher.
type Options struct {
	// PageSize is the per-page item count for pull request listings.
	PageSize int

	// MergeableRetryDelay is the pause before the single mergeable
	// re-fetch. Zero retries immediately.
	MergeableRetryDelay time.Duration

	// Jobs bounds how many repositories are fetched concurrently.
	// Values below 2 select the sequential path.
	Jobs int

	// Progress, if non-nil, receives per-repository status updates.
	Progress ProgressFunc
}

// Fetcher retrieves open pull requests. Any API error aborts the whole
// fetch: the report is complete or it does not exist.
type Fetcher struct {
	client github.Client
	opts   Options
}

// New creates a Fetcher backed by the given client.
func New(client github.Client, opts Options) *Fetcher {
	return &Fetcher{client: client, opts: opts}
}

// FetchAll returns every open pull request across the given repositories,
// flattened in repository order. Results are deterministic for a given
// repository set regardless of the concurrency level.
func (f *Fetcher) FetchAll(ctx context.Context, repos []github.RepoRef) ([]github.PullRequest, error) {
	if f.opts.Jobs > 1 && len(repos) > 1 {
		return f.fetchConcurrent(ctx, repos)
	}
	return f.fetchSequential(ctx, repos)
}

func (f *Fetcher) fetchSequential(ctx context.Context, repos []github.RepoRef) ([]github.PullRequest, error) {
	var all []github.PullRequest
	for idx, repo := range repos {
		f.progress(idx, len(repos), repo, nil)
		pulls, err := f.fetchRepo(ctx, repo)
		if err != nil {
			return nil, err
		}
		f.progress(idx, len(repos), repo, pulls)
		all = append(all, pulls...)
	}
	return all, nil
}

// fetchConcurrent fetches independent repositories with bounded workers.
// Results are gathered per-repository and flattened in input order, so the
// output matches the sequential path. The first error cancels the group.
func (f *Fetcher) fetchConcurrent(ctx context.Context, repos []github.RepoRef) ([]github.PullRequest, error) {
	results := make([][]github.PullRequest, len(repos))
	var mu sync.Mutex // serializes progress callbacks

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Jobs)

	for idx, repo := range repos {
		g.Go(func() error {
			mu.Lock()
			f.progress(idx, len(repos), repo, nil)
			mu.Unlock()

			pulls, err := f.fetchRepo(ctx, repo)
			if err != nil {
				return err
			}

			mu.Lock()
			f.progress(idx, len(repos), repo, pulls)
			mu.Unlock()

			results[idx] = pulls
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []github.PullRequest
	for _, pulls := range results {
		all = append(all, pulls...)
	}
	return all, nil
}

// fetchRepo lists every open pull request for one repository, consuming all
// pages, then resolves mergeable state for any pull request the listing
// left unknown.
func (f *Fetcher) fetchRepo(ctx context.Context, repo github.RepoRef) ([]github.PullRequest, error) {
	// Non-nil even when empty, so progress callbacks can tell a completed
	// fetch of zero pull requests from the pre-fetch notification.
	pulls := []github.PullRequest{}

	opts := github.ListOptions{PerPage: f.opts.PageSize}
	for {
		page, err := f.client.ListOpenPullRequests(ctx, repo, opts)
		if err != nil {
			return nil, err
		}
		pulls = append(pulls, page.PullRequests...)
		if page.NextPage == 0 {
			break
		}
		opts.Page = page.NextPage
	}

	for i := range pulls {
		if pulls[i].Mergeable != github.MergeableUnknown {
			continue
		}
		state, err := f.resolveMergeable(ctx, repo, pulls[i].Number)
		if err != nil {
			return nil, err
		}
		pulls[i].Mergeable = state
	}

	return pulls, nil
}

// resolveMergeable fetches the pull request until the host reports a
// mergeable result, bounded by mergeableRetries. A still-unknown state
// after the final attempt is recorded as unknown.
func (f *Fetcher) resolveMergeable(ctx context.Context, repo github.RepoRef, number int) (github.MergeableState, error) {
	for attempt := 0; ; attempt++ {
		pr, err := f.client.GetPullRequest(ctx, repo, number)
		if err != nil {
			return github.MergeableUnknown, err
		}
		if pr.Mergeable != github.MergeableUnknown {
			return pr.Mergeable, nil
		}
		if attempt >= mergeableRetries {
			return github.MergeableUnknown, nil
		}

		select {
		case <-time.After(f.opts.MergeableRetryDelay):
		case <-ctx.Done():
			return github.MergeableUnknown, ctx.Err()
		}
	}
}

func (f *Fetcher) progress(idx, total int, repo github.RepoRef, pulls []github.PullRequest) {
	if f.opts.Progress != nil {
		f.opts.Progress(idx, total, repo, pulls)
	}
}
