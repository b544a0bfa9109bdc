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

// Package report sorts fetched pull requests and renders the final text
// report: one line per pull request with its URL, a mergeable indicator,
// and its title, optionally followed by summary statistics.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tugboathq/tugboat/internal/github"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// SortKey selects the report ordering.
type SortKey string

const (
	// SortUpdated orders by last-update time, most recent first. Default.
	SortUpdated SortKey = "updated"
	// SortCreated orders by creation time, most recent first.
	SortCreated SortKey = "created"
	// SortRepo orders alphabetically by repository full name, then by
	// pull request number, ascending.
	SortRepo SortKey = "repo"
)

// ParseSortKey validates a sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortUpdated, SortCreated, SortRepo:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("unknown sort key %q: expected updated, created, or repo", s)
	}
}

// Sort orders pulls in place according to key. Time-based orderings are
// stable: pull requests with equal timestamps keep their input order.
func Sort(pulls []github.PullRequest, key SortKey) {
	switch key {
	case SortCreated:
		sort.SliceStable(pulls, func(i, j int) bool {
			return pulls[i].CreatedAt.After(pulls[j].CreatedAt)
		})
	case SortRepo:
		sort.SliceStable(pulls, func(i, j int) bool {
			if pulls[i].Repo != pulls[j].Repo {
				return pulls[i].Repo.FullName() < pulls[j].Repo.FullName()
			}
			return pulls[i].Number < pulls[j].Number
		})
	default:
		sort.SliceStable(pulls, func(i, j int) bool {
			return pulls[i].UpdatedAt.After(pulls[j].UpdatedAt)
		})
	}
}

// Indicator maps a mergeable state to its report text.
func Indicator(state github.MergeableState) string {
	switch state {
	case github.MergeableClean:
		return "mergeable"
	case github.MergeableConflicted:
		return "not mergeable"
	default:
		return "unknown"
	}
}

// Options configures Render.
type Options struct {
	// Sort selects the report ordering. Empty means SortUpdated.
	Sort SortKey

	// Summary appends the aggregate block: totals, oldest/youngest and
	// least/most recently updated pull requests, the per-repository
	// breakdown, and the timing footer.
	Summary bool

	// Start is the moment the run began, used for the timing footer.
	// Zero suppresses the footer.
	Start time.Time
}

// PullSummary tracks the extremes of a pull request collection: the oldest
// and youngest by creation time, and the least and most recently updated.
type PullSummary struct {
	Oldest      *github.PullRequest
	Youngest    *github.PullRequest
	LeastRecent *github.PullRequest
	MostRecent  *github.PullRequest
}

// Add folds one pull request into the summary.
func (s *PullSummary) Add(pr *github.PullRequest) {
	if s.Oldest == nil || s.Oldest.CreatedAt.After(pr.CreatedAt) {
		s.Oldest = pr
	}
	if s.Youngest == nil || s.Youngest.CreatedAt.Before(pr.CreatedAt) {
		s.Youngest = pr
	}
	if s.LeastRecent == nil || s.LeastRecent.UpdatedAt.After(pr.UpdatedAt) {
		s.LeastRecent = pr
	}
	if s.MostRecent == nil || s.MostRecent.UpdatedAt.Before(pr.UpdatedAt) {
		s.MostRecent = pr
	}
}

// RepoSummary counts a repository's open and mergeable pull requests for
// the per-repository breakdown.
type RepoSummary struct {
	Name      string
	Pulls     int
	Mergeable int
}

// Render sorts the pull requests and writes the report. The default report
// is one line per pull request:
//
//	<url> <indicator> <title>
//
// where the indicator is "mergeable", "not mergeable", or "unknown".
// An empty collection renders nothing unless Summary is requested.
func Render(w io.Writer, pulls []github.PullRequest, opts Options) error {
	sorted := make([]github.PullRequest, len(pulls))
	copy(sorted, pulls)
	Sort(sorted, opts.Sort)

	if len(sorted) == 0 {
		if opts.Summary {
			_, err := fmt.Fprintln(w, "No open pull requests")
			return err
		}
		return nil
	}

	if opts.Summary {
		if err := writeSummaryHeader(w, sorted); err != nil {
			return err
		}
	}

	for _, pr := range sorted {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", pr.URL, Indicator(pr.Mergeable), pr.Title); err != nil {
			return err
		}
	}

	if opts.Summary {
		if err := writeBreakdown(w, sorted); err != nil {
			return err
		}
		if !opts.Start.IsZero() {
			elapsed := timeNow().Sub(opts.Start)
			if _, err := fmt.Fprintf(w, "\nReport generated in %s at %s\n",
				elapsed.Round(time.Millisecond), opts.Start.UTC().Format(time.DateTime)); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeSummaryHeader(w io.Writer, pulls []github.PullRequest) error {
	var summary PullSummary
	mergeable := 0
	for i := range pulls {
		summary.Add(&pulls[i])
		if pulls[i].Mergeable == github.MergeableClean {
			mergeable++
		}
	}

	_, err := fmt.Fprintf(w,
		"Open PRs: %d (%d mergeable)\n"+
			"    Oldest PR, from %s: %s#%d\n"+
			"    Youngest PR, from %s: %s#%d\n"+
			"    Least recently updated PR, at %s: %s#%d\n"+
			"    Most recently updated PR, at %s: %s#%d\n\n",
		len(pulls), mergeable,
		formatTime(summary.Oldest.CreatedAt), summary.Oldest.Repo, summary.Oldest.Number,
		formatTime(summary.Youngest.CreatedAt), summary.Youngest.Repo, summary.Youngest.Number,
		formatTime(summary.LeastRecent.UpdatedAt), summary.LeastRecent.Repo, summary.LeastRecent.Number,
		formatTime(summary.MostRecent.UpdatedAt), summary.MostRecent.Repo, summary.MostRecent.Number,
	)
	return err
}

func writeBreakdown(w io.Writer, pulls []github.PullRequest) error {
	byRepo := make(map[string]*RepoSummary)
	for _, pr := range pulls {
		name := pr.Repo.FullName()
		summary, ok := byRepo[name]
		if !ok {
			summary = &RepoSummary{Name: name}
			byRepo[name] = summary
		}
		summary.Pulls++
		if pr.Mergeable == github.MergeableClean {
			summary.Mergeable++
		}
	}

	names := make([]string, 0, len(byRepo))
	for name := range byRepo {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintf(w, "\nRepositories with open pull requests: %d\nBreakdown by repository:\n", len(names)); err != nil {
		return err
	}
	for _, name := range names {
		summary := byRepo[name]
		if _, err := fmt.Fprintf(w, "    Open PRs for %s: %d (%d mergeable)\n", summary.Name, summary.Pulls, summary.Mergeable); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.DateTime)
}
