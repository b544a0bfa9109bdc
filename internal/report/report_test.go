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

package report

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tugboathq/tugboat/internal/github"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func pr(owner, repo string, number int, created, updated time.Duration, state github.MergeableState) github.PullRequest {
	ref := github.RepoRef{Owner: owner, Name: repo}
	return github.PullRequest{
		Repo:      ref,
		Number:    number,
		Title:     "PR " + ref.FullName(),
		URL:       "https://github.com/" + ref.FullName() + "/pull/" + strconv.Itoa(number),
		CreatedAt: baseTime.Add(created),
		UpdatedAt: baseTime.Add(updated),
		Mergeable: state,
	}
}

func TestParseSortKey(t *testing.T) {
	for _, valid := range []string{"updated", "created", "repo"} {
		key, err := ParseSortKey(valid)
		require.NoError(t, err)
		assert.Equal(t, SortKey(valid), key)
	}

	_, err := ParseSortKey("alphabetical")
	assert.Error(t, err)
}

func TestSortUpdatedDescending(t *testing.T) {
	pulls := []github.PullRequest{
		pr("o", "r", 1, 0, 1*time.Hour, github.MergeableClean),
		pr("o", "r", 2, 0, 3*time.Hour, github.MergeableClean),
		pr("o", "r", 3, 0, 2*time.Hour, github.MergeableClean),
	}

	Sort(pulls, SortUpdated)

	assert.Equal(t, 2, pulls[0].Number)
	assert.Equal(t, 3, pulls[1].Number)
	assert.Equal(t, 1, pulls[2].Number)
}

func TestSortCreatedDescending(t *testing.T) {
	pulls := []github.PullRequest{
		pr("o", "r", 1, 1*time.Hour, 0, github.MergeableClean),
		pr("o", "r", 2, 3*time.Hour, 0, github.MergeableClean),
		pr("o", "r", 3, 2*time.Hour, 0, github.MergeableClean),
	}

	Sort(pulls, SortCreated)

	assert.Equal(t, 2, pulls[0].Number)
	assert.Equal(t, 3, pulls[1].Number)
	assert.Equal(t, 1, pulls[2].Number)
}

func TestSortRepoAscending(t *testing.T) {
	pulls := []github.PullRequest{
		pr("zeta", "repo", 1, 0, 0, github.MergeableClean),
		pr("alpha", "repo", 9, 0, 0, github.MergeableClean),
		pr("alpha", "repo", 2, 0, 0, github.MergeableClean),
	}

	Sort(pulls, SortRepo)

	assert.Equal(t, "alpha/repo", pulls[0].Repo.FullName())
	assert.Equal(t, 2, pulls[0].Number)
	assert.Equal(t, 9, pulls[1].Number)
	assert.Equal(t, "zeta/repo", pulls[2].Repo.FullName())
}

func TestSortStableOnTies(t *testing.T) {
	pulls := []github.PullRequest{
		pr("o", "r", 1, 0, time.Hour, github.MergeableClean),
		pr("o", "r", 2, 0, time.Hour, github.MergeableClean),
		pr("o", "r", 3, 0, time.Hour, github.MergeableClean),
	}

	Sort(pulls, SortUpdated)

	assert.Equal(t, []int{1, 2, 3}, []int{pulls[0].Number, pulls[1].Number, pulls[2].Number},
		"equal timestamps keep input order")
}

func TestIndicator(t *testing.T) {
	assert.Equal(t, "mergeable", Indicator(github.MergeableClean))
	assert.Equal(t, "not mergeable", Indicator(github.MergeableConflicted))
	assert.Equal(t, "unknown", Indicator(github.MergeableUnknown))
	assert.Equal(t, "unknown", Indicator(github.MergeableState("")))
}

func TestRenderLines(t *testing.T) {
	pulls := []github.PullRequest{
		pr("o", "r", 1, 0, 1*time.Hour, github.MergeableClean),
		pr("o", "r", 2, 0, 2*time.Hour, github.MergeableConflicted),
		pr("o", "r", 3, 0, 3*time.Hour, github.MergeableUnknown),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, pulls, Options{}))

	want := "https://github.com/o/r/pull/3 unknown PR o/r\n" +
		"https://github.com/o/r/pull/2 not mergeable PR o/r\n" +
		"https://github.com/o/r/pull/1 mergeable PR o/r\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	pulls := []github.PullRequest{
		pr("o", "r", 1, 0, 1*time.Hour, github.MergeableClean),
		pr("o", "r", 2, 0, 2*time.Hour, github.MergeableClean),
	}

	var first, second bytes.Buffer
	require.NoError(t, Render(&first, pulls, Options{}))
	require.NoError(t, Render(&second, pulls, Options{}))

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 1, pulls[0].Number, "caller's slice keeps its order")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, Options{}))
	assert.Empty(t, buf.String())
}

func TestRenderEmptyWithSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, Options{Summary: true}))
	assert.Equal(t, "No open pull requests\n", buf.String())
}

func TestRenderSummary(t *testing.T) {
	restore := timeNow
	timeNow = func() time.Time { return baseTime.Add(10 * time.Hour) }
	defer func() { timeNow = restore }()

	pulls := []github.PullRequest{
		pr("alpha", "one", 1, 0, 4*time.Hour, github.MergeableClean),
		pr("alpha", "one", 2, 1*time.Hour, 3*time.Hour, github.MergeableConflicted),
		pr("beta", "two", 5, 2*time.Hour, 5*time.Hour, github.MergeableClean),
	}

	var buf bytes.Buffer
	err := Render(&buf, pulls, Options{Summary: true, Start: baseTime.Add(10*time.Hour - 1500*time.Millisecond)})
	require.NoError(t, err)

	out := buf.String()

	assert.Contains(t, out, "Open PRs: 3 (2 mergeable)")
	assert.Contains(t, out, "Oldest PR, from 2026-03-01 12:00:00: alpha/one#1")
	assert.Contains(t, out, "Youngest PR, from 2026-03-01 14:00:00: beta/two#5")
	assert.Contains(t, out, "Least recently updated PR, at 2026-03-01 15:00:00: alpha/one#2")
	assert.Contains(t, out, "Most recently updated PR, at 2026-03-01 17:00:00: beta/two#5")

	assert.Contains(t, out, "Repositories with open pull requests: 2")
	assert.Contains(t, out, "Open PRs for alpha/one: 2 (1 mergeable)")
	assert.Contains(t, out, "Open PRs for beta/two: 1 (1 mergeable)")

	assert.Contains(t, out, "Report generated in 1.5s at 2026-03-01 21:59:58")

	// Breakdown lines come after the per-PR lines, header before them.
	header := strings.Index(out, "Open PRs: 3")
	lines := strings.Index(out, "https://github.com/")
	breakdown := strings.Index(out, "Breakdown by repository:")
	assert.True(t, header < lines && lines < breakdown)
}

func TestPullSummaryAdd(t *testing.T) {
	oldest := pr("o", "r", 1, -2*time.Hour, time.Hour, github.MergeableClean)
	youngest := pr("o", "r", 2, 2*time.Hour, -time.Hour, github.MergeableClean)

	var summary PullSummary
	summary.Add(&oldest)
	summary.Add(&youngest)

	assert.Equal(t, 1, summary.Oldest.Number)
	assert.Equal(t, 2, summary.Youngest.Number)
	assert.Equal(t, 2, summary.LeastRecent.Number)
	assert.Equal(t, 1, summary.MostRecent.Number)
}
