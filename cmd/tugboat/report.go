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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tugboathq/tugboat/internal/config"
	tugerrors "github.com/tugboathq/tugboat/internal/errors"
	"github.com/tugboathq/tugboat/internal/fetch"
	"github.com/tugboathq/tugboat/internal/github"
	"github.com/tugboathq/tugboat/internal/prompt"
	"github.com/tugboathq/tugboat/internal/report"
	"github.com/tugboathq/tugboat/internal/resolve"
)

// reportOptions collects the report command's flag values.
type reportOptions struct {
	repos []string
	users []string
	orgs  []string

	username   string
	token      string
	githubURL  string
	sortBy     string
	outputPath string
	configPath string
	summary    bool
	verbose    bool
	quiet      bool
	jobs       int
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report of open pull requests",
		Long: `Generate a report of all open pull requests on the specified
repositories. Repositories are named directly with --repo, or expanded
from every repository visible under an account with --user and --org.

Authentication requires a GitHub token:
  - Use --token to provide it directly
  - Or set the token environment variable (GITHUB_TOKEN by default)
  - Otherwise it is prompted for once at startup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runReport(ctx, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.repos, "repo", "r", nil,
		"repository to report on, as owner/name (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.users, "user", "U", nil,
		"user whose visible repositories are all reported on (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.orgs, "org", "o", nil,
		"organization whose visible repositories are all reported on (repeatable)")
	cmd.Flags().StringVarP(&opts.username, "username", "u", "",
		"username for accessing the GitHub API (defaults to the local user)")
	cmd.Flags().StringVarP(&opts.token, "token", "p", "",
		"personal access token (overrides the token environment variable)")
	cmd.Flags().StringVarP(&opts.githubURL, "github-url", "g", "",
		"API URL, for self-hosted GitHub Enterprise instances")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "",
		"report ordering: updated, created, or repo")
	cmd.Flags().BoolVar(&opts.summary, "summary", false,
		"include summary statistics and a per-repository breakdown")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "O", "",
		`file to write the report to ("-" or empty for stdout)`)
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"emit per-repository pull request counts while fetching")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"suppress all status output, emitting only the report")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 1,
		"number of repositories to fetch concurrently")
	cmd.Flags().StringVar(&opts.configPath, "config", "",
		"path to the config file")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

// runReport executes the report command: it reconciles configuration and
// credentials, constructs the API client, and hands off to the
// resolver → fetcher → renderer pipeline.
func runReport(ctx context.Context, opts reportOptions) error {
	start := time.Now()

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	// Flags take precedence over environment and file settings.
	if opts.githubURL != "" {
		cfg.GitHub.APIEndpoint = opts.githubURL
	}
	if opts.username != "" {
		cfg.GitHub.Username = opts.username
	}
	if opts.sortBy != "" {
		cfg.Defaults.Sort = opts.sortBy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sortKey, err := report.ParseSortKey(cfg.Defaults.Sort)
	if err != nil {
		return err
	}

	username := cfg.GitHub.Username
	if username == "" {
		username = localUsername()
	}

	token := opts.token
	if token == "" {
		token = cfg.Token()
	}
	if token == "" {
		token, err = prompt.Token(username)
		if err != nil {
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("no token provided: %w", tugerrors.ErrBadCredentials)
	}

	out, err := report.OpenOutput(opts.outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	client, err := github.NewClient(token, cfg.GitHub.APIEndpoint)
	if err != nil {
		return err
	}

	return generateReport(ctx, client, out, cfg, opts, sortKey, start)
}

// generateReport runs the resolver → fetcher → renderer pipeline. It is
// separated from runReport so tests can drive it with a mock client.
func generateReport(ctx context.Context, client github.Client, out io.Writer, cfg *config.Config, opts reportOptions, sortKey report.SortKey, start time.Time) error {
	resolver := resolve.New(client, resolve.Options{
		PageSize: cfg.Defaults.PageSize,
		Status:   statusFunc(opts),
	})
	repos, err := resolver.Resolve(ctx, opts.repos, opts.users, opts.orgs)
	if err != nil {
		return err
	}

	fetcher := fetch.New(client, fetch.Options{
		PageSize:            cfg.Defaults.PageSize,
		MergeableRetryDelay: cfg.RetryDelay(),
		Jobs:                opts.jobs,
		Progress:            progressFunc(opts),
	})
	pulls, err := fetcher.FetchAll(ctx, repos)
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Fprintln(os.Stderr, "Generating report...")
	}

	return report.Render(out, pulls, report.Options{
		Sort:    sortKey,
		Summary: opts.summary,
		Start:   start,
	})
}

// statusFunc returns the resolver status callback for the requested
// verbosity, or nil when quiet.
func statusFunc(opts reportOptions) resolve.StatusFunc {
	if opts.quiet {
		return nil
	}
	return func(kind, name string) {
		fmt.Fprintf(os.Stderr, "Looking up %s %q...\n", kind, name)
	}
}

// progressFunc returns the fetcher progress callback for the requested
// verbosity, or nil when quiet. The verbose variant appends per-repository
// pull request and mergeable counts after each fetch.
func progressFunc(opts reportOptions) fetch.ProgressFunc {
	switch {
	case opts.quiet:
		return nil
	case opts.verbose:
		return func(idx, total int, repo github.RepoRef, pulls []github.PullRequest) {
			if pulls == nil {
				fmt.Fprintf(os.Stderr, "Processing repository %q (%d/%d)... ", repo, idx+1, total)
				return
			}
			mergeable := 0
			for _, pr := range pulls {
				if pr.Mergeable == github.MergeableClean {
					mergeable++
				}
			}
			fmt.Fprintf(os.Stderr, "%d pulls (%d mergeable)\n", len(pulls), mergeable)
		}
	default:
		return func(idx, total int, repo github.RepoRef, pulls []github.PullRequest) {
			if pulls == nil {
				fmt.Fprintf(os.Stderr, "Processing repository %q (%d/%d)...\n", repo, idx+1, total)
			}
		}
	}
}

// localUsername returns the operating system user name, used to label the
// token prompt when no username is configured.
func localUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
