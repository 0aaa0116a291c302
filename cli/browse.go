package cli

import (
	"bufio"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/models"
	"github.com/rpupo63/projectblox-backend/search"
	"github.com/spf13/cobra"
)

// browsePageSize matches the browse page's grid
const browsePageSize = 24

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		limit    int
		wait     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search interactively, one query per input line",
		Long: "browse reads search text line by line from stdin. A query is sent once input has been " +
			"quiet for the debounce window, and results of superseded queries are never printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd)
			if err != nil {
				return err
			}
			projects := store.Database().ProjectRepo()
			out := cmd.OutOrStdout()

			var mu sync.Mutex
			searcher := search.NewSearcher(
				wait,
				func(ctx context.Context, query string) ([]models.Project, error) {
					return projects.Find(ctx, database.ProjectFilter{CategoryID: category, Search: query, Limit: limit})
				},
				func(query string, result []models.Project, err error) {
					mu.Lock()
					defer mu.Unlock()

					if err != nil {
						printError(out, "search %q failed: %v", query, err)
						return
					}
					printInfo(out, "%d result(s) for %q", len(result), query)
					if err := writeProjects(out, opts.jsonOutput, result); err != nil {
						printError(out, "%v", err)
					}
				},
			)
			defer searcher.Stop()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				searcher.Submit(cmd.Context(), scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			searcher.Wait()
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only projects in this category id")
	cmd.Flags().IntVar(&limit, "limit", browsePageSize, "results per query")
	cmd.Flags().DurationVar(&wait, "debounce", search.DefaultWait, "quiet period before a query is sent")
	return cmd
}
