package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpupo63/projectblox-backend/database"
	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/rpupo63/projectblox-backend/models"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd)
			if err != nil {
				return err
			}

			categories, err := store.Database().CategoryRepo().FindAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, categories)
			}
			rows := make([]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s", c.ID, c.Slug, c.Icon, c.Name))
			}
			return table(out, "ID\tSLUG\tICON\tNAME", rows)
		},
	}
}

func newProjectsCmd(opts *rootOptions) *cobra.Command {
	var filter database.ProjectFilter

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List published projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.Limit < 0 {
				return errs.NewInvalidFieldError("limit", "must not be negative")
			}
			if filter.Offset < 0 {
				return errs.NewInvalidFieldError("offset", "must not be negative")
			}

			store, err := opts.open(cmd)
			if err != nil {
				return err
			}

			projects, err := store.Database().ProjectRepo().Find(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return writeProjects(cmd.OutOrStdout(), opts.jsonOutput, projects)
		},
	}

	cmd.Flags().StringVar(&filter.CategoryID, "category", "", "only projects in this category id")
	cmd.Flags().StringVar(&filter.Search, "search", "", "case-insensitive substring of title or description")
	cmd.Flags().IntVar(&filter.Limit, "limit", database.DefaultProjectLimit, fmt.Sprintf("page size (max %d)", database.MaxProjectLimit))
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "projects to skip")
	return cmd
}

func writeProjects(out io.Writer, asJSON bool, projects []models.Project) error {
	if asJSON {
		return printJSON(out, projects)
	}
	rows := make([]string, 0, len(projects))
	for _, p := range projects {
		featured := ""
		if p.IsFeatured {
			featured = "★"
		}
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%s", p.Slug, p.Title, p.CategoryName, p.DifficultyLevel.Label(), featured))
	}
	return table(out, "SLUG\tTITLE\tCATEGORY\tDIFFICULTY\tFEATURED", rows)
}

func newProjectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "project <slug>",
		Short: "Show a published project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd)
			if err != nil {
				return err
			}

			project, err := store.Database().ProjectRepo().FindBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if project == nil {
				return errs.NewNotFound("project " + args[0])
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, project)
			}

			fmt.Fprintf(out, "%s (%s)\n", project.Title, project.Slug)
			fmt.Fprintf(out, "%s\n\n", project.Description)
			rows := []string{
				"Category\t" + strings.TrimSpace(project.CategoryIcon+" "+project.CategoryName),
				"Difficulty\t" + project.DifficultyLevel.Label(),
				"Estimated time\t" + project.EstimatedTime,
				fmt.Sprintf("Rating\t%.1f (%d)", project.RatingAvg, project.RatingCount),
				fmt.Sprintf("Views\t%d", project.ViewsCount),
			}
			if project.MaterialsCost != nil {
				rows = append(rows, "Materials\t"+*project.MaterialsCost)
			}
			return table(out, "FIELD\tVALUE", rows)
		},
	}
}

func newStepsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "steps <slug>",
		Short: "Show the build steps of a published project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd)
			if err != nil {
				return err
			}

			steps, err := store.Database().ProjectStepRepo().FindByProjectSlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, steps)
			}
			if len(steps) == 0 {
				printWarning(out, "%s has no steps", args[0])
				return nil
			}
			for _, step := range steps {
				fmt.Fprintf(out, "%d. %s\n", step.StepNumber, step.Title)
				if step.Description != "" {
					fmt.Fprintf(out, "   %s\n", step.Description)
				}
				for _, tip := range step.Tips {
					fmt.Fprintf(out, "   tip: %s\n", tip)
				}
				for _, mistake := range step.CommonMistakes {
					fmt.Fprintf(out, "   avoid: %s\n", mistake)
				}
			}
			return nil
		},
	}
}
