package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-devpot"
	"github.com/spf13/cobra"
)

func (c *cli) buildCommand() *cobra.Command {
	var (
		dryRun  bool
		force   bool
		locales []string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *devpot.BuildResult
			err := c.handlers.build.Execute(cmd.Context(), devpot.BuildSiteCommand{
				Locales: locales,
				DryRun:  dryRun,
				Force:   force,
				ResultCallback: func(env devpot.ResultEnvelope) {
					result = env.Result
				},
			})
			if result != nil {
				printBuildResult(c, result)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render without writing files")
	cmd.Flags().BoolVar(&force, "force", false, "rewrite pages even when unchanged")
	cmd.Flags().StringSliceVar(&locales, "locale", nil, "limit the build to these languages")
	return cmd
}

func printBuildResult(c *cli, result *devpot.BuildResult) {
	if result.DryRun {
		fmt.Fprintf(c.out, "dry run: %d pages rendered for %s in %s\n",
			result.PagesBuilt, strings.Join(result.Locales, ","), result.Duration)
		return
	}
	fmt.Fprintf(c.out, "built %d pages (%d skipped, %d static files, %d feeds) for %s in %s\n",
		result.PagesBuilt, result.PagesSkipped, result.StaticCopied, result.FeedsBuilt,
		strings.Join(result.Locales, ","), result.Duration)
	for _, err := range result.Errors {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
}

func (c *cli) cleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.handlers.clean.Execute(cmd.Context(), devpot.CleanSiteCommand{}); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "output removed")
			return nil
		},
	}
}

func (c *cli) routesCommand() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes a build renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []devpot.RouteEntry
			err := c.handlers.routes.Execute(cmd.Context(), devpot.ListRoutesQuery{
				Lang:           lang,
				ResultCallback: func(r []devpot.RouteEntry) { entries = r },
			})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LANG\tKIND\tPATH")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Lang, entry.Kind, entry.Path)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "only list routes of this language")
	return cmd
}

func (c *cli) searchCommand() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the posts of one language",
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				lang = c.handlers.defaultLang
			}
			var response devpot.SearchResponse
			err := c.handlers.search.Execute(cmd.Context(), devpot.SearchQuery{
				Lang:           lang,
				Query:          strings.Join(args, " "),
				ResultCallback: func(r devpot.SearchResponse) { response = r },
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, response.Header)
			if len(response.Results) == 0 {
				fmt.Fprintln(c.out, response.Empty)
				return nil
			}
			for _, result := range response.Results {
				fmt.Fprintf(c.out, "%-16s %s  %s\n", result.Relevance, result.Document.Title, result.Document.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "language to search (defaults to the site default)")
	return cmd
}

func (c *cli) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build and preview the site locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.handlers.serve == nil {
				return errors.New("devpot: preview server unavailable")
			}
			return c.handlers.serve(cmd.Context(), addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild when content changes")
	return cmd
}
