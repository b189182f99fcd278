package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amar/session-finder/internal/config"
	"github.com/amar/session-finder/internal/finder"
	"github.com/amar/session-finder/internal/render"
	"github.com/amar/session-finder/internal/tui"
)

func findCmd() *cobra.Command {
	var project string
	var limit, recent int

	cmd := &cobra.Command{
		Use:   "find <terms...>",
		Short: "Find sessions matching search terms, ranked by relevance",
		Long: `Search past sessions for the given terms. Candidates are discovered
with ripgrep, analyzed, and ranked by topic relevance then recency.

On a terminal this opens an interactive browser; piped, it prints the
ranked listing with topics, messages, and a resume command.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if limit == 0 {
				limit = cfg.DefaultLimit
			}

			fd := &finder.Finder{
				ProjectsRoot:   cfg.ProjectsRoot,
				RgPath:         cfg.RgPath,
				ProjectFilter:  project,
				RecentDays:     recent,
				ExtraStopwords: cfg.ExtraStopwords,
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(fd, args, limit, cfg.DefaultContext)
			}

			res, err := fd.Find(args, limit)
			if err != nil {
				return err
			}
			for _, fail := range res.Failures {
				fmt.Fprintf(os.Stderr, "WARN: %v\n", fail)
			}

			render.Sessions(os.Stdout, res.Sessions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Filter by project path substring")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Max sessions to return")
	cmd.Flags().IntVarP(&recent, "recent", "r", 0, "Only sessions from the last N days")

	return cmd
}
