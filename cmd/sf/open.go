package main

import (
	"github.com/spf13/cobra"

	"github.com/amar/session-finder/internal/config"
	"github.com/amar/session-finder/internal/open"
	"github.com/amar/session-finder/internal/parse"
	"github.com/amar/session-finder/internal/session"
	"github.com/amar/session-finder/internal/timeline"
)

func openCmd() *cobra.Command {
	var terms []string

	cmd := &cobra.Command{
		Use:   "open <session>",
		Short: "Open a session log in $EDITOR",
		Long: `Resolve the session and open its log file. When terms are given the
editor jumps to the first matching message's line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			path, err := session.Resolve(args[0], cfg.ProjectsRoot)
			if err != nil {
				return err
			}

			lineNum := 1
			if len(terms) > 0 {
				if msgs, err := parse.ParseFile(path); err == nil {
					if entries := timeline.Build(msgs, terms, 0); len(entries) > 0 {
						lineNum = msgs[entries[0].MessageIndex].LineIndex + 1
					}
				}
			}

			return open.OpenFile(path, lineNum)
		},
	}

	cmd.Flags().StringArrayVarP(&terms, "term", "t", nil, "Jump to the first message matching this term")

	return cmd
}
