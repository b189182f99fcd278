package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amar/session-finder/internal/config"
	"github.com/amar/session-finder/internal/finder"
	"github.com/amar/session-finder/internal/render"
	"github.com/amar/session-finder/internal/scan"
	"github.com/amar/session-finder/internal/session"
)

func timelineCmd() *cobra.Command {
	var terms []string
	var contextSize int

	cmd := &cobra.Command{
		Use:   "timeline <session>",
		Short: "Show messages matching terms within one session, with context",
		Long: `Build a timeline of every message in the session matching the given
terms. The session may be a session id, an absolute path, or a path
relative to the projects root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scan.ValidateTerms(terms); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if contextSize < 0 {
				contextSize = cfg.DefaultContext
			}

			fd := &finder.Finder{ProjectsRoot: cfg.ProjectsRoot, RgPath: cfg.RgPath}
			path, entries, err := fd.Timeline(args[0], terms, contextSize)
			if err != nil {
				return err
			}

			render.Timeline(os.Stdout, session.SessionID(path), strings.Join(terms, " "), entries)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&terms, "term", "t", nil, "Search term (repeatable)")
	cmd.Flags().IntVarP(&contextSize, "context", "c", -1, "Messages of context per side")

	return cmd
}
