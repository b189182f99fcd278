package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amar/session-finder/internal/config"
	"github.com/amar/session-finder/internal/finder"
	"github.com/amar/session-finder/internal/render"
	"github.com/amar/session-finder/internal/scan"
	"github.com/amar/session-finder/internal/session"
)

func codeDiffCmd() *cobra.Command {
	var contextSize int

	cmd := &cobra.Command{
		Use:   "code-diff <session> [terms...]",
		Short: "Show the code changes made during one session",
		Long: `Locate every code-change message in the session: file edits, new-file
writes, executed commands, and inline code blocks. Optional terms keep
only changes whose code or surrounding context mentions one of them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms := args[1:]
			if len(terms) > 0 {
				if err := scan.ValidateTerms(terms); err != nil {
					return err
				}
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if contextSize < 0 {
				contextSize = cfg.DefaultContext
			}

			fd := &finder.Finder{ProjectsRoot: cfg.ProjectsRoot, RgPath: cfg.RgPath}
			path, entries, err := fd.CodeDiff(args[0], terms, contextSize)
			if err != nil {
				return err
			}

			render.CodeDiff(os.Stdout, session.SessionID(path), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&contextSize, "context", "c", -1, "Messages of context per side")

	return cmd
}
