package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/amar/session-finder/internal/config"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify projects root, ripgrep, and config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			if p, err := config.Path(); err == nil {
				if _, err := os.Stat(p); err == nil {
					fmt.Printf("  File: %s (OK)\n", p)
				} else {
					fmt.Printf("  File: %s (not present, using defaults)\n", p)
				}
			}

			fmt.Println("\n=== Projects Root ===")
			checkDir(cfg.ProjectsRoot)

			fmt.Println("\n=== Ripgrep ===")
			rg := cfg.RgPath
			if rg == "" {
				rg = "rg"
			}
			if path, err := exec.LookPath(rg); err == nil {
				fmt.Printf("  %s (OK)\n", path)
			} else {
				fmt.Printf("  %s: NOT FOUND (falling back to built-in scan)\n", rg)
			}

			fmt.Println("\n=== Session Logs ===")
			count := 0
			filepath.WalkDir(cfg.ProjectsRoot, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if !d.IsDir() && filepath.Ext(path) == ".jsonl" {
					count++
				}
				return nil
			})
			fmt.Printf("  JSONL files: %d\n", count)

			return nil
		},
	}
}

func checkDir(path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s (NOT FOUND)\n", path)
	} else if !info.IsDir() {
		fmt.Printf("  %s (NOT A DIRECTORY)\n", path)
	} else {
		fmt.Printf("  %s (OK)\n", path)
	}
}
