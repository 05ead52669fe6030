package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/senghongH/devdocs/internal/cache"
	"github.com/senghongH/devdocs/internal/config"
	"github.com/senghongH/devdocs/internal/site"
)

func newBuildCommand() *cobra.Command {
	var cwd string
	var outDir string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the static site",
		Long:  `Renders the markdown content tree and the tip pages into the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("changing directory to %s: %w", cwd, err)
				}
			}
			return runBuild(outDir, noCache)
		},
	}

	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the site (defaults to current)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides site.yaml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the incremental render cache")

	return cmd
}

func runBuild(outDir string, noCache bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}

	var renderCache *cache.Cache
	if !noCache {
		renderCache, err = cache.New(cfg.CacheDir)
		if err != nil {
			log.Printf("%s cache unavailable: %v", styleWarn.Render("warning:"), err)
		}
	}

	fmt.Println(styleHeading.Render("Building " + cfg.Title))

	start := time.Now()
	gen := site.New(cfg, renderCache)
	pages, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("%s %d pages in %s → %s\n",
		styleSuccess.Render("✓"),
		pages,
		time.Since(start).Round(time.Millisecond),
		cfg.OutputDir,
	)

	if renderCache != nil {
		stats := renderCache.Stats()
		fmt.Println(styleDim.Render(
			fmt.Sprintf("  cache: %d hits, %d misses", stats.Hits, stats.Misses)))
	}

	return nil
}
