package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	sitecmd "github.com/goliatone/go-blog/internal/commands/site"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	output := fs.String("output", "public", "Directory static artifacts are written to")
	baseURL := fs.String("base-url", "", "Absolute site URL used in sitemap and feed links")
	title := fs.String("title", "Blog", "Site title surfaced in templates and feeds")
	description := fs.String("description", "", "Site description surfaced in templates and feeds")
	template := fs.String("template", "post", "Template planned pages render with by default")
	postLimit := fs.Int("post-limit", 0, "Maximum number of posts to plan (0 keeps the default cap)")
	drafts := fs.Bool("drafts", false, "Include draft posts in the build")
	sitemap := fs.Bool("sitemap", true, "Generate sitemap.xml")
	robots := fs.Bool("robots", true, "Generate robots.txt")
	feed := fs.Bool("feed", true, "Generate feed.xml")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove stored posts whose source file disappeared")
	dryRun := fs.Bool("dry-run", false, "Plan and render without writing artifacts")
	storageDriver := fs.String("storage-driver", "", "Node storage driver (memory or sqlite)")
	storageDSN := fs.String("storage-dsn", "", "DSN for the sqlite storage driver")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:      *contentDir,
		Pattern:         *pattern,
		Recursive:       true,
		OutputDir:       *output,
		BaseURL:         *baseURL,
		SiteTitle:       *title,
		SiteDescription: *description,
		Template:        *template,
		PostLimit:       *postLimit,
		IncludeDrafts:   *drafts,
		Sitemap:         *sitemap,
		Robots:          *robots,
		Feed:            *feed,
		StorageDriver:   *storageDriver,
		StorageDSN:      *storageDSN,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	gates := sitecmd.FeatureGates{}
	ctx := context.Background()

	syncHandler := sitecmd.NewSyncContentHandler(module.Module.Markdown(), module.Module.Sync(), module.Logger, gates)
	if err := syncHandler.Execute(ctx, sitecmd.SyncContentCommand{
		Directory:      ".",
		DeleteOrphaned: *deleteOrphaned,
		DryRun:         *dryRun,
	}); err != nil {
		return fmt.Errorf("sync content: %w", err)
	}

	buildHandler := sitecmd.NewBuildSiteHandler(module.Module.Generator(), module.Logger, gates)
	if err := buildHandler.Execute(ctx, sitecmd.BuildSiteCommand{DryRun: *dryRun}); err != nil {
		return fmt.Errorf("build site: %w", err)
	}

	return nil
}
