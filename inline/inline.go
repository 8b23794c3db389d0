// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mangasan-cli/mangasan/key"
	"github.com/mangasan-cli/mangasan/log"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/spf13/viper"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Execute searches across all configured providers.
	var results []*source.SearchResult
	for _, src := range options.Sources {
		found, err := src.Search(ctx, options.Query)
		if err != nil {
			return fmt.Errorf("search failed for %s: %w", src.Name(), err)
		}
		results = append(results, found...)
	}

	// Step 2: Apply manga selection logic if a picker is defined.
	var selected []*source.SearchResult
	if options.MangaPicker.IsPresent() {
		picker := options.MangaPicker.MustGet()
		if choice := picker(results); choice != nil {
			selected = []*source.SearchResult{choice}
		}
	} else {
		selected = results
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []*source.Manga{}, options)
		}
		return nil // Nothing found
	}

	// Step 3: Retrieve the full record, metadata and chapters for the selection.
	var mangas []*source.Manga
	for _, result := range selected {
		manga, err := prepareManga(ctx, result, options)
		if err != nil {
			return err
		}
		mangas = append(mangas, manga)
	}

	// Step 4: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, mangas, options)
	}

	// Plain text output: one line per chapter, or per page URL when pages
	// were requested.
	for _, manga := range mangas {
		for _, chapter := range manga.Chapters {
			log.Info("Found " + chapter.String())
			if options.Pages && len(chapter.Pages) > 0 {
				for _, page := range chapter.Pages {
					fmt.Fprintln(options.Out, page)
				}
			} else {
				fmt.Fprintln(options.Out, chapter.URL)
			}
		}
	}

	return nil
}

func prepareManga(ctx context.Context, result *source.SearchResult, options *Options) (*source.Manga, error) {
	src := result.Source

	manga, err := src.GetManga(ctx, result.ID)
	if err != nil {
		return nil, err
	}

	// Anilist binding
	if options.IncludeAnilistManga || viper.GetBool(key.MetadataFetchAnilist) {
		if err := manga.BindWithAnilist(); err != nil {
			// Metadata is an enrichment; a failed lookup never fails the run.
			log.Warnf("failed to bind anilist for %s: %v", manga.Title, err)
		}
	}

	if viper.GetBool(key.MetadataFetchAnilist) {
		_ = manga.PopulateMetadata(func(string) {})
	}

	// Chapters
	chapters, err := src.GetChapters(ctx, manga.ID)
	if err != nil {
		return nil, err
	}

	// Filter chapters
	if options.ChaptersFilter.IsPresent() {
		filter := options.ChaptersFilter.MustGet()
		chapters, err = filter(chapters)
		if err != nil {
			return nil, err
		}
	}
	manga.Chapters = chapters

	// Pages
	if options.Pages {
		for _, chapter := range manga.Chapters {
			pages, err := src.GetChapterImages(ctx, chapter.ID)
			if err != nil {
				log.Warnf("failed to fetch pages for %s: %v", chapter, err)
				continue
			}
			chapter.Pages = pages
		}
	}

	return manga, nil
}

func writeJson(out io.Writer, mangas []*source.Manga, options *Options) error {
	data, err := asJson(mangas, options.Query, options.IncludeAnilistManga)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
