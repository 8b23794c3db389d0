// Package cmd implements the command-line interface for mangasan.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mangasan-cli/mangasan/anilist"
	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/inline"
	"github.com/mangasan-cli/mangasan/key"
	"github.com/mangasan-cli/mangasan/provider"
	"github.com/mangasan-cli/mangasan/query"
	"github.com/mangasan-cli/mangasan/source"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for manga discovery")
	inlineCmd.Flags().StringP("manga", "m", "", "Criteria for selecting a specific manga from the search results")
	inlineCmd.Flags().StringP("chapters", "c", "", "Criteria for selecting specific chapters from the chosen manga")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("fetch-metadata", "f", false, "Fetch and include detailed manga metadata in the output")
	inlineCmd.Flags().BoolP("include-anilist-manga", "A", false, "Include Anilist record data in the structured output")
	inlineCmd.Flags().BoolP("include-pages", "P", false, "Execute provider scraping to include page image URLs for selected chapters")
	lo.Must0(viper.BindPFlag(key.MetadataFetchAnilist, inlineCmd.Flags().Lookup("fetch-metadata")))

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// parseMangaPicker converts the --manga flag into a picker. "exact" matches
// titles against the search query itself; a bare number selects by index.
func parseMangaPicker(flag, searchQuery string) (inline.MangaPicker, error) {
	switch flag {
	case "first", "last":
		return inline.ParseMangaPicker(flag, "")
	case "exact":
		return inline.ParseMangaPicker("exact", searchQuery)
	default:
		return inline.ParseMangaPicker("index", flag)
	}
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Manga selectors:
  first - first manga in the list
  last - last manga in the list
  exact - manga whose title matches the query exactly
  [number] - select manga by index (starting from 0)

Chapter selectors:
  first - first chapter in the list
  last - last chapter in the list
  all - all chapters in the list
  [number] - select chapter by index (starting from 0)
  [from]-[to] - select chapters by range
  @[substring]@ - select chapters by name substring

When using the json flag the manga selector could be omitted. That way, it will select all mangas`,

	Example: "https://github.com/mangasan-cli/mangasan/wiki/Inline-mode",
	PreRun: func(cmd *cobra.Command, args []string) {
		json, _ := cmd.Flags().GetBool("json")

		if !json {
			lo.Must0(cmd.MarkFlagRequired("manga"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			sources []source.Source
			err     error
		)

		for _, name := range viper.GetStringSlice(key.DefaultSources) {
			if name == "" {
				handleErr(errors.New("source not set"))
			}

			p, ok := provider.Get(name)
			if !ok {
				handleErr(fmt.Errorf("source not found: %s", name))
			}

			src, err := p.CreateSource()
			handleErr(err)

			sources = append(sources, src)
		}

		searchQuery := lo.Must(cmd.Flags().GetString("query"))

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		mangaFlag := lo.Must(cmd.Flags().GetString("manga"))
		mangaPicker := mo.None[inline.MangaPicker]()
		if mangaFlag != "" {
			fn, err := parseMangaPicker(mangaFlag, searchQuery)
			handleErr(err)
			mangaPicker = mo.Some(fn)
		}

		chaptersFlag := lo.Must(cmd.Flags().GetString("chapters"))
		chaptersFilter := mo.None[inline.ChaptersFilter]()
		if chaptersFlag != "" {
			fn, err := inline.ParseChaptersFilter(chaptersFlag)
			handleErr(err)
			chaptersFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Sources:             sources,
			Json:                lo.Must(cmd.Flags().GetBool("json")),
			Query:               searchQuery,
			IncludeAnilistManga: lo.Must(cmd.Flags().GetBool("include-anilist-manga")),
			MangaPicker:         mangaPicker,
			ChaptersFilter:      chaptersFilter,
			Out:                 writer,
			Pages:               lo.Must(cmd.Flags().GetBool("include-pages")),
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineAnilistCmd)
}

// inlineAnilistCmd manages Anilist record operations in inline mode.
var inlineAnilistCmd = &cobra.Command{
	Use:   "anilist",
	Short: "Manage Anilist record operations in inline mode",
}

func init() {
	inlineAnilistCmd.AddCommand(inlineAnilistSearchCmd)

	inlineAnilistSearchCmd.Flags().StringP("name", "n", "", "The manga title to search for on Anilist")
	inlineAnilistSearchCmd.Flags().IntP("id", "i", 0, "The specific Anilist ID to retrieve metadata for")

	inlineAnilistSearchCmd.MarkFlagsMutuallyExclusive("name", "id")
}

// inlineAnilistSearchCmd performs an Anilist search by manga title.
var inlineAnilistSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Perform an Anilist search by manga title and return the results",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("id") {
			handleErr(errors.New("name or id flag is required"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		mangaName := lo.Must(cmd.Flags().GetString("name"))
		mangaID := lo.Must(cmd.Flags().GetInt("id"))

		var toEncode any

		if mangaName != "" {
			mangas, err := anilist.SearchByName(mangaName)
			handleErr(err)
			toEncode = mangas
		} else {
			manga, err := anilist.GetByID(mangaID)
			handleErr(err)
			toEncode = manga
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(toEncode))
	},
}

func init() {
	inlineAnilistCmd.AddCommand(inlineAnilistGetCmd)

	inlineAnilistGetCmd.Flags().StringP("name", "n", "", "The local manga title to retrieve the mapped Anilist relation for")
	lo.Must0(inlineAnilistGetCmd.MarkFlagRequired("name"))
}

// inlineAnilistGetCmd retrieves mapped Anilist relations for local manga titles.
var inlineAnilistGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Retrieve the Anilist record currently associated with a specific local manga title",
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("name"))

		manga, err := anilist.FindClosest(name)
		handleErr(err)

		handleErr(json.NewEncoder(os.Stdout).Encode(manga))
	},
}

func init() {
	inlineAnilistCmd.AddCommand(inlineAnilistBindCmd)

	inlineAnilistBindCmd.Flags().StringP("name", "n", "", "The local manga title to establish a mapping for")
	inlineAnilistBindCmd.Flags().IntP("id", "i", 0, "The Anilist ID to bind to the specified manga title")

	lo.Must0(inlineAnilistBindCmd.MarkFlagRequired("name"))
	lo.Must0(inlineAnilistBindCmd.MarkFlagRequired("id"))

	inlineAnilistBindCmd.MarkFlagsRequiredTogether("name", "id")
}

// inlineAnilistBindCmd statically binds local manga titles to Anilist record IDs.
var inlineAnilistBindCmd = &cobra.Command{
	Use:   "set",
	Short: "Statically bind a local manga title to a specific Anilist record ID",
	Run: func(cmd *cobra.Command, args []string) {
		anilistManga, err := anilist.GetByID(lo.Must(cmd.Flags().GetInt("id")))
		handleErr(err)

		mangaName := lo.Must(cmd.Flags().GetString("name"))

		handleErr(anilist.SetRelation(mangaName, anilistManga))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("anilist", "a", false, "Generate the JSON Schema for Anilist search result objects")
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "manga", "chapter", "searchresult", "date", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("anilist")):
			schema = reflector.Reflect([]*anilist.Manga{})
		default:
			schema = reflector.Reflect(&inline.Output{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
