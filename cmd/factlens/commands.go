package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/factlens/internal/aggregate"
	"github.com/mohammad-safakhou/factlens/internal/helpers"
	"github.com/mohammad-safakhou/factlens/models"
)

func checkCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>",
		Short: "Fetch an article and print its credibility report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()
			report, err := a.analysis.CheckURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func askCMD(cfgPath *string) *cobra.Command {
	var contentFile, fromURL string
	var ask = &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question about an article",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			var content string
			switch {
			case contentFile == "-":
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				content = string(b)
			case contentFile != "":
				b, err := os.ReadFile(contentFile)
				if err != nil {
					return err
				}
				content = string(b)
			case fromURL != "":
				report, err := a.analysis.CheckURL(cmd.Context(), fromURL)
				if err != nil {
					return err
				}
				content = report.Content
			default:
				return errors.New("one of --content-file or --url is required")
			}

			answer, err := a.analysis.Ask(strings.Join(args, " "), content)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), answer)
		},
	}
	ask.Flags().StringVar(&contentFile, "content-file", "", "article text file (- for stdin)")
	ask.Flags().StringVar(&fromURL, "url", "", "fetch and extract the article from this URL")
	return ask
}

func trendingCMD(cfgPath *string) *cobra.Command {
	var format string
	var trending = &cobra.Command{
		Use:   "trending",
		Short: "Collect and print the trending listing from every source",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()
			articles, err := a.news.Trending(cmd.Context())
			if err != nil {
				return err
			}
			return printArticles(cmd.OutOrStdout(), format, articles)
		},
	}
	trending.Flags().StringVar(&format, "format", "json", "output format: json or citations")
	return trending
}

func searchCMD(cfgPath *string) *cobra.Command {
	var f aggregate.Filter
	var format string
	var search = &cobra.Command{
		Use:   "search",
		Short: "Scrape every source and print matching articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()
			articles, err := a.news.Search(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printArticles(cmd.OutOrStdout(), format, articles)
		},
	}
	search.Flags().StringVar(&f.Query, "q", "", "match title or description")
	search.Flags().StringVar(&f.Source, "source", "", "match source name")
	search.Flags().StringVar(&f.Category, "category", "", "match category")
	search.Flags().StringVar(&format, "format", "json", "output format: json or citations")
	return search
}

func printArticles(w io.Writer, format string, articles []models.NewsArticle) error {
	switch format {
	case "json", "":
		return printJSON(w, articles)
	case "citations":
		citations := make([]helpers.Citation, 0, len(articles))
		for _, a := range articles {
			citations = append(citations, helpers.CitationFromArticle(a))
		}
		for _, line := range helpers.FormatCitations(citations) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
