package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alignedempire/aligned/internal/content"
	"github.com/alignedempire/aligned/internal/filter"
	"github.com/alignedempire/aligned/internal/launch"
)

var (
	postsCategory string
	postsSearch   string
)

// postsCmd lists blog posts without starting the interface
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List blog posts",
	Long: `List blog posts, optionally narrowed to a category and a search term.
The search matches titles and summaries, ignoring case.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category := content.All
		if postsCategory != "" {
			c, ok := matchCategory(postsCategory)
			if !ok {
				return fmt.Errorf("unknown category %q (available: %s)", postsCategory, strings.Join(content.Categories, ", "))
			}
			category = c
		}

		cat, _, err := loadCatalog(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		posts := filter.Apply(cat.Posts, category, postsSearch)
		logger.Debug("posts", zap.String("category", category), zap.String("search", postsSearch), zap.Int("matches", len(posts)))

		out := cmd.OutOrStdout()
		if len(posts) == 0 {
			fmt.Fprintln(out, filter.EmptyMessage(category))
			return nil
		}
		fmt.Fprintln(out, postsTable(posts))
		return nil
	},
}

func matchCategory(name string) (string, bool) {
	for _, c := range content.Categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

func postsTable(posts []content.Post) string {
	rows := make([][]string, len(posts))
	for i, p := range posts {
		title := p.Title
		if p.Featured {
			title += " ★"
		}
		rows[i] = []string{strconv.Itoa(p.ID), p.Category, title, p.ReadTime, p.Date}
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CATEGORY", "TITLE", "READ", "DATE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Render()
}

// bookCmd opens the scheduling calendar
var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Open the discovery call calendar in the browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := loadCatalog(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return openCalendar(cmd, cat, launch.SystemOpener{})
	},
}

func openCalendar(cmd *cobra.Command, cat *content.Catalog, opener launch.Opener) error {
	if err := opener.Open(cat.Contact.CalendarURL); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", cat.Contact.CalendarURL)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aligned %s\n", version)
	},
}

func init() {
	postsCmd.Flags().StringVarP(&postsCategory, "category", "c", "", "Only posts in this category")
	postsCmd.Flags().StringVarP(&postsSearch, "search", "s", "", "Only posts whose title or summary contains this")
}
