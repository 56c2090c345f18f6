package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"foodfacts/explorer/internal/browser"
	"foodfacts/explorer/internal/domain"

	"github.com/spf13/cobra"
)

var (
	flagSort  string
	flagPages int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Show the product feed",
	Long: `Show the default product feed, ordered by popularity on the server and
re-sorted locally. Use --pages to load more than the first page.

Examples:
  foodcart browse
  foodcart browse --pages 3 --sort grade-asc`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search products by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var categoryCmd = &cobra.Command{
	Use:   "category <tag>",
	Short: "List products in a category",
	Long: `List products carrying the given category tag, e.g. en:snacks.
Run "foodcart categories" to see available tags.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategory,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List category filter options",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	for _, cmd := range []*cobra.Command{browseCmd, searchCmd, categoryCmd} {
		cmd.Flags().StringVar(&flagSort, "sort", string(browser.SortNameAsc),
			"Sort order: name-asc, name-desc, grade-asc, grade-desc")
	}
	browseCmd.Flags().IntVar(&flagPages, "pages", 1, "Number of feed pages to load")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	order, err := browser.ParseSortOrder(flagSort)
	if err != nil {
		return err
	}
	app.Browser.SetSortOrder(order)

	categories := app.Service.Warmup(ctx)
	for page := 1; page < flagPages && app.Browser.HasMore(); page++ {
		app.Browser.LoadMore(ctx)
	}

	if len(categories) > 0 {
		tags := make([]string, len(categories))
		for i, category := range categories {
			tags[i] = category.ID
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n\n", strings.Join(tags, ", "))
	}

	return printProducts(cmd.OutOrStdout(), app.Browser.Products())
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	order, err := browser.ParseSortOrder(flagSort)
	if err != nil {
		return err
	}
	app.Browser.SetSortOrder(order)

	app.Browser.Search(ctx, strings.Join(args, " "))
	return printProducts(cmd.OutOrStdout(), app.Browser.Products())
}

func runCategory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	order, err := browser.ParseSortOrder(flagSort)
	if err != nil {
		return err
	}
	app.Browser.SetSortOrder(order)

	app.Browser.FilterCategory(ctx, args[0])
	return printProducts(cmd.OutOrStdout(), app.Browser.Products())
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	options := app.Service.CategoryOptions(ctx)
	if len(options) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories available.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tNAME")
	for _, option := range options {
		fmt.Fprintf(w, "%s\t%s\n", option.ID, option.Name)
	}
	return w.Flush()
}

func printProducts(out io.Writer, products []domain.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(out, "No products found. Try a different search term or filter.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tGRADE")
	for _, product := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\n", product.Code, product.DisplayName(), strings.ToUpper(product.GradeLabel()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d products\n", len(products))
	return nil
}
