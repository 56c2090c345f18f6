package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"foodfacts/explorer/internal/domain"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <barcode>",
	Short: "Show product details by barcode",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	barcode := args[0]
	product, ok := app.Service.ProductDetail(ctx, barcode)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Product not found with barcode %s\n", barcode)
		return nil
	}

	printProductDetail(cmd.OutOrStdout(), barcode, product, app.Cart.Contains(product.Code))
	return nil
}

func printProductDetail(out io.Writer, barcode string, p domain.Product, inCart bool) {
	fmt.Fprintln(out, p.DisplayName())
	fmt.Fprintln(out, strings.Repeat("=", len(p.DisplayName())))
	fmt.Fprintf(out, "Barcode: %s\n", barcode)
	if p.Brands != "" {
		fmt.Fprintf(out, "Brand: %s\n", p.Brands)
	}
	if p.Categories != "" {
		fmt.Fprintf(out, "Category: %s\n", p.Categories)
	}
	fmt.Fprintf(out, "Nutrition grade: %s\n", strings.ToUpper(p.GradeLabel()))
	if p.ImageURL != "" {
		fmt.Fprintf(out, "Image: %s\n", p.ImageURL)
	}

	if p.IngredientsText != "" {
		fmt.Fprintf(out, "\nIngredients:\n%s\n", p.IngredientsText)
	}

	printNutriments(out, p.Nutriments)

	if p.Labels != "" {
		labels := strings.Split(p.Labels, ",")
		for i, label := range labels {
			labels[i] = strings.TrimSpace(label)
		}
		fmt.Fprintf(out, "\nLabels: %s\n", strings.Join(labels, ", "))
	}

	if inCart {
		fmt.Fprintln(out, "\nAlready in cart.")
	}
}

func printNutriments(out io.Writer, n domain.Nutriments) {
	rows := []struct {
		name  string
		value *float64
		unit  string
	}{
		{"Energy", n.Energy, "kJ"},
		{"Energy (kcal)", n.EnergyKcal, "kcal"},
		{"Fat", n.Fat, "g"},
		{"Carbohydrates", n.Carbohydrates, "g"},
		{"Proteins", n.Proteins, "g"},
		{"Salt", n.Salt, "g"},
	}

	any := false
	for _, row := range rows {
		if row.value != nil {
			any = true
			break
		}
	}
	if !any {
		return
	}

	fmt.Fprintln(out, "\nNutritional values (per 100g):")
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		if row.value == nil {
			continue
		}
		fmt.Fprintf(w, "  %s\t%g %s\n", row.name, *row.value, row.unit)
	}
	w.Flush()
}
