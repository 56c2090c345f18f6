package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local shopping cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart contents",
	Args:  cobra.NoArgs,
	RunE:  runCartList,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <barcode>",
	Short: "Add a product to the cart by barcode",
	Long: `Look the product up in the catalog and add it to the cart. Adding a
product that is already in the cart increments its quantity.`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <code>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartSetCmd = &cobra.Command{
	Use:   "set <code> <quantity>",
	Short: "Set a cart line's quantity",
	Long:  `Set the quantity of an existing cart line. A quantity of 0 removes the line.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCartSet,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE:  runCartClear,
}

func init() {
	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}

func runCartList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	items := app.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tQTY")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\n", item.Product.Code, item.Product.DisplayName(), item.Quantity)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal items: %d\n", app.Cart.Total())
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	barcode := args[0]
	product, ok := app.Service.AddToCartByCode(ctx, barcode)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Product not found with barcode %s\n", barcode)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to cart (total items: %d)\n", product.DisplayName(), app.Cart.Total())
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Cart.Remove(ctx, args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (total items: %d)\n", args[0], app.Cart.Total())
	return nil
}

func runCartSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", args[1], err)
	}

	app.Cart.SetQuantity(ctx, args[0], quantity)
	fmt.Fprintf(cmd.OutOrStdout(), "Total items: %d\n", app.Cart.Total())
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Cart.Clear(ctx)
	fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
	return nil
}
