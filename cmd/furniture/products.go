package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Spok95/furniture-db/internal/domain/products"
)

func newProductsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List, search and edit products",
	}
	cmd.AddCommand(
		newProductsListCommand(a),
		newProductsSearchCommand(a),
		newProductsAddCommand(a),
		newProductsUpdateCommand(a),
		newProductsDeleteCommand(a),
	)
	return cmd
}

func printProducts(w io.Writer, items []products.View) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tARTICLE\tTYPE\tMATERIAL\tPRICE")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Article, p.ProductType, p.MaterialType, p.MinPartnerPrice.StringFixed(2))
	}
	_ = tw.Flush()
}

func newProductsListCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			items, err := m.ListProducts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows (0 for all)")
	return cmd
}

func newProductsSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Find products by name or article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			items, err := m.SearchProducts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newProductsAddCommand(a *app) *cobra.Command {
	var (
		in       products.NewProduct
		typeName string
		material string
		price    string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product; type and material are given by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer m.Close()

			pt, err := m.ProductTypeByName(ctx, typeName)
			if err != nil {
				return err
			}
			if pt == nil {
				return fmt.Errorf("product type %q not found", typeName)
			}
			mt, err := m.MaterialTypeByName(ctx, material)
			if err != nil {
				return err
			}
			if mt == nil {
				return fmt.Errorf("material type %q not found", material)
			}
			in.ProductTypeID, in.MaterialTypeID = pt.ID, mt.ID

			if price != "" {
				if in.MinPartnerPrice, err = decimal.NewFromString(price); err != nil {
					return fmt.Errorf("invalid price %q: %w", price, err)
				}
			}
			if err := validator.New().Struct(in); err != nil {
				return err
			}

			id, err := m.AddProduct(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "product name")
	f.StringVar(&in.Article, "article", "", "article number")
	f.StringVar(&typeName, "type", "", "product type name")
	f.StringVar(&material, "material", "", "material type name")
	f.StringVar(&price, "price", "", "minimum partner price")
	f.StringVar(&in.Dimensions, "dimensions", "", "dimensions, free text")
	f.StringVar(&in.Description, "description", "", "description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("article")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("material")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

func newProductsUpdateCommand(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update ID --set field=value...",
		Short: "Change selected product fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ch, err := products.ParseAssignments(sets)
			if err != nil {
				return err
			}

			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.UpdateProduct(cmd.Context(), id, ch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "product %d updated (%d fields)\n", id, len(ch))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, fmt.Sprintf("field=value, repeatable; fields: %v", products.Fields()))
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func newProductsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product together with its workshop assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "product %d deleted\n", id)
			return nil
		},
	}
}
