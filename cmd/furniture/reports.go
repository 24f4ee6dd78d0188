package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newWorkshopsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "workshops",
		Short: "List workshops by type and name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			items, err := m.ListWorkshops(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTAFF\tACTIVE")
			for _, w := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%t\n", w.ID, w.Name, w.Type, w.StaffCount, w.Active)
			}
			return tw.Flush()
		},
	}
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Row counts per table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Close()

			st, err := m.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			var total int64
			for _, t := range st {
				total += t.Count
				fmt.Fprintf(tw, "%s\t%d\n", t.Table, t.Count)
			}
			fmt.Fprintf(tw, "total\t%d\n", total)
			return tw.Flush()
		},
	}
}

func newReportCommand(a *app) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Products by type, average price by type and the most expensive products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			m, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer m.Close()

			byType, err := m.ProductsByType(ctx)
			if err != nil {
				return err
			}
			avg, err := m.AveragePriceByType(ctx)
			if err != nil {
				return err
			}
			expensive, err := m.TopExpensiveProducts(ctx, top)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PRODUCTS BY TYPE")
			for _, r := range byType {
				fmt.Fprintf(tw, "%s\t%d\n", r.ProductType, r.Count)
			}
			fmt.Fprintln(tw, "\nAVERAGE PRICE BY TYPE")
			for _, r := range avg {
				fmt.Fprintf(tw, "%s\t%s\n", r.ProductType, r.Average.StringFixed(2))
			}
			fmt.Fprintf(tw, "\nTOP %d BY PRICE\n", top)
			for _, r := range expensive {
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Price.StringFixed(2))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of most expensive products")
	return cmd
}
