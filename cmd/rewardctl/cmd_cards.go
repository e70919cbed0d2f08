package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

func cardsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List the card catalog in portfolio order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), cat.Cards())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tName\tIssuer\tBase Rates\tOverrides")
			for _, card := range cat.Cards() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", card.ID, card.Name, card.Issuer, formatRates(card.BaseRates), overrides(card))
			}
			return w.Flush()
		},
	}
}

// formatRates prints rates in taxonomy order, unknown categories last.
func formatRates(rates model.Rates) string {
	keys := make([]model.Category, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b model.Category) int {
		ia, ib := slices.Index(model.Categories, a), slices.Index(model.Categories, b)
		if ia < 0 {
			ia = len(model.Categories)
		}
		if ib < 0 {
			ib = len(model.Categories)
		}
		if ia != ib {
			return ia - ib
		}
		return strings.Compare(string(a), string(b))
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %s", k, formatRate(rates[k]))
	}
	return strings.Join(parts, ", ")
}

func formatRate(r float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", r*100), "0"), ".") + "%"
}

func overrides(card model.Card) string {
	var parts []string
	if len(card.WeekendRates) > 0 {
		parts = append(parts, "weekend")
	}
	days := make([]time.Weekday, 0, len(card.DayRates))
	for d := range card.DayRates {
		days = append(days, d)
	}
	slices.Sort(days)
	for _, d := range days {
		parts = append(parts, d.String()[:3])
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
