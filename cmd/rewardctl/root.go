package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/anyulbade/card-reward-optimizer/internal/catalog"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

type rootOptions struct {
	catalogPath string
	format      string
	now         func() time.Time
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{now: time.Now}

	root := &cobra.Command{
		Use:           "rewardctl",
		Short:         "Resolve card reward rates and pick the best card for a purchase",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "table", "json":
				return nil
			default:
				return fmt.Errorf("invalid --format %q: must be table or json", opts.format)
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "card catalog YAML file (default: built-in catalog)")
	root.PersistentFlags().StringVar(&opts.format, "format", "table", "output format (table|json)")

	root.AddCommand(cardsCmd(opts))
	root.AddCommand(resolveCmd(opts))
	root.AddCommand(recommendCmd(opts))
	root.AddCommand(migrateCmd())

	return root
}

func (o *rootOptions) loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(o.catalogPath)
}

// purchaseDate parses --date, defaulting to today.
func (o *rootOptions) purchaseDate(raw string) (time.Time, error) {
	if raw == "" {
		return model.CalendarDate(o.now()), nil
	}
	return model.ParseDate(raw)
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("invalid --amount %v: must be a finite number", amount)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
