package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

func resolveCmd(opts *rootOptions) *cobra.Command {
	var (
		cardID   string
		category string
		amount   float64
		date     string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the rate and reward one card gives for a purchase",
		Example: `  rewardctl resolve --card mikhwan --category Petrol --amount 120 --date 2025-03-07
  rewardctl resolve --card m2gold --category Dining --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkAmount(amount); err != nil {
				return err
			}
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			d, err := opts.purchaseDate(date)
			if err != nil {
				return err
			}

			p := model.Purchase{Category: model.Category(category), Amount: amount, Date: d}
			q, err := service.NewRewardService(cat).Quote(cardID, p)
			if err != nil {
				return err
			}

			resp := dto.RateResponse{
				CardID:     q.Card.ID,
				Category:   string(p.Category),
				Date:       p.Date.Format(model.DateLayout),
				DayOfWeek:  rewards.DayOfWeek(p.Date).String(),
				Rate:       q.Resolution.Rate,
				Tier:       q.Resolution.Tier.String(),
				MatchedKey: string(q.Resolution.Key),
				Amount:     p.Amount,
				Reward:     dto.RoundAmount(q.Reward),
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			key := resp.MatchedKey
			if key == "" {
				key = "-"
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Card\tCategory\tDate\tTier\tKey\tRate\tReward")
			fmt.Fprintf(w, "%s\t%s\t%s (%s)\t%s\t%s\t%s\t%.2f\n",
				q.Card.Name, resp.Category, resp.Date, resp.DayOfWeek[:3], resp.Tier, key, formatRate(resp.Rate), resp.Reward)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&cardID, "card", "", "card id")
	cmd.Flags().StringVar(&category, "category", "", "spending category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "purchase amount")
	cmd.Flags().StringVar(&date, "date", "", "purchase date YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
