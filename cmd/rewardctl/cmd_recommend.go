package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

func recommendCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		amount   float64
		date     string
		cards    []string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Pick the card that earns the most for a purchase",
		Example: `  rewardctl recommend --category Grocery --amount 200 --date 2025-03-08
  rewardctl recommend --category Petrol --amount 80 --cards uobone,cimbcash`,
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
			rec, err := service.NewRewardService(cat).Recommend(p, cards)
			if err != nil {
				return err
			}

			resp := dto.NewRecommendationResponse(p, rec)
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			best := color.New(color.FgGreen, color.Bold)
			best.Fprintf(out, "Best card: %s (%s) earns %.2f at %s [%s]\n",
				resp.Best.CardName, resp.Best.CardID, resp.Best.Reward, formatRate(resp.Best.Rate), resp.Best.Tier)
			fmt.Fprintf(out, "%s %.2f on %s (%s)\n\n", resp.Category, resp.Amount, resp.Date, resp.DayOfWeek)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tCard\tIssuer\tTier\tRate\tReward")
			rows := append([]dto.CardRewardResponse{resp.Best}, resp.Alternatives...)
			for i, r := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\n", i+1, r.CardName, r.Issuer, r.Tier, formatRate(r.Rate), r.Reward)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "spending category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "purchase amount")
	cmd.Flags().StringVar(&date, "date", "", "purchase date YYYY-MM-DD (default: today)")
	cmd.Flags().StringSliceVar(&cards, "cards", nil, "restrict the portfolio to these card ids")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
