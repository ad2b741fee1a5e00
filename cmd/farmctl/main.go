package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
	farmclient "github.com/mamadbah2/chickenroad/pkg/clients/farm"
)

var apiURL string

func main() {
	rootCmd := &cobra.Command{
		Use:   "farmctl",
		Short: "Chicken Road farm client",
		Long: `Talks to a running chicken farm server: inspect the flock, buy and
sell chickens, feed them, trade eggs and buy upgrades.`,
		SilenceUsage: true,
	}

	defaultURL := os.Getenv("FARM_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api", "a", defaultURL, "Farm server base URL")

	rootCmd.AddCommand(
		&cobra.Command{Use: "status", Short: "Show the flock and resources", Args: cobra.NoArgs, RunE: runStatus},
		&cobra.Command{Use: "report", Short: "Print the farm report", Args: cobra.NoArgs, RunE: runReport},
		&cobra.Command{Use: "hatch NAME", Short: "Create the first chicken", Args: cobra.ExactArgs(1), RunE: runAction(hatch)},
		&cobra.Command{Use: "buy NAME", Short: "Buy a chicken of a random breed", Args: cobra.ExactArgs(1), RunE: runAction(buy)},
		&cobra.Command{Use: "sell CHICKEN_ID", Short: "Sell a chicken", Args: cobra.ExactArgs(1), RunE: runAction(sell)},
		&cobra.Command{Use: "feed", Short: "Feed the whole flock", Args: cobra.NoArgs, RunE: runAction(feed)},
		&cobra.Command{Use: "collect", Short: "Collect eggs", Args: cobra.NoArgs, RunE: runAction(collect)},
		&cobra.Command{Use: "sell-eggs", Short: "Sell all collected eggs", Args: cobra.NoArgs, RunE: runAction(sellEggs)},
		&cobra.Command{
			Use:       "upgrade KIND",
			Short:     "Buy an upgrade (capacity, food, egg-value)",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(models.UpgradeCapacity), string(models.UpgradeFood), string(models.UpgradeEggValue)},
			RunE:      runAction(upgrade),
		},
		&cobra.Command{Use: "bury CHICKEN_ID", Short: "Confirm a chicken's death", Args: cobra.ExactArgs(1), RunE: runAction(bury)},
		&cobra.Command{Use: "dismiss", Short: "Dismiss the not-enough-money notice", Args: cobra.NoArgs, RunE: runAction(dismiss)},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type actionFunc func(ctx context.Context, client farmclient.Client, args []string) (*farmclient.ActionResult, error)

func runAction(fn actionFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		res, err := fn(ctx, farmclient.NewClient(apiURL), args)
		if err != nil {
			var apiErr *farmclient.APIError
			if errors.Is(err, farmclient.ErrNotEnoughMoney) && errors.As(err, &apiErr) && apiErr.Farm != nil {
				color.Yellow("Not enough money! You have %d.", apiErr.Farm.Money)
				return nil
			}
			return err
		}

		describe(res)
		printFarm(res.Farm)
		return nil
	}
}

func hatch(ctx context.Context, c farmclient.Client, args []string) (*farmclient.ActionResult, error) {
	return c.HatchFirst(ctx, args[0])
}

func buy(ctx context.Context, c farmclient.Client, args []string) (*farmclient.ActionResult, error) {
	return c.BuyChicken(ctx, args[0])
}

func sell(ctx context.Context, c farmclient.Client, args []string) (*farmclient.ActionResult, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid chicken id %q: %w", args[0], err)
	}
	return c.SellChicken(ctx, id)
}

func feed(ctx context.Context, c farmclient.Client, _ []string) (*farmclient.ActionResult, error) {
	return c.Feed(ctx)
}

func collect(ctx context.Context, c farmclient.Client, _ []string) (*farmclient.ActionResult, error) {
	return c.CollectEggs(ctx)
}

func sellEggs(ctx context.Context, c farmclient.Client, _ []string) (*farmclient.ActionResult, error) {
	return c.SellEggs(ctx)
}

func upgrade(ctx context.Context, c farmclient.Client, args []string) (*farmclient.ActionResult, error) {
	return c.BuyUpgrade(ctx, models.UpgradeKind(args[0]))
}

func bury(ctx context.Context, c farmclient.Client, args []string) (*farmclient.ActionResult, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid chicken id %q: %w", args[0], err)
	}
	return c.ConfirmDeath(ctx, id)
}

func dismiss(ctx context.Context, c farmclient.Client, _ []string) (*farmclient.ActionResult, error) {
	return c.DismissFundsNotice(ctx)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	snap, err := farmclient.NewClient(apiURL).Farm(ctx)
	if err != nil {
		return err
	}
	printFarm(*snap)
	return nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	report, err := farmclient.NewClient(apiURL).Report(ctx)
	if err != nil {
		return err
	}
	fmt.Println(report)
	return nil
}

func describe(res *farmclient.ActionResult) {
	successColor := color.New(color.FgGreen, color.Bold)

	switch {
	case res.Chicken != nil:
		successColor.Printf("Welcome %s, a %s chicken!\n", res.Chicken.Name, res.Chicken.Type)
	case res.Refund > 0:
		successColor.Printf("Chicken sold for %d.\n", res.Refund)
	case res.Earned > 0:
		successColor.Printf("Eggs sold for %d.\n", res.Earned)
	case res.Removed:
		successColor.Println("Rest in peace.")
	}
}

func printFarm(snap models.FarmSnapshot) {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	titleColor.Printf("\n🐔 Flock %d/%d\n", len(snap.Chickens), snap.MaxChickens)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Name", "Breed", "Age", "Health", "Eggs"}),
	)
	for _, c := range snap.Chickens {
		table.Append([]string{
			c.ID.String(),
			c.Name,
			string(c.Type),
			fmt.Sprintf("%d", c.Age),
			fmt.Sprintf("%d", c.Health),
			fmt.Sprintf("%d", c.Productivity),
		})
	}
	table.Render()

	fmt.Printf("💰 Money: %d   🥚 Eggs: %d   🌟 Golden: %d\n", snap.Money, snap.EggsCollected, snap.GoldenEggsCollected)
	fmt.Printf("   Next chicken: %d   Food x%d (%d)   Egg value x%d (%d)   Capacity (%d)\n",
		snap.ChickenCost,
		snap.FoodEfficiency, snap.FoodUpgradeCost,
		snap.EggValueMultiplier, snap.EggValueUpgradeCost,
		snap.CapacityUpgradeCost)

	if snap.NotEnoughMoney {
		infoColor.Println("⚠ Not enough money. Run `farmctl dismiss` to clear.")
	}
	if snap.DeathNotice != nil {
		color.Red("☠ %s has died. Run `farmctl bury %s` to confirm.", snap.DeathNotice.Name, snap.DeathNotice.ChickenID)
	}
}
