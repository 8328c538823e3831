package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tikhub/api/catalog"
	"github.com/s0up4200/tikhub/api/health"
	"github.com/s0up4200/tikhub/api/tikhub"
	"github.com/s0up4200/tikhub/client"
)

var (
	usageDate      string
	priceRequests  int
	healthNoAuth   bool
	accountTimeout time.Duration
)

// accountCmd groups the account commands
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect the account behind the configured token",
}

var accountInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show API key and user details",
	Args:  cobra.NoArgs,
	RunE:  runAccountInfo,
}

var accountUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show request usage for a day",
	Args:  cobra.NoArgs,
	RunE:  runAccountUsage,
}

var accountPriceCmd = &cobra.Command{
	Use:   "price <name|path>",
	Short: "Estimate the daily cost of calling an endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountPrice,
}

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the TikHub API is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(healthCmd)
	accountCmd.AddCommand(accountInfoCmd, accountUsageCmd, accountPriceCmd)

	accountCmd.PersistentFlags().DurationVar(&accountTimeout, "timeout", 0, "overall deadline for the request (0 uses the client timeout)")
	accountUsageCmd.Flags().StringVar(&usageDate, "date", "", "day to report as YYYY-MM-DD (default today)")
	accountPriceCmd.Flags().IntVar(&priceRequests, "requests", 1000, "requests per day")
	healthCmd.Flags().BoolVar(&healthNoAuth, "no-auth", false, "do not send the token")
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if accountTimeout > 0 {
		return context.WithTimeout(ctx, accountTimeout)
	}
	return context.WithCancel(ctx)
}

func runAccountInfo(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	c, err := newAPIClient()
	if err != nil {
		return err
	}

	info, err := tikhub.FetchUserInfo(ctx, c)
	if err != nil {
		return err
	}

	key := info.APIKey
	fmt.Printf("API key:  %s\n", key.Name)
	fmt.Printf("Status:   %s\n", key.Status)
	fmt.Printf("Scopes:   %s\n", strings.Join(key.Scopes, ", "))
	fmt.Printf("Created:  %s\n", key.CreatedAt.Format(time.RFC3339))
	if exp, ok := key.ExpiresAt.Get(); ok {
		fmt.Printf("Expires:  %s\n", exp.Format(time.RFC3339))
	} else {
		fmt.Println("Expires:  never")
	}
	if key.Expired(time.Now()) {
		logger.Warn().Str("key", key.Name).Msg("API key has expired")
	}

	if email, ok := info.User["email"].(string); ok {
		fmt.Printf("User:     %s\n", email)
	}
	if balance, ok := info.User["balance"]; ok {
		fmt.Printf("Balance:  %v\n", balance)
	}
	return nil
}

func runAccountUsage(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if usageDate != "" {
		if _, err := time.Parse(time.DateOnly, usageDate); err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", usageDate)
		}
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}

	usage, err := tikhub.FetchDailyUsage(ctx, c, usageDate)
	if err != nil {
		return err
	}

	fmt.Printf("Date:     %s\n", usage.Date.Format(time.DateOnly))
	fmt.Printf("Requests: %d (paid %d, free %d)\n", usage.RequestCount, usage.PaidRequestCount, usage.FreeRequestCount)
	if cost, ok := usage.Cost.Get(); ok {
		fmt.Printf("Cost:     $%.4f\n", cost)
	}
	return nil
}

func runAccountPrice(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if priceRequests <= 0 {
		return fmt.Errorf("--requests must be positive")
	}

	endpoint := args[0]
	if d, ok := catalog.Lookup(endpoint); ok {
		endpoint = d.Path
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}

	price, err := tikhub.FetchPrice(ctx, c, endpoint, priceRequests)
	if err != nil {
		return err
	}

	fmt.Printf("%s x %d/day: $%.4f\n", price.Endpoint, price.RequestPerDay, price.TotalCost)
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		c   *client.Client
		err error
	)
	if healthNoAuth || cfg.RequireToken() != nil {
		c, err = client.NewClient(cfg.TikHub.BaseURL, logger, cfg.ClientOptions()...)
	} else {
		c, err = newAPIClient()
	}
	if err != nil {
		return err
	}

	status, err := c.Ping(ctx)
	if err != nil {
		return err
	}
	logger.Debug().Str("url", c.BaseURL()).Int("status", status).Msg("Host reachable")

	start := time.Now()
	ok, err := health.Healthy(ctx, c)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s is unhealthy", c.BaseURL())
	}

	logger.Info().
		Str("url", c.BaseURL()).
		Dur("latency", time.Since(start)).
		Msg("TikHub API is healthy")
	return nil
}
