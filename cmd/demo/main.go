package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/minibank/minibank/internal/bank"
	"github.com/minibank/minibank/internal/infrastructure/config"
	"github.com/minibank/minibank/internal/infrastructure/logger"
	"github.com/minibank/minibank/internal/infrastructure/metrics"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minibank",
		Short: "In-memory banking model",
		Long:  `A command line walkthrough of the minibank domain model: customers, savings and checking accounts, and the transaction ledger.`,
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the banking walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runDemo() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	reg := prometheus.NewRegistry()
	b := bank.New(log, metrics.New(reg))

	fmt.Println(">>> Registering Customers <<<")
	john, err := b.RegisterCustomer("John Doe", "john@example.com", "123-456-7890")
	if err != nil {
		return err
	}
	jane, err := b.RegisterCustomer("Jane Smith", "jane@example.com", "098-765-4321")
	if err != nil {
		return err
	}

	fmt.Println("\n>>> Opening Accounts <<<")
	johnSavings, err := b.OpenSavingsAccount(john.CustomerID(), john.Name(), decimal.NewFromInt(5000))
	if err != nil {
		return err
	}
	johnChecking, err := b.OpenCheckingAccount(john.CustomerID(), john.Name(), decimal.NewFromInt(2000))
	if err != nil {
		return err
	}
	janeSavings, err := b.OpenSavingsAccountWithRate(jane.CustomerID(), jane.Name(), decimal.NewFromInt(8000), decimal.NewFromFloat(0.05))
	if err != nil {
		return err
	}

	fmt.Println("\n>>> Moving Money <<<")
	if err := b.Deposit(john.CustomerID(), johnSavings.AccountID(), decimal.NewFromInt(1500)); err != nil {
		return err
	}
	if err := b.Withdraw(john.CustomerID(), johnSavings.AccountID(), decimal.NewFromInt(700)); err != nil {
		return err
	}
	johnSavings.IncrementWithdrawalCount()
	if err := b.Transfer(john.CustomerID(), johnSavings.AccountID(), jane.CustomerID(), janeSavings.AccountID(), decimal.NewFromInt(1000)); err != nil {
		return err
	}

	// Rejected operations: the accounts stay untouched.
	fmt.Println("\n>>> Rejected Operations <<<")
	if err := b.Deposit(john.CustomerID(), johnSavings.AccountID(), decimal.NewFromInt(-50)); err != nil {
		fmt.Println("  deposit rejected:", err)
	}
	if err := b.Withdraw(jane.CustomerID(), janeSavings.AccountID(), decimal.NewFromInt(50_000)); err != nil {
		fmt.Println("  withdrawal rejected:", err)
	}

	// Overdraft walkthrough on John's checking account.
	fmt.Println("\n>>> Overdraft <<<")
	if err := b.Withdraw(john.CustomerID(), johnChecking.AccountID(), decimal.NewFromInt(2200)); err != nil {
		return err
	}
	johnChecking.UpdateOverdraft()
	fmt.Printf("  overdraft used: $%s, available: $%s\n",
		johnChecking.OverdraftUsed().StringFixed(2),
		johnChecking.AvailableBalance().StringFixed(2))

	fmt.Printf("\n>>> Applying Interest (%d month(s)) <<<\n", cfg.DemoMonths)
	for i := 0; i < cfg.DemoMonths; i++ {
		b.ApplyMonthlyInterest()
	}

	fmt.Println("\n>>> Account Details <<<")
	fmt.Println(johnSavings.Details())
	fmt.Println(johnChecking.Details())
	fmt.Println(janeSavings.Details())

	fmt.Println("\n>>> Transaction History (John's savings) <<<")
	for _, tx := range johnSavings.TransactionHistory() {
		fmt.Println("  " + tx.Details())
	}

	fmt.Println("\n>>> Customer Summaries <<<")
	for _, customer := range b.Customers() {
		fmt.Println(customer.Summary())
	}
	fmt.Printf("\nTotal assets: $%s\n", b.TotalAssets().StringFixed(2))

	if cfg.DemoShowMetrics {
		if err := printMetrics(reg); err != nil {
			return err
		}
	}
	return nil
}

func printMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	fmt.Println("\n>>> Metrics <<<")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("  %s%s = %.0f\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Printf("  %s%s = count %d, sum %.2f\n", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
