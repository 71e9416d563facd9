package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"khata/internal/account"
	"khata/internal/amqp"
	"khata/internal/backend"
	"khata/internal/cli"
	"khata/internal/config"
	"khata/internal/core"
	"khata/internal/ledgertest"
	"khata/internal/report"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: khata <command> [flags]

Commands:
  open     -holder NAME -amount N     open an account with an opening balance
  credit   -holder NAME -amount N -category C [-desc D] [-mode M]
  debit    -holder NAME -amount N -category C [-desc D] [-mode M]
  balance  -holder NAME               print the running balance
  report   -holder NAME               print and write the periodic reports
  seed     -holder NAME -years N      append synthetic ledger data`)
	os.Exit(2)
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if len(os.Args) < 2 {
		usage()
	}
	command, args := os.Args[1], os.Args[2:]

	ctx := context.Background()
	var err error
	switch command {
	case "open":
		err = runOpen(ctx, cfg, logger, args)
	case "credit":
		err = runTransact(ctx, cfg, logger, args, true)
	case "debit":
		err = runTransact(ctx, cfg, logger, args, false)
	case "balance":
		err = runBalance(ctx, cfg, logger, args)
	case "report":
		err = runReport(ctx, cfg, logger, args)
	case "seed":
		err = runSeed(ctx, cfg, logger, args)
	default:
		usage()
	}
	if err != nil {
		logger.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

type session struct {
	account *account.Account
	dir     string
	cleanup []func() error
}

func (s *session) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		_ = s.cleanup[i]()
	}
}

// openSession wires the configured store backend and the optional AMQP
// publisher for one account.
func openSession(cfg *config.Config, logger *slog.Logger, holder string) (*session, error) {
	if holder == "" {
		return nil, fmt.Errorf("missing -holder")
	}

	factory := backend.NewFactory(logger)
	res, err := factory.Open(backend.Config{
		Type:         backend.Type(cfg.Backend),
		DataDir:      cfg.DataDir,
		Account:      account.Normalize(holder),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		return nil, err
	}

	s := &session{dir: res.Dir}
	if res.Cleanup != nil {
		s.cleanup = append(s.cleanup, res.Cleanup)
	}

	var pub account.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Mirroring is best-effort; the ledger works without it.
			logger.Warn("Failed to initialize AMQP client, continuing without mirroring", "error", err)
		} else {
			pub = client
			s.cleanup = append(s.cleanup, client.Close)
		}
	}

	s.account = account.New(holder, res.Store, pub, logger)
	return s, nil
}

func runOpen(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	holder := fs.String("holder", "", "account holder's full name")
	amount := fs.String("amount", "", "opening balance")
	fs.Parse(args)

	opening, err := core.ParseMoney(*amount)
	if err != nil {
		return fmt.Errorf("opening amount %q: %w", *amount, err)
	}

	s, err := openSession(cfg, logger, *holder)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.account.Open(ctx, opening); err != nil {
		return err
	}
	fmt.Printf("Account %s opened with balance %s\n", s.account.Name(), opening)
	return nil
}

func runTransact(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, credit bool) error {
	name := "debit"
	if credit {
		name = "credit"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	holder := fs.String("holder", "", "account holder's full name")
	amount := fs.String("amount", "", "transaction amount")
	category := fs.String("category", "", "transaction category")
	desc := fs.String("desc", "", "transaction description")
	mode := fs.String("mode", "UPI", "mode of payment")
	fs.Parse(args)

	m, err := core.ParseMoney(*amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", *amount, err)
	}
	if *category == "" {
		return fmt.Errorf("missing -category")
	}

	s, err := openSession(cfg, logger, *holder)
	if err != nil {
		return err
	}
	defer s.close()

	res, err := s.account.Transact(ctx, m, *category, *desc, *mode, credit)
	if err != nil {
		return err
	}
	fmt.Println(res.Status)
	if res.Committed {
		fmt.Printf("Balance: %s\n", res.Balance)
	}
	return nil
}

func runBalance(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	holder := fs.String("holder", "", "account holder's full name")
	fs.Parse(args)

	s, err := openSession(cfg, logger, *holder)
	if err != nil {
		return err
	}
	defer s.close()

	balance, err := s.account.Balance(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Balance: %s\n", balance)
	return nil
}

func runReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	holder := fs.String("holder", "", "account holder's full name")
	mode := fs.String("mode", cfg.ReportMode, "aggregation mode: balance or delta")
	fs.Parse(args)

	reportMode := report.Mode(*mode)
	if !reportMode.Valid() {
		return fmt.Errorf("invalid report mode %q", *mode)
	}

	s, err := openSession(cfg, logger, *holder)
	if err != nil {
		return err
	}
	defer s.close()

	return s.account.GenerateReports(ctx, s.dir, reportMode, os.Stdout)
}

func runSeed(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	holder := fs.String("holder", "", "account holder's full name")
	years := fs.Int("years", 2, "years of synthetic history")
	fs.Parse(args)

	if *years < 1 {
		return fmt.Errorf("-years must be at least 1")
	}

	s, err := openSession(cfg, logger, *holder)
	if err != nil {
		return err
	}
	defer s.close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	records := ledgertest.Generate(*years, core.Today(), rng)
	if err := ledgertest.Seed(ctx, s.account.Store(), records); err != nil {
		return err
	}
	fmt.Printf("Seeded %d records for %s\n", len(records), s.account.Name())
	return nil
}
