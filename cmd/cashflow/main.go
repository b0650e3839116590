// Command cashflow is the terminal front end: record transactions, check
// budgets and goals, and move data in and out of the store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"cashflow/internal/cli"
	"cashflow/internal/core"
	"cashflow/internal/currency"
	"cashflow/internal/log"
	"cashflow/internal/services"
)

const usage = `Usage: cashflow <command> [flags]

Commands:
  add       record a transaction
  list      list transactions
  summary   income/expense summary for a month or date range
  budget    set a budget or show the monthly budget status
  goal      manage savings goals
  import    import transactions from a CSV file
  export    export transactions to CSV
  template  print the CSV import template
  backup    write a full JSON backup to stdout
  restore   restore a JSON backup from a file
  user      manage the user slot
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// CLI output goes to stdout; keep log records out of the way.
	logger := log.New(log.Config{
		Component: log.ComponentCLI,
		Handler:   slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
	})
	log.SetDefault(logger)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)
	adapter := cli.OpenStore(logger, cfg)

	ctx := context.Background()
	svc := services.New(ctx, adapter, logger)
	defer svc.Close()

	if err := run(ctx, svc, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *services.Service, command string, args []string) error {
	switch command {
	case "add":
		return cmdAdd(ctx, svc, args)
	case "list":
		return cmdList(svc)
	case "summary":
		return cmdSummary(svc, args)
	case "budget":
		return cmdBudget(ctx, svc, args)
	case "goal":
		return cmdGoal(ctx, svc, args)
	case "import":
		return cmdImport(ctx, svc, args)
	case "export":
		return cmdExport(svc, args)
	case "template":
		fmt.Print(svc.Template())
		return nil
	case "backup":
		return cmdBackup(ctx, svc)
	case "restore":
		return cmdRestore(ctx, svc, args)
	case "user":
		return cmdUser(ctx, svc, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdAdd(ctx context.Context, svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(core.DateLayout), "transaction date (YYYY-MM-DD)")
	desc := fs.String("desc", "", "description")
	txType := fs.String("type", "expense", "income or expense")
	category := fs.String("category", "", "category")
	amount := fs.Float64("amount", 0, "amount in rupiah")
	fs.Parse(args)

	tx, err := svc.AddTransaction(ctx, core.Transaction{
		Date:        *date,
		Description: *desc,
		Type:        core.TransactionType(*txType),
		Category:    *category,
		Amount:      *amount,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %s %s %s (%s)\n", tx.Type, currency.FormatIDR(tx.Amount), tx.Description, tx.ID)
	return nil
}

func cmdList(svc *services.Service) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, tx := range svc.Transactions() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Type, tx.Category, currency.FormatIDR(tx.Amount), tx.Description)
	}
	return w.Flush()
}

func cmdSummary(svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	month := fs.String("month", core.MonthKey(time.Now()), "month key (YYYY-MM)")
	fs.Parse(args)

	sum, err := svc.MonthSummary(*month)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, *month, sum)
	return nil
}

func printSummary(w io.Writer, month string, sum core.Summary) {
	fmt.Fprintf(w, "Summary for %s\n", month)
	fmt.Fprintf(w, "  Income:   %s\n", currency.FormatIDR(sum.Income))
	fmt.Fprintf(w, "  Expenses: %s\n", currency.FormatIDR(sum.Expenses))
	fmt.Fprintf(w, "  Net:      %s (%d transactions)\n", currency.FormatIDR(sum.Net), len(sum.Transactions))
}

func cmdBudget(ctx context.Context, svc *services.Service, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cashflow budget <set|status> [flags]")
	}
	switch args[0] {
	case "set":
		fs := flag.NewFlagSet("budget set", flag.ExitOnError)
		category := fs.String("category", "", "expense category")
		limit := fs.Float64("limit", 0, "monthly limit in rupiah")
		month := fs.String("month", core.MonthKey(time.Now()), "month key (YYYY-MM)")
		fs.Parse(args[1:])

		b, err := svc.SetBudget(ctx, *category, *limit, *month)
		if err != nil {
			return err
		}
		fmt.Printf("Budget for %s in %s set to %s\n", b.Category, b.Month, currency.FormatIDR(b.MonthlyLimit))
		return nil
	case "status":
		fs := flag.NewFlagSet("budget status", flag.ExitOnError)
		month := fs.String("month", core.MonthKey(time.Now()), "month key (YYYY-MM)")
		fs.Parse(args[1:])

		overview, err := svc.BudgetStatus(*month)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tLIMIT\tSPENT\tREMAINING\tSTATUS")
		for _, row := range overview.Rows {
			status := ""
			switch {
			case row.IsOverBudget:
				status = "OVER BUDGET"
			case row.HasWarning:
				status = fmt.Sprintf("warning (%.0f%%)", row.Percentage)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				row.Category,
				currency.FormatIDRShort(row.Limit),
				currency.FormatIDRShort(row.Spent),
				currency.FormatIDRShort(row.Remaining),
				status)
		}
		fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\t\n",
			currency.FormatIDRShort(overview.Totals.Budget),
			currency.FormatIDRShort(overview.Totals.Spent),
			currency.FormatIDRShort(overview.Totals.Remaining))
		return w.Flush()
	default:
		return fmt.Errorf("unknown budget subcommand %q", args[0])
	}
}

func cmdGoal(ctx context.Context, svc *services.Service, args []string) error {
	if len(args) < 1 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPROGRESS\tTARGET\tDEADLINE\tSTATUS")
		for _, g := range svc.Goals() {
			status := fmt.Sprintf("%d days left", g.Status.DaysLeft)
			switch {
			case g.Status.IsCompleted:
				status = "completed"
			case g.Status.IsOverdue:
				status = fmt.Sprintf("%d days overdue", g.Status.DaysLeft)
			}
			fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%s\t%s\t%s\n",
				g.Goal.ID, g.Goal.Title, g.Status.Progress,
				currency.FormatIDRShort(g.Goal.TargetAmount), g.Goal.Deadline, status)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("Overall progress: %.1f%%\n", svc.OverallGoalProgress())
		return nil
	case "add":
		fs := flag.NewFlagSet("goal add", flag.ExitOnError)
		title := fs.String("title", "", "goal title")
		target := fs.Float64("target", 0, "target amount in rupiah")
		current := fs.Float64("current", 0, "amount already saved")
		deadline := fs.String("deadline", "", "deadline (YYYY-MM-DD)")
		category := fs.String("category", "Tabungan", "goal category")
		fs.Parse(args[1:])

		g, err := svc.AddGoal(ctx, core.FinancialGoal{
			Title:         *title,
			TargetAmount:  *target,
			CurrentAmount: *current,
			Deadline:      *deadline,
			Category:      *category,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Goal %q created (%s)\n", g.Title, g.ID)
		return nil
	case "progress":
		fs := flag.NewFlagSet("goal progress", flag.ExitOnError)
		id := fs.String("id", "", "goal id")
		amount := fs.Float64("amount", 0, "new saved amount")
		fs.Parse(args[1:])

		g, err := svc.UpdateGoalProgress(ctx, *id, *amount)
		if err != nil {
			return err
		}
		fmt.Printf("Goal %q now at %s of %s\n", g.Title,
			currency.FormatIDR(g.CurrentAmount), currency.FormatIDR(g.TargetAmount))
		return nil
	case "delete":
		fs := flag.NewFlagSet("goal delete", flag.ExitOnError)
		id := fs.String("id", "", "goal id")
		fs.Parse(args[1:])
		if err := svc.DeleteGoal(ctx, *id); err != nil {
			return err
		}
		fmt.Println("Goal deleted")
		return nil
	default:
		return fmt.Errorf("unknown goal subcommand %q", args[0])
	}
}

func cmdImport(ctx context.Context, svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV file to import")
	dryRun := fs.Bool("dry-run", false, "preview without committing")
	fs.Parse(args)

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	result := svc.PreviewImport(string(data))
	if result.HasErrors() {
		for _, msg := range result.Errors {
			fmt.Fprintln(os.Stderr, msg)
		}
		return fmt.Errorf("%d rows failed validation, nothing imported", len(result.Errors))
	}
	if *dryRun {
		fmt.Printf("%d rows valid, none imported (dry run)\n", len(result.Preview))
		return nil
	}
	n, err := svc.CommitImport(ctx, result)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d transactions\n", n)
	return nil
}

func cmdExport(svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	month := fs.String("month", core.MonthKey(time.Now()), "month key (YYYY-MM)")
	fs.Parse(args)

	start, end, err := core.MonthInterval(*month)
	if err != nil {
		return err
	}
	fmt.Print(svc.ExportCSV(start, end))
	return nil
}

func cmdBackup(ctx context.Context, svc *services.Service) error {
	raw, err := svc.Backup(ctx)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(raw)
	return err
}

func cmdRestore(ctx context.Context, svc *services.Service, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	file := fs.String("file", "", "backup JSON file")
	fs.Parse(args)

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	if err := svc.RestoreBackup(ctx, data); err != nil {
		return err
	}
	fmt.Println("Backup restored")
	return nil
}

func cmdUser(ctx context.Context, svc *services.Service, args []string) error {
	if len(args) < 1 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		user, ok := svc.CurrentUser(ctx)
		if !ok {
			fmt.Println("No user configured")
			return nil
		}
		fmt.Printf("%s (%s), created %s\n", user.Name, user.ID, user.CreatedAt.Format(core.DateLayout))
		return nil
	case "create":
		fs := flag.NewFlagSet("user create", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		fs.Parse(args[1:])

		user, err := svc.CreateUser(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Printf("User %s created (%s)\n", user.Name, user.ID)
		return nil
	case "delete":
		fs := flag.NewFlagSet("user delete", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		fs.Parse(args[1:])
		svc.DeleteUser(ctx, *id)
		fmt.Println("User deleted")
		return nil
	case "logout":
		svc.Logout(ctx)
		fmt.Println("Logged out")
		return nil
	default:
		return fmt.Errorf("unknown user subcommand %q", args[0])
	}
}
