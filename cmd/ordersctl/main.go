// Command ordersctl inspects and repairs the order stores from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"storefront-checkout/internal/app"
	"storefront-checkout/internal/core/config"
	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/orders/ports"

	"github.com/olekukonko/tablewriter"
)

const usage = `usage: ordersctl <command> [flags]

commands:
  list    [-status s] [-search q]   list orders from the admin view
  stats                             print management statistics
  sync                              reconcile the customer and admin stores
  export  [-o file]                 write every order as JSON
  import  -f file                   replace the admin store with a JSON export
  reset   -yes                      delete every order from both stores
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := checkDriver(cfg.Storage); err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer a.Close()

	if err := run(context.Background(), a.Management, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

// checkDriver rejects the embedded store: its snapshot belongs to the api process
// and a second writer would overwrite it.
func checkDriver(cfg config.StorageConfig) error {
	if cfg.Driver == config.DriverEmbedded {
		return fmt.Errorf("ordersctl needs a shared store; set STORAGE_DRIVER to %q or %q", config.DriverRedis, config.DriverPostgres)
	}
	return nil
}

func run(ctx context.Context, svc ports.ManagementService, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "list":
		return runList(ctx, svc, args, out)
	case "stats":
		return runStats(ctx, svc, out)
	case "sync":
		report, err := svc.Sync(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "copied to customer: %d\ncopied to admin: %d\nrefreshed: %d\n",
			len(report.CopiedToCustomer), len(report.CopiedToAdmin), len(report.Refreshed))
		return nil
	case "export":
		return runExport(ctx, svc, args, out)
	case "import":
		return runImport(ctx, svc, args, out)
	case "reset":
		fs := flag.NewFlagSet("reset", flag.ContinueOnError)
		yes := fs.Bool("yes", false, "confirm deleting every order")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if !*yes {
			return fmt.Errorf("refusing to delete orders without -yes")
		}
		if err := svc.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "orders cleared")
		return nil
	}
	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func runList(ctx context.Context, svc ports.ManagementService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	status := fs.String("status", "", "only orders in this status")
	search := fs.String("search", "", "match id, customer name or email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := domain.Filters{Search: *search}
	if *status != "" {
		s, err := domain.ParseStatus(*status)
		if err != nil {
			return err
		}
		f.Status = s
	}

	orders, err := svc.List(ctx, f)
	if err != nil {
		return err
	}
	return renderOrders(out, orders)
}

func renderOrders(out io.Writer, orders []domain.Order) error {
	table := tablewriter.NewWriter(out)
	table.Header("ID", "Created", "Customer", "Items", "Payment", "Shipping", "Total", "Status")
	for _, o := range orders {
		if err := table.Append(
			o.ID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.Customer.Email,
			strconv.Itoa(len(o.Items)),
			string(o.Payment.Method),
			string(o.Shipping.Method),
			o.Total.StringFixed(2),
			string(o.Status),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func runStats(ctx context.Context, svc ports.ManagementService, out io.Writer) error {
	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Total orders", strconv.Itoa(stats.TotalOrders)},
		{"Revenue", stats.TotalRevenue.StringFixed(2)},
		{"Average order", stats.AverageOrderValue.StringFixed(2)},
		{"Pending", strconv.Itoa(stats.PendingOrders)},
		{"Needing action", strconv.Itoa(stats.OrdersNeedingAction)},
	}
	for _, s := range domain.AllStatuses {
		rows = append(rows, []string{"Status " + string(s), strconv.Itoa(stats.OrdersByStatus[s])})
	}
	for _, r := range rows {
		if err := table.Append(r[0], r[1]); err != nil {
			return err
		}
	}
	return table.Render()
}

func runExport(ctx context.Context, svc ports.ManagementService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	path := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := svc.Export(ctx)
	if err != nil {
		return err
	}
	if *path == "" {
		_, err = out.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(*path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(out, "exported to %s\n", *path)
	return nil
}

func runImport(ctx context.Context, svc ports.ManagementService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	path := fs.String("f", "", "JSON export to import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*path) == "" {
		return fmt.Errorf("-f is required")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	n, err := svc.Import(ctx, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d orders\n", n)
	return nil
}
