// Command pizzacost runs price-list imports, recipe quotes and price sheet
// exports against the configured database.
//
// Usage:
//
//	pizzacost import --owner chef@example.com prices.csv
//	pizzacost recipes
//	pizzacost quote --recipe 3
//	pizzacost export --out prices.xlsx
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"pizzacost/internal/config"
	"pizzacost/internal/costing"
	"pizzacost/internal/db"
	"pizzacost/internal/db/mock"
	"pizzacost/internal/export"
	applog "pizzacost/internal/log"
	"pizzacost/internal/money"
	"pizzacost/internal/pricelist"
	"pizzacost/internal/store"
	"pizzacost/models"
)

var (
	version = "dev"

	loadConfigFunc   = config.Load
	openDatabaseFunc = openDatabase
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pizzacost: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "pizzacost",
		Usage:   "Pizzeria costing from the command line",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "owner",
				Usage:   "Email of the account to work on (defaults to the oldest account)",
				EnvVars: []string{"PIZZACOST_OWNER_EMAIL"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			return applog.SetLevel(c.String("log-level"))
		},
		Commands: []*cli.Command{
			importCommand(),
			recipesCommand(),
			quoteCommand(),
			exportCommand(),
		},
	}
}

// session is what every command needs: a database, the owner it acts for and
// the configured currency.
type session struct {
	db        *gorm.DB
	owner     *models.User
	formatter money.Formatter
}

func openSession(c *cli.Context) (*session, error) {
	ctx := c.Context
	cfg, err := loadConfigFunc()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	formatter, err := money.NewFormatter(cfg.Pricing.Currency, cfg.Pricing.Locale)
	if err != nil {
		return nil, fmt.Errorf("pricing display: %w", err)
	}
	database, err := openDatabaseFunc(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	owner, err := store.ResolveOwner(ctx, database, c.String("owner"))
	if err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}
	applog.Debug(ctx, "cli session opened", "owner", owner.Email)
	return &session{db: database, owner: owner, formatter: formatter}, nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.UseMock {
		return mock.New(ctx)
	}
	return db.Configure(cfg)
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Upsert ingredients from a CSV, XLSX or PDF supplier price list",
		ArgsUsage: "<file>",
		Action:    runImport,
	}
}

func runImport(c *cli.Context) error {
	path := strings.TrimSpace(c.Args().First())
	if path == "" {
		return errors.New("import needs a price list file")
	}
	format, err := pricelist.DetectFormat(path, "")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	result, err := pricelist.Parse(format, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	summary, err := pricelist.Apply(c.Context, s.db, s.owner.ID, result)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%d created, %d updated, %d skipped\n", summary.Created, summary.Updated, len(summary.Skipped))
	for _, skipped := range summary.Skipped {
		fmt.Fprintf(out, "  line %d: %s (%v)\n", skipped.Line, skipped.Text, skipped.Err)
	}
	return nil
}

func recipesCommand() *cli.Command {
	return &cli.Command{
		Name:  "recipes",
		Usage: "List recipes with their large size suggested price",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Filter by name"},
		},
		Action: runRecipes,
	}
}

func runRecipes(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	recipes, err := store.ListRecipes(c.Context, s.db, s.owner.ID, c.String("query"))
	if err != nil {
		return err
	}
	catalog, err := store.LoadCatalog(c.Context, s.db, s.owner.ID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECIPE\tG PRICE")
	for i := range recipes {
		price := "—"
		if sheet, ok := recipes[i].Recompute(catalog).For(costing.SizeLarge); ok {
			price = s.formatter.Format(sheet.SuggestedPrice)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", recipes[i].ID, recipes[i].Name, price)
	}
	return tw.Flush()
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Print the cost sheet of every size of a recipe",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "recipe", Aliases: []string{"r"}, Usage: "Recipe id", Required: true},
		},
		Action: runQuote,
	}
}

func runQuote(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	recipe, result, err := store.Quote(c.Context, s.db, s.owner.ID, c.Uint("recipe"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("recipe %d not found", c.Uint("recipe"))
	}
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%s (margin %s%%)\n", recipe.Name, s.formatter.Number(recipe.MarginPct))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "SIZE\tINGREDIENTS\tPACKAGING\tOVERHEAD\tTOTAL\tSUGGESTED\t")
	for _, sheet := range result.Sizes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			sheet.Size,
			s.formatter.Format(sheet.IngredientCost),
			s.formatter.Format(sheet.Packaging),
			s.formatter.Format(sheet.Overhead),
			s.formatter.Format(sheet.TotalCost),
			s.formatter.Format(sheet.SuggestedPrice),
		)
	}
	return tw.Flush()
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the price sheet of every recipe and size to an XLSX file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "pizzacost-prices.xlsx", Usage: "Output file"},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	recipes, err := store.ListRecipes(c.Context, s.db, s.owner.ID, "")
	if err != nil {
		return err
	}
	catalog, err := store.LoadCatalog(c.Context, s.db, s.owner.ID)
	if err != nil {
		return err
	}

	path := c.String("out")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.Write(file, recipes, catalog, s.formatter.Code()); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %d recipes to %s\n", len(recipes), path)
	return nil
}
