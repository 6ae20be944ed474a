package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	veloxsearch "github.com/syssam/velox-search"
	"github.com/syssam/velox-search/condition/input"
	"github.com/syssam/velox-search/config"
	"github.com/syssam/velox-search/dialect"
	"github.com/syssam/velox-search/dialect/sql"
	"github.com/syssam/velox-search/orm"
	"github.com/syssam/velox-search/querylanguage"
)

// RenderOptions holds the flags of the render command.
type RenderOptions struct {
	Mapping   string
	Condition string
	Dialect   string
	DSN       string
	SQL       bool
	Watch     bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a search condition",
		Long: `Render a search condition file as a where-clause, or as SQL with --sql.

The dialect is taken from --dsn when given, then --dialect, then the mapping.
With --watch the condition is rendered again whenever the mapping or the
condition file changes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := rootOpts.Logger(cmd.ErrOrStderr())
			out := cmd.OutOrStdout()
			if !opts.Watch {
				return renderTo(cmd.Context(), out, opts, log)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return Watch(ctx, log, func() error {
				return renderTo(ctx, out, opts, log)
			}, opts.Mapping, opts.Condition)
		},
	}

	cmd.Flags().StringVarP(&opts.Mapping, "mapping", "m", "", "field mapping file (YAML)")
	cmd.Flags().StringVarP(&opts.Condition, "condition", "c", "", "search condition file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "dialect (postgres|mysql|sqlite3), overrides the mapping")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "database to take the dialect from, e.g. postgres://localhost/db or sqlite://file.db")
	cmd.Flags().BoolVar(&opts.SQL, "sql", false, "compile the clause into SQL")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "render again when an input file changes")
	_ = cmd.MarkFlagRequired("mapping")
	_ = cmd.MarkFlagRequired("condition")

	return cmd
}

func renderTo(ctx context.Context, w io.Writer, opts *RenderOptions, log *slog.Logger) error {
	out, err := Render(ctx, opts, log)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Render loads the mapping and the condition of opts and renders the
// condition.
func Render(ctx context.Context, opts *RenderOptions, log *slog.Logger) (string, error) {
	m, err := config.Load(opts.Mapping)
	if err != nil {
		return "", err
	}
	drv, err := openDriver(ctx, opts, m.Dialect)
	if err != nil {
		return "", err
	}
	defer drv.Close()

	stats := querylanguage.NewCompileStats(querylanguage.WithSlowCompileLog(log))
	defer func() { log.Debug("compile stats", "stats", stats.Snapshot().String()) }()
	em := querylanguage.NewEntityManager(drv, querylanguage.WithLogger(log), querylanguage.WithStats(stats))
	if err := orm.RegisterFunctions(querylanguage.SingleManager(em)); err != nil {
		return "", err
	}
	if err := m.RegisterMetadata(em); err != nil {
		return "", err
	}

	data, err := os.ReadFile(opts.Condition)
	if err != nil {
		return "", fmt.Errorf("cli: read condition file: %w", err)
	}
	cond, err := input.Process(m.BuildFieldSet(), data)
	if err != nil {
		return "", fmt.Errorf("cli: %s: %w", opts.Condition, err)
	}
	if cond.HasErrors(true) {
		return "", fmt.Errorf("cli: %s: %w", opts.Condition, veloxsearch.NewAggregateError(cond.Errors()...))
	}

	wb, err := orm.NewWhereBuilder(cond, em, orm.WithLogger(log))
	if err != nil {
		return "", err
	}
	if err := m.Apply(wb); err != nil {
		return "", err
	}
	if opts.SQL {
		return wb.GenerateSQL()
	}
	return wb.Generate()
}

// openDriver returns the session the clause is rendered for. Without a DSN
// it is a static driver of the flag or mapping dialect.
func openDriver(ctx context.Context, opts *RenderOptions, mappingDialect string) (dialect.Driver, error) {
	if opts.DSN == "" {
		name := mappingDialect
		if opts.Dialect != "" {
			name = opts.Dialect
		}
		if !dialect.Supported(name) {
			return nil, fmt.Errorf("cli: unsupported dialect %q", name)
		}
		return sql.Static(dialect.Normalize(name)), nil
	}
	driverName, source, err := splitDSN(opts.DSN)
	if err != nil {
		return nil, err
	}
	drv, err := sql.Open(driverName, source)
	if err != nil {
		return nil, err
	}
	if err := drv.Ping(ctx); err != nil {
		drv.Close()
		return nil, err
	}
	return drv, nil
}

// splitDSN maps a URL-style DSN onto a database/sql driver name and the
// data source that driver expects.
func splitDSN(dsn string) (driverName, source string, err error) {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", "", fmt.Errorf("cli: dsn %q has no scheme", dsn)
	}
	switch dialect.Normalize(scheme) {
	case dialect.Postgres:
		return "postgres", dsn, nil
	case dialect.MySQL:
		return "mysql", rest, nil
	case dialect.SQLite:
		return "sqlite", rest, nil
	default:
		return "", "", fmt.Errorf("cli: unsupported dsn scheme %q", scheme)
	}
}
