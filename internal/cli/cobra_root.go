package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ops-dashboard/internal/api"
	"ops-dashboard/internal/config"
	"ops-dashboard/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	loader   *config.Loader
	factory  APIFactory
	config   *config.Config
	app      *App
	closeAPI func() error
}

// NewRootCommand creates the root cobra command with global flags. The
// business API is built by factory once flags and configuration are loaded.
func NewRootCommand(loader *config.Loader, factory APIFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "ops",
		Short: "Manual ticket tracking and SLA reporting for the ops dashboard",
		Long: `ops records manual support tickets and reports the working time spent
on them, counting only business hours.

EXAMPLES:
  ops ticket add --service network --opened "2024-01-08 09:00"
  ops ticket close 12 --at "2024-01-08 11:30"
  ops ticket list --service network --open
  ops report --from 2024-01-01 --to 2024-01-31 --format csv > january.csv
  ops duration 2024-01-05T19:00:00 2024-01-08T09:00:00
  ops out-of-hours 2024-01-06T10:00:00
  ops serve --addr :8080

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > YAML file > defaults

  The YAML file is read from --config or OPS_CONFIG.

  Database:
    OPS_DB_DRIVER                  sqlite or postgres (default: sqlite)
    OPS_DB_DIR                     SQLite directory (default: ~/.ops-dashboard)
    OPS_DB_FILENAME                SQLite filename (default: ops.db)
    OPS_DB_POSTGRES_DSN            Postgres connection string
    OPS_DB_QUERY_TIMEOUT           Query timeout (default: 10s)
    OPS_DB_WRITE_TIMEOUT           Write timeout (default: 5s)

  Business hours:
    OPS_BH_TIMEZONE                IANA zone or Local (default: Local)
    OPS_BH_DAY_START               Working day start (default: 08:00)
    OPS_BH_DAY_END                 Working day end (default: 20:00)
    OPS_BH_WEEKEND                 Non-working days (default: sat,sun)
    OPS_BH_MAX_SPAN_DAYS           Longest computable interval (default: 3660)

  Server:
    OPS_SERVER_ADDR                Listen address (default: :8080)

  Application:
    OPS_APP_TIMEOUT                Command timeout (default: 60s)
    OPS_LOG_FORMAT                 console or json (default: console)
    OPS_DEBUG                      Enable debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.teardown()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command; cancelling ctx stops long running
// commands such as serve
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if err != nil {
		// PersistentPostRunE is skipped when RunE fails
		_ = r.teardown()
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML configuration file (overrides OPS_CONFIG)")

	// Database configuration
	flags.String("db-driver", "", "Ticket store driver: sqlite or postgres (overrides OPS_DB_DRIVER)")
	flags.String("db-dir", "", "SQLite database directory (overrides OPS_DB_DIR)")
	flags.String("db-filename", "", "SQLite database filename (overrides OPS_DB_FILENAME)")
	flags.String("db-postgres-dsn", "", "Postgres connection string (overrides OPS_DB_POSTGRES_DSN)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides OPS_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides OPS_DB_WRITE_TIMEOUT)")

	// Business hours configuration
	flags.String("timezone", "", "Business time zone (overrides OPS_BH_TIMEZONE)")
	flags.String("day-start", "", "Working day start, HH:MM (overrides OPS_BH_DAY_START)")
	flags.String("day-end", "", "Working day end, HH:MM (overrides OPS_BH_DAY_END)")
	flags.String("weekend", "", "Comma separated non-working days (overrides OPS_BH_WEEKEND)")

	// Display configuration
	flags.String("placeholder", "", "Text shown for missing values (overrides OPS_DISPLAY_PLACEHOLDER)")
	flags.String("time-format", "", "Time display format (overrides OPS_DISPLAY_TIME_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides OPS_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides OPS_APP_VERBOSE)")
	flags.String("log-format", "", "Log format: console or json (overrides OPS_LOG_FORMAT)")
}

// overridesFromFlags collects the persistent flags that were set explicitly
func (r *RootCommand) overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	o.ConfigFile = str("config")
	o.DBDriver = str("db-driver")
	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.DBPostgresDSN = str("db-postgres-dsn")
	o.DBQueryTimeout = dur("db-query-timeout")
	o.DBWriteTimeout = dur("db-write-timeout")
	o.Timezone = str("timezone")
	o.DayStart = str("day-start")
	o.DayEnd = str("day-end")
	o.Weekend = str("weekend")
	o.Placeholder = str("placeholder")
	o.TimeFormat = str("time-format")
	o.Timeout = dur("app-timeout")
	o.LogFormat = str("log-format")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		v := f.Value.String()
		o.ServerAddr = &v
	}

	return o
}

// setup loads configuration, installs the logger and builds the business API
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags(cmd.Flags()))
	if err != nil {
		return err
	}
	r.config = cfg

	logging.Setup(logging.New(cmd.ErrOrStderr(), cfg.Application.LogFormat, cfg.Application.Verbose))
	logging.Debugf("configuration loaded, driver %s", cfg.Database.Driver)

	businessAPI, closeAPI, err := r.factory(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	r.closeAPI = closeAPI
	r.app = NewApp(businessAPI, cfg).WithIO(cmd.InOrStdin(), cmd.OutOrStdout())
	return nil
}

func (r *RootCommand) teardown() error {
	if r.closeAPI == nil {
		return nil
	}
	closeAPI := r.closeAPI
	r.closeAPI = nil
	return closeAPI()
}

// commandContext bounds a command by the configured application timeout
func (r *RootCommand) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// addFilterFlags registers the ticket filter flags shared by list and report
func addFilterFlags(cmd *cobra.Command, params *api.FilterParams) {
	flags := cmd.Flags()
	flags.StringVar(&params.Service, "service", "", "Only tickets of this service")
	flags.StringVar(&params.Operator, "operator", "", "Only tickets handled by this operator")
	flags.StringVarP(&params.Text, "query", "q", "", "Case-insensitive text in description or customer")
	flags.StringVar(&params.From, "from", "", "Opened at or after: date, timestamp or shorthand like 7d")
	flags.StringVar(&params.To, "to", "", "Opened before: timestamp, or a date to include that whole day")
	flags.BoolVar(&params.OpenOnly, "open", false, "Only tickets that are still open")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.ticketCommand(),
		r.reportCommand(),
		r.durationCommand(),
		r.outOfHoursCommand(),
		r.serveCommand(),
	)
}

func (r *RootCommand) ticketCommand() *cobra.Command {
	ticketCmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage manual tickets",
	}

	// Add command
	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new ticket",
		Long: `Record a new manual ticket. Timestamps accept "2024-01-08T09:30:00",
"2024-01-08 09:30" or an RFC 3339 value with an offset. --opened defaults to now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewAddCommand(r.app).Execute(ctx, addOpts)
		},
	}
	addCmd.Flags().StringVar(&addOpts.Service, "service", "", "Service or queue the ticket belongs to (required)")
	addCmd.Flags().StringVar(&addOpts.Operator, "operator", "", "Operator handling the ticket")
	addCmd.Flags().StringVar(&addOpts.Customer, "customer", "", "Customer who raised the ticket")
	addCmd.Flags().StringVarP(&addOpts.Description, "description", "d", "", "Free text description")
	addCmd.Flags().StringVar(&addOpts.OpenedAt, "opened", "", "Opening time (default now)")
	addCmd.Flags().StringVar(&addOpts.ClosedAt, "closed", "", "Closing time, if already resolved")
	_ = addCmd.MarkFlagRequired("service")

	// List command
	var listParams api.FilterParams
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Long: `List tickets, oldest first, with how long ago each was opened.

Examples:
  ops ticket list
  ops ticket list --service network --open
  ops ticket list --from 7d -q "link down"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewListCommand(r.app).Execute(ctx, listParams)
		},
	}
	addFilterFlags(listCmd, &listParams)

	// Show command
	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a ticket and its working time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewShowCommand(r.app).Execute(ctx, args[0])
		},
	}

	// Close command
	var closeAt string
	closeCmd := &cobra.Command{
		Use:   "close ID",
		Short: "Close a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewCloseCommand(r.app).Execute(ctx, args[0], closeAt)
		},
	}
	closeCmd.Flags().StringVar(&closeAt, "at", "", "Closing time (default now)")

	// Reopen command
	reopenCmd := &cobra.Command{
		Use:   "reopen ID",
		Short: "Reopen a closed ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewReopenCommand(r.app).Execute(ctx, args[0])
		},
	}

	// Delete command
	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a ticket",
		Long:  "Delete a ticket. This operation cannot be undone; you are asked to confirm unless --yes is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// interactive confirmation may need longer
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout()*2)
			defer cancel()
			return NewDeleteCommand(r.app).Execute(ctx, args[0], yes)
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	ticketCmd.AddCommand(addCmd, listCmd, showCmd, closeCmd, reopenCmd, deleteCmd)
	return ticketCmd
}

func (r *RootCommand) reportCommand() *cobra.Command {
	var params api.FilterParams
	var format string

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "SLA report of working time per ticket",
		Long: `Report the working time of each matching ticket, counting business hours
only, with totals. Tickets still open or with unusable timestamps show the
placeholder instead of a duration.

Examples:
  ops report --service network --from 2024-01-01 --to 2024-01-31
  ops report --format csv > report.csv
  ops report --from 30d --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(cmd)
			defer cancel()
			return NewReportCommand(r.app).Execute(ctx, params, format)
		},
	}
	addFilterFlags(reportCmd, &params)
	reportCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, csv or json (overrides OPS_REPORT_DEFAULT_FORMAT)")
	return reportCmd
}

func (r *RootCommand) durationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duration START END",
		Short: "Working time between two timestamps",
		Long: `Print the working time between two timestamps as "1h 5m" or "45m".
The placeholder is printed when no working time can be computed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDurationCommand(r.app).Execute(args[0], args[1])
		},
	}
}

func (r *RootCommand) outOfHoursCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "out-of-hours TIMESTAMP",
		Short: "Whether a timestamp falls outside working hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewOutOfHoursCommand(r.app).Execute(args[0])
		},
	}
}

func (r *RootCommand) serveCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard HTTP API",
		Long:  "Serve the HTTP API until interrupted. In-flight requests are given the shutdown timeout to finish.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.app).Execute(cmd.Context())
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides OPS_SERVER_ADDR)")
	return serveCmd
}
