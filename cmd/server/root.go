package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FreePeak/db-view-server/internal/config"
	"github.com/FreePeak/db-view-server/internal/delivery/rest"
	"github.com/FreePeak/db-view-server/internal/logger"
	"github.com/FreePeak/db-view-server/internal/repository"
	"github.com/FreePeak/db-view-server/internal/usecase"
	"github.com/FreePeak/db-view-server/pkg/core"
)

// options holds command line overrides of the loaded configuration
type options struct {
	port             int
	transport        string
	logLevel         string
	logFormat        string
	settingDir       string
	settingFile      string
	dbPropertiesFile string
	routePrefix      string
	templateDir      string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           core.Name(),
		Short:         "Resolve configured identifiers to views backed by SQL templates",
		Version:       core.Version(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		// Without a subcommand the configured transport decides what to run
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.EqualFold(opts.cfg.TransportMode, config.TransportStdio) {
				return runMCP(cmd.Context(), opts.cfg)
			}
			return runServe(cmd.Context(), opts.cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.IntVarP(&opts.port, "port", "p", 0, "HTTP server port (SERVER_PORT)")
	flags.StringVarP(&opts.transport, "transport", "t", "", "Transport mode when no command is given: http or stdio (TRANSPORT_MODE)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json (LOG_FORMAT)")
	flags.StringVar(&opts.settingDir, "setting-dir", "", "Directory holding the configuration files (SETTING_DIR)")
	flags.StringVar(&opts.settingFile, "setting-file", "", "Configuration document, .xml, .yaml or .hcl (SETTING_FILE)")
	flags.StringVar(&opts.dbPropertiesFile, "db-properties", "", "Connection properties file (DB_PROPERTIES_FILE)")
	flags.StringVar(&opts.routePrefix, "prefix", "", "HTTP route prefix (ROUTE_PREFIX)")
	flags.StringVar(&opts.templateDir, "template-dir", "", "HTML template directory; JSON responses when empty (TEMPLATE_DIR)")

	root.AddCommand(newServeCmd(opts), newMCPCmd(opts), newResolveCmd(opts))
	return root
}

// load reads the configuration, applies flag overrides and sets up logging
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.ServerPort = o.port
	}
	if flags.Changed("transport") {
		cfg.TransportMode = o.transport
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("setting-dir") {
		cfg.SettingDir = o.settingDir
	}
	if flags.Changed("setting-file") {
		cfg.SettingFile = o.settingFile
	}
	if flags.Changed("db-properties") {
		cfg.DBPropertiesFile = o.dbPropertiesFile
	}
	if flags.Changed("prefix") {
		cfg.RoutePrefix = o.routePrefix
	}
	if flags.Changed("template-dir") {
		cfg.TemplateDir = o.templateDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Initialize(cfg.LogLevel, cfg.LogFormat)
	o.cfg = cfg
	return nil
}

// newResolver wires the resolver to the filesystem and database repositories
func newResolver(cfg *config.Config) *usecase.ResolverUseCase {
	return usecase.NewResolverUseCase(usecase.Settings{
		SettingFile:       cfg.SettingPath(),
		DBPropertiesFile:  cfg.DBPropertiesPath(),
		DefaultIdentifier: cfg.DefaultIdentifier,
	}, repository.NewConfigRepository(), repository.NewFileRepository(), repository.NewSQLRepository())
}

// newRenderer picks the HTML template renderer when a template directory is set
func newRenderer(cfg *config.Config) rest.Renderer {
	if cfg.TemplateDir != "" {
		return rest.NewTemplateRenderer(cfg.TemplateDir)
	}
	return rest.NewJSONRenderer()
}
