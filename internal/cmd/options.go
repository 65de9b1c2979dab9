package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gravitrone/pagelist/internal/api"
	"github.com/gravitrone/pagelist/internal/config"
	"github.com/gravitrone/pagelist/internal/dataset"
	"github.com/gravitrone/pagelist/internal/list"
	"github.com/gravitrone/pagelist/internal/logging"
)

// EnvAPIKey overrides the api_key of the config file.
const EnvAPIKey = "PAGELIST_API_KEY"

// Options holds the flags shared by every command. Flags only override the config file
// when they were set explicitly.
type Options struct {
	ConfigPath   string
	DataFile     string
	BaseURL      string
	Endpoint     string
	PageSize     int
	ServerSearch bool
	SearchType   string
	Single       bool
	SortOn       string
	SortDir      string
	LogFile      string
	LogLevel     string
}

// Bind registers the shared flags on cmd as persistent flags.
func (o *Options) Bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.ConfigPath, "config", "", "config file (default ~/.pagelist/config)")
	f.StringVar(&o.DataFile, "data", "", "static items file (.yaml, .json or .toml)")
	f.StringVar(&o.BaseURL, "url", "", "API base URL")
	f.StringVar(&o.Endpoint, "endpoint", "", "item listing path")
	f.IntVar(&o.PageSize, "page-size", list.DefaultPageSize, "items per page")
	f.BoolVar(&o.ServerSearch, "server-search", false, "send search text to the server")
	f.StringVar(&o.SearchType, "search-type", "", "client match mode: contains, startsWith or endsWith")
	f.BoolVar(&o.Single, "single", false, "allow only one selected item")
	f.StringVar(&o.SortOn, "sort-on", "", "field to sort by")
	f.StringVar(&o.SortDir, "sort-dir", "", "sort direction: asc or desc")
	f.StringVar(&o.LogFile, "log-file", "", "write debug logs to this file")
	f.StringVar(&o.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

// configPath returns the config file in use.
func (o *Options) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return config.Path()
}

// apply copies explicitly set flags over cfg.
func (o *Options) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("data") {
		cfg.List.DataFile = o.DataFile
	}
	if changed("url") {
		cfg.BaseURL = o.BaseURL
	}
	if changed("endpoint") {
		cfg.Endpoint = o.Endpoint
	}
	if changed("page-size") {
		cfg.List.PageSize = o.PageSize
	}
	if changed("server-search") {
		cfg.List.SearchAtServer = o.ServerSearch
	}
	if changed("search-type") {
		cfg.List.SearchType = o.SearchType
	}
	if changed("single") {
		cfg.List.SingleSelect = o.Single
	}
	if changed("sort-on") {
		cfg.List.SortOn = o.SortOn
	}
	if changed("sort-dir") {
		cfg.List.SortDirection = o.SortDir
	}
	if changed("log-file") {
		cfg.LogFile = o.LogFile
	}
	if changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
}

// Session is a resolved config with its logger and item source.
type Session struct {
	Config *config.Config
	Log    zerolog.Logger
	Client *api.Client
	List   list.Config

	title  string
	closer io.Closer
}

// Open loads the config, applies the flags of cmd and prepares the item source. A data
// file wins over the HTTP API.
func (o *Options) Open(cmd *cobra.Command) (*Session, error) {
	cfg, err := config.LoadOrDefault(o.configPath())
	if err != nil {
		return nil, err
	}
	o.apply(cmd, cfg)

	log, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	s := &Session{Config: cfg, Log: log, closer: closer}
	s.List = cfg.List.Resolve(log)
	s.List.Logger = &s.Log

	if path := cfg.List.DataFile; path != "" {
		items, err := dataset.LoadFile(path)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		s.List.Data = items
		s.title = filepath.Base(path)
		log.Info().Str("data_file", path).Int("items", len(items)).Msg("static data loaded")
		return s, nil
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = api.DefaultEndpoint
	}
	s.Client = api.NewClient(baseURL, cfg.APIKey, cfg.Timeout()).WithLogger(log)
	s.List.Fetcher = s.Client.Fetcher(endpoint)
	s.title = endpoint
	log.Info().Str("base_url", s.Client.BaseURL()).Str("endpoint", endpoint).Msg("remote source configured")
	return s, nil
}

// Title names the item source.
func (s *Session) Title() string {
	return s.title
}

// Controller builds a list controller for the session.
func (s *Session) Controller() *list.Controller {
	return list.New(s.List)
}

// Close flushes the log file.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Root builds the root command with the shared flags and every subcommand. The caller
// sets RunE.
func Root(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "pagelist",
		Short: "pagelist - browse and pick from paged lists",
		Long: "pagelist loads items page by page from an HTTP API or a data file, " +
			"lets you search, sort and select them, and prints the chosen keys on exit.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.Bind(root)
	root.AddCommand(DumpCmd(opts))
	root.AddCommand(ConfigCmd(opts))
	return root
}
