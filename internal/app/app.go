package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/gutendex"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/metrics"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/ui"
)

// Options configure a folio run. Pointer fields are command-line overrides;
// nil leaves the config or prefs value in place.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/folio/prefs.toml
	Query      string
	Language   *string
	Once       bool
	LogFile    *string
	LogLevel   *string
	Metrics    *string
	Stdout     io.Writer // headless output; nil means os.Stdout
}

// Run boots folio until the user quits or ctx is cancelled. With Once set it
// performs a single fetch, prints the listing and returns.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	closer, err := logging.Setup(logging.Options{
		Path:   cfg.LogFile,
		Level:  cfg.LogLevel,
		Stderr: opts.Once,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	client, err := gutendex.NewClient(gutendex.Options{
		BaseURL:   cfg.APIURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		CacheTTL:  cfg.CacheTTL,
		CacheSize: cfg.CacheSize,
	})
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	filter := initialFilter(opts, userPrefs)
	logrus.WithFields(logrus.Fields{
		"api_url":  client.BaseURL(),
		"query":    filter.Query,
		"language": filter.Language,
		"once":     opts.Once,
	}).Info("folio starting")

	if opts.Once {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return RunOnce(ctx, client, filter, out)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		addr := cfg.MetricsAddr
		g.Go(func() error {
			if err := metrics.Serve(gctx, addr); err != nil {
				return fmt.Errorf("serve metrics on %s: %w", addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		return ui.Run(ui.Options{
			Context:        gctx,
			Fetcher:        client,
			Filter:         filter,
			Languages:      withLanguage(cfg.Languages, filter.Language),
			SearchDebounce: cfg.SearchDebounce,
			ThemeName:      userPrefs.Theme,
			PrefsPath:      prefsPath,
			LogPath:        cfg.LogFile,
		})
	})

	return g.Wait()
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.LogFile != nil {
		path := strings.TrimSpace(*opts.LogFile)
		if path != "" {
			expanded, err := config.ExpandPath(path)
			if err != nil {
				return fmt.Errorf("resolve log file: %w", err)
			}
			path = expanded
		}
		cfg.LogFile = path
	}
	if opts.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*opts.LogLevel)
	}
	if opts.Metrics != nil {
		cfg.MetricsAddr = strings.TrimSpace(*opts.Metrics)
	}
	return nil
}

// initialFilter combines the command line with the remembered language.
func initialFilter(opts Options, p prefs.Prefs) state.Filter {
	lang := p.Language
	if opts.Language != nil {
		lang = strings.ToLower(*opts.Language)
	}
	if lang == "any" {
		lang = ""
	}
	return state.NewFilter(opts.Query, lang)
}

// withLanguage makes sure the active language is selectable.
func withLanguage(options []string, lang string) []string {
	for _, code := range options {
		if code == lang {
			return options
		}
	}
	return append(append([]string(nil), options...), lang)
}
