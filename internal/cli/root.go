// Package cli implements the studio command line.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lithiumheat/studio"
	"github.com/lithiumheat/studio/credential"
	"github.com/lithiumheat/studio/internal/config"
	"github.com/lithiumheat/studio/provider/gemini"
	"github.com/lithiumheat/studio/session"
)

type globalOptions struct {
	envFiles  []string
	outputDir string
	baseURL   string
	selectKey bool
	verbose   bool
}

// app holds what the subcommands share once flags and config are resolved.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	gen     *gemini.Generator
	svc     *session.Service
	storage studio.Storage

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the command tree. Prompts read from in; results go
// to out; logs and prompts go to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &globalOptions{}
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "studio",
		Short:         "E-commerce product image studio",
		Long:          "Generate marketing image suites and restore product photos with Gemini image models.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load (default .env, .env.local)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for saved images and exports (default $STUDIO_OUTPUT_DIR)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Gemini API base URL override")
	flags.BoolVar(&opts.selectKey, "select-key", false, "prompt for an API key instead of relying on GEMINI_API_KEY alone")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newSuiteCommand(a),
		newRestoreCommand(a),
		newSuggestCommand(a),
		newModelsCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := config.Load(opts.envFiles...)
	if err != nil {
		return err
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	a.gen = gemini.New(&studio.ProviderConfig{
		Provider:   studio.ProviderGeminiAPI,
		BaseURL:    cfg.BaseURL,
		ImageModel: cfg.ImageModel,
		TextModel:  cfg.TextModel,
	})

	var selector credential.Selector
	if opts.selectKey {
		selector = credential.NewTerminalSelector(a.in, a.errOut, cfg.APIKey)
	}
	creds := credential.NewProvider(selector, cfg.APIKey, credential.WithLogger(a.logger))

	orch := studio.NewOrchestrator(a.gen, creds,
		studio.WithLogger(a.logger),
		studio.WithSuggester(a.gen),
	)
	a.svc = session.NewService(orch, session.NewStore(cfg.SessionTTL), session.WithLogger(a.logger))
	a.storage = &studio.DirStorage{Root: cfg.OutputDir}

	a.logger.Debug("configuration loaded",
		"output_dir", cfg.OutputDir,
		"select_key", opts.selectKey,
		"has_api_key", cfg.APIKey != "",
	)
	return nil
}

// Execute runs the studio command line and returns its error.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	root := NewRootCommand(in, out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
