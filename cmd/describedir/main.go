package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"describedir/internal/config"
	"describedir/internal/describe"
	"describedir/internal/llm"
	"describedir/internal/scan"
	"describedir/internal/schema"
)

var (
	// Root command flags
	outputPath      string
	modelName       string
	providerName    string
	ignorePatterns  []string
	noDefaultIgnore bool
	maxFileSize     int
	maxWords        int
	dryRun          bool
	verbose         bool

	// Logger
	logger *zap.Logger
)

// rootCmd generates the description document for a directory tree.
var rootCmd = &cobra.Command{
	Use:   "describedir [root]",
	Short: "Generate model-powered hierarchical descriptions of a directory tree",
	Long: `describedir walks a directory tree bottom-up and asks a language model to
describe every file and directory, producing a single JSON document that
mirrors the filesystem hierarchy.

Files in a directory are batched into combined prompts; directories are
summarized from their children's descriptions, so every directory is
processed only after everything beneath it.

Credentials come from the environment: OPENAI_API_KEY (works for any
OpenAI-compatible endpoint, Groq by default) or GEMINI_API_KEY.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE:          runDescribe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "output JSON file path (default: <root>/"+config.OutputFilename+")")
	flags.StringVarP(&modelName, "model", "m", "", "model to use (default: "+config.DefaultModel+")")
	flags.StringVar(&providerName, "provider", "", "model provider: openai or gemini (default: detect from env)")
	flags.StringArrayVar(&ignorePatterns, "ignore", nil, "additional ignore patterns (glob-style)")
	flags.BoolVar(&noDefaultIgnore, "no-default-ignore", false, "disable default ignore patterns")
	flags.IntVar(&maxFileSize, "max-file-size", 0, fmt.Sprintf("maximum file size in bytes to read (default: %d)", config.MaxFileSizeBytes))
	flags.IntVar(&maxWords, "max-words", 0, fmt.Sprintf("maximum words per description (default: %d)", config.DefaultFileMaxWords))
	flags.BoolVar(&dryRun, "dry-run", false, "build the tree and print the document without calling the model")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the optional per-root config file with command-line
// flags; flags win wherever both are set.
func loadConfig(cmd *cobra.Command, rootPath string) (config.Config, error) {
	cfg, err := config.Load(rootPath)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = outputPath
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = providerName
	}
	if cmd.Flags().Changed("max-file-size") {
		cfg.MaxFileSize = maxFileSize
	}
	if cmd.Flags().Changed("max-words") {
		cfg.MaxWords = maxWords
	}
	if cmd.Flags().Changed("no-default-ignore") {
		cfg.NoDefaultIgnore = noDefaultIgnore
	}
	cfg.Ignore = append(cfg.Ignore, ignorePatterns...)

	cfg.Resolve()
	return cfg, nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	rootArg := "."
	if len(args) > 0 {
		rootArg = args[0]
	}
	rootPath, err := filepath.Abs(rootArg)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}
	info, err := os.Stat(rootPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("'%s' is not a directory", rootPath)
	}

	cfg, err := loadConfig(cmd, rootPath)
	if err != nil {
		return err
	}

	logger.Info("building directory tree", zap.String("root", rootPath))
	tree, err := scan.BuildTree(rootPath, cfg.IgnorePatterns())
	if err != nil {
		return err
	}

	if dryRun {
		doc := schema.NewDocument(rootPath, cfg.Model, tree)
		data, err := doc.Marshal()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	client, err := llm.NewClient(cmd.Context(), llm.Options{
		Provider:    llm.Provider(cfg.Provider),
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Temperature: config.DefaultTemperature,
	})
	if err != nil {
		return err
	}

	executor := llm.NewExecutor(client, logger)
	describer := describe.New(executor, rootPath, cfg, logger)

	stats, err := describer.Run(cmd.Context(), tree)
	if err != nil {
		return err
	}

	doc := schema.NewDocument(rootPath, client.Model(), tree)
	outPath := cfg.Output
	if outPath == "" {
		outPath = filepath.Join(rootPath, config.OutputFilename)
	}
	if err := doc.WriteFile(outPath); err != nil {
		return err
	}

	logger.Info("done",
		zap.Int("files", stats.Files),
		zap.Int("directories", stats.Directories),
		zap.String("output", outPath))
	return nil
}
