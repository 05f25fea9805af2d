// Command rhythm checks the tones and rhymes of shi and ci.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/chinese-poetry-rhythm/internal/checker"
	"github.com/palemoky/chinese-poetry-rhythm/internal/config"
	"github.com/palemoky/chinese-poetry-rhythm/internal/corpus"
	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/helpers"
	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
)

var (
	configPath  string
	dataDir     string
	dataSource  string
	sqlitePath  string
	bookFlag    string
	puFlag      string
	traditional bool
	debug       bool
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(exitStatus(err, rootCmd.ErrOrStderr()))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rhythm",
		Short:         "Chinese poetry rhythm checker",
		Long:          "Check the tones (平仄) and rhymes (押韵) of shi and ci against 平水韵, 中华新韵 or 中华通韵",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to config file")
	flags.StringVar(&dataDir, "data-dir", "", "Corpus directory (overrides data.dir)")
	flags.StringVar(&dataSource, "source", "", "Corpus source: json or sqlite (overrides data.source)")
	flags.StringVar(&sqlitePath, "db", "", "SQLite corpus path (overrides data.sqlite_path)")
	flags.StringVarP(&bookFlag, "book", "b", "", "Rhyme book: 1 平水韵, 2 中华新韵, 3 中华通韵")
	flags.StringVarP(&puFlag, "pu", "p", "", "Template collection: 1 钦谱, 2 龙谱")
	flags.BoolVarP(&traditional, "traditional", "t", false, "Write reports in traditional characters")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newShiCmd(),
		newCiCmd(),
		newCharCmd(),
		newCipaiCmd(),
		newImportCmd(),
		newValidateCmd(),
		newStatsCmd(),
	)
	return rootCmd
}

// loadConfig reads the config file and applies the persistent flags set on cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, apperrors.InvalidArgument(err.Error())
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.Data.Dir = dataDir
	}
	if flags.Changed("source") {
		cfg.Data.Source = dataSource
	}
	if flags.Changed("db") {
		cfg.Data.SQLitePath = sqlitePath
	}
	if flags.Changed("traditional") {
		cfg.Rhyme.Traditional = traditional
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = debug
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.InvalidArgument(err.Error())
	}

	logger.Init(cfg.Log.Debug)
	return cfg, nil
}

// checkOptions resolves the book, collection and script selectors
func checkOptions(cfg *config.Config) (checker.Options, error) {
	book, err := helpers.ParseBook(bookFlag, cfg.Rhyme.Book)
	if err != nil {
		return checker.Options{}, err
	}
	pu, err := helpers.ParsePu(puFlag, cfg.Rhyme.Pu)
	if err != nil {
		return checker.Options{}, err
	}
	return checker.Options{Book: book, Pu: pu, Script: helpers.ScriptFor(cfg.Rhyme.Traditional)}, nil
}

func openCorpus(cfg *config.Config) (*corpus.Corpus, error) {
	c, err := corpus.Open(cfg.Data)
	if err != nil {
		return nil, apperrors.InvalidData("failed to open corpus", err)
	}
	stats := c.Stats()
	logger.Debug("Corpus loaded",
		zap.String("source", cfg.Data.Source),
		zap.Int("chars", stats.Chars),
		zap.Int("templates", stats.Templates),
	)
	return c, nil
}

// readInput joins the arguments, or reads standard input when there are none
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}

// exitStatus prints err and returns the process exit status for it
func exitStatus(err error, w io.Writer) int {
	var checkErr *apperrors.CheckError
	if errors.As(err, &checkErr) {
		_, _ = fmt.Fprintln(w, checkErr.Message())
		return apperrors.ExitCheckFailed
	}
	_, _ = fmt.Fprintln(w, "Error:", err)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.ExitStatus != 0 {
		return appErr.ExitStatus
	}
	return 1
}
