package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/chinese-poetry-rhythm/internal/config"
	"github.com/palemoky/chinese-poetry-rhythm/internal/corpus"
	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
	"github.com/palemoky/chinese-poetry-rhythm/internal/processor"
)

var (
	outputDB string
	workers  int
	progress bool
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Compile the corpus directory into a SQLite database",
		Long:  "Read pingshui.json, cilin.json and cipai/*.yaml from the data directory, compile every template variant and write them to a SQLite database",
		Args:  cobra.NoArgs,
		RunE:  runImport,
	}
	cmd.Flags().StringVarP(&outputDB, "output", "o", "", "Output SQLite database (default: data.sqlite_path)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent workers (0 = number of CPUs)")
	cmd.Flags().BoolVar(&progress, "progress", true, "Show a progress bar")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every template variant of the corpus directory for inconsistencies",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Import.Workers = workers
	}
	path := outputDB
	if path == "" {
		path = cfg.Data.SQLitePath
	}

	logger.Info("Loading corpus", zap.String("dir", cfg.Data.Dir))
	data, err := corpus.LoadDir(cfg.Data.Dir)
	if err != nil {
		return apperrors.InvalidData("failed to load corpus", err)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	res, err := importData(db, data, cfg.Import, progress)
	if err != nil {
		return err
	}

	logger.Info("Optimizing database")
	if err := db.Exec("VACUUM").Error; err != nil {
		logger.Warn("Failed to vacuum database", zap.Error(err))
	}
	if err := db.Exec("ANALYZE").Error; err != nil {
		logger.Warn("Failed to analyze database", zap.Error(err))
	}

	logger.Info("Import complete",
		zap.String("database", path),
		zap.Int("templates", res.Templates),
		zap.Int("issues", len(res.Issues)),
	)
	if len(res.Issues) > 0 {
		if err := writeIssues(cmd, res.Issues); err != nil {
			return err
		}
	}
	return writeStatistics(cmd, database.NewRepository(db))
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := corpus.LoadDir(cfg.Data.Dir)
	if err != nil {
		return apperrors.InvalidData("failed to load corpus", err)
	}

	issues, err := processor.Validate(data.Templates)
	if err != nil {
		return apperrors.InvalidData("failed to compile templates", err)
	}
	if len(issues) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d templates checked, no issues found\n", len(data.Templates))
		return nil
	}
	if err := writeIssues(cmd, issues); err != nil {
		return err
	}
	return apperrors.InvalidData(fmt.Sprintf("%d issues found", len(issues)), nil)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return writeStatistics(cmd, database.NewRepository(db))
}

func importData(db *database.DB, data *corpus.Data, cfg config.ImportConfig, showProgress bool) (*processor.Result, error) {
	if err := db.Migrate(); err != nil {
		return nil, err
	}
	p := processor.NewProcessor(database.NewRepository(db), cfg)
	p.SetProgress(showProgress)
	res, err := p.Import(data)
	if err != nil {
		return nil, apperrors.InvalidData("failed to import corpus", err)
	}
	return res, nil
}

// openStore opens the template store: the SQLite corpus, or an in-memory
// database filled from the corpus directory.
func openStore(cfg *config.Config) (*database.DB, error) {
	if cfg.Data.Source == config.SourceSQLite {
		return database.Open(cfg.Data.SQLitePath)
	}

	data, err := corpus.LoadDir(cfg.Data.Dir)
	if err != nil {
		return nil, apperrors.InvalidData("failed to load corpus", err)
	}
	db, err := database.OpenMemory()
	if err != nil {
		return nil, err
	}
	if _, err := importData(db, data, cfg.Import, false); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func writeIssues(cmd *cobra.Command, issues []processor.Issue) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header([]string{"ID", "词牌", "谱", "格", "问题"})
	rows := make([][]string, 0, len(issues))
	for _, is := range issues {
		rows = append(rows, []string{
			strconv.Itoa(is.TemplateID),
			is.Name,
			is.Pu.String(),
			strconv.Itoa(is.Variant),
			is.Message,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeStatistics(cmd *cobra.Command, repo database.RepositoryInterface) error {
	stats, err := repo.GetStatistics()
	if err != nil {
		return fmt.Errorf("failed to read statistics: %w", err)
	}

	out := cmd.OutOrStdout()
	table := tablewriter.NewWriter(out)
	table.Header([]string{"Chars", "Cilin overrides", "Templates", "钦谱 variants", "龙谱 variants"})
	err = table.Append([]string{
		strconv.FormatInt(stats.TotalChars, 10),
		strconv.FormatInt(stats.TotalOverrides, 10),
		strconv.FormatInt(stats.TotalCipai, 10),
		strconv.FormatInt(stats.QinVariants, 10),
		strconv.FormatInt(stats.LongVariants, 10),
	})
	if err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(stats.CommonLengths) == 0 {
		return nil
	}
	lengths := tablewriter.NewWriter(out)
	lengths.Header([]string{"字数", "Variants"})
	for _, lc := range stats.CommonLengths {
		if err := lengths.Append([]string{strconv.Itoa(lc.Length), strconv.Itoa(lc.Count)}); err != nil {
			return err
		}
	}
	return lengths.Render()
}
