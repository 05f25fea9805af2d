package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/palemoky/chinese-poetry-rhythm/internal/checker"
)

var (
	ciName    string
	ciVariant string
)

func newShiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shi [text]",
		Short: "Check a shi (绝句, 律诗, 排律)",
		Long:  "Check a shi. The text is read from the arguments or from standard input; punctuation and (annotations) are ignored.",
		RunE:  runShi,
	}
}

func newCiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ci [text]",
		Short: "Check a ci against its template",
		Long:  "Check a ci. Without --name every template with a variant of the same length is tried.",
		RunE:  runCi,
	}
	cmd.Flags().StringVarP(&ciName, "name", "n", "", "Template name or id")
	cmd.Flags().StringVarP(&ciVariant, "variant", "v", "", "Variant number (格)")
	return cmd
}

func newCharCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "char <character>",
		Short: "Show the rhyme classes of one character under every rhyme book",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runChar,
	}
}

func runShi(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, opts, err := setupChecker(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	report, err := c.CheckShi(text, opts)
	if err != nil {
		return err
	}
	writeReport(cmd, report, start)
	return nil
}

func runCi(cmd *cobra.Command, args []string) error {
	start := time.Now()
	c, opts, err := setupChecker(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	report, err := c.CheckCi(checker.CiInput{Text: text, Name: ciName, Variant: ciVariant}, opts)
	if err != nil {
		return err
	}
	writeReport(cmd, report, start)
	return nil
}

func runChar(cmd *cobra.Command, args []string) error {
	c, opts, err := setupChecker(cmd)
	if err != nil {
		return err
	}
	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	text, err := c.DescribeChar(input, opts.Script)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func setupChecker(cmd *cobra.Command) (*checker.Checker, checker.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, checker.Options{}, err
	}
	opts, err := checkOptions(cfg)
	if err != nil {
		return nil, checker.Options{}, err
	}
	c, err := openCorpus(cfg)
	if err != nil {
		return nil, checker.Options{}, err
	}
	return checker.New(c), opts, nil
}

func writeReport(cmd *cobra.Command, report string, start time.Time) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, report)
	_, _ = fmt.Fprintf(out, "检测完毕，耗时%.5fs\n", time.Since(start).Seconds())
}
