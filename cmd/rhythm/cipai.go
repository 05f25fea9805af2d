package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/helpers"
	"github.com/palemoky/chinese-poetry-rhythm/internal/search"
)

var (
	searchType   string
	searchLength int
	page         int
	pageSize     int
	showVariant  int
	showExample  bool
)

func newCipaiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cipai",
		Short: "Browse ci templates",
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search templates by name, pinyin or character count",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCipaiSearch,
	}
	searchCmd.Flags().StringVar(&searchType, "type", "all", "Search type: all, name or pinyin")
	searchCmd.Flags().IntVarP(&searchLength, "length", "l", 0, "Only templates with a variant of this many characters")
	searchCmd.Flags().IntVar(&page, "page", 1, "Page number")
	searchCmd.Flags().IntVar(&pageSize, "page-size", 0, "Results per page (default: search.default_page_size)")

	showCmd := &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show the clauses of a template",
		Args:  cobra.ExactArgs(1),
		RunE:  runCipaiShow,
	}
	showCmd.Flags().IntVarP(&showVariant, "variant", "v", 0, "Only this variant (格)")
	showCmd.Flags().BoolVarP(&showExample, "example", "e", false, "Print the example ci instead of the clauses")

	cmd.AddCommand(searchCmd, showCmd)
	return cmd
}

func runCipaiSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pu, err := helpers.ParsePu(puFlag, cfg.Rhyme.Pu)
	if err != nil {
		return err
	}
	st, err := search.ParseSearchType(searchType)
	if err != nil {
		return apperrors.InvalidArgument(err.Error())
	}
	if st == search.SearchTypeAll && !cfg.Search.EnablePinyin {
		st = search.SearchTypeName
	}
	size := pageSize
	if size == 0 {
		size = cfg.Search.DefaultPageSize
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	if query == "" && searchLength == 0 {
		return apperrors.InvalidArgument("a query or --length is required")
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	res, err := search.NewEngine(db).Search(search.SearchParams{
		Query:       query,
		SearchType:  st,
		Length:      searchLength,
		Pu:          int(pu),
		Page:        page,
		PageSize:    size,
		MaxPageSize: cfg.Search.MaxResults,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(res.Cipai) == 0 {
		_, _ = fmt.Fprintln(out, "没有找到相关词牌")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header([]string{"ID", "词牌", "别名", "字数"})
	rows := make([][]string, 0, len(res.Cipai))
	for _, c := range res.Cipai {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			strings.Join(aliases(c), "、"),
			lengths(c.Variants, int(pu)),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if res.HasMore {
		_, _ = fmt.Fprintf(out, "共%d个，使用 --page %d 查看更多\n", res.TotalCount, max(page, 1)+1)
	}
	return nil
}

func runCipaiShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pu, err := helpers.ParsePu(puFlag, cfg.Rhyme.Pu)
	if err != nil {
		return err
	}
	c, err := openCorpus(cfg)
	if err != nil {
		return err
	}

	t, ok := c.Template(args[0])
	if !ok {
		return apperrors.NotFound("template " + args[0])
	}
	variants := c.Compiled(t, pu)
	if len(variants) == 0 {
		return apperrors.Ci(apperrors.CiNoLongRecord, 0)
	}
	if showVariant < 0 || showVariant > len(variants) {
		return apperrors.Ci(apperrors.CiBadVariant, 0)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s（%s）\n", t.Name(), pu)
	for i, v := range variants {
		if showVariant != 0 && showVariant != i+1 {
			continue
		}
		_, _ = fmt.Fprintf(out, "\n格%s　%d字\n", hanzi.Numeral(i+1), v.Length)
		if showExample {
			_, _ = fmt.Fprintln(out, v.SampleText())
			continue
		}
		for _, cl := range v.Clauses {
			_, _ = fmt.Fprintln(out, cl.Rule)
		}
	}
	return nil
}

// aliases returns the names of c other than its primary name
func aliases(c database.Cipai) []string {
	var names []string
	if err := json.Unmarshal(c.Names, &names); err != nil {
		return nil
	}
	out := names[:0]
	for _, n := range names {
		if n != c.Name {
			out = append(out, n)
		}
	}
	return out
}

// lengths lists the distinct character counts of the variants in one collection
func lengths(variants []database.CipaiVariant, pu int) string {
	var out []string
	seen := map[int]bool{}
	for _, v := range variants {
		if v.Pu != pu || seen[v.Length] {
			continue
		}
		seen[v.Length] = true
		out = append(out, strconv.Itoa(v.Length))
	}
	return strings.Join(out, "/")
}
