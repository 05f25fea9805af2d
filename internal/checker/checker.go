// Package checker is the entry point for checks: it extracts the characters
// of raw input, picks the rhyme book and renders reports in the requested
// script.
package checker

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/palemoky/chinese-poetry-rhythm/internal/ci"
	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/corpus"
	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
	"github.com/palemoky/chinese-poetry-rhythm/internal/shi"
)

// Options select the rhyme book, the template collection and the output script.
type Options struct {
	Book   rhyme.BookID
	Pu     cipai.Pu
	Script hanzi.Script
}

// CiInput is the raw input of a ci check.
type CiInput struct {
	Text    string
	Name    string
	Variant string
}

// Checker runs shi and ci checks against one corpus.
type Checker struct {
	corpus *corpus.Corpus
	shi    *shi.Engine
	ci     *ci.Engine
	log    *zap.Logger
}

// New creates a Checker
func New(c *corpus.Corpus) *Checker {
	return &Checker{
		corpus: c,
		shi:    shi.NewEngine(),
		ci:     ci.NewEngine(c),
		log:    logger.Named("checker"),
	}
}

// CheckShi checks a shi. Errors the engine reports are *errors.CheckError.
func (c *Checker) CheckShi(text string, opts Options) (string, error) {
	book, err := c.book(opts.Book)
	if err != nil {
		return "", err
	}
	content := hanzi.Extract(text)
	c.log.Debug("Checking shi", zap.Int("chars", len([]rune(content))), zap.Stringer("book", book.ID()))

	report, err := c.shi.Check(book, content)
	if err != nil {
		return "", err
	}
	return c.toScript(report, opts.Script)
}

// CheckCi checks a ci. Errors the engine reports are *errors.CheckError.
func (c *Checker) CheckCi(in CiInput, opts Options) (string, error) {
	book, err := c.book(opts.Book)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(in.Name)
	req := ci.Request{
		Book:       book,
		Name:       name,
		Content:    hanzi.Extract(in.Text),
		Punctuated: hanzi.ExtractWithPunctuation(in.Text),
		Variant:    in.Variant,
		Pu:         opts.Pu,
	}
	c.log.Debug("Checking ci",
		zap.String("name", name),
		zap.Int("chars", len([]rune(req.Content))),
		zap.Stringer("book", book.ID()),
		zap.Stringer("pu", opts.Pu),
	)

	report, err := c.ci.Check(req)
	if err != nil {
		return "", err
	}
	return c.toScript(report, opts.Script)
}

// DescribeChar lists the classes of one character under every rhyme book.
func (c *Checker) DescribeChar(input string, script hanzi.Script) (string, error) {
	ch, err := SingleChar(input)
	if err != nil {
		return "", err
	}
	text := DescribeAll(c.corpus.Pingshui(), ch)
	if script != hanzi.ScriptHant {
		return text, nil
	}
	converted, err := hanzi.ToTraditional(text)
	if err != nil {
		return "", apperrors.Internal("failed to convert report", err)
	}
	return converted, nil
}

func (c *Checker) book(id rhyme.BookID) (rhyme.Book, error) {
	if id == 0 {
		id = rhyme.BookPingshui
	}
	book, err := c.corpus.Book(id)
	if err != nil {
		return nil, apperrors.InvalidArgument(err.Error())
	}
	return book, nil
}

func (c *Checker) toScript(report string, script hanzi.Script) (string, error) {
	if script != hanzi.ScriptHant {
		return report, nil
	}
	converted, err := ReportToTraditional(report)
	if err != nil {
		return "", apperrors.Internal(fmt.Sprintf("failed to convert report to %s", script), err)
	}
	return converted, nil
}
