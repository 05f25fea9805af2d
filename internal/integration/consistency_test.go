package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chinese-poetry-rhythm/internal/checker"
	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/config"
	"github.com/palemoky/chinese-poetry-rhythm/internal/corpus"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/processor"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
	"github.com/palemoky/chinese-poetry-rhythm/internal/testutil"
)

// setupTestEnv loads the sample corpus from JSON and from a SQLite store
// written by the import pipeline
func setupTestEnv(t *testing.T) (fromJSON, fromSQLite *corpus.Corpus) {
	t.Helper()

	data, err := corpus.LoadDir(testutil.DataDir())
	require.NoError(t, err)
	fromJSON, err = corpus.New(data)
	require.NoError(t, err)

	_, repo := testutil.SetupTestDB(t)
	p := processor.NewProcessor(repo, config.ImportConfig{Workers: 4, BatchSize: 20, TransactionSize: 3})
	p.SetProgress(false)
	_, err = p.Import(data)
	require.NoError(t, err)

	stored, err := corpus.LoadSQLite(repo)
	require.NoError(t, err)
	fromSQLite, err = corpus.New(stored)
	require.NoError(t, err)

	return fromJSON, fromSQLite
}

func TestConsistency_Stats(t *testing.T) {
	fromJSON, fromSQLite := setupTestEnv(t)
	assert.Equal(t, fromJSON.Stats(), fromSQLite.Stats())

	for _, tmpl := range fromJSON.Templates() {
		stored, ok := fromSQLite.Template(tmpl.Name())
		require.True(t, ok, tmpl.Name())
		assert.Equal(t, tmpl.ID, stored.ID)
		assert.Equal(t, tmpl.Names, stored.Names)
		assert.Equal(t, tmpl.Qin, stored.Qin)
		assert.Equal(t, tmpl.Long, stored.Long)
	}
}

func TestConsistency_Reports(t *testing.T) {
	fromJSON, fromSQLite := setupTestEnv(t)
	a, b := checker.New(fromJSON), checker.New(fromSQLite)

	shi := []string{
		"人闲桂花落，夜静春山空。月出惊山鸟，时鸣春涧中。",
		"黄河远上白云间，一片孤城万仞山。羌笛何须怨杨柳，春风不度玉门关。",
		"千山鸟飞绝，万径人踪灭。孤舟蓑笠翁，独钓寒江雪。",
	}
	ci := []checker.CiInput{
		{Text: "江南好，风景旧曾谙。日出江花红胜火，春来江水绿如蓝。能不忆江南。", Name: "忆江南"},
		{Text: "无言独上西楼，月如钩。寂寞梧桐深院锁清秋。剪不断，理还乱，是离愁。别是一般滋味在心头。"},
		{Text: "汴水流，泗水流，流到瓜洲古渡头。吴山点点愁。思悠悠，恨悠悠，恨到归时方始休。月明人倚楼。"},
	}

	for _, book := range []rhyme.BookID{rhyme.BookPingshui, rhyme.BookXinyun, rhyme.BookTongyun} {
		for _, pu := range []cipai.Pu{cipai.PuQin, cipai.PuLong} {
			opts := checker.Options{Book: book, Pu: pu, Script: hanzi.ScriptHans}
			t.Run(book.String()+pu.String(), func(t *testing.T) {
				for _, text := range shi {
					want, wantErr := a.CheckShi(text, opts)
					got, gotErr := b.CheckShi(text, opts)
					assert.Equal(t, wantErr, gotErr)
					assert.Equal(t, want, got)
				}
				for _, in := range ci {
					want, wantErr := a.CheckCi(in, opts)
					got, gotErr := b.CheckCi(in, opts)
					assert.Equal(t, wantErr, gotErr)
					assert.Equal(t, want, got)
				}
			})
		}
	}
}

func TestConsistency_CharInfo(t *testing.T) {
	fromJSON, fromSQLite := setupTestEnv(t)
	a, b := checker.New(fromJSON), checker.New(fromSQLite)

	for _, ch := range []string{"东", "中", "重", "来", "看"} {
		want, err := a.DescribeChar(ch, hanzi.ScriptHans)
		require.NoError(t, err)
		got, err := b.DescribeChar(ch, hanzi.ScriptHans)
		require.NoError(t, err)
		assert.Equal(t, want, got, ch)
	}
}
