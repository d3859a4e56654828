package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/olehluchkiv/enumshift/internal/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// funcPass adapts a function to Pass.
type funcPass struct {
	name string
	fn   func(string) string
}

func (p funcPass) Name() string { return p.name }
func (p funcPass) Run(src string, _ *Report) string { return p.fn(src) }

func TestRun_PassesSeeEachOthersOutput(t *testing.T) {
	var seen []string
	passes := []Pass{
		funcPass{"first", func(s string) string { seen = append(seen, s); return s + "1" }},
		funcPass{"second", func(s string) string { seen = append(seen, s); return s + "2" }},
	}
	rep, err := Run(context.Background(), "x", passes, nil, testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x1"}, seen)
	assert.Equal(t, "x12", rep.Source)
}

func TestRun_RecoversFromPanickingPass(t *testing.T) {
	passes := []Pass{
		funcPass{"broken", func(string) string { panic("boom") }},
		funcPass{"next", func(s string) string { return s + "!" }},
	}
	rep, err := Run(context.Background(), "doc", passes, nil, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "doc!", rep.Source)

	require.Len(t, rep.Warnings, 1)
	assert.True(t, errors.Is(rep.Warnings[0], ErrPassFailed))
	assert.Contains(t, rep.Warnings[0].Error(), "broken")
	assert.Contains(t, rep.Warnings[0].Error(), "boom")
}

func TestRun_CommitsOnlyChangedPasses(t *testing.T) {
	var commits []string
	commit := func(pass, src string) error {
		commits = append(commits, pass+":"+src)
		return nil
	}
	passes := []Pass{
		funcPass{"noop", func(s string) string { return s }},
		funcPass{"upper", strings.ToUpper},
		funcPass{"suffix", func(s string) string { return s + "?" }},
	}
	_, err := Run(context.Background(), "abc", passes, commit, testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"upper:ABC", "suffix:ABC?"}, commits)
}

func TestRun_CommitErrorStopsRun(t *testing.T) {
	errDisk := errors.New("disk full")
	ran := false
	passes := []Pass{
		funcPass{"first", func(s string) string { return s + "1" }},
		funcPass{"second", func(s string) string { ran = true; return s }},
	}
	rep, err := Run(context.Background(), "x", passes, func(string, string) error { return errDisk }, testLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDisk))
	assert.False(t, ran)
	assert.Equal(t, "x1", rep.Source)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	passes := []Pass{funcPass{"first", func(s string) string { return s + "1" }}}
	rep, err := Run(ctx, "x", passes, nil, testLogger())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "x", rep.Source)
}

func TestRun_NoEnumsStillRewritesImports(t *testing.T) {
	src := "import {Config} from './config';\nlet c: Config;\n"
	rep, err := Run(context.Background(), src, Passes(Options{Mode: ModeAll}, testLogger()), nil, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "import type {Config} from './config';\nlet c: Config;\n", rep.Source)
	require.NotNil(t, rep.Enums)
	require.NotNil(t, rep.Imports)
	require.Len(t, rep.Warnings, 1)
	assert.True(t, errors.Is(rep.Warnings[0], enums.ErrNoBlocksFound))
}

func TestRun_ImportPassSeesDerivedTypes(t *testing.T) {
	src := `import {Other} from './other';

enum Size {
  Small,
  Large,
}

let s: TSize = Size.Small;
let o: Other;
`
	rep, err := Run(context.Background(), src, Passes(Options{Mode: ModeAll}, testLogger()), nil, testLogger())
	require.NoError(t, err)
	assert.True(t, rep.Imports.Classification.Lookup("TSize").TypeOnly())
	assert.True(t, rep.Imports.Classification.Lookup("Size").Value)
	assert.True(t, strings.HasPrefix(rep.Source, "import type {Other} from './other';\n"))
}

func TestRun_SkippedBlocksBecomeWarnings(t *testing.T) {
	src := "enum Empty {}\nenum Full { A }\n"
	rep, err := Run(context.Background(), src, Passes(Options{Mode: ModeEnums}, testLogger()), nil, testLogger())
	require.NoError(t, err)
	require.Len(t, rep.Warnings, 1)
	assert.True(t, errors.Is(rep.Warnings[0], enums.ErrEmptyMemberList))
	assert.Nil(t, rep.Imports)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeAll},
		{"all", ModeAll},
		{"ENUMS", ModeEnums},
		{" imports ", ModeImports},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMode("both")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestPasses_Order(t *testing.T) {
	names := func(ps []Pass) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name())
		}
		return out
	}
	assert.Equal(t, []string{"enums", "imports"}, names(Passes(Options{Mode: ModeAll}, testLogger())))
	assert.Equal(t, []string{"enums"}, names(Passes(Options{Mode: ModeEnums}, testLogger())))
	assert.Equal(t, []string{"imports"}, names(Passes(Options{Mode: ModeImports}, testLogger())))
}
