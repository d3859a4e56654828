package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// goldenCase is one testdata archive: input.ts, output.ts and an optional
// mode file naming the passes to run.
type goldenCase struct {
	name   string
	mode   Mode
	input  string
	output string
}

func loadGoldenCases(t *testing.T) []goldenCase {
	t.Helper()
	// go test sets cwd to the package directory.
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no golden archives found")

	var cases []goldenCase
	for _, path := range paths {
		ar, err := txtar.ParseFile(path)
		require.NoError(t, err)

		files := make(map[string]string, len(ar.Files))
		for _, f := range ar.Files {
			files[f.Name] = string(f.Data)
		}
		require.Contains(t, files, "input.ts", path)
		require.Contains(t, files, "output.ts", path)

		mode, err := ParseMode(files["mode"])
		require.NoError(t, err, path)

		cases = append(cases, goldenCase{
			name:   strings.TrimSuffix(filepath.Base(path), ".txtar"),
			mode:   mode,
			input:  files["input.ts"],
			output: files["output.ts"],
		})
	}
	return cases
}

func TestGolden(t *testing.T) {
	for _, tc := range loadGoldenCases(t) {
		t.Run(tc.name, func(t *testing.T) {
			passes := Passes(Options{Mode: tc.mode, TypePrefix: "T"}, testLogger())
			rep, err := Run(context.Background(), tc.input, passes, nil, testLogger())
			require.NoError(t, err)
			assert.Equal(t, tc.output, rep.Source)
		})
	}
}

func TestGolden_ImportPassIsIdempotent(t *testing.T) {
	for _, tc := range loadGoldenCases(t) {
		if tc.mode == ModeEnums {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			passes := Passes(Options{Mode: ModeImports}, testLogger())
			rep, err := Run(context.Background(), tc.output, passes, nil, testLogger())
			require.NoError(t, err)
			assert.Equal(t, tc.output, rep.Source)
		})
	}
}

func TestGolden_CommitSequence(t *testing.T) {
	// A document with both an enum and a narrowable import is written twice:
	// once after each pass, the first write holding the intermediate state.
	src := "import {Shape} from './shape';\n\nenum Kind {\n  Circle,\n}\n\nlet s: Shape;\n"
	var writes []string
	commit := func(_, out string) error {
		writes = append(writes, out)
		return nil
	}

	rep, err := Run(context.Background(), src, Passes(Options{Mode: ModeAll}, testLogger()), commit, testLogger())
	require.NoError(t, err)
	require.Len(t, writes, 2)

	assert.True(t, strings.HasPrefix(writes[0], "import {Shape} from './shape';\n"))
	assert.Contains(t, writes[0], "export const Kind = {")
	assert.True(t, strings.HasPrefix(writes[1], "import type {Shape} from './shape';\n"))
	assert.Equal(t, writes[1], rep.Source)
}
