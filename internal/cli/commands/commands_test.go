package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/epochscript/internal/cli/config"
	"github.com/leapstack-labs/epochscript/internal/cli/testutil"
)

// useConfig loads content as the current configuration for the test.
func useConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	path := testutil.WriteConfig(t, dir, content)
	_, err := config.LoadConfigFrom(dir, path, nil)
	require.NoError(t, err)
	t.Cleanup(config.ResetConfig)
}

// useDefaults makes commands fall back to the default configuration.
func useDefaults(t *testing.T) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
}

func TestNewParseCommand(t *testing.T) {
	cmd := NewParseCommand()

	assert.Equal(t, "parse [file|-]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"raw", "expr"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "e", cmd.Flags().Lookup("expr").Shorthand)
}

func TestNewTokensCommand(t *testing.T) {
	cmd := NewTokensCommand()

	assert.Equal(t, "tokens [file|-]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"jobs", "extensions", "quiet"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch [dirs...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"debounce", "extensions", "jobs"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("history-file"))
}

func TestNewBuiltinsCommand(t *testing.T) {
	cmd := NewBuiltinsCommand()

	assert.Equal(t, "builtins [name]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("category"))
}

func TestParseCommand_Output(t *testing.T) {
	tests := []struct {
		name   string
		config string
		stdin  string
		args   []string
		want   []string
		absent []string
	}{
		{
			name:   "sexpr desugars pipeline",
			config: "output: sexpr\n",
			args:   []string{"-e", "src.c | sma(20)"},
			want:   []string{"(call (call sma 20) (. src c))"},
		},
		{
			name:   "raw keeps pipeline",
			config: "output: sexpr\n",
			args:   []string{"--raw", "-e", "src.c | sma(20)"},
			want:   []string{"(pipe (. src c) (call sma 20))"},
		},
		{
			name:   "raw from config",
			config: "output: sexpr\nraw: true\n",
			args:   []string{"-e", "v >> 1"},
			want:   []string{"(lag v 1)"},
		},
		{
			name:   "module from stdin",
			config: "output: sexpr\n",
			stdin:  "x = f(a)\ny = x >> 1\n",
			args:   []string{"-"},
			want:   []string{"(= x (call f a))\n(= y (call (call lag period=1) x))\n"},
		},
		{
			name:   "text tree",
			config: "output: text\n",
			stdin:  "x = a + 1\n",
			want:   []string{"Module", "AssignStmt", "target: Ident name=x", "BinaryExpr op=add", "IntLit value=1"},
			absent: []string{"PipelineExpr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, tt.config)

			out, errOut, err := testutil.ExecuteCommand(NewParseCommand(), tt.stdin, tt.args...)
			require.NoError(t, err, errOut)

			for _, want := range tt.want {
				testutil.AssertContains(t, out, want)
			}
			for _, absent := range tt.absent {
				testutil.AssertNotContains(t, out, absent)
			}
			testutil.AssertNoANSI(t, out)
		})
	}
}

func TestParseCommand_JSON(t *testing.T) {
	useConfig(t, "output: json\n")

	out, _, err := testutil.ExecuteCommand(NewParseCommand(), "", "-e", "src.c | ema(12)")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "CallExpr", got["type"])
	assert.NotEmpty(t, got["span"])

	fun, ok := got["func"].(map[string]any)
	require.True(t, ok, "func should be a node map")
	assert.Equal(t, "CallExpr", fun["type"])
}

func TestParseCommand_File(t *testing.T) {
	useConfig(t, "output: sexpr\n")
	root := testutil.SetupTestProject(t)

	out, _, err := testutil.ExecuteCommand(NewParseCommand(), "", filepath.Join(root, "strategies", "indicators", "prev.eps"))
	require.NoError(t, err)
	assert.Equal(t, "(= prev (call (call lag period=1) (. src c)))\n", out)
}

func TestParseCommand_Errors(t *testing.T) {
	useDefaults(t)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
		want    []string
	}{
		{
			name:    "lex error",
			stdin:   "x = $\n",
			wantErr: ErrParseFailed,
			want:    []string{"<stdin>:1:5:", "   1 | x = $", "^"},
		},
		{
			name:    "syntax error in expression",
			args:    []string{"-e", "f(a,"},
			wantErr: ErrParseFailed,
			want:    []string{"<expr>:1:5:"},
		},
		{
			name: "missing file",
			args: []string{"does-not-exist.eps"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := testutil.ExecuteCommand(NewParseCommand(), tt.stdin, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			for _, want := range tt.want {
				testutil.AssertContains(t, errOut, want)
			}
		})
	}
}

func TestTokensCommand(t *testing.T) {
	t.Run("sexpr", func(t *testing.T) {
		useConfig(t, "output: sexpr\n")

		out, _, err := testutil.ExecuteCommand(NewTokensCommand(), "x = 1W-MON-1st")
		require.NoError(t, err)
		assert.Equal(t, `(IDENT "x" 1:1)
(= "=" 1:3)
(TIMEFRAME "1W-MON-1st" 1:5)
(EOF "" 1:15)
`, out)
	})

	t.Run("json", func(t *testing.T) {
		useConfig(t, "output: json\n")

		out, _, err := testutil.ExecuteCommand(NewTokensCommand(), "crossover(a, b)")
		require.NoError(t, err)

		var rows []tokenRow
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 7)
		assert.Equal(t, "BUILTIN_FUNC", rows[0].Kind)
		assert.Equal(t, "crossover", rows[0].Literal)
		assert.Equal(t, "EOF", rows[6].Kind)
	})

	t.Run("table", func(t *testing.T) {
		useDefaults(t)

		out, _, err := testutil.ExecuteCommand(NewTokensCommand(), "a + 1")
		require.NoError(t, err)
		testutil.AssertContains(t, out, "Kind")
		testutil.AssertContains(t, out, "IDENT")
		testutil.AssertContains(t, out, "(4 tokens)")
	})

	t.Run("unterminated string", func(t *testing.T) {
		useDefaults(t)

		_, errOut, err := testutil.ExecuteCommand(NewTokensCommand(), `x = "abc`)
		require.ErrorIs(t, err, ErrParseFailed)
		testutil.AssertContains(t, errOut, "<stdin>:1:5:")
	})
}

func TestCheckCommand(t *testing.T) {
	root := testutil.SetupTestProject(t)

	t.Run("reports failures", func(t *testing.T) {
		useDefaults(t)

		out, _, err := testutil.ExecuteCommand(NewCheckCommand(), "", root)
		require.ErrorIs(t, err, ErrCheckFailed)
		assert.Contains(t, err.Error(), "1 of 3 scripts failed")

		testutil.AssertContains(t, out, "cross.eps")
		testutil.AssertContains(t, out, "3 statements")
		testutil.AssertContains(t, out, filepath.Join("broken", "bad.eps")+":")
		testutil.AssertContains(t, out, "Checked 3 scripts: 2 passed, 1 failed")
		testutil.AssertNotContains(t, out, "ignored.eps")
	})

	t.Run("quiet only lists failures", func(t *testing.T) {
		useDefaults(t)

		out, _, err := testutil.ExecuteCommand(NewCheckCommand(), "", "-q", root)
		require.ErrorIs(t, err, ErrCheckFailed)
		testutil.AssertNotContains(t, out, "cross.eps")
		testutil.AssertContains(t, out, "bad.eps")
	})

	t.Run("passing directory", func(t *testing.T) {
		useDefaults(t)

		out, _, err := testutil.ExecuteCommand(NewCheckCommand(), "", "-j", "1", filepath.Join(root, "strategies"))
		require.NoError(t, err)
		testutil.AssertContains(t, out, "Checked 2 scripts: 2 passed, 0 failed")
	})

	t.Run("json summary", func(t *testing.T) {
		useConfig(t, "output: json\n")

		out, _, err := testutil.ExecuteCommand(NewCheckCommand(), "", root)
		require.ErrorIs(t, err, ErrCheckFailed)

		var got checkOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 3, got.Summary.Files)
		assert.Equal(t, 1, got.Summary.Failed)
		require.Len(t, got.Results, 3)
		assert.False(t, got.Results[0].OK)
		assert.NotEmpty(t, got.Results[0].Message)
	})

	t.Run("no scripts", func(t *testing.T) {
		useDefaults(t)

		_, errOut, err := testutil.ExecuteCommand(NewCheckCommand(), "", "--extensions", ".nope", root)
		require.NoError(t, err)
		testutil.AssertContains(t, errOut, "no scripts found")
	})
}

func TestBuiltinsCommand(t *testing.T) {
	t.Run("category table", func(t *testing.T) {
		useDefaults(t)

		out, _, err := testutil.ExecuteCommand(NewBuiltinsCommand(), "", "--category", "signal")
		require.NoError(t, err)
		for _, name := range []string{"crossover", "crossunder", "crossany"} {
			testutil.AssertContains(t, out, name)
		}
		testutil.AssertNotContains(t, out, "sqrt")
	})

	t.Run("unknown category", func(t *testing.T) {
		useDefaults(t)

		_, _, err := testutil.ExecuteCommand(NewBuiltinsCommand(), "", "-c", "nope")
		require.Error(t, err)
	})

	t.Run("single entry", func(t *testing.T) {
		useDefaults(t)

		out, _, err := testutil.ExecuteCommand(NewBuiltinsCommand(), "", "crossover")
		require.NoError(t, err)
		testutil.AssertContains(t, out, "crossover(a, b)")
		testutil.AssertContains(t, out, "signal")
	})

	t.Run("unknown name", func(t *testing.T) {
		useDefaults(t)

		_, _, err := testutil.ExecuteCommand(NewBuiltinsCommand(), "", "sma")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a reserved name")
	})

	t.Run("yaml", func(t *testing.T) {
		useConfig(t, "output: yaml\n")

		out, _, err := testutil.ExecuteCommand(NewBuiltinsCommand(), "", "ffill")
		require.NoError(t, err)
		testutil.AssertContains(t, out, "name: ffill")
		testutil.AssertContains(t, out, "category: data")
	})
}
