package cli

import (
	"strings"
	"testing"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/pipeline"
)

func TestParseOptsOverrideConfig(t *testing.T) {
	defaults := pipeline.Options{
		Format:   "legacy",
		Identity: pipeline.IdentityWindowed,
		Window:   5,
		PinReuse: pipeline.PinReuseName,
		Strict:   true,
	}

	tests := []struct {
		name string
		opts parseOpts
		want pipeline.Options
	}{
		{
			name: "no flags keeps config",
			want: defaults,
		},
		{
			name: "format flag",
			opts: parseOpts{format: "tree"},
			want: pipeline.Options{Format: "tree", Identity: "windowed", Window: 5, PinReuse: "name", Strict: true},
		},
		{
			name: "identity flag resets the configured window",
			opts: parseOpts{identity: "literal"},
			want: pipeline.Options{Format: "legacy", Identity: "literal", PinReuse: "name", Strict: true},
		},
		{
			name: "identity and window flags",
			opts: parseOpts{identity: "windowed", window: 2},
			want: pipeline.Options{Format: "legacy", Identity: "windowed", Window: 2, PinReuse: "name", Strict: true},
		},
		{
			name: "refresh is flag only",
			opts: parseOpts{refresh: true, pinReuse: "type"},
			want: pipeline.Options{Format: "legacy", Identity: "windowed", Window: 5, PinReuse: "type", Strict: true, Refresh: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.options(defaults)
			if got != tt.want {
				t.Errorf("options() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseOptsStrictFlag(t *testing.T) {
	o := parseOpts{strict: true}
	if got := o.options(pipeline.Options{}); !got.Strict {
		t.Error("--strict should enable strict mode over a lenient config")
	}
}

func TestReadInput(t *testing.T) {
	path := writeFile(t, "in.txt", "A -> B\n")

	got, err := readInput(path)
	if err != nil || got != "A -> B\n" {
		t.Errorf("readInput(file) = %q, %v", got, err)
	}

	old := stdin
	defer func() { stdin = old }()
	for _, arg := range []string{"", "-"} {
		stdin = strings.NewReader("from stdin")
		got, err := readInput(arg)
		if err != nil || got != "from stdin" {
			t.Errorf("readInput(%q) = %q, %v; want stdin", arg, got, err)
		}
	}

	if _, err := readInput(path + ".missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("readInput(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestInputArg(t *testing.T) {
	if got := inputArg(nil); got != "" {
		t.Errorf("inputArg(nil) = %q", got)
	}
	if got := inputArg([]string{"a.txt"}); got != "a.txt" {
		t.Errorf("inputArg([a.txt]) = %q", got)
	}
}
