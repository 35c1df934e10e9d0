package fix

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyfold/pyfold/pkg/parse"
	"github.com/pyfold/pyfold/pkg/testutil"
)

var sourceTests = []struct {
	name string
	in   string
	want string
}{
	{
		name: "short file unchanged",
		in: testutil.Dedent(`
			x = 1

			def f(a, b):
			    return a + b
			`),
		want: testutil.Dedent(`
			x = 1

			def f(a, b):
			    return a + b
			`),
	},
	{
		name: "no trailing newline unchanged",
		in:   "x = 1",
		want: "x = 1",
	},
	{
		name: "assignment wraps right-hand side in parens",
		in:   "x = aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa\n",
		want: testutil.Dedent(`
			x = (aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa +
			    aaaaaaaaaa + aaaaaaaaaa)
			`),
	},
	{
		name: "return wraps arguments in parens",
		in: testutil.Dedent(`
			def f():
			    return first_operand and second_operand and third_operand and fourth_operand
			`),
		want: testutil.Dedent(`
			def f():
			    return(first_operand and second_operand and third_operand and
			        fourth_operand)
			`),
	},
	{
		name: "attribute chain breaks after a dot",
		in:   "results = obj.method_one().method_two().method_three().method_four().method_five()\n",
		want: testutil.Dedent(`
			results = (obj.method_one().method_two().method_three().method_four().
			    method_five())
			`),
	},
	{
		name: "import-from gains a parenthesized name list",
		in:   "from some.very.long.package.name import first_name, second_name, third_name, fourth_name\n",
		want: testutil.Dedent(`
			from some.very.long.package.name import (first_name, second_name, third_name,
			    fourth_name)
			`),
	},
	{
		name: "if condition wraps in parens",
		in: testutil.Dedent(`
			if first_condition and second_condition and third_condition and fourth_condition:
			    pass
			`),
		want: testutil.Dedent(`
			if(first_condition and second_condition and third_condition and
			    fourth_condition):
			    pass
			`),
	},
	{
		name: "break inside existing brackets adds no parens",
		in:   "xs = [aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa]\n",
		want: testutil.Dedent(`
			xs = [aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa, aaaaaaaaaa,
			    aaaaaaaaaa]
			`),
	},
	{
		name: "standalone comment reflows",
		in: testutil.Dedent(`
			# aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii jjjj kkkk llll mmmm nnnn oooo pppp
			x = 1
			`),
		want: testutil.Dedent(`
			# aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii jjjj kkkk llll mmmm nnnn oooo
			# pppp
			x = 1
			`),
	},
	{
		name: "inline comment moves to its own line",
		in:   "x = compute_something(a, b)  # explanation comment pushing this line well past the configured limit\n",
		want: testutil.Dedent(`
			x = compute_something(a, b)
			# explanation comment pushing this line well past the configured limit
			`),
	},
	{
		name: "single-quoted docstring splits with concatenation",
		in: testutil.Dedent(`
			def f():
			    'aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii jjjj kkkk llll mmmm nnnn oooo'
			`),
		want: testutil.Dedent(`
			def f():
			    ('aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii jjjj kkkk llll mmmm nnnn'
			        'oooo')
			`),
	},
	{
		name: "triple-quoted docstring splits in place",
		in: testutil.Dedent(`
			def f():
			    """aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii jjjj kkkk llll mmmm nnnn oooo"""
			`),
		want: testutil.Dedent(`
			def f():
			    """aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii jjjj kkkk llll mmmm nnnn
			        oooo"""
			`),
	},
}

func TestSource(t *testing.T) {
	for _, tc := range sourceTests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Source(parse.Source{Name: tc.name, Code: tc.in})
			if err != nil {
				t.Fatalf("Source -> error %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

// Running the fixed output through the engine again must change nothing.
func TestSourceIdempotent(t *testing.T) {
	for _, tc := range sourceTests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Source(parse.Source{Name: tc.name, Code: tc.want})
			if err != nil {
				t.Fatalf("Source -> error %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("second run not a fixed point (-want +got):\n%s", diff)
			}
		})
	}
}

// A line that overflows at its very first token has no usable break point;
// it must come back unchanged rather than gain a break that fixes nothing.
func TestSourceUnsplittableToken(t *testing.T) {
	var tests = []string{
		strings.Repeat("x", 100) + "\n",
		"def f():\n    " + strings.Repeat("y", 100) + "\n",
	}
	for _, in := range tests {
		got, err := Source(parse.Source{Name: "long", Code: in})
		if err != nil {
			t.Fatalf("Source -> error %v", err)
		}
		if got != in {
			t.Errorf("Source(%q) -> %q, want unchanged", in, got)
		}
	}
}

func TestSourceError(t *testing.T) {
	_, err := Source(parse.Source{Name: "bad", Code: "x = 'abc\n"})
	if errs := parse.UnpackErrors(err); len(errs) != 1 {
		t.Errorf("got %d parse errors, want 1", len(errs))
	}
}
