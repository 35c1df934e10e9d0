package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var roundTripTests = []string{
	"",
	"x = 1\n",
	"x = 1",
	"# comment only\n",
	"\n\n",
	"def f(a,\n      b):\n    return a\n",
	"x = {\n    'k': 1,\n}\n",
	"s = 'a\\'b'\n",
	"t = \"\"\"multi\nline\"\"\"\n",
	"y = 1 + \\\n    2\n",
	"if x:\n    pass\nelse:\n    pass\n",
	"xs[1:2] = ys\n",
	"x = 1  # trailing comment\n",
}

func TestParseFileRoundTrip(t *testing.T) {
	for _, code := range roundTripTests {
		file, err := ParseFile(Source{Name: "test", Code: code})
		if err != nil {
			t.Errorf("ParseFile(%q) -> error %v", code, err)
			continue
		}
		if got := Render(file); got != code {
			t.Errorf("Render(ParseFile(%q)) -> %q", code, got)
		}
	}
}

func TestLeafCols(t *testing.T) {
	var tests = []struct {
		code string
		want map[string]int
	}{
		{"x = foo(1)\n", map[string]int{
			"x": 0, "=": 2, "foo": 4, "(": 7, "1": 8, ")": 9, "\n": 10}},
		// Columns are display columns, not byte or rune offsets.
		{"s = '你好'\n", map[string]int{
			"s": 0, "=": 2, "'你好'": 4, "\n": 10}},
	}
	for _, tc := range tests {
		file, err := ParseFile(Source{Name: "test", Code: tc.code})
		if err != nil {
			t.Fatalf("ParseFile(%q) -> error %v", tc.code, err)
		}
		got := make(map[string]int)
		for _, leaf := range Leaves(file) {
			if leaf.Kind != EndMarker {
				got[leaf.Text] = leaf.Col
			}
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("columns of %q (-want +got):\n%s", tc.code, diff)
		}
	}
}

func TestStatementShapes(t *testing.T) {
	var tests = []struct {
		code string
		want []string
	}{
		{"x = 1\n", []string{"Assign", "Newline"}},
		{"return a, b\n", []string{"Return", "Newline"}},
		{"from a import b, c\n", []string{"ImportFrom", "Newline"}},
		{"obj.method()\n", []string{"Call", "Newline"}},
		{"a and b\n", []string{"Test", "Newline"}},
		{"a + b\n", []string{"Test", "Newline"}},
		// Multiplicative operators carry no parenthesization rule.
		{"a * b\n", []string{"Other", "Newline"}},
		{"'docstring'\n", []string{"String", "Newline"}},
		{"if x > 0:\n    pass\n", []string{"Name", "Test", "Colon", "Newline"}},
		{"def f(a, b):\n    pass\n",
			[]string{"Name", "Name", "Params", "Colon", "Newline"}},
		{"for i in range(10):\n    pass\n",
			[]string{"Name", "Name", "Name", "Call", "Colon", "Newline"}},
		{"with open(f) as g:\n    pass\n",
			[]string{"Name", "Call", "Name", "Other", "Colon", "Newline"}},
	}
	for _, tc := range tests {
		file, err := ParseFile(Source{Name: "test", Code: tc.code})
		if err != nil {
			t.Fatalf("ParseFile(%q) -> error %v", tc.code, err)
		}
		stmt := Children(file)[0].(*Branch)
		var got []string
		for _, ch := range Children(stmt) {
			switch ch := ch.(type) {
			case *Leaf:
				got = append(got, ch.Kind.String())
			case *Branch:
				got = append(got, ch.Kind.String())
			}
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("shape of %q (-want +got):\n%s", tc.code, diff)
		}
	}
}

func TestIndentation(t *testing.T) {
	file, err := ParseFile(Source{Name: "test", Code: "def f():\n    return aaa\n"})
	if err != nil {
		t.Fatalf("ParseFile -> error %v", err)
	}
	stmt := Children(file)[1].(*Branch)
	ret := Children(stmt)[0]
	if got := Indentation(ret); got != "    " {
		t.Errorf("Indentation -> %q, want %q", got, "    ")
	}
}

func TestParseFileErrors(t *testing.T) {
	var tests = []struct {
		code string
		want int
	}{
		{"x = 'abc\n", 1},
		{"x = 'abc", 1},
		{"x = 1\n", 0},
	}
	for _, tc := range tests {
		_, err := ParseFile(Source{Name: "test", Code: tc.code})
		if got := len(UnpackErrors(err)); got != tc.want {
			t.Errorf("ParseFile(%q) -> %d errors, want %d", tc.code, got, tc.want)
		}
	}
}
