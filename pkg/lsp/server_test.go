package lsp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"

	"github.com/pyfold/pyfold/pkg/must"
	"github.com/pyfold/pyfold/pkg/tt"
)

func TestLspPositionFromIdx(t *testing.T) {
	tt.Test(t, tt.Fn("lspPositionFromIdx", lspPositionFromIdx).ArgsFmt("(%q, %d)"), tt.Table{
		tt.Args("ab\ncd", 0).Rets(lsp.Position{Line: 0, Character: 0}),
		tt.Args("ab\ncd", 2).Rets(lsp.Position{Line: 0, Character: 2}),
		tt.Args("ab\ncd", 3).Rets(lsp.Position{Line: 1, Character: 0}),
		tt.Args("ab\ncd", 5).Rets(lsp.Position{Line: 1, Character: 2}),
		// \r\n counts as a single line break.
		tt.Args("ab\r\ncd", 4).Rets(lsp.Position{Line: 1, Character: 0}),
		// Astral-plane characters take two UTF-16 units.
		tt.Args("\U0001F600x", 4).Rets(lsp.Position{Line: 0, Character: 2}),
	})
}

func TestDiagnostics(t *testing.T) {
	if d := diagnostics("file:///ok.py", "x = 1\n"); len(d) != 0 {
		t.Errorf("diagnostics on valid code -> %v, want none", d)
	}

	d := diagnostics("file:///bad.py", "x = 'a\n")
	if len(d) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(d))
	}
	if d[0].Severity != lsp.Error || d[0].Source != "parse" || d[0].Message == "" {
		t.Errorf("diagnostic = %+v", d[0])
	}
	wantRange := lsp.Range{
		Start: lsp.Position{Line: 0, Character: 4},
		End:   lsp.Position{Line: 0, Character: 6},
	}
	if diff := cmp.Diff(wantRange, d[0].Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}
}

func TestFormatting(t *testing.T) {
	const uri = "file:///a.py"
	content := "x = aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa\n"
	fixed := "x = (aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa + aaaaaaaaaa +\n" +
		"    aaaaaaaaaa + aaaaaaaaaa)\n"

	s := newServer()
	s.content[uri] = content
	raw := must.OK1(json.Marshal(lsp.DocumentFormattingParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri}}))

	got, err := s.formatting(context.Background(), nil, raw)
	if err != nil {
		t.Fatalf("formatting -> error %v", err)
	}
	edits := got.([]lsp.TextEdit)
	want := []lsp.TextEdit{{
		Range: lsp.Range{
			Start: lsp.Position{Line: 0, Character: 0},
			End:   lsp.Position{Line: 1, Character: 0},
		},
		NewText: fixed,
	}}
	if diff := cmp.Diff(want, edits); diff != "" {
		t.Errorf("edits (-want +got):\n%s", diff)
	}
}

func TestFormatting_NoChange(t *testing.T) {
	const uri = "file:///b.py"
	s := newServer()
	s.content[uri] = "x = 1\n"
	raw := must.OK1(json.Marshal(lsp.DocumentFormattingParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri}}))

	got, err := s.formatting(context.Background(), nil, raw)
	if err != nil {
		t.Fatalf("formatting -> error %v", err)
	}
	if edits := got.([]lsp.TextEdit); len(edits) != 0 {
		t.Errorf("edits = %v, want none", edits)
	}
}
