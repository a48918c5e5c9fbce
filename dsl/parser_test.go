package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/notecard/dsl"
)

const sampleDSL = `
// 출근부 카드
card entry {
  background: notepad
  padding: 20px
  textColor: #222
  fontFamily: "Noto Sans KR"

  line size 32 weight bold { "${store.name} 엔트리" }
  line gap 12 line-height 1.5x align center fill #333333 {
    "총 출근인원: "
    "${count}명"
  }
  blank line-height 10; "마지막 줄"
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "entry" {
		t.Fatalf("expected card name entry, got %s", doc.Name)
	}
	stmts := doc.Block.Statements
	if len(stmts) != 8 {
		t.Fatalf("expected 8 statements, got %d", len(stmts))
	}

	bg := stmts[0].Assignment
	if bg == nil || bg.Key != "background" || bg.Value.Expr == nil || bg.Value.Text() != "notepad" {
		t.Fatalf("expected background expression assignment, got %+v", stmts[0])
	}
	pad := stmts[1].Assignment
	if pad == nil || pad.Value.Number == nil || pad.Value.Text() != "20px" {
		t.Fatalf("expected padding number assignment, got %+v", stmts[1])
	}
	color := stmts[2].Assignment
	if color == nil || color.Value.Color == nil || color.Value.Text() != "#222" {
		t.Fatalf("expected color assignment, got %+v", stmts[2])
	}
	family := stmts[3].Assignment
	if family == nil || family.Value.String == nil || family.Value.Text() != "Noto Sans KR" {
		t.Fatalf("expected string assignment, got %+v", stmts[3])
	}

	title := stmts[4].Command
	if title == nil || title.Name != "line" {
		t.Fatalf("expected line command, got %+v", stmts[4])
	}
	if got := tokensToString(title.Args); got != "size 32 weight bold" {
		t.Fatalf("unexpected line args: %s", got)
	}
	if title.Block == nil || len(title.Block.Statements) != 1 || title.Block.Statements[0].Text == nil {
		t.Fatalf("line command missing literal content")
	}
	if got := string(title.Block.Statements[0].Text.Value); !strings.Contains(got, "${store.name}") {
		t.Fatalf("expected interpolation in text literal, got %s", got)
	}

	count := stmts[5].Command
	if count == nil || len(count.Args) != 8 {
		t.Fatalf("expected 8 args on second line, got %+v", stmts[5])
	}
	if count.Args[5].Value != "center" || count.Args[7].Type != "Color" || count.Args[3].Value != "1.5x" {
		t.Fatalf("unexpected arg tokens: %+v", count.Args)
	}
	if len(count.Block.Statements) != 2 {
		t.Fatalf("multi-line text block should keep both literals, got %d", len(count.Block.Statements))
	}

	blank := stmts[6].Command
	if blank == nil || blank.Name != "blank" || blank.Block != nil {
		t.Fatalf("expected bare blank command, got %+v", stmts[6])
	}
	if stmts[7].Text == nil || string(stmts[7].Text.Value) != "마지막 줄" {
		t.Fatalf("expected trailing literal after ';', got %+v", stmts[7])
	}
}

func TestParseNamedReportsFilename(t *testing.T) {
	_, err := dsl.ParseNamed("broken.card", strings.NewReader("card x {\n  line { \"unterminated }\n"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken.card") {
		t.Fatalf("error should mention filename, got %v", err)
	}
}

func TestParseRequiresCardHeader(t *testing.T) {
	if _, err := dsl.ParseString(`doc x { }`); err == nil {
		t.Fatalf("documents must start with the card keyword")
	}
}

func tokensToString(parts []*dsl.Lexeme) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}
