package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/apollo/internal/app/system/htmlsanitize"
)

func TestText_Empty(t *testing.T) {
	if got := htmlsanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_PlainText(t *testing.T) {
	if got := htmlsanitize.Text("  Associação de Vendas  "); got != "Associação de Vendas" {
		t.Errorf("expected trimmed plain text, got %q", got)
	}
}

func TestText_RemovesScript(t *testing.T) {
	got := htmlsanitize.Text("Olá<script>alert('xss')</script>")
	if strings.Contains(got, "<script") {
		t.Errorf("expected script tag removed, got %q", got)
	}
	if !strings.HasPrefix(got, "Olá") {
		t.Errorf("expected text preserved, got %q", got)
	}
}

func TestText_RemovesTags(t *testing.T) {
	if got := htmlsanitize.Text("<b>bold</b>"); got != "bold" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestText_RemovesAttributes(t *testing.T) {
	got := htmlsanitize.Text(`<a href="javascript:alert(1)" onclick="x()">link</a>`)
	if got != "link" {
		t.Errorf("expected only inner text, got %q", got)
	}
}

func TestText_KeepsPunctuation(t *testing.T) {
	if got := htmlsanitize.Text("D'Ávila & Filhos"); got != "D'Ávila & Filhos" {
		t.Errorf("expected punctuation kept, got %q", got)
	}
}
