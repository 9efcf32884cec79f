package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}
	if got := bundle.NamespaceKeys("en-US", "game"); len(got) == 0 {
		t.Fatal("expected en-US game namespace keys")
	}
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	bundle := Default()
	for _, namespace := range []string{"game", "errors"} {
		base := bundle.NamespaceKeys(BaseLocale, namespace)
		for _, locale := range bundle.Locales() {
			got := bundle.NamespaceKeys(locale, namespace)
			if len(got) != len(base) {
				t.Fatalf("%s/%s has %d keys, want %d", locale, namespace, len(got), len(base))
			}
			for i := range base {
				if got[i] != base[i] {
					t.Fatalf("%s/%s key %d = %q, want %q", locale, namespace, i, got[i], base[i])
				}
			}
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle := Default()

	tests := []struct {
		locale string
		want   string
	}{
		{locale: "", want: "Game over!"},
		{locale: "en-US", want: "Game over!"},
		{locale: "pt-BR", want: "Fim de jogo!"},
		{locale: "xx-YY", want: "Game over!"},
	}
	for _, tc := range tests {
		got, ok := bundle.Message(tc.locale, "game.over")
		if !ok {
			t.Fatalf("message(%q) missing", tc.locale)
		}
		if got != tc.want {
			t.Fatalf("message(%q) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestSprintfFormatsArguments(t *testing.T) {
	got := Default().Sprintf("en-US", "game.summary", 27, 12)
	if got != "Finished on square 27 after 12 turns." {
		t.Fatalf("sprintf = %q", got)
	}
	if got := Default().Sprintf("en-US", "missing.key"); got != "missing.key" {
		t.Fatalf("missing key = %q, want key echo", got)
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/game.yaml"), `locale: "en-US"
namespace: "game"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/errors.yaml"), `locale: "en-US"
namespace: "errors"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/game.yaml"), `locale: "pt-BR"
namespace: "game"
messages:
  "game.over": "Fim de jogo!"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestLoadFromFSRejectsMismatchedLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/game.yaml"), `locale: "pt-BR"
namespace: "game"
messages:
  "game.over": "Fim de jogo!"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestParseCatalogFileRejectsStrayLines(t *testing.T) {
	if _, err := parseCatalogFile([]byte("locale: \"en-US\"\nstray\n")); err == nil {
		t.Fatal("expected stray line error")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}
