package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeBoardJumpOffBoard, "jump leaves board", map[string]string{"Square": "3"})
	wrapped := fmt.Errorf("build board: %w", err)

	if !stderrors.Is(wrapped, New(CodeBoardJumpOffBoard, "")) {
		t.Fatal("expected wrapped error to match by code")
	}
	if stderrors.Is(wrapped, New(CodeBoardJumpOutOfRange, "")) {
		t.Fatal("expected different code not to match")
	}
	if got := GetCode(wrapped); got != CodeBoardJumpOffBoard {
		t.Fatalf("code = %q, want %q", got, CodeBoardJumpOffBoard)
	}
}

func TestGetCodeUnknownForPlainErrors(t *testing.T) {
	if got := GetCode(stderrors.New("boom")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "save game", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "save game: disk full" {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodeBoardJumpOffBoard, "jump leaves board", map[string]string{"Square": "24"})

	tests := []struct {
		locale string
		want   string
	}{
		{locale: "en-US", want: "The jump on square 24 leaves the board."},
		{locale: "pt-BR", want: "O salto na casa 24 sai do tabuleiro."},
	}
	for _, tc := range tests {
		if got := LocalizedMessage(err, tc.locale); got != tc.want {
			t.Fatalf("localized(%q) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestLocalizedMessageFallsBackToError(t *testing.T) {
	if got := LocalizedMessage(stderrors.New("plain"), "en-US"); got != "plain" {
		t.Fatalf("localized = %q, want plain", got)
	}
	if got := LocalizedMessage(New(CodeUnknown, "mystery"), "en-US"); got != "mystery" {
		t.Fatalf("localized = %q, want mystery", got)
	}
	if got := LocalizedMessage(nil, "en-US"); got != "" {
		t.Fatalf("localized nil = %q, want empty", got)
	}
}

func TestLocalizedMessageStorageAndBoardLimits(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		locale string
		want   string
	}{
		{
			name:   "already exists",
			err:    New(CodeAlreadyExists, "record already exists"),
			locale: "pt-BR",
			want:   "Já existe um jogo com este ID.",
		},
		{
			name:   "not found",
			err:    New(CodeNotFound, "record not found"),
			locale: "en-US",
			want:   "The requested game was not found.",
		},
		{
			name: "final square too large",
			err: WithMetadata(CodeBoardInvalidFinalSquare, "final square out of range", map[string]string{
				"FinalSquare":    "20000",
				"MaxFinalSquare": "10000",
			}),
			locale: "en-US",
			want:   "The final square must be between 1 and 10000, got 20000.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LocalizedMessage(tc.err, tc.locale); got != tc.want {
				t.Fatalf("localized = %q, want %q", got, tc.want)
			}
		})
	}
}
