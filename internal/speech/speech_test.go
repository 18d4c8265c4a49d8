package speech

import (
	"context"
	"errors"
	"testing"
)

func TestMockSpeaker(t *testing.T) {
	t.Run("records phrases in order", func(t *testing.T) {
		mock := NewMockSpeaker()

		mock.Speak(context.Background(), "Yes")
		mock.Speak(context.Background(), "No")

		spoken := mock.Spoken()
		if len(spoken) != 2 || spoken[0] != "Yes" || spoken[1] != "No" {
			t.Errorf("Spoken() = %v, want [Yes No]", spoken)
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockSpeaker()
		mock.SetError(errors.New("no audio device"))

		if err := mock.Speak(context.Background(), "Yes"); err == nil {
			t.Error("expected error")
		}
		if len(mock.Spoken()) != 0 {
			t.Error("failed utterance should not be recorded")
		}
	})

	t.Run("implements Speaker interface", func(t *testing.T) {
		var _ Speaker = (*MockSpeaker)(nil)
	})
}

func TestCommandSpeaker_Defaults(t *testing.T) {
	s := NewCommandSpeaker("", nil, 0)

	if s.binary != DefaultBinary() {
		t.Errorf("binary = %s, want platform default %s", s.binary, DefaultBinary())
	}
	if s.timeoutMs != 10000 {
		t.Errorf("timeoutMs = %d, want 10000", s.timeoutMs)
	}

	var _ Speaker = s
}

func TestCommandSpeaker_EmptyPhrase(t *testing.T) {
	// An empty phrase is a no-op, not an error; nothing is executed.
	s := NewCommandSpeaker("definitely-not-a-real-binary", nil, 1000)

	if err := s.Speak(context.Background(), ""); err != nil {
		t.Errorf("Speak(\"\") error = %v, want nil", err)
	}
}

func TestCommandSpeaker_MissingBinary(t *testing.T) {
	s := NewCommandSpeaker("definitely-not-a-real-binary", nil, 1000)

	if err := s.Speak(context.Background(), "hello"); err == nil {
		t.Error("expected error for missing binary")
	}
}
