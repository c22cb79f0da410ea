package apperr

import (
	"errors"
	"testing"
)

func TestChannel_SingleSlotOverwrite(t *testing.T) {
	ch := NewChannel()
	if ch.Current() != nil {
		t.Fatal("new channel should be empty")
	}

	first := Invalid("title", "must not be empty")
	second := SaveFailed(errors.New("disk full"))

	ch.Report(first)
	ch.Report(second)

	got := ch.Current()
	if got != second {
		t.Fatalf("later failure should replace unacknowledged one, got %v", got)
	}

	ch.Acknowledge()
	if ch.Current() != nil {
		t.Fatal("acknowledge should clear the slot")
	}
}

func TestChannel_NilReportIgnored(t *testing.T) {
	ch := NewChannel()
	ch.Report(nil)
	if ch.Current() != nil {
		t.Fatal("nil report must not occupy the slot")
	}
}

func TestEntityFailed_PreservesTypedErrors(t *testing.T) {
	validation := Invalid("title", "must not be empty")
	wrapped := CreateFailed("task", validation)
	if wrapped.Kind != KindInvalidData {
		t.Fatalf("validation kind lost: %v", wrapped.Kind)
	}

	plain := errors.New("boom")
	wrapped = CreateFailed("task", plain)
	if wrapped.Kind != KindCreateFailed || wrapped.Entity != "task" {
		t.Fatalf("plain error not tagged: %+v", wrapped)
	}
	if !errors.Is(wrapped, plain) {
		t.Fatal("cause not preserved through Unwrap")
	}
}

func TestIs_MatchesByKind(t *testing.T) {
	err := NotFound("task", "abc")
	if !errors.Is(err, &Error{Kind: KindNotFound}) {
		t.Fatal("kind-only target should match")
	}
	if errors.Is(err, &Error{Kind: KindNotFound, Entity: "project"}) {
		t.Fatal("entity mismatch should not match")
	}
}

func TestMessages_NonEmptyForAllKinds(t *testing.T) {
	kinds := []Kind{
		KindCreateFailed, KindUpdateFailed, KindDeleteFailed,
		KindNotFound, KindFetchFailed, KindSaveFailed, KindInvalidData,
		KindFileNotFound, KindInvalidFormat, KindEncodeFailed, KindDecodeFailed,
		KindRemindersDisabled,
	}
	for _, k := range kinds {
		e := &Error{Kind: k, Entity: "task", Reason: "r"}
		if e.Message() == "" {
			t.Errorf("kind %d has no display message", k)
		}
	}
}
