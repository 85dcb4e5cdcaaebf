package llm

import (
	"errors"
	"testing"
)

func TestCleanJSON_PlainObject(t *testing.T) {
	out, err := CleanJSON(`{"title":"Two Sum"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"title":"Two Sum"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCleanJSON_FencedWithLanguageTag(t *testing.T) {
	raw := "```json\n{\"title\":\"Two Sum\"}\n```"
	out, err := CleanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"title":"Two Sum"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCleanJSON_BareFence(t *testing.T) {
	raw := "```\n[1, 2, 3]\n```"
	out, err := CleanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `[1, 2, 3]` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCleanJSON_SurroundingProse(t *testing.T) {
	raw := `Here is the question you asked for: {"title":"Two Sum","tags":["array"]} Hope it helps!`
	out, err := CleanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"title":"Two Sum","tags":["array"]}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCleanJSON_BracesInsideStrings(t *testing.T) {
	raw := `Sure: {"code":"if (x) { return \"}\"; }"} done`
	out, err := CleanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"code":"if (x) { return \"}\"; }"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCleanJSON_ArraySpan(t *testing.T) {
	raw := `The quiz follows. [{"question":"q1"},{"question":"q2"}]`
	out, err := CleanJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `[{"question":"q1"},{"question":"q2"}]` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCleanJSON_NoJSON(t *testing.T) {
	_, err := CleanJSON("I am unable to help with that.")
	if err == nil {
		t.Fatal("expected error")
	}
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestCleanJSON_UnbalancedBraces(t *testing.T) {
	_, err := CleanJSON(`prefix {"title": "cut off`)
	if err == nil {
		t.Fatal("expected error")
	}
}
