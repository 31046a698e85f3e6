// SPDX-License-Identifier: MPL-2.0

package lockfile

import (
	"encoding/json"
	"testing"
)

func rawValues(t *testing.T, vals ...any) []json.RawMessage {
	t.Helper()

	out := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal(%v): %v", v, err)
		}
		out = append(out, b)
	}
	return out
}

func TestTakeValue_SwapsLastIntoSlot(t *testing.T) {
	t.Parallel()

	values := rawValues(t,
		"@types/bun@1.2.4",
		map[string]any{},
		[]any{},
		"sha512-QtuV5OMR8/rdKJs213iwXDpfVvnskPXY/S0ZiFbsTjQZycuqPbMW8Gf/XhLfwE5njW8sxI2WjISURXPlHypMFA==",
	)

	if got := TakeValue(&values, 0); got != "@types/bun@1.2.4" {
		t.Errorf("first TakeValue() = %q", got)
	}
	if len(values) != 3 {
		t.Fatalf("len(values) = %d after take, want 3", len(values))
	}
	got := TakeValue(&values, 0)
	want := "sha512-QtuV5OMR8/rdKJs213iwXDpfVvnskPXY/S0ZiFbsTjQZycuqPbMW8Gf/XhLfwE5njW8sxI2WjISURXPlHypMFA=="
	if got != want {
		t.Errorf("second TakeValue() = %q, want %q", got, want)
	}
	if string(values[0]) != "[]" || string(values[1]) != "{}" {
		t.Errorf("remaining values = %s, %s; want [], {}", values[0], values[1])
	}
}

func TestTakeValue_RemovesTakenValue(t *testing.T) {
	t.Parallel()

	values := rawValues(t, "a", "b", "c", "d")
	taken := TakeValue(&values, 1)
	if taken != "b" {
		t.Fatalf("TakeValue() = %q, want %q", taken, "b")
	}
	for _, v := range values {
		if string(v) == `"b"` {
			t.Errorf("taken value still present in %s", values)
		}
	}
}

func TestTakeValue_KeepsEscapesVerbatim(t *testing.T) {
	t.Parallel()

	values := []json.RawMessage{json.RawMessage(`"a\"b"`)}
	if got := TakeValue(&values, 0); got != `a\"b` {
		t.Errorf("TakeValue() = %q, want %q", got, `a\"b`)
	}
}

func TestSplitOnceOwned(t *testing.T) {
	t.Parallel()

	before, after, ok := SplitOnceOwned("hello#world", '#')
	if !ok || before != "hello" || after != "world" {
		t.Errorf("SplitOnceOwned(hello#world) = %q, %q, %v", before, after, ok)
	}

	before, after, ok = SplitOnceOwned("a#b#c", '#')
	if !ok || before != "a" || after != "b#c" {
		t.Errorf("SplitOnceOwned(a#b#c) = %q, %q, %v; want first occurrence", before, after, ok)
	}

	if _, _, ok := SplitOnceOwned("noseparator", '#'); ok {
		t.Error("SplitOnceOwned(noseparator) reported a match")
	}
}

func TestDropPrefix(t *testing.T) {
	t.Parallel()

	if got := DropPrefix("hello:world", "hello:"); got != "world" {
		t.Errorf("DropPrefix() = %q, want %q", got, "world")
	}
	if got := DropPrefix("abc", "hello:"); got != "abc" {
		t.Errorf("DropPrefix() = %q, want unchanged %q", got, "abc")
	}
}

func TestDrainAfterLast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, sub string
		want    string
		wantOK  bool
	}{
		{"pkg@file:./local/path", "file:", "./local/path", true},
		{"@scope/pkg@github:o/r#abc", "@", "github:o/r#abc", true},
		{"a@b@c", "@", "c", true},
		{"ws@workspace:packages/a", "workspace:", "packages/a", true},
		{"no-at", "@", "", false},
		{"trailing@", "@", "", true},
	}

	for _, tt := range tests {
		got, ok := DrainAfterLast(tt.in, tt.sub)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DrainAfterLast(%q, %q) = %q, %v; want %q, %v", tt.in, tt.sub, got, ok, tt.want, tt.wantOK)
		}
	}
}
