package cache

import "testing"

func TestMakeKeyNoParams(t *testing.T) {
	key := MakeKey("/v1/prompts", nil)
	if key != "/v1/prompts" {
		t.Fatalf("expected bare route, got %q", key)
	}

	key = MakeKey("/v1/prompts", map[string]string{})
	if key != "/v1/prompts" {
		t.Fatalf("expected bare route for empty map, got %q", key)
	}
}

func TestMakeKeySortsParams(t *testing.T) {
	key := MakeKey("/v1/prompts", map[string]string{
		"skip":       "0",
		"limit":      "10",
		"project_id": "abc",
	})
	want := "/v1/prompts:limit=10:project_id=abc:skip=0"
	if key != want {
		t.Fatalf("expected %q, got %q", want, key)
	}
}

func TestMakeKeyOrderIndependent(t *testing.T) {
	a := MakeKey("/v1/prompts", map[string]string{"a": "1", "b": "2"})
	b := MakeKey("/v1/prompts", map[string]string{"b": "2", "a": "1"})
	if a != b {
		t.Fatalf("keys differ for equal parameter sets: %q vs %q", a, b)
	}
}

func TestMakeKeyDistinguishesValues(t *testing.T) {
	a := MakeKey("/v1/prompts", map[string]string{"project_id": "one"})
	b := MakeKey("/v1/prompts", map[string]string{"project_id": "two"})
	if a == b {
		t.Fatalf("keys collide for different values: %q", a)
	}
}
