package jsonvalue

import (
	"errors"
	"io"
	"testing"
)

func mustMarshal(t *testing.T, v Value) string {
	t.Helper()
	b, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	return string(b)
}

func TestParseKeepsKeyOrderAndNumbers(t *testing.T) {
	in := `{"zeta":1,"alpha":{"b":2.50,"a":[true,null,"x"]},"mid":-0.0}`

	v, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("Parse() kind = %s, want object", v.Kind())
	}
	keys := obj.Keys()
	if len(keys) != 3 || keys[0] != "zeta" || keys[1] != "alpha" || keys[2] != "mid" {
		t.Errorf("Keys() = %v, want [zeta alpha mid]", keys)
	}

	if got := mustMarshal(t, v); got != in {
		t.Errorf("Marshal(Parse(x)) = %s, want %s", got, in)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", io.ErrUnexpectedEOF},
		{`{"a":1} {"b":2}`, ErrTrailingData},
	}

	for _, tt := range tests {
		_, err := Parse([]byte(tt.input))
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}

	if _, err := Parse([]byte(`{"a":}`)); err == nil {
		t.Error("Parse() of malformed object should fail")
	}
}

func TestMarshalDoesNotEscapeHTML(t *testing.T) {
	v := MustParse(`{"text":"<b>Hull & shields</b>"}`)
	if got := mustMarshal(t, v); got != `{"text":"<b>Hull & shields</b>"}` {
		t.Errorf("Marshal() = %s", got)
	}
}

func TestObjectSetDeleteClone(t *testing.T) {
	obj := NewObject()
	obj.Set("a", String("1"))
	obj.Set("b", String("2"))
	obj.Set("a", String("3"))

	if got := mustMarshal(t, obj); got != `{"a":"3","b":"2"}` {
		t.Errorf("Set() existing key = %s, want {\"a\":\"3\",\"b\":\"2\"}", got)
	}

	clone := obj.Clone()
	clone.Delete("a")
	clone.Set("c", Bool(true))

	if got := mustMarshal(t, obj); got != `{"a":"3","b":"2"}` {
		t.Errorf("Clone() mutation leaked into original: %s", got)
	}
	if got := mustMarshal(t, clone); got != `{"b":"2","c":true}` {
		t.Errorf("Clone() after Delete/Set = %s", got)
	}
}

func TestDeepMergeNullOverrideIsIdentity(t *testing.T) {
	bases := []Value{
		MustParse(`{"a":1,"b":[1,2]}`),
		MustParse(`[1,{"x":2}]`),
		String("plain"),
		Null{},
	}

	for _, base := range bases {
		for _, override := range []Value{nil, Null{}} {
			got := DeepMerge(base, override)
			if !Equal(got, base) {
				t.Errorf("DeepMerge(%s, %v) = %s, want base", mustMarshal(t, base), override, mustMarshal(t, got))
			}
		}
	}
}

func TestDeepMergeObjects(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		override string
		expected string
	}{
		{
			name:     "disjoint keys union",
			base:     `{"a":1,"b":{"c":2}}`,
			override: `{"d":3,"e":[4]}`,
			expected: `{"a":1,"b":{"c":2},"d":3,"e":[4]}`,
		},
		{
			name:     "nested objects merge",
			base:     `{"name":"Hull","meta":{"short":"H","icon":"hull.svg"}}`,
			override: `{"name":"Casco","meta":{"short":"C"}}`,
			expected: `{"name":"Casco","meta":{"short":"C","icon":"hull.svg"}}`,
		},
		{
			name:     "scalar replaces composite",
			base:     `{"a":{"b":1}}`,
			override: `{"a":"flat"}`,
			expected: `{"a":"flat"}`,
		},
		{
			name:     "composite replaces scalar",
			base:     `{"a":"flat"}`,
			override: `{"a":{"b":1}}`,
			expected: `{"a":{"b":1}}`,
		},
		{
			name:     "null value overwrites",
			base:     `{"a":1}`,
			override: `{"a":null}`,
			expected: `{"a":null}`,
		},
	}

	for _, tt := range tests {
		got := DeepMerge(MustParse(tt.base), MustParse(tt.override))
		if s := mustMarshal(t, got); s != tt.expected {
			t.Errorf("%s: DeepMerge() = %s, want %s", tt.name, s, tt.expected)
		}
	}
}

func TestDeepMergeArrays(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		override string
		expected string
	}{
		{"shorter override keeps tail", `[1,2,3]`, `[9]`, `[9,2,3]`},
		{"equal length", `[1,2]`, `["a","b"]`, `["a","b"]`},
		{"longer override extends", `[1]`, `[7,8,9]`, `[7,8,9]`},
		{"composite positions merge", `[{"a":1,"b":2}]`, `[{"b":3}]`, `[{"a":1,"b":3}]`},
		{"empty override", `[1,2]`, `[]`, `[1,2]`},
	}

	for _, tt := range tests {
		base := MustParse(tt.base).(Array)
		got := DeepMerge(base, MustParse(tt.override))
		if s := mustMarshal(t, got); s != tt.expected {
			t.Errorf("%s: DeepMerge() = %s, want %s", tt.name, s, tt.expected)
		}
		override := MustParse(tt.override).(Array)
		if len(override) <= len(base) && len(got.(Array)) != len(base) {
			t.Errorf("%s: len = %d, want %d", tt.name, len(got.(Array)), len(base))
		}
	}
}

func TestDeepMergeDoesNotMutateInputs(t *testing.T) {
	base := MustParse(`{"a":{"b":1},"list":[{"x":1}]}`)
	override := MustParse(`{"a":{"c":2},"list":[{"y":2}]}`)

	DeepMerge(base, override)

	if got := mustMarshal(t, base); got != `{"a":{"b":1},"list":[{"x":1}]}` {
		t.Errorf("base mutated: %s", got)
	}
	if got := mustMarshal(t, override); got != `{"a":{"c":2},"list":[{"y":2}]}` {
		t.Errorf("override mutated: %s", got)
	}
}

func TestMergeByID(t *testing.T) {
	base := MustParse(`[
		{"id":"hull","name":"Hull","description":"Structure points"},
		{"name":"No id"},
		{"id":"shields","name":"Shields"},
		{"id":7,"name":"Seven"}
	]`).(Array)
	translations := MustParse(`[
		{"id":"shields","name":"Escudos (old)"},
		{"id":"hull","name":"Casco"},
		{"id":"shields","name":"Escudos"},
		{"id":"ghost","name":"Fantasma"},
		{"id":7,"name":"Siete"}
	]`).(Array)

	got := MergeByID(base, translations)

	expected := `[{"id":"hull","name":"Casco","description":"Structure points"},` +
		`{"name":"No id"},` +
		`{"id":"shields","name":"Escudos"},` +
		`{"id":7,"name":"Siete"}]`
	if s := mustMarshal(t, got); s != expected {
		t.Errorf("MergeByID() = %s, want %s", s, expected)
	}
	if len(got) != len(base) {
		t.Errorf("MergeByID() length = %d, want %d", len(got), len(base))
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		input string
		id    string
		ok    bool
	}{
		{`{"id":"reload"}`, "reload", true},
		{`{"id":""}`, "", false},
		{`{"id":0}`, "", false},
		{`{"id":12}`, "12", true},
		{`{"id":null}`, "", false},
		{`{"name":"x"}`, "", false},
		{`"reload"`, "", false},
	}

	for _, tt := range tests {
		id, ok := ID(MustParse(tt.input))
		if id != tt.id || ok != tt.ok {
			t.Errorf("ID(%s) = (%q, %v), want (%q, %v)", tt.input, id, ok, tt.id, tt.ok)
		}
	}
}

func TestEqualIgnoresKeyOrder(t *testing.T) {
	a := MustParse(`{"a":1,"b":[1.0,{"c":true}]}`)
	b := MustParse(`{"b":[1,{"c":true}],"a":1}`)
	if !Equal(a, b) {
		t.Error("Equal() should ignore key order and number formatting")
	}
	if Equal(a, MustParse(`{"a":1}`)) {
		t.Error("Equal() should detect missing keys")
	}
}

func TestGetStrings(t *testing.T) {
	obj := MustParse(`{"cards":["a",1,"b"],"flat":"x"}`).(*Object)

	got := obj.GetStrings("cards")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("GetStrings(cards) = %v, want [a b]", got)
	}
	if got := obj.GetStrings("flat"); got != nil {
		t.Errorf("GetStrings(flat) = %v, want nil", got)
	}
}
