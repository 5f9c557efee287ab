package gamedata

import (
	"errors"
	"testing"

	"github.com/samdwyer/hexref/internal/jsonvalue"
)

func mustMap(t *testing.T, doc string) *AvailabilityMap {
	t.Helper()
	m, err := NewAvailabilityMap(jsonvalue.MustParse(doc))
	if err != nil {
		t.Fatalf("NewAvailabilityMap() error: %v", err)
	}
	return m
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	var (
		b   []byte
		err error
	)
	switch x := v.(type) {
	case jsonvalue.Value:
		b, err = jsonvalue.Marshal(x)
	case *AvailabilityMap:
		b, err = x.MarshalJSON()
	case *SourceMap:
		b, err = x.MarshalJSON()
	default:
		t.Fatalf("marshal: unsupported type %T", v)
	}
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	return string(b)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDecodeModulesConfig(t *testing.T) {
	doc := []byte(`{"modules":[
		{"id":"salvage","name":"Salvage Crews","description":"Scrap and repairs","path":"data/modules/salvage"},
		{"id":"void","name":"Void Patrol","path":"data/modules/void"}
	]}`)

	cfg, err := Decode[ModulesConfig](ModulesPath, doc)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(cfg.Modules) != 2 {
		t.Fatalf("Decode() modules = %d, want 2", len(cfg.Modules))
	}
	if got := cfg.Modules[0].AvailabilityPath(); got != "data/modules/salvage/availability.json" {
		t.Errorf("AvailabilityPath() = %q", got)
	}
	if cfg.Modules[1].Description != "" {
		t.Errorf("Description = %q, want empty", cfg.Modules[1].Description)
	}

	if _, err := Decode[ModulesConfig](ModulesPath, []byte(`{"modules":`)); err == nil {
		t.Error("Decode() of truncated document should fail")
	}
}

func TestModuleRegistry(t *testing.T) {
	registry := NewModuleRegistry([]Module{
		{ID: "salvage", Name: "Salvage Crews", Path: "data/modules/salvage"},
		{ID: "void", Name: "Void Patrol", Path: "data/modules/void"},
		{ID: "salvage", Name: "Duplicate", Path: "data/modules/other"},
	})

	if registry.Count() != 3 {
		t.Errorf("Count() = %d, want 3", registry.Count())
	}

	salvage := registry.GetByID("salvage")
	if salvage == nil {
		t.Fatal("GetByID(salvage) = nil")
	}
	if salvage.Name != "Salvage Crews" {
		t.Errorf("GetByID(salvage).Name = %q, want first descriptor", salvage.Name)
	}
	if registry.GetByID("missing") != nil {
		t.Error("GetByID(missing) should be nil")
	}

	empty := EmptyModuleRegistry()
	if empty.Count() != 0 {
		t.Errorf("EmptyModuleRegistry().Count() = %d, want 0", empty.Count())
	}
	if cfg := empty.Config(); cfg.Modules == nil {
		t.Error("Config().Modules should be an empty list, not nil")
	}
}

func TestNewAvailabilityMapRequiresObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"Pilot"`, `null`} {
		_, err := NewAvailabilityMap(jsonvalue.MustParse(doc))
		if !errors.Is(err, ErrNotObject) {
			t.Errorf("NewAvailabilityMap(%s) error = %v, want ErrNotObject", doc, err)
		}
	}
}

func TestMergeModuleAvailabilityEndToEnd(t *testing.T) {
	base := mustMap(t, `{"Pilot":{"_movesFile":"data/moves/pilot.json"}}`)
	module := mustMap(t, `{
		"Pilot":{"cards":["shield"]},
		"Gunner":{"_movesFile":"data/moves/gunner.json"}
	}`)

	merged, changes := MergeModuleAvailability(base, module, "salvage")

	want := `{"Pilot":{"_movesFile":"data/moves/pilot.json","cards":["shield"],"_movesFiles":["data/moves/pilot.json"]},` +
		`"Gunner":{"_movesFile":"data/moves/gunner.json"}}`
	if got := marshal(t, merged); got != want {
		t.Errorf("MergeModuleAvailability() = %s, want %s", got, want)
	}

	if len(changes) != 2 || changes[0].Added || !changes[1].Added || changes[1].Role != "Gunner" {
		t.Errorf("changes = %+v, want Pilot merged then Gunner added", changes)
	}
	for _, c := range changes {
		if c.Module != "salvage" {
			t.Errorf("change.Module = %q, want salvage", c.Module)
		}
	}
}

func TestMergeModuleAvailabilityAccumulatesMoveFiles(t *testing.T) {
	base := mustMap(t, `{"Pilot":{"label":"Pilot","_movesFile":"data/moves/pilot.json","cards":["boost","shield"]}}`)
	module := mustMap(t, `{"Pilot":{
		"label":"Ace Pilot",
		"_movesFile":"data/modules/salvage/moves/pilot.json",
		"_movesFiles":["data/moves/pilot.json","data/modules/salvage/moves/extra.json"],
		"cards":["shield","grapple"]
	}}`)

	merged, _ := MergeModuleAvailability(base, module, "salvage")
	pilot, ok := merged.Role("Pilot")
	if !ok {
		t.Fatal("Role(Pilot) missing after merge")
	}

	if got := pilot.MovesFile(); got != "data/moves/pilot.json" {
		t.Errorf("MovesFile() = %q, want the original singular path", got)
	}
	wantFiles := []string{
		"data/moves/pilot.json",
		"data/modules/salvage/moves/pilot.json",
		"data/modules/salvage/moves/extra.json",
	}
	if got := pilot.MovesFiles(); !equalStrings(got, wantFiles) {
		t.Errorf("MovesFiles() = %v, want %v", got, wantFiles)
	}
	if got := pilot.Cards(); !equalStrings(got, []string{"boost", "shield", "grapple"}) {
		t.Errorf("Cards() = %v, want [boost shield grapple]", got)
	}
	if got, _ := pilot.Fields.GetString("label"); got != "Ace Pilot" {
		t.Errorf("label = %q, want module value", got)
	}
}

func TestMergeModuleAvailabilitySequentialModules(t *testing.T) {
	base := mustMap(t, `{"Pilot":{"_movesFile":"data/moves/pilot.json"}}`)
	first := mustMap(t, `{"Pilot":{"_movesFile":"data/modules/a/pilot.json"}}`)
	second := mustMap(t, `{"Pilot":{"_movesFile":"data/modules/b/pilot.json"}}`)

	merged, _ := MergeModuleAvailability(base, first, "a")
	merged, _ = MergeModuleAvailability(merged, second, "b")

	pilot, _ := merged.Role("Pilot")
	want := []string{"data/moves/pilot.json", "data/modules/a/pilot.json", "data/modules/b/pilot.json"}
	if got := pilot.MovesFiles(); !equalStrings(got, want) {
		t.Errorf("MovesFiles() = %v, want %v", got, want)
	}
	if got := pilot.MovesFile(); got != "data/moves/pilot.json" {
		t.Errorf("MovesFile() = %q, want the original singular path", got)
	}
}

func TestMergeModuleAvailabilityWithoutFilesOrCards(t *testing.T) {
	base := mustMap(t, `{"Scout":{"label":"Scout","cards":[]}}`)
	module := mustMap(t, `{"Scout":{"speed":3}}`)

	merged, _ := MergeModuleAvailability(base, module, "m")
	if got := marshal(t, merged); got != `{"Scout":{"label":"Scout","speed":3}}` {
		t.Errorf("MergeModuleAvailability() = %s", got)
	}
}

func TestMergeModuleAvailabilityDoesNotMutateInputs(t *testing.T) {
	baseDoc := `{"Pilot":{"_movesFile":"data/moves/pilot.json","cards":["boost"]}}`
	moduleDoc := `{"Pilot":{"cards":["shield"],"_movesFile":"data/modules/x/pilot.json"},"Gunner":{}}`
	base := mustMap(t, baseDoc)
	module := mustMap(t, moduleDoc)

	MergeModuleAvailability(base, module, "x")

	if got := marshal(t, base); got != baseDoc {
		t.Errorf("base mutated: %s", got)
	}
	if got := marshal(t, module); got != moduleDoc {
		t.Errorf("module mutated: %s", got)
	}
}

func TestMoveFiles(t *testing.T) {
	m := mustMap(t, `{
		"Pilot":{"_movesFile":"data/moves/pilot.json","_movesFiles":["data/moves/pilot.json","data/modules/s/pilot.json"]},
		"Lord Commander":{"_movesFile":"data/moves/lord-commander.json"},
		"Copilot":{"_movesFile":"data/moves/pilot.json"},
		"Engineer":{"_movesFiles":["data/modules/s/engineer.json"]},
		"Passenger":{}
	}`)

	want := []MoveFile{
		{Path: "data/moves/pilot.json", Role: "Pilot", Name: "PilotMoves"},
		{Path: "data/modules/s/pilot.json", Role: "Pilot", Name: "PilotModuleMoves1"},
		{Path: "data/moves/lord-commander.json", Role: "Lord Commander", Name: "LordCommanderMoves"},
		{Path: "data/modules/s/engineer.json", Role: "Engineer", Name: "EngineerModuleMoves0"},
	}

	got := m.MoveFiles()
	if len(got) != len(want) {
		t.Fatalf("MoveFiles() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MoveFiles()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPublishedNames(t *testing.T) {
	tests := []struct {
		role    string
		index   int
		primary string
		module  string
	}{
		{"Pilot", 0, "PilotMoves", "PilotModuleMoves0"},
		{"lord commander", 2, "LordCommanderMoves", "LordCommanderModuleMoves2"},
		{"Deck  Hand", 1, "DeckHandMoves", "DeckHandModuleMoves1"},
		{"éclaireur", 0, "ÉclaireurMoves", "ÉclaireurModuleMoves0"},
	}

	for _, tt := range tests {
		if got := PublishedName(tt.role); got != tt.primary {
			t.Errorf("PublishedName(%q) = %q, want %q", tt.role, got, tt.primary)
		}
		if got := ModuleMovesName(tt.role, tt.index); got != tt.module {
			t.Errorf("ModuleMovesName(%q, %d) = %q, want %q", tt.role, tt.index, got, tt.module)
		}
	}
}

func TestNormalizeMove(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`{"id":"reload"}`, `{"id":"reload","category":"Moves"}`},
		{`{"id":"reload","category":null}`, `{"id":"reload","category":"Moves"}`},
		{`{"category":"","id":"reload"}`, `{"category":"Moves","id":"reload"}`},
		{`{"id":"evade","category":"Reactions"}`, `{"id":"evade","category":"Reactions"}`},
	}

	for _, tt := range tests {
		input := jsonvalue.MustParse(tt.input).(*jsonvalue.Object)
		got := NormalizeMove(input)
		if s := marshal(t, got); s != tt.expected {
			t.Errorf("NormalizeMove(%s) = %s, want %s", tt.input, s, tt.expected)
		}
		if s := marshal(t, input); s != tt.input {
			t.Errorf("NormalizeMove(%s) mutated input to %s", tt.input, s)
		}
	}
}

func TestSourceMapKeepsEveryContribution(t *testing.T) {
	sources := NewSourceMap()
	sources.Add("reload", MoveSource{File: "data/moves/gunner.json", Role: "Gunner"})
	sources.Add("evade", MoveSource{File: "data/moves/pilot.json", Role: "Pilot"})
	sources.Add("reload", MoveSource{File: "data/modules/salvage/moves/engineer.json", Role: "Engineer"})

	if got := sources.IDs(); !equalStrings(got, []string{"reload", "evade"}) {
		t.Errorf("IDs() = %v, want [reload evade]", got)
	}
	if got := sources.Sources("reload"); len(got) != 2 || got[1].Role != "Engineer" {
		t.Errorf("Sources(reload) = %+v, want both files", got)
	}
	if got := sources.Collisions(); !equalStrings(got, []string{"reload"}) {
		t.Errorf("Collisions() = %v, want [reload]", got)
	}

	want := `{"reload":[{"file":"data/moves/gunner.json","role":"Gunner"},` +
		`{"file":"data/modules/salvage/moves/engineer.json","role":"Engineer"}],` +
		`"evade":[{"file":"data/moves/pilot.json","role":"Pilot"}]}`
	if got := marshal(t, sources); got != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}
