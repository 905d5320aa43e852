package chaosrun

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderUsesLineFeedsOnly(t *testing.T) {
	for _, d := range DefaultDecks() {
		text, err := Render(d)
		if err != nil {
			t.Fatalf("render %s: %v", d.Name, err)
		}
		if strings.Contains(text, "\r") {
			t.Fatalf("%s deck contains carriage return", d.Name)
		}
		if !strings.HasSuffix(text, "\n") {
			t.Fatalf("%s deck does not end with a newline", d.Name)
		}
	}
}

func TestDecksDifferOnlyInPerturbationAndDump(t *testing.T) {
	ref, err := Render(ReferenceDeck())
	if err != nil {
		t.Fatalf("render reference: %v", err)
	}
	pert, err := Render(PerturbedDeck())
	if err != nil {
		t.Fatalf("render perturbed: %v", err)
	}

	if strings.Contains(ref, "velocity ") {
		t.Fatalf("reference deck must not override velocity:\n%s", ref)
	}

	var (
		filtered  []string
		overrides []string
	)
	for _, line := range strings.Split(pert, "\n") {
		if strings.HasPrefix(line, "velocity ") {
			overrides = append(overrides, line)
			continue
		}
		filtered = append(filtered, line)
	}
	if len(overrides) != 1 {
		t.Fatalf("expected one velocity line, got %q", overrides)
	}
	if overrides[0] != "velocity        first set 0.500001 0 0" {
		t.Fatalf("unexpected velocity line: %q", overrides[0])
	}

	refLines := strings.Split(ref, "\n")
	if len(refLines) != len(filtered) {
		t.Fatalf("line count mismatch: reference %d, perturbed without override %d", len(refLines), len(filtered))
	}

	diffs := 0
	for i := range refLines {
		if refLines[i] == filtered[i] {
			continue
		}
		diffs++
		if !strings.HasPrefix(refLines[i], "dump ") {
			t.Fatalf("unexpected difference at line %d: %q vs %q", i+1, refLines[i], filtered[i])
		}
		if strings.ReplaceAll(filtered[i], PerturbedDumpFileName, ReferenceDumpFileName) != refLines[i] {
			t.Fatalf("dump lines differ beyond the file name: %q vs %q", refLines[i], filtered[i])
		}
	}
	if diffs != 1 {
		t.Fatalf("expected exactly one differing line, got %d", diffs)
	}
}

func TestDecksShareIntegrationSettings(t *testing.T) {
	for _, d := range DefaultDecks() {
		text, err := Render(d)
		if err != nil {
			t.Fatalf("render %s: %v", d.Name, err)
		}
		for _, want := range []string{
			"fix             1 all nve/sphere",
			"timestep        0.000002",
			"run             5000000",
			"dump            1 all custom 2000 " + d.DumpFile + " id vx",
			`dump_modify     1 format line "%d %.15e"`,
		} {
			if !strings.Contains(text, want) {
				t.Fatalf("%s deck missing %q", d.Name, want)
			}
		}
	}
}

func TestRenderRequiresDumpFile(t *testing.T) {
	if _, err := Render(Deck{Name: "broken", InputFile: "in.broken"}); err == nil {
		t.Fatal("expected error for empty dump file")
	}
}

func TestRenderTemplateErrors(t *testing.T) {
	original := deckTemplate
	t.Cleanup(func() { deckTemplate = original })

	deckTemplate = "{{"
	if _, err := Render(ReferenceDeck()); err == nil {
		t.Fatal("expected parse error")
	}

	deckTemplate = "{{ call .DumpFile }}"
	if _, err := Render(ReferenceDeck()); err == nil {
		t.Fatal("expected execute error")
	}
}

func TestVelocityOverrideLine(t *testing.T) {
	tests := []struct {
		name     string
		v        VelocityOverride
		expected string
	}{
		{
			name:     "x only",
			v:        VelocityOverride{Group: "first", VX: 0.500001},
			expected: "velocity        first set 0.500001 0 0",
		},
		{
			name:     "all components",
			v:        VelocityOverride{Group: "all", VX: 1, VY: -0.25, VZ: 1e-9},
			expected: "velocity        all set 1 -0.25 1e-09",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Line(); got != tt.expected {
				t.Errorf("Line() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEmitConfigsWritesBothDecks(t *testing.T) {
	dir := t.TempDir()

	paths, err := EmitConfigs(dir)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	want := []string{
		filepath.Join(dir, ReferenceInputFileName),
		filepath.Join(dir, PerturbedInputFileName),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for i, d := range DefaultDecks() {
		if paths[i] != want[i] {
			t.Fatalf("path %d = %s, want %s", i, paths[i], want[i])
		}
		data, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatalf("read %s: %v", paths[i], err)
		}
		expected, err := Render(d)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if string(data) != expected {
			t.Fatalf("%s content mismatch", paths[i])
		}
	}
}

func TestEmitConfigsOverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	stale := strings.Repeat("stale line\r\n", 500)
	for _, name := range []string{ReferenceInputFileName, PerturbedInputFileName} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(stale), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	if _, err := EmitConfigs(dir); err != nil {
		t.Fatalf("emit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ReferenceInputFileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Fatal("old content survived the rewrite")
	}
}

func TestEmitConfigsIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	read := func() map[string]string {
		out := map[string]string{}
		for _, name := range []string{ReferenceInputFileName, PerturbedInputFileName} {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("read %s: %v", name, err)
			}
			out[name] = string(data)
		}
		return out
	}

	if _, err := EmitConfigs(dir); err != nil {
		t.Fatalf("first emit: %v", err)
	}
	first := read()
	if _, err := EmitConfigs(dir); err != nil {
		t.Fatalf("second emit: %v", err)
	}
	second := read()

	for name := range first {
		if first[name] != second[name] {
			t.Fatalf("%s changed between runs", name)
		}
	}
}

func TestEmitConfigsWriteError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := EmitConfigs(dir)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, ErrWriteDeck) {
		t.Fatalf("expected ErrWriteDeck, got %v", err)
	}
}

func TestInvocations(t *testing.T) {
	invs := Invocations(DefaultDecks())
	if len(invs) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(invs))
	}
	if invs[0].Name != RunReference || strings.Join(invs[0].Args, " ") != "-in in.ref_chaos" {
		t.Fatalf("unexpected reference invocation: %+v", invs[0])
	}
	if invs[1].Name != RunPerturbed || strings.Join(invs[1].Args, " ") != "-in in.pert_chaos" {
		t.Fatalf("unexpected perturbed invocation: %+v", invs[1])
	}
	if invs[0].DumpFile != ReferenceDumpFileName || invs[1].DumpFile != PerturbedDumpFileName {
		t.Fatalf("unexpected dump files: %s, %s", invs[0].DumpFile, invs[1].DumpFile)
	}
}
