// Package chaosrun emits a reference/perturbed pair of LAMMPS input decks and
// drives the engine over them one after another.
package chaosrun

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

const (
	// RunReference names the baseline run.
	RunReference = "reference"
	// RunPerturbed names the run with the velocity override.
	RunPerturbed = "perturbed"

	deckFilePerm = 0o644
)

// VelocityOverride sets the initial velocity of a particle group.
type VelocityOverride struct {
	Group string
	VX    float64
	VY    float64
	VZ    float64
}

// Line renders the override as a LAMMPS velocity command.
func (v VelocityOverride) Line() string {
	return fmt.Sprintf("velocity        %s set %s %s %s",
		v.Group, formatFloat(v.VX), formatFloat(v.VY), formatFloat(v.VZ))
}

// Deck holds the tokens that vary between the two input documents.
// Everything else comes from the shared template.
type Deck struct {
	Name      string
	InputFile string
	DumpFile  string
	Velocity  *VelocityOverride
}

// ReferenceDeck returns the deck for the baseline run.
func ReferenceDeck() Deck {
	return Deck{
		Name:      RunReference,
		InputFile: ReferenceInputFileName,
		DumpFile:  ReferenceDumpFileName,
	}
}

// PerturbedDeck returns the deck whose first particle starts at 0.500001 m/s.
func PerturbedDeck() Deck {
	return Deck{
		Name:      RunPerturbed,
		InputFile: PerturbedInputFileName,
		DumpFile:  PerturbedDumpFileName,
		Velocity:  &VelocityOverride{Group: "first", VX: 0.500001},
	}
}

// DefaultDecks returns the reference and perturbed decks, in run order.
func DefaultDecks() []Deck {
	return []Deck{ReferenceDeck(), PerturbedDeck()}
}

// Invocation returns the engine arguments that consume this deck.
func (d Deck) Invocation() Invocation {
	return Invocation{
		Name:     d.Name,
		Args:     []string{"-in", d.InputFile},
		DumpFile: d.DumpFile,
	}
}

// Invocations maps decks to engine invocations, preserving order.
func Invocations(decks []Deck) []Invocation {
	out := make([]Invocation, 0, len(decks))
	for _, d := range decks {
		out = append(out, d.Invocation())
	}

	return out
}

// Render returns the deck text with LF line endings.
func Render(d Deck) (string, error) {
	if strings.TrimSpace(d.DumpFile) == "" {
		return "", fmt.Errorf("deck %q: dump file is empty", d.Name)
	}

	tmpl, err := template.New("deck").Parse(deckTemplate)
	if err != nil {
		return "", fmt.Errorf("parse deck template: %w", err)
	}

	data := deckData{DumpFile: d.DumpFile}
	if d.Velocity != nil {
		data.VelocityLine = d.Velocity.Line()
	}

	var b bytes.Buffer
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render deck template: %w", err)
	}

	return strings.ReplaceAll(b.String(), "\r\n", "\n"), nil
}

// EmitConfigs writes each deck into dir, replacing any existing file, and
// returns the written paths.
func EmitConfigs(dir string, decks ...Deck) ([]string, error) {
	if len(decks) == 0 {
		decks = DefaultDecks()
	}

	paths := make([]string, 0, len(decks))
	for _, d := range decks {
		text, err := Render(d)
		if err != nil {
			return paths, err
		}

		path := filepath.Join(dir, d.InputFile)
		if err := os.WriteFile(path, []byte(text), deckFilePerm); err != nil {
			return paths, fmt.Errorf("%w: %s: %v", ErrWriteDeck, path, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type deckData struct {
	DumpFile     string
	VelocityLine string
}

var deckTemplate = `# --- Chaotic Granular Chain (Periodic Boundary) ---
units           si
atom_style      sphere
boundary        p p p
newton          off
comm_modify     vel yes

# --- Geometry ---
region          box block 0 1.0 -0.05 0.05 -0.05 0.05 units box
create_box      1 box
lattice         sc 0.010
region          chain block 0 100 0 1 0 1 units lattice
create_atoms    1 region chain

# --- Material ---
set             group all density 2500.0
set             group all diameter 0.010

# --- Interaction ---
pair_style      gran/hertz/history 1.0e8 0.0 0.0 0.0 0.5 0
pair_coeff      * *

# --- External Force ---
# Sinusoidal 1000 N drive on the first particle
group           first id 1
variable        omega equal 2*PI/0.05
variable        force equal 1000.0*sin(v_omega*time)

fix             external_force first addforce v_force 0 0

# --- Initial Conditions ---
{{- if .VelocityLine }}
{{ .VelocityLine }}
{{- end }}

# --- Integration ---
fix             1 all nve/sphere

# --- Output ---
timestep        0.000002
dump            1 all custom 2000 {{ .DumpFile }} id vx
dump_modify     1 format line "%d %.15e"
thermo          10000
run             5000000
`
