// Package visualization renders the signal phase cycle as a Graphviz graph
package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/traffix/pkg/core"
)

// DOTGenerator generates Graphviz DOT format representations of the phase cycle
type DOTGenerator struct {
	cfg     core.Config
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowDurations   bool
	ShowPreemption  bool
	RankDirection   string // "TB", "LR", "BT", "RL"
	NodeShape       string
	PreemptionShape string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowDurations:   true,
		ShowPreemption:  false,
		RankDirection:   "LR",
		NodeShape:       "box",
		PreemptionShape: "octagon",
	}
}

// NewDOTGenerator creates a new DOT generator for the cycle configured by cfg
func NewDOTGenerator(cfg core.Config, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		cfg:     cfg,
		options: opts,
	}
}

// Generate creates a DOT representation of the phase cycle
func (g *DOTGenerator) Generate() (string, error) {
	if err := g.cfg.Validate(); err != nil {
		return "", fmt.Errorf("failed to generate phases: %w", err)
	}

	var dot strings.Builder

	dot.WriteString("digraph PhaseCycle {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generatePhases(&dot)
	g.generateTransitions(&dot)
	if g.options.ShowPreemption {
		g.generatePreemption(&dot)
	}

	dot.WriteString("}\n")

	return dot.String(), nil
}

func (g *DOTGenerator) generatePhases(dot *strings.Builder) {
	dot.WriteString("  // Phases\n")

	for _, phase := range core.Phases() {
		label := phase.String()
		if g.options.ShowDurations {
			label += fmt.Sprintf("\\n%s", phase.Duration(g.cfg))
		}

		fillColor := "lightyellow"
		if !phase.IsYellow() {
			fillColor = "palegreen"
		}
		if phase == core.NGreen {
			fillColor = "lightgreen"
			label += "\\n(initial)"
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [style=\"filled\" fillcolor=%s label=\"%s\"];\n",
			phase, fillColor, label))
	}
	dot.WriteString("\n")
}

func (g *DOTGenerator) generateTransitions(dot *strings.Builder) {
	dot.WriteString("  // Transitions\n")

	for _, phase := range core.Phases() {
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", phase, phase.Next()))
	}
}

// generatePreemption adds one node per approach for the emergency window,
// each handing off to that approach's yellow phase
func (g *DOTGenerator) generatePreemption(dot *strings.Builder) {
	dot.WriteString("\n  // Preemption\n")

	for _, dir := range core.Directions {
		node := "PREEMPT_" + dir.Short()
		label := fmt.Sprintf("%s\\n%s green", node, dir.Bound())
		if g.options.ShowDurations {
			label += fmt.Sprintf("\\n%s", g.cfg.EmergencyDuration)
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [shape=%s style=\"filled\" fillcolor=lightcoral label=\"%s\"];\n",
			node, g.options.PreemptionShape, label))
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [style=dashed label=\"handoff\"];\n",
			node, core.YellowPhase(dir)))
	}
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// SVGGenerator generates SVG representations by calling Graphviz
type SVGGenerator struct {
	dotGenerator *DOTGenerator
}

// NewSVGGenerator creates a new SVG generator
func NewSVGGenerator(cfg core.Config, options ...DOTOptions) *SVGGenerator {
	return &SVGGenerator{
		dotGenerator: NewDOTGenerator(cfg, options...),
	}
}

// Generate creates an SVG representation of the phase cycle
func (g *SVGGenerator) Generate() (string, error) {
	dotContent, err := g.dotGenerator.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}

// GenerateSVG creates an SVG representation of the phase cycle
func (g *DOTGenerator) GenerateSVG() (string, error) {
	svgGen := &SVGGenerator{dotGenerator: g}
	return svgGen.Generate()
}
