package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Label names a stream inside a filter graph: either an input pad like
// "0:v" or an intermediate label minted by the graph.
type Label string

// InputVideo labels the video stream of the i-th -i input.
func InputVideo(i int) Label {
	return Label(fmt.Sprintf("%d:v", i))
}

// InputAudio labels the audio stream of the i-th -i input.
func InputAudio(i int) Label {
	return Label(fmt.Sprintf("%d:a", i))
}

// Graph builds a filter graph as typed nodes with named input and output
// handles. Nodes are linearized into the -filter_complex string only at
// invocation time, so reordering or inserting nodes never breaks labels
// the way index-keyed string concatenation does.
type Graph struct {
	nodes []graphNode
	seq   int
}

type graphNode struct {
	inputs  []Label
	filter  string
	outputs []Label
}

func NewGraph() *Graph {
	return &Graph{}
}

// NewLabel mints a graph-unique intermediate label with the given prefix.
func (g *Graph) NewLabel(prefix string) Label {
	g.seq++
	return Label(fmt.Sprintf("%s%d", prefix, g.seq))
}

// Node appends a filter node wired to the given labels.
func (g *Graph) Node(inputs []Label, filter string, outputs []Label) {
	g.nodes = append(g.nodes, graphNode{inputs: inputs, filter: filter, outputs: outputs})
}

// Source appends a generator node (no inputs) and returns its output label.
func (g *Graph) Source(filter, prefix string) Label {
	out := g.NewLabel(prefix)
	g.Node(nil, filter, []Label{out})
	return out
}

// Chain appends a single-input single-output node and returns its output
// label — the common case for scale/trim/volume chains.
func (g *Graph) Chain(in Label, filter, prefix string) Label {
	out := g.NewLabel(prefix)
	g.Node([]Label{in}, filter, []Label{out})
	return out
}

// Empty reports whether no nodes were added.
func (g *Graph) Empty() bool {
	return len(g.nodes) == 0
}

// String linearizes the graph into the -filter_complex argument.
func (g *Graph) String() string {
	parts := make([]string, 0, len(g.nodes))
	for _, n := range g.nodes {
		var sb strings.Builder
		for _, in := range n.inputs {
			sb.WriteString("[" + string(in) + "]")
		}
		sb.WriteString(n.filter)
		for _, out := range n.outputs {
			sb.WriteString("[" + string(out) + "]")
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ";")
}

// Map returns the -map form of a graph label.
func (g *Graph) Map(label Label) string {
	return "[" + string(label) + "]"
}

// seconds formats a millisecond duration for filter expressions.
func seconds(ms int) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}

// ffColor converts an editor hex color (#RRGGBB or #RRGGBBAA) to the
// encoder's 0x color syntax. Named colors pass through untouched.
func ffColor(c string) string {
	if strings.HasPrefix(c, "#") {
		return "0x" + strings.ToLower(strings.TrimPrefix(c, "#"))
	}
	return c
}

// escapeText escapes characters the drawtext filter treats specially.
func escapeText(text string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(text)
}
