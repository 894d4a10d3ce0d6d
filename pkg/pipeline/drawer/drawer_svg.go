package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	colors "gopkg.in/go-playground/colors.v1"

	"github.com/askiada/go-agent-pipeline/internal/store"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/measure"
)

// SVGDrawer is a drawer that renders the agent chain as a DOT file suitable
// for Graphviz SVG output. Steps are coloured by their average measured
// duration, slowest in red.
type SVGDrawer struct {
	graph    graph.Graph[string, string]
	store    store.CustomStore[string, string]
	steps    map[string]struct{}
	fileName string
}

// NewSVGDrawer creates a new SVG drawer writing to fileName.
func NewSVGDrawer(fileName string) *SVGDrawer {
	st := store.NewMemoryStore[string, string]()

	return &SVGDrawer{
		fileName: fileName,
		store:    st,
		graph:    graph.NewWithStore(graph.StringHash, st, graph.Directed()),
		steps:    make(map[string]struct{}),
	}
}

// AddStep adds a step to the chain graph. Adding the same step twice is
// not an error.
func (d *SVGDrawer) AddStep(name string) error {
	if _, ok := d.steps[name]; ok {
		return nil
	}

	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	d.steps[name] = struct{}{}

	return nil
}

// AddLink adds a link between a parent step and its child step.
func (d *SVGDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// SetTotalTime annotates a step with the total run duration.
func (d *SVGDrawer) SetTotalTime(stepName string, totalDuration time.Duration) error {
	if _, ok := d.steps[stepName]; !ok {
		return errors.Errorf("unknown step %s", stepName)
	}

	d.store.UpdateVertex(stepName, func(p *graph.VertexProperties) {
		if p.Attributes == nil {
			p.Attributes = map[string]string{}
		}
		p.Attributes["xlabel"] = totalDuration.String()
	})

	return nil
}

const maxRGB = 240

// AddMeasure annotates every measured step with its average duration and a
// colour scaled from blue (fastest) to red (slowest).
func (d *SVGDrawer) AddMeasure(msr measure.Measure) error {
	all := msr.AllMetrics()

	durations := make([]time.Duration, 0, len(all))
	for _, mt := range all {
		if mt.Count() == 0 {
			continue
		}
		durations = append(durations, mt.AVGDuration())
	}

	if len(durations) == 0 {
		return nil
	}

	sort.Slice(durations, func(i, j int) bool {
		return durations[i] < durations[j]
	})

	minValue := durations[0]
	maxValue := durations[len(durations)-1]

	for name, mt := range all {
		if mt.Count() == 0 {
			continue
		}

		avg := mt.AVGDuration()

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := uint8(maxRGB * fraction)
		blue := uint8(maxRGB - maxRGB*fraction)

		stepColor, err := colors.RGB(red, 0, blue)
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		hex := stepColor.ToHEX().String()

		d.store.UpdateVertex(name, func(p *graph.VertexProperties) {
			if p.Attributes == nil {
				p.Attributes = map[string]string{}
			}
			p.Attributes["xlabel"] = avg.String()
			p.Attributes["color"] = hex
			p.Attributes["fontcolor"] = hex
		})
	}

	return nil
}

// Draw creates a DOT file with the chain graph.
func (d *SVGDrawer) Draw() error {
	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render chain graph to %s", d.fileName)
	}

	return nil
}

const dotTemplate = `strict {{.GraphType}} {
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot[K comparable, T any](g graph.Graph[K, T], wrt io.Writer) error {
	desc, err := generateDOT(g)
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

func generateDOT[K comparable, T any](gra graph.Graph[K, T]) (description, error) {
	desc := description{
		GraphType:    "graph",
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)

		if xlabel, ok := sourceProperties.Attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceProperties.Attributes, "xlabel")
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		for adjacency, edge := range adjacencies {
			stmt := statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*SVGDrawer)(nil)
