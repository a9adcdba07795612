package visualizer

import (
	"bytes"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"

	"github.com/athapong/wikigraph/pkg/graph"
)

// Fixed palette by entity type. The root node, when the caller declared no
// type, falls back to the neutral color.
var palette = map[graph.EntityType]string{
	graph.EntityPerson:       "#1f77b4",
	graph.EntityOrganization: "#ff7f0e",
	graph.EntityLocation:     "#2ca02c",
}

const defaultColor = "#7f7f7f"

// vizNode is one visual node: id is the canonical title, description the
// derived display label.
type vizNode struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Color       string `json:"color"`
}

type vizEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

type vizGraph struct {
	Query string    `json:"query"`
	Nodes []vizNode `json:"nodes"`
	Edges []vizEdge `json:"edges"`
}

// The HTML template for the D3.js force-directed rendering.
const d3Template = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Relationship Graph: {{.Query}}</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>
        body {
            margin: 0;
            font-family: Arial, sans-serif;
        }
        #graph {
            width: 100%;
            height: 100vh;
            background-color: #f5f5f5;
        }
        .node {
            stroke: #fff;
            stroke-width: 1.5px;
        }
        .link {
            stroke: #999;
            stroke-opacity: 0.6;
        }
        .node-label {
            font-size: 10px;
            pointer-events: none;
        }
        .controls {
            position: absolute;
            top: 10px;
            left: 10px;
            background-color: rgba(255,255,255,0.8);
            padding: 10px;
            border-radius: 5px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
    </style>
</head>
<body>
    <div id="graph"></div>
    <div class="controls">
        <h3>{{.Query}}</h3>
        <p>Nodes: {{.NodeCount}}, Edges: {{.EdgeCount}}</p>
    </div>

    <script>
        const graphData = {{.GraphData}};

        const simulation = d3.forceSimulation(graphData.nodes)
            .force("link", d3.forceLink(graphData.edges).id(d => d.id).distance(120))
            .force("charge", d3.forceManyBody().strength(-300))
            .force("center", d3.forceCenter(window.innerWidth / 2, window.innerHeight / 2));

        const svg = d3.select("#graph")
            .append("svg")
            .attr("width", "100%")
            .attr("height", "100%")
            .call(d3.zoom().on("zoom", (event) => {
                g.attr("transform", event.transform);
            }));

        const g = svg.append("g");

        const link = g.append("g")
            .selectAll("line")
            .data(graphData.edges)
            .enter()
            .append("line")
            .attr("class", "link");

        const node = g.append("g")
            .selectAll("circle")
            .data(graphData.nodes)
            .enter()
            .append("circle")
            .attr("class", "node")
            .attr("r", 8)
            .attr("fill", d => d.color)
            .call(d3.drag()
                .on("start", dragstarted)
                .on("drag", dragged)
                .on("end", dragended));

        const label = g.append("g")
            .selectAll("text")
            .data(graphData.nodes)
            .enter()
            .append("text")
            .attr("class", "node-label")
            .attr("dx", 12)
            .attr("dy", ".35em")
            .text(d => d.id);

        node.append("title")
            .text(d => d.description ? d.id + ": " + d.description : d.id);

        simulation.on("tick", () => {
            link
                .attr("x1", d => d.source.x)
                .attr("y1", d => d.source.y)
                .attr("x2", d => d.target.x)
                .attr("y2", d => d.target.y);

            node
                .attr("cx", d => d.x)
                .attr("cy", d => d.y);

            label
                .attr("x", d => d.x)
                .attr("y", d => d.y);
        });

        function dragstarted(event, d) {
            if (!event.active) simulation.alphaTarget(0.3).restart();
            d.fx = d.x;
            d.fy = d.y;
        }

        function dragged(event, d) {
            d.fx = event.x;
            d.fy = event.y;
        }

        function dragended(event, d) {
            if (!event.active) simulation.alphaTarget(0);
            d.fx = null;
            d.fy = null;
        }
    </script>
</body>
</html>
`

// D3Visualizer renders relationship graphs as standalone D3.js HTML pages.
type D3Visualizer struct {
	outputPath string
}

// NewD3Visualizer creates a visualizer writing to outputPath.
func NewD3Visualizer(outputPath string) *D3Visualizer {
	return &D3Visualizer{
		outputPath: outputPath,
	}
}

// Visualize renders one visual node per graph node (colored by entity type,
// tooltip from the derived description label) and one line per stored edge.
func (v *D3Visualizer) Visualize(g *graph.RelationshipGraph) error {
	dir := filepath.Dir(v.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data := vizGraph{Query: g.Query}
	for _, node := range g.Nodes() {
		color, ok := palette[node.Type]
		if !ok {
			color = defaultColor
		}

		description := ""
		if node.Article != nil {
			description = DescriptionLabel(node.Article.Summary)
		}

		data.Nodes = append(data.Nodes, vizNode{
			ID:          node.Title(),
			Description: description,
			Type:        string(node.Type),
			Color:       color,
		})
	}
	for _, edge := range g.Edges() {
		data.Edges = append(data.Edges, vizEdge(edge))
	}

	graphData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tmpl, err := template.New("d3").Parse(d3Template)
	if err != nil {
		return err
	}

	params := struct {
		Query     string
		GraphData template.JS
		NodeCount int
		EdgeCount int
	}{
		Query:     g.Query,
		GraphData: template.JS(graphData),
		NodeCount: len(data.Nodes),
		EdgeCount: len(data.Edges),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return err
	}

	return os.WriteFile(v.outputPath, buf.Bytes(), 0644)
}
