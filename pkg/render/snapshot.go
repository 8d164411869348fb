package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/osint-hub/backend/pkg/common"
	"github.com/osint-hub/backend/pkg/graph"
)

const (
	nodeRadius   = 28.0
	margin       = 80.0
	maxCanvas    = 4096
	minCanvas    = 200
	labelOffset  = 16.0
	edgeWidth    = 2.0
	outlineWidth = 3.0
)

var (
	background = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	edgeColor  = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	labelColor = color.NRGBA{R: 0xf1, G: 0xf5, B: 0xf9, A: 0xff}
)

var typeColors = map[common.EntityType]color.NRGBA{
	common.EntityTypePerson:       {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	common.EntityTypeGroup:        {R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	common.EntityTypeOrganization: {R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
	common.EntityTypeWebsite:      {R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff},
	common.EntityTypeOther:        {R: 0x64, G: 0x74, B: 0x8b, A: 0xff},
}

// NodeColor returns the fill colour of an entity type.
func NodeColor(t common.EntityType) color.NRGBA {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return typeColors[common.EntityTypeOther]
}

// Snapshot draws g as a PNG. Node coordinates are translated so the whole
// graph fits the canvas; parallel edges are drawn as quadratic curves bent
// by their curvature.
func Snapshot(g graph.Graph) ([]byte, error) {
	minX, minY, maxX, maxY := bounds(g.Nodes)
	width := clampCanvas(maxX - minX + 2*margin)
	height := clampCanvas(maxY - minY + 2*margin)

	scale := 1.0
	if w := maxX - minX + 2*margin; w > maxCanvas {
		scale = math.Min(scale, maxCanvas/w)
	}
	if h := maxY - minY + 2*margin; h > maxCanvas {
		scale = math.Min(scale, maxCanvas/h)
	}

	project := func(p graph.Position) (float64, float64) {
		return (p.X-minX)*scale + margin, (p.Y-minY)*scale + margin
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	byID := make(map[string]graph.Position, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n.Position
	}

	dc.SetColor(edgeColor)
	dc.SetLineWidth(edgeWidth)
	for _, e := range g.Edges {
		src, ok := byID[e.SourceID]
		if !ok {
			continue
		}
		dst, ok := byID[e.TargetID]
		if !ok {
			continue
		}
		x1, y1 := project(src)
		x2, y2 := project(dst)

		cx, cy := ControlPoint(x1, y1, x2, y2, e.Curvature)
		dc.MoveTo(x1, y1)
		dc.QuadraticTo(cx, cy, x2, y2)
		dc.Stroke()

		if e.Label != "" {
			// the curve passes through the midpoint of its control polygon
			lx := 0.25*x1 + 0.5*cx + 0.25*x2
			ly := 0.25*y1 + 0.5*cy + 0.25*y2
			dc.DrawStringAnchored(e.Label, lx, ly, 0.5, 0.5)
		}
	}

	for _, n := range g.Nodes {
		x, y := project(n.Position)
		dc.DrawCircle(x, y, nodeRadius)
		dc.SetColor(NodeColor(n.Type))
		dc.FillPreserve()
		dc.SetColor(labelColor)
		dc.SetLineWidth(outlineWidth)
		dc.Stroke()

		dc.DrawStringAnchored(n.Label, x, y+nodeRadius+labelOffset, 0.5, 0.5)
	}

	var out bytes.Buffer
	if err := dc.EncodePNG(&out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

// ControlPoint returns the quadratic control point of an edge from (x1,y1)
// to (x2,y2). The point is offset from the midpoint along the normal by
// curvature times the edge length; a nil curvature gives a straight line.
func ControlPoint(x1, y1, x2, y2 float64, curvature *float64) (float64, float64) {
	mx, my := (x1+x2)/2, (y1+y2)/2
	if curvature == nil {
		return mx, my
	}
	dx, dy := x2-x1, y2-y1
	return mx - dy**curvature, my + dx**curvature
}

func bounds(nodes []graph.Node) (minX, minY, maxX, maxY float64) {
	if len(nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X)
		maxY = math.Max(maxY, n.Position.Y)
	}
	return minX, minY, maxX, maxY
}

func clampCanvas(v float64) int {
	return int(math.Max(minCanvas, math.Min(maxCanvas, math.Ceil(v))))
}
