package views

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folioadmin/internal/client"
	"folioadmin/internal/domain"
	"folioadmin/internal/ui/coordinator"
	"folioadmin/internal/ui/layout"
)

const (
	// TileHeight is the height of a tile including its border
	TileHeight = 4
	// MinTileWidth keeps labels readable on narrow terminals
	MinTileWidth = 14

	KindGrid  = "grid"
	KindTile  = "tile"
	KindLabel = "label"
	KindThumb = "img"
)

// BuildGrid creates the grid node and one tile per photo, in page order.
// Each tile has a label child and a thumbnail child.
func BuildGrid(photos []domain.Photo) (*layout.Node, []*layout.Node) {
	grid := layout.NewNode(KindGrid)
	tiles := make([]*layout.Node, 0, len(photos))
	for _, p := range photos {
		tile := grid.Append(layout.NewNode(KindTile))
		tile.SetAttr(client.TileIDAttr, strconv.Itoa(p.ID))
		tile.Append(layout.NewNode(KindLabel))
		thumb := tile.Append(layout.NewNode(KindThumb))
		thumb.SetAttr("src", p.Path)
		tiles = append(tiles, tile)
	}
	return grid, tiles
}

// GridRenderer lays out and draws the tile grid
type GridRenderer struct {
	styles *Styles
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles}
}

// Columns returns how many tiles fit in width, capped at want
func Columns(width, want int) int {
	if want < 1 {
		want = 1
	}
	fit := width / MinTileWidth
	if fit < 1 {
		fit = 1
	}
	if fit < want {
		return fit
	}
	return want
}

// Arrange assigns screen bounds to the grid and its tiles so that the row
// holding cursor is visible. Tiles outside the visible rows get empty
// bounds and cannot be hit. It returns the row offset to use next time.
func (g *GridRenderer) Arrange(grid *layout.Node, area layout.Rect, cols, cursor, rowOffset int) int {
	grid.Bounds = area
	tiles := grid.Children
	if cols < 1 {
		cols = 1
	}

	visibleRows := area.H / TileHeight
	if visibleRows < 1 {
		visibleRows = 1
	}
	if cursor >= 0 {
		row := cursor / cols
		if row < rowOffset {
			rowOffset = row
		} else if row >= rowOffset+visibleRows {
			rowOffset = row - visibleRows + 1
		}
	}
	totalRows := (len(tiles) + cols - 1) / cols
	if rowOffset > totalRows-visibleRows {
		rowOffset = totalRows - visibleRows
	}
	if rowOffset < 0 {
		rowOffset = 0
	}

	tileW := area.W / cols
	for i, tile := range tiles {
		row, col := i/cols, i%cols
		if row < rowOffset || row >= rowOffset+visibleRows {
			setBounds(tile, layout.Rect{})
			continue
		}
		r := layout.Rect{
			X: area.X + col*tileW,
			Y: area.Y + (row-rowOffset)*TileHeight,
			W: tileW,
			H: TileHeight,
		}
		tile.Bounds = r
		// children sit inside the border, one line each
		for j, child := range tile.Children {
			child.Bounds = layout.Rect{X: r.X + 1, Y: r.Y + 1 + j, W: r.W - 2, H: 1}
		}
	}
	return rowOffset
}

func setBounds(n *layout.Node, r layout.Rect) {
	n.Walk(func(c *layout.Node) { c.Bounds = r })
}

// Render draws the visible tiles row by row
func (g *GridRenderer) Render(grid *layout.Node, cursor int) string {
	var rows []string
	var current []string
	currentY := -1

	for i, tile := range grid.Children {
		if tile.Bounds.W == 0 {
			continue
		}
		if tile.Bounds.Y != currentY && len(current) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
		currentY = tile.Bounds.Y
		current = append(current, g.renderTile(tile, i == cursor))
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	if len(rows) == 0 {
		return g.styles.Dim.Render("No photos uploaded yet.")
	}
	return strings.Join(rows, "\n")
}

func (g *GridRenderer) renderTile(tile *layout.Node, isCursor bool) string {
	id, _ := tile.Attr(client.TileIDAttr)
	selected := tile.HasClass(coordinator.SelectedClass)

	marker := "[ ]"
	style := g.styles.Tile
	if selected {
		marker = "[x]"
		style = g.styles.TileSelected
	}
	if isCursor {
		style = style.Background(g.styles.TileCursor.GetBackground())
	}

	inner := tile.Bounds.W - 2
	if inner < 1 {
		inner = 1
	}
	label := fmt.Sprintf("%s #%s", marker, id)
	thumb := "no thumbnail"
	for _, child := range tile.Children {
		if child.Kind != KindThumb {
			continue
		}
		if src, _ := child.Attr("src"); src != "" {
			thumb = path.Base(src)
		}
	}

	line := lipgloss.NewStyle().MaxWidth(inner)
	content := line.Render(label) + "\n" + line.Render(thumb)
	return style.Width(inner).Height(TileHeight - 2).Render(content)
}
