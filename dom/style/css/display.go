package css

import (
	"fmt"
	"strings"
)

// DisplayMode is a type for CSS property "display".
type DisplayMode uint16

// Flags for box context and display mode (outer and inner).
const (
	NoMode          DisplayMode = iota   // unset or error condition
	DisplayNone     DisplayMode = 0x0001 // CSS outer display = none
	BlockMode       DisplayMode = 0x0002 // CSS block context (inner or outer)
	InlineMode      DisplayMode = 0x0004 // CSS inline context
	ContentsMode    DisplayMode = 0x0008 // no box of its own, children are displayed
	FlowRootMode    DisplayMode = 0x0010 // CSS flow-root display property
	ListItemMode    DisplayMode = 0x0020 // CSS list-item display
	FlexMode        DisplayMode = 0x0040 // CSS inner display = flex
	GridMode        DisplayMode = 0x0080 // CSS inner display = grid
	TableMode       DisplayMode = 0x0100 // CSS table display property (inner or outer)
	InnerBlockMode  DisplayMode = 0x0200 // CSS inner block mode (inline-block)
	InnerInlineMode DisplayMode = 0x0400 // CSS inner inline mode (paragraphs)
)

var allDisplayModes = []DisplayMode{
	DisplayNone, BlockMode, InlineMode, ContentsMode, ListItemMode, FlowRootMode,
	FlexMode, GridMode, TableMode, InnerBlockMode, InnerInlineMode,
}

var displayModes = map[string]DisplayMode{
	"none":         DisplayNone,
	"block":        BlockMode | InnerBlockMode,
	"inline":       InlineMode | InnerInlineMode,
	"list-item":    ListItemMode | BlockMode,
	"block-inline": BlockMode | InnerInlineMode,
	"inline-block": InlineMode | InnerBlockMode,
	"table":        BlockMode | TableMode,
	"inline-table": InlineMode | TableMode,
	"flex":         BlockMode | FlexMode,
	"inline-flex":  InlineMode | FlexMode,
	"grid":         BlockMode | GridMode,
	"inline-grid":  InlineMode | GridMode,
	"flow-root":    BlockMode | FlowRootMode,
	"contents":     ContentsMode,
}

// ParseDisplay returns mode flags from a display property string (outer and inner).
// Unknown values are reported as an error and treated as block mode.
func ParseDisplay(display string) (DisplayMode, error) {
	display = strings.ToLower(strings.TrimSpace(display))
	if display == "" {
		return NoMode, nil
	}
	if mode, ok := displayModes[display]; ok {
		return mode, nil
	}
	return BlockMode, fmt.Errorf("unknown display mode: %s", display)
}

// IsNone is true for `display: none`, i.e. neither the element nor any of
// its descendants render.
func (disp DisplayMode) IsNone() bool {
	return disp == DisplayNone
}

// IsBlockLevel return true if it has outer display level of BlockMode.
//
// A block-level element is defined as (from CSS 2.1):
// Block-level elements are those elements of the source document that are formatted visually
// as blocks (e.g., paragraphs). The following values of the 'display' property make an element
// block-level: 'block', 'list-item', and 'table'.
func (disp DisplayMode) IsBlockLevel() bool {
	return disp&0x000f == BlockMode
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

var displayModeNames = map[DisplayMode]string{
	NoMode:          "NoMode",
	DisplayNone:     "DisplayNone",
	BlockMode:       "BlockMode",
	InlineMode:      "InlineMode",
	ContentsMode:    "ContentsMode",
	FlowRootMode:    "FlowRootMode",
	ListItemMode:    "ListItemMode",
	FlexMode:        "FlexMode",
	GridMode:        "GridMode",
	TableMode:       "TableMode",
	InnerBlockMode:  "InnerBlockMode",
	InnerInlineMode: "InnerInlineMode",
}

// String returns the name of an atomic mode, or the names of all the
// atomic modes set, separated by blanks.
func (disp DisplayMode) String() string {
	if name, ok := displayModeNames[disp]; ok {
		return name
	}
	var names []string
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			names = append(names, displayModeNames[m])
		}
	}
	return strings.Join(names, " ")
}
