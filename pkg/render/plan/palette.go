package plan

import (
	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/render/surface"
)

var (
	colorBackground = surface.Hex("#f8fafc")
	colorGridMinor  = surface.Hex("#e2e8f0")
	colorGridMajor  = surface.Hex("#cbd5e1")
	colorGridLabel  = surface.Hex("#94a3b8")
	colorFoundation = surface.Hex("#64748b")
	colorInk        = surface.Hex("#1e293b")
	colorWall       = surface.Hex("#475569")
	colorCenterline = surface.Hex("#94a3b8")
	colorDoor       = surface.Hex("#92400e")
	colorWindow     = surface.Hex("#0ea5e9")
	colorGlass      = surface.RGBA(14, 165, 233, 0.1)
	colorLabelBox   = surface.RGBA(255, 255, 255, 0.9)
	colorLabelText  = surface.Hex("#64748b")
	colorDimension  = surface.Hex("#059669")
	colorTitleBlock = surface.RGBA(255, 255, 255, 0.95)
)

var roomFills = map[blueprint.RoomType]surface.Color{
	blueprint.Living:     surface.RGBA(254, 240, 138, 0.15),
	blueprint.Kitchen:    surface.RGBA(187, 247, 208, 0.15),
	blueprint.Bedroom:    surface.RGBA(219, 234, 254, 0.15),
	blueprint.Bathroom:   surface.RGBA(221, 214, 254, 0.15),
	blueprint.Office:     surface.RGBA(254, 226, 226, 0.15),
	blueprint.Storage:    surface.RGBA(229, 231, 235, 0.15),
	blueprint.Dining:     surface.RGBA(254, 240, 138, 0.1),
	blueprint.Hallway:    surface.RGBA(241, 245, 249, 0.2),
	blueprint.Storefront: surface.RGBA(254, 215, 170, 0.15),
	blueprint.Reception:  surface.RGBA(186, 230, 253, 0.15),
	blueprint.Workspace:  surface.RGBA(220, 252, 231, 0.1),
	blueprint.Meeting:    surface.RGBA(233, 213, 255, 0.1),
	blueprint.Break:      surface.RGBA(254, 202, 202, 0.1),
}

var defaultRoomFill = surface.RGBA(241, 245, 249, 0.1)

// RoomFill returns the translucent floor fill for a room type.
func RoomFill(t blueprint.RoomType) surface.Color {
	if c, ok := roomFills[t]; ok {
		return c
	}
	return defaultRoomFill
}

// legendEntry is one line style shown in the legend.
type legendEntry struct {
	label string
	color surface.Color
	width float64
}

var legend = []legendEntry{
	{"Exterior Wall", colorInk, 3},
	{"Interior Wall", colorWall, 1.5},
	{"Door", colorDoor, 1.5},
	{"Window", colorWindow, 1},
}

var (
	fontGridLabel = surface.Font{Size: 9, Mono: true}
	fontTitle     = surface.Font{Size: 14, Bold: true}
	fontScale     = surface.Font{Size: 10, Mono: true}
	fontNorth     = surface.Font{Size: 10, Bold: true}
	fontRoomName  = surface.Font{Size: 10, Bold: true}
	fontRoomInfo  = surface.Font{Size: 9, Mono: true}
	fontDimension = surface.Font{Size: 8, Mono: true}
	fontBlockHead = surface.Font{Size: 12, Bold: true}
	fontBlockBody = surface.Font{Size: 10}
	fontBlockInfo = surface.Font{Size: 8, Mono: true}
	fontLegend    = surface.Font{Size: 9}
)
