package plan_test

import (
	"fmt"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/render/plan"
)

func ExampleView() {
	v := plan.DefaultView().ZoomIn().ZoomIn().Pan(20, 10)
	fmt.Println(v.Percent(), v.Ratio(), v.OffsetX, v.OffsetY)
	// Output: 100% 1:100 20 10
}

func ExampleCanvasSize() {
	room := blueprint.NewRoom("room-0", "Living", blueprint.Living, 16, 20)
	room.Position = blueprint.Position{X: 10, Y: 20}
	spec := &blueprint.Spec{Unit: blueprint.Feet, Rooms: []blueprint.Room{room}}

	fmt.Println(plan.CanvasSize(spec))
	fmt.Println(plan.CanvasSize(&blueprint.Spec{}))
	// Output:
	// 452 620
	// 1000 800
}

func ExampleDimensionText() {
	room := blueprint.NewRoom("room-0", "Kitchen", blueprint.Kitchen, 12, 15)
	fmt.Println(plan.DimensionText(room, blueprint.Feet), "/", plan.AreaText(room.Area, blueprint.Feet))
	// Output: 12' × 15' / 180 SF
}
