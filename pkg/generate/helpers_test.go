package generate

import (
	"testing"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/standards"
)

func defaultsFor(t *testing.T, rt blueprint.RoomType) standards.RoomDefault {
	t.Helper()
	house, _ := standards.LookupBuilding(blueprint.BuildingHouse)
	for _, d := range house.Rooms {
		if d.Type == rt {
			return d
		}
	}
	t.Fatalf("house has no %s default", rt)
	return standards.RoomDefault{}
}
