package openair

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

// obstacleRadius is the radius of the circle drawn round an obstacle.
const obstacleRadius = "0.5 nm"

func writeObstacle(out *strings.Builder, o yaixm.Obstacle) error {
	boundary, err := Boundary(yaixm.Boundary{
		yaixm.Circle{Radius: obstacleRadius, Centre: o.Position},
	})
	if err != nil {
		return eris.Wrapf(err, "openair: obstacle %q", o.ID)
	}

	out.WriteString("*\n")
	out.WriteString("AC " + string(settings.Other) + "\n")
	out.WriteString("AN " + o.Name + "\n")
	out.WriteString("AL " + yaixm.Surface + "\n")
	out.WriteString("AH " + formatLevel(o.Elevation) + "\n")
	out.WriteString(boundary)
	return nil
}
