package yaixm

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Surface is the level token for the ground.
const Surface = "SFC"

// FlightLevel normalises a level token to flight levels: "FL65" is 65,
// "1500 ft" is 15 and any other token, such as "SFC", is 0. A flight level
// or altitude token with a non-numeric value is an error.
func FlightLevel(level string) (int, error) {
	if fl, ok := strings.CutPrefix(level, "FL"); ok {
		n, err := strconv.Atoi(fl)
		if err != nil || n < 0 {
			return 0, eris.Errorf("yaixm: invalid flight level %q", level)
		}
		return n, nil
	}

	if alt, ok := strings.CutSuffix(level, " ft"); ok {
		n, err := strconv.Atoi(alt)
		if err != nil || n < 0 {
			return 0, eris.Errorf("yaixm: invalid altitude %q", level)
		}
		return n / 100, nil
	}

	return 0, nil
}
