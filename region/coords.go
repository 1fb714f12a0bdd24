package region

import (
	"path"
	"strconv"
	"strings"
)

// ParseCoordinates extracts the region grid position from an r.<x>.<z>.mca
// file name. The name may carry a directory prefix; only the base name is
// inspected. ok is false when the name does not match the convention.
func ParseCoordinates(name string) (x, z int, ok bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))

	parts := strings.Split(base, ".")
	if len(parts) != 4 || parts[0] != "r" || parts[3] != "mca" {
		return 0, 0, false
	}

	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	z, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}

	return x, z, true
}
