package weather

import "math"

var compassArrows = [8]string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

// CompassArrow maps a direction in degrees to the nearest of eight arrows.
// Each arrow covers a 45° sector centred on its direction; 0° and 360° both
// give "↑". A direction exactly on a sector edge goes to the even sector, so
// 22.5° is "↑" and 112.5° is "→". Returns false for NaN or infinite input.
func CompassArrow(deg float64) (string, bool) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return "", false
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	ix := int(math.RoundToEven(deg/45)) % 8
	return compassArrows[ix], true
}
