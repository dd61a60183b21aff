package systems

import (
	"fmt"
	"math"
	"time"
)

// SellParams controls resale pricing.
type SellParams struct {
	Fraction   float64 // Share of the value returned on sale
	LevelBonus int64   // Value added to the price per level
}

// SellValue returns floor((price + level*bonus) * fraction).
func SellValue(price int64, level int, p SellParams) int64 {
	worth := float64(price + int64(level)*p.LevelBonus)
	return int64(math.Floor(worth * p.Fraction))
}

// FormatTimeInTank renders a duration as "Mm Ss", or "Ss" under a minute.
func FormatTimeInTank(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
