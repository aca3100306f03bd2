package attrs

// Tier is a voltage classification bucket. The tiers partition [0, inf):
// every voltage falls in exactly one bucket.
type Tier string

const (
	Tier380Plus Tier = "380kV+"
	Tier220     Tier = "220kV"
	Tier110     Tier = "110kV"
	TierOther   Tier = "other"
)

// Voltage thresholds in volts.
const (
	threshold380 = 380000
	threshold220 = 220000
	threshold110 = 110000
)

// ClassifyVoltage maps a voltage in volts to its tier. The zero voltage
// (unknown or missing data) classifies as TierOther.
func ClassifyVoltage(v uint64) Tier {
	switch {
	case v >= threshold380:
		return Tier380Plus
	case v >= threshold220:
		return Tier220
	case v >= threshold110:
		return Tier110
	default:
		return TierOther
	}
}

// Tiers lists all tiers from highest to lowest, for stable presentation order.
func Tiers() []Tier {
	return []Tier{Tier380Plus, Tier220, Tier110, TierOther}
}
