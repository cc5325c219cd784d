package opponent

// DamageModel holds the weapon balance constants used to read a health
// delta as a hit class. They are tuning values, injected from config.
type DamageModel struct {
	Direct int
	Splash int
}

var DefaultDamageModel = DamageModel{Direct: 2, Splash: 1}

// Classify maps the damage one explosion dealt to the opponent. A delta
// matching neither magnitude cannot be attributed and stays unknown.
func (dm DamageModel) Classify(delta int) Hit {
	switch {
	case delta <= 0:
		return HitNone
	case delta == dm.Direct:
		return HitDirect
	case delta == dm.Splash:
		return HitSplash
	}
	return HitUnknown
}
