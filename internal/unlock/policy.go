package unlock

import "mindhaven/internal/model"

// Method is how a mode's detailed report gets unlocked.
type Method string

const (
	MethodShare   Method = "share"
	MethodPayment Method = "payment"
)

// ModePolicy holds the unlock rules for one mode. DesktopExempt applies
// only to the share method: the share channel is mobile-oriented, so
// desktop users of the minimal mode get the report without sharing.
type ModePolicy struct {
	Method        Method
	DesktopExempt bool
}

var policies = map[model.Mode]ModePolicy{
	model.ModeMinimal: {Method: MethodShare, DesktopExempt: true},
	model.ModeRapid:   {Method: MethodPayment},
	model.ModeFull:    {Method: MethodPayment},
}

// PolicyFor returns the unlock policy for a mode.
func PolicyFor(mode model.Mode) ModePolicy {
	return policies[mode]
}
