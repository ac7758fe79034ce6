package common

import "fmt"

type SaleMode string
type SalePhase uint

// SaleMode selects which mint engine variant a deployment runs.
const (
	SaleModePhased  SaleMode = "phased"
	SaleModeUnified SaleMode = "unified"
)

const (
	SalePhaseNotStarted SalePhase = iota
	SalePhaseAllowlist
	SalePhasePublic
)

func (p SalePhase) String() string {
	switch p {
	case SalePhaseAllowlist:
		return "allowlist"
	case SalePhasePublic:
		return "public"
	default:
		return "notStarted"
	}
}

func (p SalePhase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *SalePhase) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"allowlist"`:
		*p = SalePhaseAllowlist
	case `"public"`:
		*p = SalePhasePublic
	case `"notStarted"`:
		*p = SalePhaseNotStarted
	default:
		return fmt.Errorf("invalid sale phase: %s", data)
	}
	return nil
}
