package valueobjects

// OverrideType distinguishes overrides that survive renewal from those that
// are cleared at the end of the billing period.
type OverrideType string

const (
	OverridePermanent OverrideType = "permanent"
	OverrideTemporary OverrideType = "temporary"
)

var ValidOverrideTypes = map[OverrideType]bool{
	OverridePermanent: true,
	OverrideTemporary: true,
}

func (t OverrideType) IsValid() bool {
	return ValidOverrideTypes[t]
}

func (t OverrideType) String() string {
	return string(t)
}
