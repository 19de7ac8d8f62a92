package analysis

import "strings"

// AssetClass is the closed classification of a disclosure's free-text asset
// type. Classification happens once per trade; scoring only looks at the
// resulting class, never at the raw text again.
type AssetClass int

const (
	AssetUnknown AssetClass = iota
	AssetEquity
	AssetOption
	AssetWarrant
	AssetRight
	AssetFuture
	AssetOtherDerivative
)

// String returns the class name used in explanations.
func (a AssetClass) String() string {
	switch a {
	case AssetEquity:
		return "equity"
	case AssetOption:
		return "option"
	case AssetWarrant:
		return "warrant"
	case AssetRight:
		return "right"
	case AssetFuture:
		return "future"
	case AssetOtherDerivative:
		return "other_derivative"
	default:
		return "unknown"
	}
}

// ClassifyAsset maps free text like "Stock Option" or "Common Stock" to an
// AssetClass via case-insensitive substring matching. Empty input is Unknown;
// any other text without a derivative keyword is treated as plain equity.
func ClassifyAsset(assetType string) AssetClass {
	s := strings.ToLower(strings.TrimSpace(assetType))
	if s == "" {
		return AssetUnknown
	}
	switch {
	case strings.Contains(s, "option"):
		return AssetOption
	case strings.Contains(s, "warrant"):
		return AssetWarrant
	case strings.Contains(s, "right"):
		return AssetRight
	case strings.Contains(s, "future"):
		return AssetFuture
	case strings.Contains(s, "derivative"):
		return AssetOtherDerivative
	default:
		return AssetEquity
	}
}

// OwnerClass is the closed classification of a disclosure's free-text owner
// field.
type OwnerClass int

const (
	OwnerUnknown OwnerClass = iota
	OwnerSelf
	OwnerSpouse
	OwnerChild
	OwnerJoint
	OwnerOther
)

// String returns the class name used in explanations.
func (o OwnerClass) String() string {
	switch o {
	case OwnerSelf:
		return "self"
	case OwnerSpouse:
		return "spouse"
	case OwnerChild:
		return "child"
	case OwnerJoint:
		return "joint"
	case OwnerOther:
		return "other"
	default:
		return "unknown"
	}
}

// ClassifyOwner maps free text like "Spouse" or "Joint Account" to an
// OwnerClass via case-insensitive substring matching. Dependents count as
// children for scoring purposes.
func ClassifyOwner(owner string) OwnerClass {
	s := strings.ToLower(strings.TrimSpace(owner))
	if s == "" {
		return OwnerUnknown
	}
	switch {
	case strings.Contains(s, "child"), strings.Contains(s, "dependent"):
		return OwnerChild
	case strings.Contains(s, "spouse"):
		return OwnerSpouse
	case strings.Contains(s, "joint"):
		return OwnerJoint
	case strings.Contains(s, "self"):
		return OwnerSelf
	default:
		return OwnerOther
	}
}
