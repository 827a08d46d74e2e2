package request

// TypePolicy captures the per-type behavior that deliberately diverges
// between request types.
type TypePolicy struct {
	Type Type

	// PendingOnlyDuplicate controls duplicate suppression on create: when
	// true, only a still-pending request with the same key blocks a new one;
	// when false, a match in any status blocks. Retro is the lenient one;
	// this divergence is inherited behavior, not an accident to fix here.
	PendingOnlyDuplicate bool

	// DuplicateKeyLabel names the semantically-unique key in skip messages.
	DuplicateKeyLabel string
}

var policies = map[Type]TypePolicy{
	TypeCancelRestDay: {
		Type:                 TypeCancelRestDay,
		PendingOnlyDuplicate: false,
		DuplicateKeyLabel:    "rest day date",
	},
	TypeChangeOffSchedule: {
		Type:                 TypeChangeOffSchedule,
		PendingOnlyDuplicate: false,
		DuplicateKeyLabel:    "original off date",
	},
	TypeRetro: {
		Type:                 TypeRetro,
		PendingOnlyDuplicate: true,
		DuplicateKeyLabel:    "retro type and date",
	},
}

// PolicyFor returns the policy for a request type.
func PolicyFor(t Type) (TypePolicy, error) {
	p, ok := policies[t]
	if !ok {
		return TypePolicy{}, ErrUnknownType
	}
	return p, nil
}

// ParseType maps the URL segment to a request type.
func ParseType(s string) (Type, error) {
	switch s {
	case "cancel-rest-day", string(TypeCancelRestDay):
		return TypeCancelRestDay, nil
	case "change-off-schedule", string(TypeChangeOffSchedule):
		return TypeChangeOffSchedule, nil
	case string(TypeRetro):
		return TypeRetro, nil
	default:
		return "", ErrUnknownType
	}
}
