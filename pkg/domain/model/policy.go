package model

// EmptyPolicy decides what happens to a field whose source value is
// blank when building a create or update payload.
type EmptyPolicy string

const (
	// EmptyOmit drops the field from the payload, leaving any existing
	// target value untouched.
	EmptyOmit EmptyPolicy = "omit"

	// EmptyClear writes an explicit blank, erasing any existing target
	// value.
	EmptyClear EmptyPolicy = "clear"
)

// EntityPolicy configures change tracking for one entity type:
// which fields are compared between runs, and per-field blank-value
// handling. Fields not listed in Empty default to EmptyOmit.
type EntityPolicy struct {
	Tracked []string               `toml:"tracked"`
	Empty   map[string]EmptyPolicy `toml:"empty"`
}

// EmptyBehavior returns the blank-value policy for the named field
func (p EntityPolicy) EmptyBehavior(field string) EmptyPolicy {
	if policy, ok := p.Empty[field]; ok {
		return policy
	}
	return EmptyOmit
}

// FieldPolicy is the full tracked-field configuration table. The two
// historical script variants disagreed on the tracked sets and on
// blank handling for the product-manager field; making the table
// explicit lets either behavior be expressed and tested.
type FieldPolicy struct {
	Release EntityPolicy `toml:"release"`
	Feature EntityPolicy `toml:"feature"`
}

// For returns the policy for the given entity type
func (p FieldPolicy) For(entity EntityType) EntityPolicy {
	if entity == EntityFeature {
		return p.Feature
	}
	return p.Release
}

// DefaultFieldPolicy returns the built-in tracked-field table.
//
// Releases track name, lifecycle status, release group and both
// dates. Product manager and engineering lead are written on create
// but not tracked for changes. Features track everything they carry
// except the engineering lead, with the primary-release relation
// compared by mapped page id. Feature Product Manager and Release use
// clear semantics so a value removed at the source is erased from the
// target; every other blank is omitted.
func DefaultFieldPolicy() FieldPolicy {
	return FieldPolicy{
		Release: EntityPolicy{
			Tracked: []string{
				FieldName,
				FieldStatus,
				FieldReleaseGroup,
				FieldStartDate,
				FieldEndDate,
			},
		},
		Feature: EntityPolicy{
			Tracked: []string{
				FieldName,
				FieldStatus,
				FieldHealth,
				FieldProductManager,
				FieldURL,
				FieldRelease,
			},
			Empty: map[string]EmptyPolicy{
				FieldProductManager: EmptyClear,
				FieldRelease:        EmptyClear,
			},
		},
	}
}
