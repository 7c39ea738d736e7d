package model

// FieldSnapshot holds the normalized string value of every field the
// change detector compares for one entity, keyed by field name. A
// missing key and an empty string are equivalent: both mean the field
// is blank.
type FieldSnapshot map[string]string

// FieldDiff is one tracked field's old/new value pair
type FieldDiff struct {
	Old string
	New string
}

// ChangeRecord maps each differing tracked field to its old/new pair.
// A nil ChangeRecord means no tracked field changed.
type ChangeRecord map[string]FieldDiff

// Fields returns the names of the changed fields, in no particular
// order. Used for logging and audit events.
func (c ChangeRecord) Fields() []string {
	if len(c) == 0 {
		return nil
	}
	fields := make([]string, 0, len(c))
	for name := range c {
		fields = append(fields, name)
	}
	return fields
}

// DetectChanges compares the previously-read target state against a
// freshly normalized source snapshot over the given tracked fields.
// Comparison is a strict string-equality diff; blank values compare
// equal regardless of how they are represented.
//
// A tracked field whose new value is blank and whose empty-value
// policy is EmptyOmit is skipped entirely: an omitted field leaves the
// target value untouched, so reporting it as changed would produce an
// update that never converges.
func DetectChanges(old, fresh FieldSnapshot, policy EntityPolicy) ChangeRecord {
	var changes ChangeRecord
	for _, field := range policy.Tracked {
		oldVal := old[field]
		newVal := fresh[field]
		if newVal == "" && policy.EmptyBehavior(field) == EmptyOmit {
			continue
		}
		if oldVal == newVal {
			continue
		}
		if changes == nil {
			changes = ChangeRecord{}
		}
		changes[field] = FieldDiff{Old: oldVal, New: newVal}
	}
	return changes
}
