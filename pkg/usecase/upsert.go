package usecase

import (
	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
)

// releaseProperties builds the write payload for one release. Create
// and update share this builder so their field sets can never drift;
// the only difference is the external id, written once on create and
// never patched afterwards.
func (uc *Sync) releaseProperties(r *model.Release, withExternalID bool) model.Properties {
	policy := uc.policy.For(model.EntityRelease)
	props := model.Properties{}

	setProperty(props, policy, model.FieldName, model.Title(r.Name))
	setProperty(props, policy, model.FieldStatus, model.Select(r.Status))
	setProperty(props, policy, model.FieldReleaseGroup, model.RichText(r.GroupID))
	setProperty(props, policy, model.FieldStartDate, model.Date(r.StartDate))
	setProperty(props, policy, model.FieldEndDate, model.Date(r.EndDate))
	setProperty(props, policy, model.FieldProductManager, model.RichText(r.ProductManager))
	setProperty(props, policy, model.FieldEngineeringLead, model.RichText(r.EngineeringLead))

	if withExternalID {
		props[model.FieldReleaseExternalID] = model.RichText(string(r.ID))
	}

	return props
}

// featureProperties builds the write payload for one feature. The
// primary-release relation carries the mapped target page id; when
// the feature has no mapped parent the field policy decides whether
// the relation is cleared or left alone.
func (uc *Sync) featureProperties(f *model.Feature, parent types.PageID, withExternalID bool) model.Properties {
	policy := uc.policy.For(model.EntityFeature)
	props := model.Properties{}

	setProperty(props, policy, model.FieldName, model.Title(f.Name))
	setProperty(props, policy, model.FieldStatus, model.Select(f.Status))
	setProperty(props, policy, model.FieldHealth, model.Select(string(f.Health)))
	setProperty(props, policy, model.FieldProductManager, model.RichText(f.ProductManager))
	setProperty(props, policy, model.FieldEngineeringLead, model.RichText(f.EngineeringLead))
	setProperty(props, policy, model.FieldURL, model.URL(f.URL))

	if parent != "" {
		props[model.FieldRelease] = model.Relation(parent)
	} else {
		setProperty(props, policy, model.FieldRelease, model.Relation())
	}

	if withExternalID {
		props[model.FieldFeatureExternalID] = model.RichText(string(f.ID))
	}

	return props
}

// setProperty adds the property unless its value is blank and the
// field's empty policy is omit. A blank value under clear policy is
// written explicitly, erasing the target value.
func setProperty(props model.Properties, policy model.EntityPolicy, name string, p model.Property) {
	blank := p.Text == "" && len(p.Relation) == 0
	if blank && policy.EmptyBehavior(name) == model.EmptyOmit {
		return
	}
	props[name] = p
}
