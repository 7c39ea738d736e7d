package model_test

import (
	"testing"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestDefaultFieldPolicy(t *testing.T) {
	policy := model.DefaultFieldPolicy()

	t.Run("release tracks lifecycle fields and dates", func(t *testing.T) {
		tracked := policy.Release.Tracked
		gt.Array(t, tracked).Has(model.FieldName)
		gt.Array(t, tracked).Has(model.FieldStatus)
		gt.Array(t, tracked).Has(model.FieldReleaseGroup)
		gt.Array(t, tracked).Has(model.FieldStartDate)
		gt.Array(t, tracked).Has(model.FieldEndDate)
	})

	t.Run("feature compares relation by page id", func(t *testing.T) {
		gt.Array(t, policy.Feature.Tracked).Has(model.FieldRelease)
	})

	t.Run("empty behavior defaults to omit", func(t *testing.T) {
		gt.Value(t, policy.Release.EmptyBehavior(model.FieldReleaseGroup)).Equal(model.EmptyOmit)
	})

	t.Run("feature product manager and relation clear on blank", func(t *testing.T) {
		gt.Value(t, policy.Feature.EmptyBehavior(model.FieldProductManager)).Equal(model.EmptyClear)
		gt.Value(t, policy.Feature.EmptyBehavior(model.FieldRelease)).Equal(model.EmptyClear)
	})
}

func TestFieldPolicy_For(t *testing.T) {
	policy := model.FieldPolicy{
		Release: model.EntityPolicy{Tracked: []string{"Name"}},
		Feature: model.EntityPolicy{Tracked: []string{"Health"}},
	}

	gt.Array(t, policy.For(model.EntityRelease).Tracked).Equal([]string{"Name"})
	gt.Array(t, policy.For(model.EntityFeature).Tracked).Equal([]string{"Health"})
}
