package model_test

import (
	"testing"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Timestamp with zone suffix",
			input: "2025-05-05T00:00:00Z",
			want:  "2025-05-05",
		},
		{
			name:  "Timestamp with offset",
			input: "2025-12-31T23:59:59+09:00",
			want:  "2025-12-31",
		},
		{
			name:  "Already a calendar date",
			input: "2025-05-05",
			want:  "2025-05-05",
		},
		{
			name:  "Empty input stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.NormalizeDate(tt.input)).Equal(tt.want)
		})
	}
}

func TestNormalizeHealth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  model.Health
	}{
		{
			name:  "Mixed case label",
			input: "On-Track",
			want:  model.HealthOnTrack,
		},
		{
			name:  "Uppercase label",
			input: "AT-RISK",
			want:  model.HealthAtRisk,
		},
		{
			name:  "Empty input defaults to unknown",
			input: "",
			want:  model.HealthUnknown,
		},
		{
			name:  "Already lowercase",
			input: "needs-attention",
			want:  model.HealthNeedsAttention,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.NormalizeHealth(tt.input)).Equal(tt.want)
		})
	}
}
