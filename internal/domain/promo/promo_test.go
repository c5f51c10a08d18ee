package promo

import (
	"testing"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/stretchr/testify/assert"
)

func TestCodeValidator_Validate(t *testing.T) {
	v := NewCodeValidator("demo", nil)

	tests := []struct {
		name string
		code string
		want Status
	}{
		{name: "exact match", code: "demo", want: StatusValid},
		{name: "case insensitive", code: "DeMo", want: StatusValid},
		{name: "surrounding whitespace trimmed", code: "  demo  ", want: StatusValid},
		{name: "wrong code", code: "save10", want: StatusInvalid},
		{name: "empty", code: "", want: StatusRequired},
		{name: "whitespace only", code: "   ", want: StatusRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.code)
			assert.Equal(t, tt.want, got.Status)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestCodeValidator_DistinctMessages(t *testing.T) {
	v := NewCodeValidator("demo", nil)

	invalid := v.Validate("bogus")
	required := v.Validate("")
	assert.NotEqual(t, invalid.Message, required.Message)
}

func TestCodeValidator_ExtendedSet(t *testing.T) {
	filter := bloom.NewWithEstimates(1000, 0.001)
	filter.AddString("HAPPYHRS")
	filter.AddString("OVER9000")

	v := NewCodeValidator("demo", filter)

	assert.Equal(t, StatusValid, v.Validate("happyhrs").Status)
	assert.Equal(t, StatusValid, v.Validate("OVER9000").Status)
	assert.Equal(t, StatusInvalid, v.Validate("NOPE1234").Status)
	// The configured code still works alongside the extended set.
	assert.Equal(t, StatusValid, v.Validate("demo").Status)
}

func TestSession(t *testing.T) {
	var s Session
	assert.False(t, s.Applied())
	assert.Empty(t, s.Code())

	s.Apply("demo")
	assert.True(t, s.Applied())
	assert.Equal(t, "demo", s.Code())

	s.Reset()
	assert.False(t, s.Applied())
	assert.Empty(t, s.Code())
}
