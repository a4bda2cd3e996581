package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTunisianPhone(t *testing.T) {
	valid := []string{
		"+21620123456",
		"+21698765432",
		"+21650000000",
	}
	for _, p := range valid {
		assert.True(t, IsTunisianPhone(p), p)
	}

	invalid := []string{
		"+21612345678", // second group cannot start with 1
		"+21601234567", // or 0
		"21620123456",  // missing +
		"+2162012345",  // too short
		"+216201234567",
		"+21720123456", // wrong country code
		"",
	}
	for _, p := range invalid {
		assert.False(t, IsTunisianPhone(p), p)
	}
}

func TestValidate_TnPhoneTag(t *testing.T) {
	type payload struct {
		Phone string `validate:"required,tn_phone"`
	}

	assert.Nil(t, Validate(payload{Phone: "+21620123456"}))

	errs := Validate(payload{Phone: "+21612345678"})
	assert.Equal(t, "tn_phone", errs["Phone"])
}
