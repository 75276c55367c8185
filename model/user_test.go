package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLanguageLookup(t *testing.T) {
	assert.Equal(t, LanguageKannada, RolePatient.Language())
	assert.Equal(t, LanguageEnglish, RoleDoctor.Language())
}

func TestRoleValidation(t *testing.T) {
	assert.True(t, RolePatient.Valid())
	assert.True(t, RoleDoctor.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
