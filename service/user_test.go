package service

import (
	"testing"

	"arogyachat/model"
	"arogyachat/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "test-secret")
	setupTestDB(t)

	svc := &UserService{}
	err := svc.Register(&User{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "s3cret-pw",
		Role:     model.RolePatient,
	})
	require.NoError(t, err)

	// password must be stored hashed
	stored, err := model.GetUserByEmail("asha@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pw", stored.Password)
	assert.Equal(t, model.RolePatient, stored.Role)

	token, user, err := svc.Login("asha@example.com", "s3cret-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, stored.ID, user.ID)

	_, _, err = svc.Login("asha@example.com", "wrong-pw")
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	svc := &UserService{}
	input := &User{Name: "Asha", Email: "asha@example.com", Password: "pw", Role: model.RoleDoctor}
	require.NoError(t, svc.Register(input))
	assert.Error(t, svc.Register(input))

	var count int64
	require.NoError(t, platform.DB.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	setupTestDB(t)

	svc := &UserService{}
	err := svc.Register(&User{Name: "X", Email: "x@example.com", Password: "pw", Role: model.Role("admin")})
	assert.Error(t, err)
}
