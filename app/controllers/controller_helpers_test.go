package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindspark-labs/localpages/app/models"
)

func TestRoleHome(t *testing.T) {
	assert.Equal(t, "/admin", roleHome(models.RoleSuperAdmin))
	assert.Equal(t, "/admin", roleHome(models.RoleAdmin))
	assert.Equal(t, "/client", roleHome(models.RoleBusinessClient))
	assert.Equal(t, "/", roleHome("SOMETHING_ELSE"))
	assert.Equal(t, "/", roleHome(""))
}

func TestNormalizeDeviceType(t *testing.T) {
	assert.Equal(t, models.DeviceTypeMobile, normalizeDeviceType("mobile"))
	assert.Equal(t, models.DeviceTypeMobile, normalizeDeviceType(" MOBILE "))
	assert.Equal(t, models.DeviceTypeTablet, normalizeDeviceType("Tablet"))
	assert.Equal(t, models.DeviceTypeDesktop, normalizeDeviceType("desktop"))
	assert.Equal(t, models.DeviceTypeDesktop, normalizeDeviceType(""))
	assert.Equal(t, models.DeviceTypeDesktop, normalizeDeviceType("smartwatch"))
}

func TestHashIP(t *testing.T) {
	a := hashIP("203.0.113.10")
	b := hashIP("203.0.113.10")
	c := hashIP("203.0.113.11")

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// raw address must not survive into the stored value
	assert.NotContains(t, a, "203")
}

func TestSetIf(t *testing.T) {
	fields := map[string]interface{}{}
	name := "Bravo's Italian Kitchen"

	setIf(fields, "name", &name)
	setIf(fields, "phone", nil)

	assert.Equal(t, map[string]interface{}{"name": name}, fields)
}

func TestMustJSON(t *testing.T) {
	raw := mustJSON(map[string]interface{}{"monday": "closed"})
	assert.JSONEq(t, `{"monday":"closed"}`, string(raw))

	raw = mustJSON(map[string]interface{}{"bad": func() {}})
	assert.Equal(t, "{}", string(raw))
}
