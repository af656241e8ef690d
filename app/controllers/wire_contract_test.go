package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The public API speaks camelCase; these pin the request key spelling so a
// client posting the documented bodies never gets a spurious 400.

func TestApplicationRequestKeys(t *testing.T) {
	body := []byte(`{
		"businessName": "Zen Yoga Studio",
		"contactName": "Sarah Chen",
		"email": "sarah@zenyogastudio.com",
		"phone": "(555) 321-0987",
		"website": "https://zenyogastudio.com",
		"category": "Health & Wellness",
		"city": "Austin",
		"captchaToken": "tok"
	}`)

	var req applicationRequest
	assert.NoError(t, json.Unmarshal(body, &req))
	assert.Equal(t, "Zen Yoga Studio", req.BusinessName)
	assert.Equal(t, "Sarah Chen", req.ContactName)
	assert.Equal(t, "(555) 321-0987", req.Phone)
	assert.Equal(t, "Austin", req.City)
	assert.Equal(t, "tok", req.CaptchaToken)
}

func TestDecisionRequestKeys(t *testing.T) {
	var req decisionRequest
	assert.NoError(t, json.Unmarshal([]byte(`{"status":"APPROVED","adminNotes":"looks legit"}`), &req))
	assert.Equal(t, "APPROVED", req.Status)
	assert.Equal(t, "looks legit", req.AdminNotes)
}

func TestLeadRequestKeys(t *testing.T) {
	var req leadRequest
	assert.NoError(t, json.Unmarshal([]byte(`{"organizationId":7,"name":"Ana","email":"ana@example.com","type":"QUOTE_REQUEST"}`), &req))
	assert.Equal(t, uint(7), req.OrganizationID)
	assert.Equal(t, "Ana", req.Name)
	assert.Equal(t, "QUOTE_REQUEST", req.Type)
}

func TestPageViewRequestKeys(t *testing.T) {
	var req pageViewRequest
	assert.NoError(t, json.Unmarshal([]byte(`{"organizationId":3,"path":"/bravos-italian-kitchen","deviceType":"mobile"}`), &req))
	assert.Equal(t, uint(3), req.OrganizationID)
	assert.Equal(t, "/bravos-italian-kitchen", req.Path)
	assert.Equal(t, "mobile", req.DeviceType)
}

func TestProfileUpdateRequestKeys(t *testing.T) {
	var req profileUpdateRequest
	assert.NoError(t, json.Unmarshal([]byte(`{"shortDescription":"New blurb","openHours":{"monday":"closed"},"socialLinks":{"x":"https://x.com/bravos"}}`), &req))
	if assert.NotNil(t, req.ShortDescription) {
		assert.Equal(t, "New blurb", *req.ShortDescription)
	}
	assert.Nil(t, req.Phone)
	assert.Equal(t, "closed", req.OpenHours["monday"])
	assert.Equal(t, "https://x.com/bravos", req.SocialLinks["x"])
}
