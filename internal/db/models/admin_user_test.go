package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPassword(t *testing.T) {
	u := AdminUser{Password: HashPassword("s3cret")}

	assert.True(t, u.VerifyPassword("s3cret"))
	assert.False(t, u.VerifyPassword("wrong"))
	assert.False(t, u.VerifyPassword(""))
}

func TestIPAllowed(t *testing.T) {
	open := AdminUser{}
	assert.True(t, open.IPAllowed("203.0.113.7"))

	restricted := AdminUser{AllowedIPs: "10.1.2.3, 203.0.113.7"}
	assert.True(t, restricted.IPAllowed("10.1.2.3"))
	assert.True(t, restricted.IPAllowed("203.0.113.7"))
	assert.False(t, restricted.IPAllowed("198.51.100.1"))
}
