package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/concert-ticket-reservation/internal/utils"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, utils.VerifyPassword(hash, "s3cret!"))
	assert.False(t, utils.VerifyPassword(hash, "s3cret"))
	assert.False(t, utils.VerifyPassword("not-a-hash", "s3cret!"))
}
