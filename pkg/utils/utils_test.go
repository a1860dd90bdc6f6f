package utils_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-addressbook/pkg/utils"
)

func TestPassword(t *testing.T) {
	h, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", h)
	assert.True(t, utils.CheckPassword("correct horse", h))
	assert.False(t, utils.CheckPassword("battery staple", h))
	assert.False(t, utils.CheckPassword("correct horse", "not-a-hash"))
}

func TestNewID(t *testing.T) {
	a, b := utils.NewID(), utils.NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
