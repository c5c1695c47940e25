package database

import (
	"bytes"
	"errors"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewLogger_IgnoresRecordNotFound(t *testing.T) {
	db, err := Open("sqlite", "file::memory:")
	require.NoError(t, err)

	var buf bytes.Buffer
	db = db.Session(&gorm.Session{Logger: newLogger(&buf)})

	var user models.User
	err = db.Where("email = ?", "nobody@x.com").First(&user).Error
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, buf.String())

	err = db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
}
