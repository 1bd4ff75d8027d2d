package seeders

import (
	"testing"

	"github.com/beshgebeya/pos/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMainBranchIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Branch{}))

	require.NoError(t, RunAll(db, nil))
	require.NoError(t, MainBranch(db))

	var branches []models.Branch
	require.NoError(t, db.Find(&branches).Error)
	require.Len(t, branches, 1)
	assert.EqualValues(t, 1, branches[0].ID)
	assert.Equal(t, "Main Branch", branches[0].Name)
	assert.Equal(t, "Addis Ababa", branches[0].Location)
}
