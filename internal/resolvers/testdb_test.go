package resolvers

import (
	"fmt"
	"testing"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Reading{},
		&models.MortalityEvent{},
		&models.FeedingEvent{},
		&models.TransferAction{},
		&models.TGCModel{},
		&models.TemperatureProfilePoint{},
	))
	return db
}
