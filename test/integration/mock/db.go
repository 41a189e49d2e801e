package mock

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db is an in-memory SQLite database migrated with the given models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens a private in-memory database and migrates models, keyed by table name.
func NewDb(models map[string]any) *Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{DbConn: dbConn, models: models}
	for table, model := range models {
		if err := dbConn.AutoMigrate(model); err != nil {
			panic(fmt.Sprintf("failed to migrate %s. err: %s", table, err.Error()))
		}
	}

	return d
}

// ClearDB deletes every row of every migrated table.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %s", table)
	}

	var count int64
	err := d.DbConn.Model(model).Count(&count).Error
	return count, err
}

// Close closes the underlying connection.
func (d *Db) Close() {
	if sqlDB, err := d.DbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
