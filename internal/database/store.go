package database

import (
	"fmt"
	"time"

	"realty-marketplace/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	db *gorm.DB
}

func NewGormDB(host, port, user, password, dbname string) (*GormDB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Duplicate-key errors must surface as gorm.ErrDuplicatedKey so
		// a racing double-save resolves to "already saved".
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.Profile{},
		&models.Property{},
		&models.PropertyPhoto{},
		&models.SavedProperty{},
		&models.Message{},
		&models.CityMarketStat{},
		&models.SearchIndexQueue{},
		&models.DeleteLog{},
	)
}

// enqueueIndexOp records a pending search-index sync inside the given
// transaction, so the queue row commits atomically with the write that
// caused it.
func enqueueIndexOp(tx *gorm.DB, propertyID, op string) error {
	item := models.SearchIndexQueue{
		PropertyID: propertyID,
		Op:         op,
		Status:     models.QueueStatusPending,
	}
	return tx.Create(&item).Error
}
