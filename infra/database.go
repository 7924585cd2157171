package infra

import (
	"errors"
	"time"

	"github.com/amirasaad/bankapi/infra/repository/model"
	"github.com/amirasaad/bankapi/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the postgres database named by cnf and migrates the
// schema. appEnv selects the gorm log level.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	connection, err := gorm.Open(postgres.Open(cnf.Url), GormConfig(appEnv))
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	if err := Migrate(connection); err != nil {
		return nil, err
	}
	return connection, nil
}

// GormConfig returns the gorm settings shared by every dialect.
func GormConfig(appEnv string) *gorm.Config {
	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
