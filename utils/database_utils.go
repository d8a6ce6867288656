// database_utils is the canonical place for shared DB plumbing. It should not
// include anything that contains business logic.
package utils

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rustlingbird/chirprack/model"
)

// GetDBConnection connects to the database specified by env.
func GetDBConnection() (*gorm.DB, error) {
	return GetCustomizedConnection(os.Getenv("DB_NAME"))
}

// GetDefaultDBConnection connects to the maintenance database used to manage
// all other databases.
func GetDefaultDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DEFAULT_DB_USER"), os.Getenv("DEFAULT_DB_PASS"),
		os.Getenv("DEFAULT_DB_NAME"), os.Getenv("DB_PORT"),
	)
	return openDB(postgres.Open(dsn))
}

// GetCustomizedConnection connects to any database by name.
func GetCustomizedConnection(dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		dbName, os.Getenv("DB_PORT"),
	)
	return openDB(postgres.Open(dsn))
}

// DatabaseSetupAndMigration migrates every persisted entity. Reaction comes
// last so its composite unique index is built after the targets exist.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.CommentReply{},
		&model.Reaction{},
	)
}

// openDB opens a gorm handle with error translation enabled, so unique index
// violations surface uniformly as gorm.ErrDuplicatedKey.
func openDB(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}
