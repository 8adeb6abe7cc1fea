package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"shopadmin/config"
)

var MySQL *sql.DB

// DSN format: user:pass@tcp(host:3306)/dbname?parseTime=true
func ConnectMySQL() {
	dsn := config.MustGetEnv("MYSQL_DSN")

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql open failed")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("mysql ping failed")
	}

	if err := migrateUsers(db); err != nil {
		log.Fatal().Err(err).Msg("mysql migration failed")
	}

	MySQL = db
	log.Info().Msg("connected to mysql")
}

func migrateUsers(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL
		)`)
	return err
}
