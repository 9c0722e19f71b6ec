package db

import (
	"database/sql"
	"log"
	"sync"

	"github.com/go-sql-driver/mysql"

	"github.com/tjarju/bank-users-go/config"
)

var dataDb *sql.DB
var dataDBOnce = &sync.Once{}

func GetDataDBConnection() *sql.DB {
	dataDBOnce.Do(func() {
		cfg := mysql.Config{
			User:      config.DATA_DB_USER,
			Passwd:    config.DATA_DB_PASS,
			Net:       "tcp",
			Addr:      config.DATA_DB_ADDR,
			DBName:    config.DATA_DB_NAME,
			ParseTime: true,
		}
		// Get a database handle.
		var err error
		dataDb, err = sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			log.Fatal(err)
		}

		pingErr := dataDb.Ping()
		if pingErr != nil {
			log.Fatal(pingErr)
		}
	})

	return dataDb
}
