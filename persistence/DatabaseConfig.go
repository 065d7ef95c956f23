package persistence

import (
	"database/sql"
	"errors"
	"os"
	"strings"
)

type DatabaseConfig struct {
	DriverType string
	DriverArgs string
}

// ParseDatabaseConfigFromEnv reads DATABASE_DRIVER (default "mysql") and DATABASE_ARGS,
// e.g. DATABASE_ARGS=root:root@(127.0.0.1:3306)/projectform?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s
func ParseDatabaseConfigFromEnv() (*DatabaseConfig, error) {
	driverType := os.Getenv("DATABASE_DRIVER")
	if driverType == "" {
		driverType = "mysql"
	}
	driverArgs := os.Getenv("DATABASE_ARGS")
	if driverArgs == "" {
		return nil, errors.New("environment variable DATABASE_ARGS is empty")
	}
	return &DatabaseConfig{DriverType: driverType, DriverArgs: driverArgs}, nil
}

// PrepareMysqlDatabase creates the target database if it does not exist yet.
// The database name is extracted from the DSN, then a server-level connection
// (DSN without database name) executes the CREATE DATABASE statement.
func PrepareMysqlDatabase(driverArgs string) error {
	databaseName, serverArgs, err := splitMysqlDriverArgs(driverArgs)
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", serverArgs)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("CREATE DATABASE IF NOT EXISTS `" + databaseName + "` CHARACTER SET utf8mb4")
	return err
}

func splitMysqlDriverArgs(driverArgs string) (databaseName, serverArgs string, err error) {
	idx := strings.LastIndex(driverArgs, "/")
	if idx < 0 {
		return "", "", errors.New("invalid mysql driver args: database name not found")
	}
	rest := driverArgs[idx+1:]
	serverArgs = driverArgs[0 : idx+1]

	if q := strings.Index(rest, "?"); q >= 0 {
		databaseName = rest[0:q]
		serverArgs = serverArgs + rest[q:]
	} else {
		databaseName = rest
	}
	if databaseName == "" {
		return "", "", errors.New("invalid mysql driver args: database name is empty")
	}
	return databaseName, serverArgs, nil
}
