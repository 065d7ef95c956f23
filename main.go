package main

import (
	"context"
	"log"
	"net/http"
	"projectform/bizerror"
	"projectform/domain/submission"
	"projectform/infra/tracing"
	"projectform/notification"
	"projectform/persistence"
	"projectform/servehttp"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(&submission.Submission{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	smtpConfig, err := notification.ParseSmtpConfigFromEnv()
	if err != nil {
		log.Fatalf("parse smtp config failed %v\n", err)
	}
	notification.ActiveSmtpConfig = smtpConfig
	if smtpConfig == nil {
		log.Println("mail transport is not configured, confirmation emails are disabled")
	}

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "projectform")
	})

	submission.RegisterSubmissionsRestAPI(engine)

	servehttp.StartHTTPServer(engine)
}
