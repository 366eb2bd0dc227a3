package main

import (
	"log"
	"os"

	"corujoticket/config"
	"corujoticket/controllers"
	"corujoticket/db"
	"corujoticket/router"
	"corujoticket/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	conf := config.Get(configPath)
	controllers.SetConfigurations(conf)
	db.SetConfigurations(conf)

	database, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r)

	workers.StartNotificacoesProcessor(database)

	log.Printf("CorujoTicket listening on :%s", conf.ApiPort)
	if err := r.Run(":" + conf.ApiPort); err != nil {
		log.Fatal(err)
	}
}
