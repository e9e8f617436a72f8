package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/youruser/teeapp/internal/api"
	"github.com/youruser/teeapp/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", os.Getenv("TEE_CONFIG"), "path to the YAML config")
	listen := flag.String("listen", "", "listen address, overrides the config")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if port := os.Getenv("PORT"); port != "" {
		conf.Listen = ":" + port
	}
	if *listen != "" {
		conf.Listen = *listen
	}

	h, err := api.NewHandler(conf)
	if err != nil {
		log.Fatal("load layouts: ", err)
	}

	r := gin.Default()
	api.RegisterRoutes(r, h)

	log.Println("starting server on", conf.Listen)
	if err := r.Run(conf.Listen); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
