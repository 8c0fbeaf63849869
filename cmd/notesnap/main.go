package main

import (
	"context"
	"log"

	"github.com/shindearyan179/notesnap/internal/cli"
	"github.com/shindearyan179/notesnap/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
