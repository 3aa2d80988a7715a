package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/accmachine/internal/bot"
	"github.com/dmitrijs2005/accmachine/internal/bot/config"
	"github.com/dmitrijs2005/accmachine/internal/buildinfo"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := bot.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
