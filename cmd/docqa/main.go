package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docqa/internal/app"
	"github.com/dmitrijs2005/docqa/internal/buildinfo"
	"github.com/dmitrijs2005/docqa/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	a.Run(ctx)

}
