package main

import (
	"context"
	"log"

	"github.com/yamoo9/todo-list-api-for-learning/internal/server"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
