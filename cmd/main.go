package main

import (
	"github.com/corray333/backend-labs/pricing/internal/app"
	"github.com/corray333/backend-labs/pricing/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
