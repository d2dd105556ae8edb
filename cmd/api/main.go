package main

import (
	appfx "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
