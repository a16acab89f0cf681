package main

import (
	"log"
	"net/http"
	"os"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func main() {
	app.Route("/", func() app.Composer { return &DashboardView{} })
	app.RunWhenOnBrowser()

	http.Handle("/", &app.Handler{
		Name:        "DataTrail",
		Title:       "DataTrail Dashboard",
		Description: "Dataset and model provenance dashboard",
	})

	port := os.Getenv("DASHBOARD_PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("Dashboard listening on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
