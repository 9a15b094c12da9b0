package main

import (
	"flag"
	"log"
	"os"

	"github.com/jiamingluuu/RayTracer2D/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory of YAML scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *sceneDir)

	log.Printf("RayTracer2D Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
