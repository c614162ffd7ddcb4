package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"githook/internal"

	"github.com/gofiber/fiber/v3"
)

func main() {
	portFlag := flag.String("port", "8080", "port to listen on")
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	port := strings.TrimSpace(*portFlag)
	if port == "" {
		log.Fatal("port is required")
	}

	app, cfg := internal.SetupApp(*envRoot, *appVersion)

	fmt.Println("APP VERSION:", cfg.Version)

	if err := app.Listen(fmt.Sprintf(":%s", port), fiber.ListenConfig{
		EnablePrefork: cfg.Prefork,
	}); err != nil {
		log.Fatalf("Error listening on port %s: %v", port, err)
	}
}
