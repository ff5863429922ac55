package cmd

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
)

func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	if err := godotenv.Load(configPath); err != nil {
		log.Fatalf("error loading env file %s: %v", configPath, err)
	}

	log.Printf("loaded env from %s", configPath)
}
