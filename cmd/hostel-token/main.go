// hostel-token mints a bearer token accepted by the API's auth gate.
//
// It signs with the same secret, issuer and audience the server is
// configured with, so it reads the same config file:
//
//	go run ./cmd/hostel-token --config=config/local.yaml --sub=warden --ttl=2h
//
// The token is printed to stdout:
//
//	curl -H "Authorization: Bearer $(go run ./cmd/hostel-token ...)" localhost:8082/api/students
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/aanand-mishra/hostel-api/internal/auth"
	"github.com/aanand-mishra/hostel-api/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to the configuration YAML file")
	subject := flag.String("sub", "admin", "Token subject (user id)")
	email := flag.String("email", "", "Email claim")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	if *configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	token, err := auth.Issue(*subject, *email, auth.IssueOptions{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
		TTL:      *ttl,
	})
	if err != nil {
		log.Fatalf("cannot issue token: %s", err)
	}
	fmt.Println(token)
}
