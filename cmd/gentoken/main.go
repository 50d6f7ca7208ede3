// gentoken mints JWT tokens for local testing against a running server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/citynights/server/internal/auth"
)

func main() {
	subject := flag.String("subject", "test-user", "token subject")
	role := flag.String("role", "editor", "token role (admin, editor, app)")
	clientType := flag.String("client-type", "dashboard", "client type (app, dashboard)")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET is required")
		os.Exit(1)
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "citynights"
	}

	manager := auth.NewJWTManager(secret, *expiry, issuer)
	token, err := manager.Generate(*subject, string(auth.NormalizeRole(*role)), auth.NormalizeClientType(*clientType))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("JWT Token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/v1/venues\n", token)
}
