// Command operator-token prints a bearer token for the operator endpoints,
// signed with the server's JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"bigbang-server/internal/middleware"
	"bigbang-server/internal/shared/config"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if !config.GlobalConfig.OperatorEndpointsEnabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set, operator endpoints are disabled")
		os.Exit(1)
	}

	token, err := middleware.IssueOperatorToken(config.GlobalConfig.Auth.JWTSecret, *subject, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
