package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/service"
	"github.com/noah-isme/course-enrollment-api/pkg/config"
)

func main() {
	userID := flag.String("user", "dev-registrar", "subject of the token")
	role := flag.String("role", string(models.RoleRegistrar), "ADMIN, REGISTRAR or STUDENT")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_EXPIRATION")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	r := models.UserRole(strings.ToUpper(*role))
	if !r.IsValid() {
		log.Fatalf("unknown role %q", *role)
	}

	expiry := cfg.JWT.Expiration
	if *ttl > 0 {
		expiry = *ttl
	}
	auth := service.NewAuthService(nil, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: expiry,
		Issuer:            "course-enrollment-api",
	})
	token, expiresAt, err := auth.IssueToken(*userID, r)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
	fmt.Println(token)
}
