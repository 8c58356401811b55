package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carolcampos22/chatterbox/internal/auth"
)

// genjwks generates an ES256 keypair for signing credentials.
// The private JWK feeds `gentoken -key`, the public JWKS is served at JWKS_URL.
//
// Usage:
//
//	go run ./cmd/genjwks [-kid chatterbox-signing-key] [-out signing-key.json]
func main() {
	kid := flag.String("kid", "chatterbox-signing-key", "key id written to the JWK")
	out := flag.String("out", "", "optional file to write the private JWK to")
	flag.Parse()

	private, public, err := auth.GenerateSigningKey(*kid)
	if err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	privateJSON, err := json.MarshalIndent(private, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal private JWK: %v", err)
	}
	publicJSON, err := json.MarshalIndent(public, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal JWKS: %v", err)
	}

	fmt.Println("Private JWK (keep secret, pass to gentoken -key):")
	fmt.Println(string(privateJSON))
	fmt.Println()
	fmt.Println("Public JWKS (serve this document at JWKS_URL):")
	fmt.Println(string(publicJSON))

	if *out != "" {
		if err := os.WriteFile(*out, privateJSON, 0o600); err != nil {
			log.Fatalf("Failed to write key file: %v", err)
		}
		fmt.Printf("\nPrivate key saved to %s\n", *out)
	}
}
