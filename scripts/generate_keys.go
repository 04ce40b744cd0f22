//go:build ignore

// This script generates API keys for the container catalog write endpoints.
// Run with: go run scripts/generate_keys.go -n 3
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hyperkh65/loadsim/internal/middleware"
)

func generateKey(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func main() {
	count := flag.Int("n", 1, "number of keys")
	length := flag.Int("bytes", 24, "random bytes per key")
	flag.Parse()

	if *count < 1 || *length < 16 {
		fmt.Fprintln(os.Stderr, "need -n >= 1 and -bytes >= 16")
		os.Exit(2)
	}

	keys := make([]string, 0, *count)
	for i := 0; i < *count; i++ {
		key, err := generateKey(*length)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating API key: %v\n", err)
			os.Exit(1)
		}
		keys = append(keys, key)
	}

	fmt.Println("# Add to your .env file")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("API_KEYS=%s\n", strings.Join(keys, ","))
	fmt.Println()
	fmt.Println("# Audit log actor per key")
	for _, key := range keys {
		fmt.Printf("#   %s\n", middleware.MaskKey(key))
	}
}
