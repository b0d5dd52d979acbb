// Command hashgen prints bcrypt hashes for the passwords given on the
// command line. Useful for seeding test fixtures.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	passwords := os.Args[1:]
	if len(passwords) == 0 {
		fmt.Fprintln(os.Stderr, "usage: hashgen <password> [password...]")
		os.Exit(1)
	}

	for _, password := range passwords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Printf("Error generating hash for %s: %v\n", password, err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", password, string(hash))
	}
}
