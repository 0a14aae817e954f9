// One-off: go run scripts/genhash.go [username] [password]
// Prints an INSERT for a seed account, hashed the same way registration does.
package main

import (
	"fmt"
	"os"
	"strings"

	"Bookshop/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	username, password := "gold", "smiths"
	if len(os.Args) > 2 {
		username, password = os.Args[1], os.Args[2]
	}

	h, err := auth.NewHasher(bcrypt.DefaultCost).Hash(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf(
		"INSERT INTO users (username, first_name, last_name, email, hashed_password) VALUES ('%s', '', '', '%s@example.com', '%s');\n",
		quote(username), quote(username), h,
	)
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
