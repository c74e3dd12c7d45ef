// cmd/mathic/main.go
package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/smurfs/mathic-client/internal/cli"
)

func main() {
	cli.Execute()
}
