package main

import (
	"os"

	"github.com/propertychain/propertychain-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
