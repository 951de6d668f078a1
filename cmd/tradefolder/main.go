package main

import (
	"log"
	"os"

	"TradeFolder/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	app := cli.New(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Command().Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}
