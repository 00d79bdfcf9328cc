package main

import (
	"fmt"
	"os"

	"github.com/shrimpsizemoose/examdesk/internal/app"
	"github.com/shrimpsizemoose/examdesk/internal/cli"
)

func main() {
	rootCmd := cli.RootCmd(func(configPath string) (cli.Desk, func() error, error) {
		service, err := app.NewService(configPath)
		if err != nil {
			return nil, nil, err
		}
		return service.Access, service.Close, nil
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
