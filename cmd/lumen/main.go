package main

import (
	"os"

	"github.com/spf13/cobra"

	"lumen/internal/interfaces/cli/server"
	"lumen/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumen",
		Short: "Lumen - portfolio and blog backend",
		Long:  `Lumen serves a portfolio/blog site: public content, contact form delivery, and admin authoring behind role-checked authentication.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
