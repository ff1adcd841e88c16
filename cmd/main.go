package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/n10ty/account"
	"github.com/n10ty/account/route"
	"github.com/n10ty/account/token"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "account",
	Short: "Account routes service",
	Long:  `Serves the account feature area (activation, password, registration, settings, history, invite)`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Mount the account routes and serve them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		srv, err := account.NewServer(cfg, nil)
		if err != nil {
			return err
		}
		defer srv.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the account route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Path", "Name", "Component", "Authorities", "Page title"})
		for _, e := range route.Flatten(account.AccountState) {
			path := route.JoinPath(cfg.BasePath, e.Path)
			if path == "" {
				path = "/"
			}
			table.Append([]string{
				path,
				e.Route.Name,
				e.Route.Component,
				strings.Join(e.Route.Authorities, ","),
				e.Route.PageTitle,
			})
		}
		table.Render()
		return nil
	},
}

var (
	tokenName        string
	tokenAuthorities []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a JWT accepted by the account routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		jwt, err := account.IssueToken(cfg, token.Principal{Name: tokenName, Authorities: tokenAuthorities})
		if err != nil {
			return err
		}
		fmt.Println(jwt)
		return nil
	},
}

func loadConfig() (*account.Config, error) {
	cfg, err := account.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}
	account.SetupLogger(cfg.LogLevel)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "path to config file")

	tokenCmd.Flags().StringVar(&tokenName, "name", "", "principal name")
	tokenCmd.Flags().StringSliceVar(&tokenAuthorities, "authorities", []string{token.RoleUser}, "granted authorities")
	_ = tokenCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(serveCmd, routesCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("Failed to execute command: %s", err)
		os.Exit(1)
	}
}
