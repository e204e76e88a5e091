package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bogleworks/boglesim/advisor"
	"github.com/bogleworks/boglesim/config"
	"github.com/bogleworks/boglesim/server"
	"github.com/bogleworks/boglesim/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the optimizer as a JSON API",
	Long: `Serve starts the HTTP server the web UI talks to: simulation, growth
projection, fund catalog, tax placement, advisor, and portfolio/run
persistence endpoints.

Example:
  boglesim serve --config boglesim.yaml`,
	RunE: runServe,
}

var serveConfigPath string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "f", "", "path to config file (defaults apply when omitted)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if serveConfigPath != "" {
		loaded, err := config.LoadFromFile(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	engine, err := cfg.Simulation.Engine()
	if err != nil {
		return err
	}

	st, err := store.NewSQLite(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	var adv *advisor.Advisor
	if key := cfg.Advisor.APIKey(); key != "" {
		adv = advisor.New(key, cfg.Advisor.Model)
		log.Printf("advisor enabled (model %s)", cfg.Advisor.Model)
	} else {
		log.Printf("advisor disabled: no API key in environment")
	}

	srv := server.New(engine, st, adv, cfg.Simulation.Trials)
	log.Printf("listening on %s (db %s, %d default trials)",
		cfg.Server.Addr, cfg.Store.DBPath, cfg.Simulation.Trials)
	return srv.ListenAndServe(cfg.Server.Addr)
}
