package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EGAdams/adk-web/internal/config"
	"github.com/EGAdams/adk-web/internal/workspace"
)

// initCmd provisions the workspace: config file plus the code and test
// directories. Safe to run repeatedly.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the workspace directories and default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := config.Path(workspacePath)

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		if _, statErr := os.Stat(cfgPath); os.IsNotExist(statErr) {
			if err := cfg.Save(cfgPath); err != nil {
				return err
			}
			logger.Info("wrote default config", zap.String("path", cfgPath))
			fmt.Printf("Created %s\n", cfgPath)
		} else {
			fmt.Printf("Config already exists at %s\n", cfgPath)
		}

		wsCfg := cfg.Workspace
		wsCfg.CodeDir = resolve(wsCfg.CodeDir)
		wsCfg.TestDir = resolve(wsCfg.TestDir)
		ws := workspace.New(wsCfg)
		if err := ws.EnsureDirs(); err != nil {
			return err
		}

		fmt.Printf("Code directory: %s\n", ws.CodeDir())
		fmt.Printf("Test directory: %s\n", ws.TestDir())
		return nil
	},
}
