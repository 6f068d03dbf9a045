package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/config"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and storage health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println("toolgate doctor")
	fmt.Printf("  Version:  %s\n", Version)
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())
	fmt.Println()

	cfgPath := resolveConfigPath()
	fmt.Printf("  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Println(" (using defaults, file not found)")
	} else {
		fmt.Println(" (OK)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  Config load error: %s\n", err)
		return
	}

	fmt.Println()
	fmt.Println("  Storage:")
	if cfg.IsManagedMode() {
		fmt.Printf("    %-12s managed (postgres)\n", "Mode:")
		db, err := openDB(cfg)
		if err != nil {
			fmt.Printf("    %-12s CONNECT FAILED (%s)\n", "Status:", err)
		} else {
			defer db.Close()
			fmt.Printf("    %-12s OK\n", "Status:")
		}
	} else {
		fmt.Printf("    %-12s standalone (file)\n", "Mode:")
		dir := config.ExpandHome(cfg.Sessions.Storage)
		fmt.Printf("    %-12s %s\n", "Sessions:", dir)
	}

	fmt.Println()
	fmt.Println("  Authorization:")
	fmt.Printf("    %-12s %d configured\n", "Owners:", len(cfg.Gateway.OwnerIDs))
	fmt.Printf("    %-12s %d/min\n", "Rate limit:", cfg.Gateway.RateLimitRPM)

	fmt.Println()
	fmt.Println("  Tool catalog:")
	cat := catalog.New()
	for _, section := range cat.Sections() {
		fmt.Printf("    %-12s %d tools\n", section.Label+":", len(section.Tools))
	}

	fmt.Println()
	fmt.Println("Doctor check complete.")
}
