package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/toolgate/internal/catalog"
	"github.com/nextlevelbuilder/toolgate/internal/config"
	"github.com/nextlevelbuilder/toolgate/internal/policy"
	"github.com/nextlevelbuilder/toolgate/internal/sessionoverride"
)

func toolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and exercise the tool-access policy engine",
	}
	cmd.AddCommand(toolsListCmd())
	cmd.AddCommand(toolsCheckCmd())
	cmd.AddCommand(toolsResetCmd())
	return cmd
}

func toolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in tool catalog by section",
		Run: func(cmd *cobra.Command, args []string) {
			cat := catalog.New()
			for _, section := range cat.Sections() {
				fmt.Printf("%s (%s)\n", section.Label, section.ID)
				for _, t := range section.Tools {
					fmt.Printf("  %-20s %s\n", t.ID, t.Description)
				}
			}
		},
	}
}

func toolsCheckCmd() *cobra.Command {
	var provider, agentID, sessionKey string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print the effective tool list for an agent/provider combination",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(resolveConfigPath())
			if err != nil {
				fmt.Println("load config:", err)
				return
			}
			runToolsCheck(cfg, provider, agentID, sessionKey)
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "provider name to evaluate the byProvider overlay for")
	cmd.Flags().StringVar(&agentID, "agent", "", "agent id to evaluate the agent overlay for")
	cmd.Flags().StringVar(&sessionKey, "session", "", "session key whose override, if any, should be layered in")
	return cmd
}

func runToolsCheck(cfg *config.Config, provider, agentID, sessionKey string) {
	cat := catalog.New()
	agentPolicy := cfg.ResolveAgentToolPolicy(agentID)

	layers := policy.DefaultLayers(cat, &cfg.Tools, provider, agentID, agentPolicy, nil)

	if sessionKey != "" {
		store, err := openSessionStore(cfg)
		if err != nil {
			fmt.Println("open session store:", err)
			return
		}
		rec, err := store.Get(context.Background(), sessionKey)
		if err != nil {
			fmt.Println("read session override:", err)
			return
		}
		layers = policy.WithSessionOverride(layers, policy.StepFromSessionOverride(rec, cat, cfg.Tools.NamedProfiles))
	}

	noPlugins := func(string) (string, bool) { return "", false }
	var warnings []string
	warn := func(d policy.Diagnostic) { warnings = append(warnings, d.Message) }

	effective := policy.Execute(context.Background(), cat.CoreToolIDs(), layers, noPlugins, warn, cat, nil)

	fmt.Printf("effective tools (%d):\n", len(effective))
	for _, t := range effective {
		fmt.Printf("  %s\n", t)
	}
	if len(warnings) > 0 {
		fmt.Println("warnings:")
		for _, w := range warnings {
			fmt.Printf("  %s\n", w)
		}
	}
}

func toolsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session-key>",
		Short: "Clear a session's tool overrides",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(resolveConfigPath())
			if err != nil {
				fmt.Println("load config:", err)
				return
			}
			store, err := openSessionStore(cfg)
			if err != nil {
				fmt.Println("open session store:", err)
				return
			}
			hadOverrides, err := store.Reset(context.Background(), args[0])
			if err != nil {
				fmt.Println("reset:", err)
				return
			}
			if hadOverrides {
				fmt.Println("Tool overrides cleared. Tools restored to config baseline.")
			} else {
				fmt.Println("No tool overrides were active.")
			}
		},
	}
}

func openSessionStore(cfg *config.Config) (sessionoverride.Store, error) {
	if cfg.IsManagedMode() {
		return openPGSessionStore(cfg)
	}
	dir := config.ExpandHome(cfg.Sessions.Storage)
	if !strings.HasSuffix(dir, "/overrides") {
		dir = dir + "/overrides"
	}
	return sessionoverride.NewFileStore(dir)
}
