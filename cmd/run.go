package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quantumrishi/rishi/internal/app"
	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/screen"
	"github.com/quantumrishi/rishi/internal/session"
)

// runApp builds the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := newRuntime(cmd, logQuiet)
	if err != nil {
		return err
	}
	defer rt.Close()

	chatCfg := chat.DefaultConfig()
	chatCfg.TTL = rt.cfg.ChatSessionTTL

	deps := screen.Deps{
		Controller: session.NewController(plan.NewService(rt.provider, plan.DefaultConfig()), rt.log),
		Chat:       rt.provider,
		ChatConfig: chatCfg,
		Log:        rt.log,
	}
	return app.Run(deps)
}
