package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/command"
	"github.com/conn-castle/dep-autosync/internal/config"
	"github.com/conn-castle/dep-autosync/internal/logging"
	"github.com/conn-castle/dep-autosync/internal/messages"
)

// newCoordinator is a seam for tests.
var newCoordinator = func(cfg *config.Config) (autosync.Coordinator, error) {
	return command.New(command.FromConfig(cfg), nil)
}

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(messages.VersionTemplate)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", messages.RootFlagEnvFile)

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newAssessCmd())
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newMcpCmd(opts))
	return cmd
}

// runtime bundles the loaded config and logger for one command invocation.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

// loadRuntime reads the config (with optional .env overrides) and builds the logger.
// Logs go to stderr so stdout stays reserved for command output.
func loadRuntime(opts *rootOptions, stderr io.Writer) (*runtime, error) {
	path, err := config.DefaultConfigPath()
	if opts.configPath != "" {
		path, err = config.ExpandPath(opts.configPath)
	}
	if err != nil {
		return nil, err
	}
	var env map[string]string
	if opts.envFile != "" {
		envPath, err := config.ExpandPath(opts.envFile)
		if err != nil {
			return nil, err
		}
		env, err = config.LoadEnv(envPath)
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.LoadConfig(path, env)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel(), cfg.LogFormat(), stderr)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

// orchestrator builds an Orchestrator from the runtime config.
// When autoApply is false the policy is forced into plan-only mode.
func (rt *runtime) orchestrator(autoApply bool) (*autosync.Orchestrator, error) {
	policy, err := rt.cfg.Policy()
	if err != nil {
		return nil, err
	}
	if !autoApply {
		policy = policy.WithAutoApply(false)
	}
	coord, err := newCoordinator(rt.cfg)
	if err != nil {
		return nil, err
	}
	return autosync.New(policy, coord, autosync.WithLogger(rt.logger))
}

