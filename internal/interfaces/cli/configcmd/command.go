// Package configcmd prints the effective configuration.
package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/autocrm/autocrm/internal/infrastructure/config"
	"github.com/autocrm/autocrm/internal/interfaces/cli/bootstrap"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

var (
	env        string
	configPath string
	reveal     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults, the config file and AUTOCRM_* variables are merged. Secrets are masked unless --reveal is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig(bootstrap.Environment(env), configPath)
			if err != nil {
				return err
			}
			out, err := render(cfg, reveal)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print secrets in clear text")

	return cmd
}

func render(cfg *config.Config, reveal bool) ([]byte, error) {
	masked := *cfg
	if !reveal {
		masked.Database.Password = utils.MaskSecret(cfg.Database.Password)
		masked.Backend.AnonKey = utils.MaskSecret(cfg.Backend.AnonKey)
		masked.Backend.ServiceKey = utils.MaskSecret(cfg.Backend.ServiceKey)
		masked.Backend.JWTSecret = utils.MaskSecret(cfg.Backend.JWTSecret)
		masked.RateLimit.RedisPassword = utils.MaskSecret(cfg.RateLimit.RedisPassword)
	}

	out, err := yaml.Marshal(&masked)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}
