// Package config wires the field registry into viper: defaults, env bindings and the toml file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kurasora/kurasora/constant"
	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to env variable names (providers.kuramanime.url -> PROVIDERS_KURAMANIME_URL).
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, binds env variables and reads kurasora.toml if present.
func Setup() error {
	viper.SetConfigName(constant.Kurasora)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Kurasora)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}
