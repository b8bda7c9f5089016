package mirpeval

import (
	"io"

	"github.com/k0kubun/pp"
	"github.com/spf13/viper"

	"github.com/mwiater/mirpeval/internal/appconfig"
)

func runShowConfig(out io.Writer) {
	file := viper.ConfigFileUsed()
	cfg := GetConfig()

	appconfig.ShowConfig(out, file, cfg, appconfig.Config{})

	if cfg != nil && DebugEnabled() {
		pp.Fprintln(out, cfg)
	}
}
