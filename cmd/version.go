package cmd

import (
	"fmt"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmessages/buildvars/color"
	"github.com/tmessages/buildvars/constant"
	"github.com/tmessages/buildvars/style"
	"github.com/tmessages/buildvars/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the client build version name")
	versionCmd.Flags().String("require", "", "Fail unless the client build version name is at least this version")
}

var versionTemplate = lo.Must(template.New("version").Funcs(map[string]any{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Client build" }}    {{ bold .BuildName }} ({{ .BuildCode }})
  {{ faint "Debug" }}           {{ .Debug }}

  {{ faint "Tool version" }}    {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
`))

// versionCmd displays the client build identity and tool metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the client build version and tool metadata",
	Long:  "Display the client build version name and code from the registry, the debug flag, and the build metadata of this tool.",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}

		if required := lo.Must(cmd.Flags().GetString("require")); required != "" {
			ok, err := version.AtLeast(reg.BuildVersionName(), required)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("client build %s is older than required %s", reg.BuildVersionName(), required)
			}
		}

		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(reg.BuildVersionName())
			return nil
		}

		return versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App       string
			BuildName string
			BuildCode int
			Debug     string
			Version   string
			OS        string
			Arch      string
			BuiltAt   string
			BuiltBy   string
			Revision  string
		}{
			App:       constant.Buildvars,
			BuildName: reg.BuildVersionName(),
			BuildCode: reg.BuildVersionCode(),
			Debug:     style.Status(reg.DebugEnabled()),
			Version:   constant.Version,
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			BuiltAt:   strings.TrimSpace(constant.BuiltAt),
			BuiltBy:   constant.BuiltBy,
			Revision:  constant.Revision,
		})
	},
}
