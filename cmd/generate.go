package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sChintamani/reflectcfg/internal/pass"
)

var generateCmd = &cobra.Command{
	Use:   "generate [source-dir]",
	Short: "Run one pass over the sources and emit native-image metadata",
	Long: `Walks the given source tree, classifies every annotated declaration,
and writes reflection-config.json plus native-image.properties under the
output tree's META-INF directory, merged with any hand-authored
src/main/<toolchain>/reflect.json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		outDir := viper.GetString("output")
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		p, err := pass.New(pass.Options{
			Source:           args[0],
			ProjectRoot:      viper.GetString("project-root"),
			Toolchain:        viper.GetString("toolchain"),
			Out:              osfs.New(outDir),
			CachePath:        viper.GetString("cache"),
			ExtraEntryPoints: viper.GetStringSlice("entry-point-annotations"),
			Log:              log,
		})
		if err != nil {
			return err
		}
		defer func() { _ = p.Close() }()

		start := time.Now()
		log.Info("analyzing sources", "source", args[0])
		if err := p.Run(cmd.Context()); err != nil {
			return err
		}
		log.Info("pass complete", "elapsed", time.Since(start))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "build/generated/resources", "Resource output tree (META-INF is created inside it)")
	generateCmd.Flags().String("project-root", ".", "Project root holding src/main/<toolchain>/reflect.json")
	generateCmd.Flags().String("toolchain", "graal", "Toolchain directory name for the base document")
	generateCmd.Flags().String("cache", "", "Path to a fact cache database (disabled when empty)")
	generateCmd.Flags().StringSlice("entry-point-annotations", nil, "Extra annotation simple names treated as entry points")
	_ = viper.BindPFlag("output", generateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("project-root", generateCmd.Flags().Lookup("project-root"))
	_ = viper.BindPFlag("toolchain", generateCmd.Flags().Lookup("toolchain"))
	_ = viper.BindPFlag("cache", generateCmd.Flags().Lookup("cache"))
	_ = viper.BindPFlag("entry-point-annotations", generateCmd.Flags().Lookup("entry-point-annotations"))

	rootCmd.AddCommand(generateCmd)
}
