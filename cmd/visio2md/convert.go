package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/visio2md/internal/convert"
	"github.com/pdiddy/visio2md/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.vsdx>",
	Short: "Convert a Visio file to Markdown and/or JSON",
	Long: `Convert reads a .vsdx file and emits Markdown with Mermaid diagrams,
a structured JSON export, or both. Output goes to standard output unless
--output names a destination; in combined mode the destination is a base
path that receives a .md and a .json file.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd)
	if err != nil {
		return err
	}

	loader := convert.VSDXLoader{MaxDepth: cfg.MaxDepth}
	return convert.Run(loader, args[0], cfg, os.Stderr)
}

// convertConfig merges flag values over config-file/env defaults.
func convertConfig(cmd *cobra.Command) (types.ConvertConfig, error) {
	cfg := types.DefaultConvertConfig()
	cfg.MaxDepth = viper.GetInt("max_depth")
	cfg.InferThreshold = viper.GetInt("infer_threshold")

	formatValue := viper.GetString("format")
	if cmd.Flags().Changed("format") {
		formatValue, _ = cmd.Flags().GetString("format")
	}
	format, err := types.ParseFormat(formatValue)
	if err != nil {
		return types.ConvertConfig{}, err
	}
	cfg.Format = format

	cfg.OutputPath, _ = cmd.Flags().GetString("output")
	return cfg, nil
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file path (default: standard output)")
	convertCmd.Flags().StringP("format", "f", "markdown", "output format: markdown, json, or both")

	rootCmd.AddCommand(convertCmd)
}
