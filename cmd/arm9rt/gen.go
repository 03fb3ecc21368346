package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/arm9rt/builder"
)

var (
	genOpts = struct {
		output string
		layout string
		tags   string
	}{}

	genCmd = &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate startup stubs for annotated packages",
		Long:  "Generate startup stubs for annotated packages and stage the transformed sources into the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get the current working directory
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			builderOptions := builder.Options{
				Output: genOpts.output,
				Layout: genOpts.layout,
			}

			if len(genOpts.tags) > 0 {
				builderOptions.BuildTags = strings.Split(genOpts.tags, ",")
			}

			if len(args) == 0 {
				// Transform the current directory by default
				builderOptions.Packages = append(builderOptions.Packages, cwd)
			} else {
				// Convert the paths to relative paths
				for _, arg := range args {
					if filepath.IsAbs(arg) {
						path, _ := filepath.Rel(cwd, arg)
						builderOptions.Packages = append(builderOptions.Packages, path)
					} else {
						builderOptions.Packages = append(builderOptions.Packages, arg)
					}
				}
			}

			if err := builder.BuildPackages(cmd.Context(), builderOptions); err != nil {
				if errors.Is(err, builder.ErrParserError) {
					return fmt.Errorf("annotation error:\n%w", err)
				}
				return err
			}
			return nil
		},
	}
)

func init() {
	genCmd.Flags().StringVarP(&genOpts.output, "output", "o", "build", "output directory")
	genCmd.Flags().StringVar(&genOpts.layout, "layout", "", "memory layout document")
	genCmd.Flags().StringVarP(&genOpts.tags, "tags", "t", "", "build tags")
	rootCmd.AddCommand(genCmd)
}
