package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotestor/internal/logger"
	"github.com/dbsmedya/gotestor/internal/pipeline"
)

var listMatricesCmd = &cobra.Command{
	Use:   "list-matrices",
	Short: "List configured and built-in matrices",
	Long: `List-matrices displays every matrix defined in the configuration file
followed by the built-in presets that are not shadowed by a configured
matrix of the same name.

Example:
  gotestor list-matrices --config testor.yaml`,
	RunE: runListMatrices,
}

func init() {
	rootCmd.AddCommand(listMatricesCmd)
}

func runListMatrices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resolver, err := pipeline.NewResolver(cfg, logger.NewNop())
	if err != nil {
		return fmt.Errorf("failed to build matrix catalog: %w", err)
	}
	entries := resolver.Catalog()

	cmd.Printf("Matrices available with %s:\n\n", GetConfigFile())

	for i, entry := range entries {
		cmd.Printf("%d. %s\n", i+1, entry.Name)
		cmd.Printf("   Source:        %s\n", entry.Source)
		if entry.Description != "" {
			cmd.Printf("   Description:   %s\n", entry.Description)
		}
		if len(entry.UsedBy) > 0 {
			cmd.Printf("   Used by:       %s\n", strings.Join(entry.UsedBy, ", "))
		}

		mc, err := cfg.GetMatrix(entry.Name)
		if err == nil {
			switch {
			case mc.Generate != nil:
				cmd.Printf("   Generate:      %dx%d, density=%.2f, seed=%d\n",
					mc.Generate.Rows, mc.Generate.Cols, mc.Generate.Density, mc.Generate.Seed)
			case mc.Combine != nil:
				cmd.Printf("   Combine:       %s(%s, %s), power=%d\n",
					mc.Combine.Operator, mc.Combine.Left, mc.Combine.Right, mc.Combine.Power)
			default:
				cmd.Printf("   Rows:          %d\n", len(mc.Rows))
			}

			// Matrix-specific enumeration config
			if mc.Enumeration != nil {
				cmd.Printf("   Enumeration:   Custom (algorithm=%s, row_order=%s)\n",
					mc.Enumeration.Algorithm, mc.Enumeration.RowOrder)
			}

			// Matrix-specific verification config
			if mc.Verification != nil {
				cmd.Printf("   Verification:  Custom (method=%s, skip=%v)\n",
					mc.Verification.Method, mc.Verification.SkipVerification)
			}
		}

		// Add spacing between matrices
		if i < len(entries)-1 {
			cmd.Println()
		}
	}

	cmd.Printf("\nTotal: %d matrix(es)\n", len(entries))
	return nil
}
