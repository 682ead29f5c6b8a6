package cmd

import (
	"fmt"
	"strings"

	"material-manager/core/sampler"

	"github.com/spf13/cobra"
)

// decodeCmd decodes sampler identifiers from the command line.
var decodeCmd = &cobra.Command{
	Use:   "decode <sampler-name>...",
	Short: "Decode sampler identifiers into slot index and texture role",
	Long: `Decode one or more sampler identifiers and print the slot index,
texture role, and generation each one carries.

Examples:
  material-manager decode "C_AM_cloth__snp_Texture2D_2_AlbedoMap"
  material-manager decode "g_DiffuseTexture" "g_BumpmapTexture"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for i, name := range args {
			if i > 0 {
				fmt.Println()
			}
			printDecoded(name)
		}
	},
}

func init() {
	RootCmd.AddCommand(decodeCmd)
}

func printDecoded(name string) {
	index, baseType, legacy := sampler.Decode(name)

	fmt.Printf("Name: %s\n", name)
	fmt.Printf("Display: %s\n", sampler.DisplayName(name))
	if index == sampler.NoIndex {
		fmt.Println("Index: -")
	} else {
		fmt.Printf("Index: %d\n", index)
	}
	fmt.Printf("Type: %s\n", baseType)

	if !legacy {
		fmt.Println("Generation: modern")
		return
	}

	fmt.Println("Generation: legacy")
	if candidates := sampler.ModernCandidates(baseType); len(candidates) > 0 {
		fmt.Printf("Converts To: %s\n", strings.Join(candidates, ", "))
	}
}
