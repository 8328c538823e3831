package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tikhub/api/catalog"
)

// endpointsCmd represents the endpoints command
var endpointsCmd = &cobra.Command{
	Use:   "endpoints [prefix]",
	Short: "List the endpoints the client knows about",
	Long: `List every declared endpoint with its method and path. An optional prefix
narrows the list, for example "tiktok." or "douyin.search".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEndpoints,
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}

func runEndpoints(cmd *cobra.Command, args []string) error {
	descriptors := catalog.All()
	if len(args) == 1 {
		descriptors = catalog.Filter(args[0])
	}

	if len(descriptors) == 0 {
		fmt.Println("No endpoints match.")
		return nil
	}

	width := 0
	for _, d := range descriptors {
		width = max(width, len(d.Name))
	}

	fmt.Printf("%-*s %-6s %s\n", width, "NAME", "METHOD", "PATH")
	fmt.Println(strings.Repeat("━", width+50))
	for _, d := range descriptors {
		fmt.Printf("%-*s %-6s %s\n", width, d.Name, d.Method, d.Path)
	}
	fmt.Printf("\n%d endpoints\n", len(descriptors))

	return nil
}
