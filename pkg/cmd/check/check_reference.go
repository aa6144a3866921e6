package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skidmark-racing/chorley/pkg/config"
	"github.com/skidmark-racing/chorley/pkg/reference"
)

// NewCheckReferenceCmd loads the reference catalogs and prints their
// sizes. Zero counts usually mean a wrong --reference-dir.
func NewCheckReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "verifies the reference data catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkReference()
		},
	}
	return cmd
}

func checkReference() error {
	idx := reference.NewIndex(config.ReferenceDir)
	tracks, vehicles, classes := idx.Counts()
	fmt.Printf("reference data: %d tracks, %d vehicles, %d vehicle classes\n",
		tracks, vehicles, classes)
	if tracks == 0 && vehicles == 0 && classes == 0 {
		return fmt.Errorf("no reference data found in %s", config.ReferenceDir)
	}
	return nil
}
