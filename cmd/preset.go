package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/scan"
)

var presetCmd = &cobra.Command{
	Use:   "preset <name>",
	Short: "Print the diagnosis of a sample leaf",
	Long: "Print the fixed diagnosis of one of the sample leaves: " +
		strings.Join(diagnosis.PresetNames(), ", ") + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: diagnosis.PresetNames(),
	RunE:      runPreset,
}

func init() {
	presetCmd.Flags().Bool("json", false, "Print the result as JSON")
}

func runPreset(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := newService()
	if err != nil {
		return err
	}

	sess := svc.SelectMethod(scan.New(scan.MethodSample), scan.MethodSample)
	sess, err = svc.ApplyPreset(sess, args[0])
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), svc, sess, asJSON)
}
