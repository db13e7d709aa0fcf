package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/imaging"
	"github.com/abhisek/agriscan/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan one leaf image and print the diagnosis",
	Long: `Scan a leaf image once and print the diagnosis, treatment advice and
confidence chart. Without --image the scan runs on an absent camera frame.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("image", "", "JPG or PNG leaf image to scan")
	scanCmd.Flags().Bool("json", false, "Print the result as JSON")
	scanCmd.Flags().Int64("max-upload-bytes", imaging.DefaultMaxBytes, "Largest image accepted, in bytes")
}

func runScan(cmd *cobra.Command, args []string) error {
	imagePath, _ := cmd.Flags().GetString("image")
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := newService()
	if err != nil {
		return err
	}

	method := scan.MethodCamera
	var img *imaging.Image
	if imagePath != "" {
		method = scan.MethodUpload
		img, err = diagnosis.OpenImage(imagePath, cfg.Scan.MaxUploadBytes)
		if err != nil {
			return err
		}
	}

	sess := svc.SelectMethod(scan.New(method), method)
	sess, err = svc.Scan(cmd.Context(), svc.Begin(sess), img)
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), svc, sess, asJSON)
}
