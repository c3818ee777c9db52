package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewReceiptCommand creates the receipt command group.
func NewReceiptCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Inspect delivery receipts",
	}
	cmd.AddCommand(newReceiptListCommand(rootOpts))
	return cmd
}

func newReceiptListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List delivery receipts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			a, cleanup, err := rootOpts.newApp(rootOpts)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			receipts, err := a.ListReceipts(cmd.Context())
			if err != nil {
				return out.Error(err)
			}

			var b strings.Builder
			for _, r := range receipts {
				fmt.Fprintf(&b, "%s  %s  invoice %s  %s -> %s  total %.2f  signed by %s\n",
					r.ID, r.DeliveredAt.Format("2006-01-02"), r.InvoiceNumber,
					r.PickupCompany, r.DeliveryCompany, r.Total, r.ReceiverName)
			}
			return out.Success(receipts, strings.TrimRight(b.String(), "\n"))
		},
	}
	return cmd
}
