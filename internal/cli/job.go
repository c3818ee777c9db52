package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/haulory/haulory/internal/app"
	"github.com/haulory/haulory/internal/domain"
)

// NewJobCommand creates the job command group.
func NewJobCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage the active job board",
	}
	cmd.AddCommand(newJobAddCommand(rootOpts))
	cmd.AddCommand(newJobListCommand(rootOpts))
	cmd.AddCommand(newJobReorderCommand(rootOpts))
	cmd.AddCommand(newJobDeliverCommand(rootOpts))
	return cmd
}

// JobAddOptions holds flags for job add.
type JobAddOptions struct {
	*RootOptions
	PickupCompany   string
	PickupAddress   string
	DeliveryCompany string
	DeliveryAddress string
	Reference       string
	Load            string
	Invoice         string
	RateType        string
	RateValue       float64
	Quantity        int
}

func newJobAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JobAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a job to the end of the board",
		Example: `  haulory job add --pickup-company Acme --pickup-address "1 Pickup Rd" \
    --delivery-company Bolt --delivery-address "2 Drop St" \
    --rate fixed --rate-value 500 --quantity 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			a, cleanup, err := opts.newApp(opts.RootOptions)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			job, err := a.CreateJob(cmd.Context(), app.CreateJobInput{
				PickupCompany:   opts.PickupCompany,
				PickupAddress:   opts.PickupAddress,
				DeliveryCompany: opts.DeliveryCompany,
				DeliveryAddress: opts.DeliveryAddress,
				ReferenceNumber: opts.Reference,
				LoadDescription: opts.Load,
				InvoiceNumber:   opts.Invoice,
				RateType:        domain.RateType(opts.RateType),
				RateValue:       opts.RateValue,
				Quantity:        opts.Quantity,
			})
			if err != nil {
				return out.Error(err)
			}
			return out.Success(job, fmt.Sprintf("Added job #%d %s -> %s (invoice %s, total %.2f)",
				job.SortOrder, job.PickupCompany, job.DeliveryCompany, job.InvoiceNumber, job.Total()))
		},
	}

	cmd.Flags().StringVar(&opts.PickupCompany, "pickup-company", "", "pickup company")
	cmd.Flags().StringVar(&opts.PickupAddress, "pickup-address", "", "pickup address")
	cmd.Flags().StringVar(&opts.DeliveryCompany, "delivery-company", "", "delivery company")
	cmd.Flags().StringVar(&opts.DeliveryAddress, "delivery-address", "", "delivery address")
	cmd.Flags().StringVar(&opts.Reference, "reference", "", "customer reference number")
	cmd.Flags().StringVar(&opts.Load, "load", "", "load description")
	cmd.Flags().StringVar(&opts.Invoice, "invoice", "", "invoice number (generated when blank)")
	cmd.Flags().StringVar(&opts.RateType, "rate", "fixed", "rate type (fixed|perUnit)")
	cmd.Flags().Float64Var(&opts.RateValue, "rate-value", 0, "rate value")
	cmd.Flags().IntVar(&opts.Quantity, "quantity", 1, "quantity")

	return cmd
}

func newJobListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List active jobs in board order",
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

			jobs, err := a.ListJobs(cmd.Context())
			if err != nil {
				return out.Error(err)
			}

			var b strings.Builder
			for _, j := range jobs {
				fmt.Fprintf(&b, "%2d. %s  %s -> %s  invoice %s  total %.2f\n",
					j.SortOrder, j.ID, j.PickupCompany, j.DeliveryCompany, j.InvoiceNumber, j.Total())
			}
			return out.Success(jobs, strings.TrimRight(b.String(), "\n"))
		},
	}
	return cmd
}

func newJobReorderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reorder <job-id>...",
		Short:         "Rewrite the board order; every active job must be listed",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			order := make([]uuid.UUID, 0, len(args))
			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return out.Error(fmt.Errorf("invalid job id %q: %w", arg, err))
				}
				order = append(order, id)
			}

			a, cleanup, err := rootOpts.newApp(rootOpts)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			if err := a.ReorderJobs(cmd.Context(), order); err != nil {
				return out.Error(err)
			}
			return out.Success(map[string]int{"jobs": len(order)}, fmt.Sprintf("Reordered %d jobs", len(order)))
		},
	}
	return cmd
}

// JobDeliverOptions holds flags for job deliver.
type JobDeliverOptions struct {
	*RootOptions
	Receiver      string
	SignatureFile string
}

func newJobDeliverCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JobDeliverOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "deliver <job-id>",
		Short: "Complete a delivery: write the receipt, remove the job",
		Long: `Complete a delivery. The signature file holds the captured pad strokes as
JSON, for example {"strokes":[{"points":[{"x":1,"y":1},...]}]}.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			jobID, err := uuid.Parse(args[0])
			if err != nil {
				return out.Error(fmt.Errorf("invalid job id %q: %w", args[0], err))
			}
			signature, err := readSignature(opts.SignatureFile)
			if err != nil {
				return out.Error(err)
			}

			a, cleanup, err := opts.newApp(opts.RootOptions)
			if err != nil {
				return out.Error(err)
			}
			defer cleanup()

			receipt, err := a.CompleteDelivery(cmd.Context(), jobID, opts.Receiver, signature)
			if err != nil {
				return out.Error(err)
			}
			return out.Success(receipt, fmt.Sprintf("Delivered. Receipt %s, invoice %s, total %.2f",
				receipt.ID, receipt.InvoiceNumber, receipt.Total))
		},
	}

	cmd.Flags().StringVar(&opts.Receiver, "receiver", "", "name of the person receiving the load")
	cmd.Flags().StringVar(&opts.SignatureFile, "signature-file", "", "JSON file with the captured signature strokes")

	return cmd
}

func readSignature(path string) (domain.Signature, error) {
	if path == "" {
		return domain.Signature{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("read signature file: %w", err)
	}
	var sig domain.Signature
	if err := json.Unmarshal(data, &sig); err != nil {
		return domain.Signature{}, fmt.Errorf("parse signature file %s: %w", path, err)
	}
	return sig, nil
}
