package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"porch/internal/contact"
)

func newContactCmd(app *App) *cobra.Command {
	var form contact.Form
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Validate a contact form submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res := contact.Validate(form)
			if !res.Valid() {
				for _, e := range res.Errors() {
					fmt.Fprintf(out, "%s: %s\n", e.Field, e.Message)
				}
				return ExitError{Code: 1}
			}
			fmt.Fprintln(out, contact.MsgSubmitted)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number (optional)")
	cmd.Flags().StringVar(&form.Message, "message", "", "Message")
	return cmd
}
