package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/client"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add AUGEND ADDEND",
	Short: "Add two numerals",
	Long: `Add two Roman numerals and print the sum in its shortest form.

The sum may not be longer than ROMAN_MAX_NUMERAL_LENGTH symbols once
written additively.

Example:
  roman-calc add IV II
  roman-calc add MCMXCIX I`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalculation(cmd, service.OpAdd, args[0], args[1])
	},
}

// subtractCmd represents the subtract command.
var subtractCmd = &cobra.Command{
	Use:     "subtract MINUEND SUBTRAHEND",
	Aliases: []string{"sub"},
	Short:   "Subtract one numeral from another",
	Long: `Subtract the second Roman numeral from the first and print the
difference. The minuend must be the larger numeral.

Example:
  roman-calc subtract X I
  roman-calc sub MMXXVI MCMXCIX`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalculation(cmd, service.OpSubtract, args[0], args[1])
	},
}

// expandCmd represents the expand command.
var expandCmd = &cobra.Command{
	Use:   "expand NUMERAL",
	Short: "Show a numeral in additive, bundled and minimal form",
	Long: `Show the forms a numeral passes through during a calculation.

Example:
  roman-calc expand MCMXCIV`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func runCalculation(cmd *cobra.Command, op service.Operation, left, right string) error {
	if remoteURL != "" {
		return runRemoteCalculation(cmd, op, left, right)
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.svc.Evaluate(cmd.Context(), service.Problem{Op: op, Left: left, Right: right})
	if res.Err != nil {
		return res.Err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Value)
	return nil
}

func runRemoteCalculation(cmd *cobra.Command, op service.Operation, left, right string) error {
	c := client.NewClient(client.ClientConfig{BaseURL: remoteURL})
	slog.Debug("Calculating remotely", "url", remoteURL, "op", op)

	var (
		resp *client.CalculationResponse
		err  error
	)
	if op == service.OpAdd {
		resp, err = c.Add(cmd.Context(), left, right)
	} else {
		resp, err = c.Subtract(cmd.Context(), left, right)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Result)
	return nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	var forms client.ExpandResponse

	if remoteURL != "" {
		resp, err := client.NewClient(client.ClientConfig{BaseURL: remoteURL}).Expand(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		forms = *resp
	} else {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		calc := a.svc.Calculator()
		forms.Additive, err = calc.Expand(args[0])
		if err != nil {
			return err
		}
		forms.Minimal, err = calc.Normalize(args[0])
		if err != nil {
			return err
		}
		forms.Bundled = calc.Table().Bundle(forms.Additive)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "additive: %s\n", forms.Additive)
	fmt.Fprintf(out, "bundled:  %s\n", forms.Bundled)
	fmt.Fprintf(out, "minimal:  %s\n", forms.Minimal)
	return nil
}
