// Check commands for the grip CLI: evaluate checked arithmetic and
// narrowing casts from the command line.
// Implements: prd006-grip-cli R5.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/handrail/internal/ledger"
	"github.com/mesh-intelligence/handrail/pkg/checked"
)

var (
	flagCheckWidth    int
	flagCheckUnsigned bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate checked arithmetic at a chosen width",
}

func init() {
	checkCmd.PersistentFlags().IntVar(&flagCheckWidth, "width", 64, "integer width in bits (8, 16, 32, 64)")
	checkCmd.PersistentFlags().BoolVar(&flagCheckUnsigned, "unsigned", false, "treat operands as unsigned")

	for _, op := range []string{"add", "sub", "mul"} {
		checkCmd.AddCommand(newBinaryCmd(op))
	}
	checkCmd.AddCommand(castCmd)
	checkCmd.AddCommand(floatCmd)
}

// checkResult is the printed outcome of a check evaluation.
type checkResult struct {
	Op       string `json:"op"`
	Width    int    `json:"width"`
	Unsigned bool   `json:"unsigned"`
	Outcome  string `json:"outcome"`
	Value    string `json:"value,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

func newBinaryCmd(op string) *cobra.Command {
	return &cobra.Command{
		Use:   op + " A B",
		Short: "Checked " + op + " of two operands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := dispatchBinary(op, args[0], args[1], flagCheckWidth, flagCheckUnsigned)
			if err != nil {
				fmt.Fprintln(os.Stderr, "check:", err)
				os.Exit(exitUserError)
			}
			return reportCheck(res)
		},
	}
}

var castCmd = &cobra.Command{
	Use:   "cast V",
	Short: "Checked narrowing cast of an integer to the target width",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := dispatchCastArg(args[0], flagCheckWidth, flagCheckUnsigned)
		if err != nil {
			fmt.Fprintln(os.Stderr, "check:", err)
			os.Exit(exitUserError)
		}
		return reportCheck(res)
	},
}

var floatCmd = &cobra.Command{
	Use:   "float F",
	Short: "Checked float-to-integer cast (rounds, then saturates)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "check: parsing operand:", err)
			os.Exit(exitUserError)
		}
		res, err := dispatchFloat(f, flagCheckWidth, flagCheckUnsigned)
		if err != nil {
			fmt.Fprintln(os.Stderr, "check:", err)
			os.Exit(exitUserError)
		}
		return reportCheck(res)
	},
}

// dispatchBinary parses both operands at the requested width and runs the
// checked operation. strconv range-checks the parse, so only in-width
// operands reach the arithmetic.
func dispatchBinary(op, aStr, bStr string, width int, unsigned bool) (checkResult, error) {
	if unsigned {
		a, err := strconv.ParseUint(aStr, 10, width)
		if err != nil {
			return checkResult{}, fmt.Errorf("operand %q does not fit uint%d", aStr, width)
		}
		b, err := strconv.ParseUint(bStr, 10, width)
		if err != nil {
			return checkResult{}, fmt.Errorf("operand %q does not fit uint%d", bStr, width)
		}
		switch width {
		case 8:
			return binResult(op, width, true, uint8(a), uint8(b)), nil
		case 16:
			return binResult(op, width, true, uint16(a), uint16(b)), nil
		case 32:
			return binResult(op, width, true, uint32(a), uint32(b)), nil
		case 64:
			return binResult(op, width, true, a, b), nil
		}
		return checkResult{}, fmt.Errorf("unsupported width %d", width)
	}

	a, err := strconv.ParseInt(aStr, 10, width)
	if err != nil {
		return checkResult{}, fmt.Errorf("operand %q does not fit int%d", aStr, width)
	}
	b, err := strconv.ParseInt(bStr, 10, width)
	if err != nil {
		return checkResult{}, fmt.Errorf("operand %q does not fit int%d", bStr, width)
	}
	switch width {
	case 8:
		return binResult(op, width, false, int8(a), int8(b)), nil
	case 16:
		return binResult(op, width, false, int16(a), int16(b)), nil
	case 32:
		return binResult(op, width, false, int32(a), int32(b)), nil
	case 64:
		return binResult(op, width, false, a, b), nil
	}
	return checkResult{}, fmt.Errorf("unsupported width %d", width)
}

// binResult runs one checked operation and classifies the outcome.
func binResult[T checked.Integer](op string, width int, unsigned bool, a, b T) checkResult {
	var (
		v   T
		err error
	)
	switch op {
	case "add":
		v, err = checked.Add(a, b)
	case "sub":
		v, err = checked.Sub(a, b)
	case "mul":
		v, err = checked.Mul(a, b)
	}

	res := checkResult{Op: op, Width: width, Unsigned: unsigned}
	if err != nil {
		res.Outcome = classify(err)
		res.Detail = err.Error()
		return res
	}
	res.Outcome = "ok"
	res.Value = fmt.Sprintf("%d", v)
	return res
}

// dispatchCastArg parses the source value at full width, preferring the
// signed form, and narrows it to the target width.
func dispatchCastArg(s string, width int, unsigned bool) (checkResult, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return dispatchCast(v, width, unsigned)
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return dispatchCast(v, width, unsigned)
	}
	return checkResult{}, fmt.Errorf("operand %q is not an integer", s)
}

func dispatchCast[From checked.Integer](v From, width int, unsigned bool) (checkResult, error) {
	if unsigned {
		switch width {
		case 8:
			return castResult[uint8](v, width, true), nil
		case 16:
			return castResult[uint16](v, width, true), nil
		case 32:
			return castResult[uint32](v, width, true), nil
		case 64:
			return castResult[uint64](v, width, true), nil
		}
	} else {
		switch width {
		case 8:
			return castResult[int8](v, width, false), nil
		case 16:
			return castResult[int16](v, width, false), nil
		case 32:
			return castResult[int32](v, width, false), nil
		case 64:
			return castResult[int64](v, width, false), nil
		}
	}
	return checkResult{}, fmt.Errorf("unsupported width %d", width)
}

func castResult[To, From checked.Integer](v From, width int, unsigned bool) checkResult {
	res := checkResult{Op: "cast", Width: width, Unsigned: unsigned}

	to, err := checked.CastNarrow[To](v)
	if err != nil {
		res.Outcome = classify(err)
		res.Detail = err.Error()
		return res
	}
	res.Outcome = "ok"
	res.Value = fmt.Sprintf("%d", to)
	return res
}

func dispatchFloat(f float64, width int, unsigned bool) (checkResult, error) {
	if unsigned {
		switch width {
		case 8:
			return floatResult[uint8](f, width, true), nil
		case 16:
			return floatResult[uint16](f, width, true), nil
		case 32:
			return floatResult[uint32](f, width, true), nil
		case 64:
			return floatResult[uint64](f, width, true), nil
		}
	} else {
		switch width {
		case 8:
			return floatResult[int8](f, width, false), nil
		case 16:
			return floatResult[int16](f, width, false), nil
		case 32:
			return floatResult[int32](f, width, false), nil
		case 64:
			return floatResult[int64](f, width, false), nil
		}
	}
	return checkResult{}, fmt.Errorf("unsupported width %d", width)
}

func floatResult[T checked.Integer](f float64, width int, unsigned bool) checkResult {
	res := checkResult{Op: "float", Width: width, Unsigned: unsigned}

	v, err := checked.CastFloatToInt[T](f)
	if err != nil {
		res.Outcome = classify(err)
		res.Detail = err.Error()
		return res
	}
	res.Outcome = "ok"
	res.Value = fmt.Sprintf("%d", v)
	return res
}

// classify maps a checked error to its outcome word.
func classify(err error) string {
	switch {
	case errors.Is(err, checked.ErrOverflow):
		return "overflow"
	case errors.Is(err, checked.ErrUnderflow):
		return "underflow"
	case errors.Is(err, checked.ErrTruncation):
		return "truncation"
	case errors.Is(err, checked.ErrInvalidCast):
		return "invalid-cast"
	default:
		return "error"
	}
}

// reportCheck prints the result and records the evaluation.
func reportCheck(res checkResult) error {
	start := time.Now()
	recordRun(ledger.Run{
		Component:  "checked",
		Operations: 1,
		StartedAt:  start.UTC(),
		Notes:      fmt.Sprintf("op=%s width=%d unsigned=%t outcome=%s", res.Op, res.Width, res.Unsigned, res.Outcome),
	})

	if flagJSON {
		return printJSON(res)
	}
	if res.Outcome == "ok" {
		fmt.Printf("%s (%s%d): %s\n", res.Op, signedness(res.Unsigned), res.Width, res.Value)
	} else {
		fmt.Printf("%s (%s%d): %s: %s\n", res.Op, signedness(res.Unsigned), res.Width, res.Outcome, res.Detail)
	}
	return nil
}

func signedness(unsigned bool) string {
	if unsigned {
		return "uint"
	}
	return "int"
}
