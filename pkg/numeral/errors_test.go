package numeral

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "add",
		Kind: KindNumeralTooLarge,
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
	if !errors.Is(err, ErrNumeralTooLarge) {
		t.Fatalf("expected errors.Is to match the kind sentinel")
	}
	if errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected errors.Is not to match another kind")
	}

	wrapped := fmt.Errorf("calculating: %w", err)
	if !IsKind(wrapped, KindNumeralTooLarge) {
		t.Fatalf("expected IsKind to see through wrapping")
	}
	if KindOf(errors.New("other")) != "" {
		t.Fatalf("expected empty kind for foreign errors")
	}
}

func TestOpErrorMessage(t *testing.T) {
	cases := []struct {
		err  *OpError
		want string
	}{
		{
			&OpError{Op: "tally", Kind: KindInvalidSymbol, Numeral: "XIZ", Pos: 2},
			`tally: invalid_symbol 'Z' at 2 in "XIZ"`,
		},
		{
			&OpError{Op: "subtract", Kind: KindUnderflow, Err: errors.New("nothing left")},
			"subtract: underflow: nothing left",
		},
		{
			&OpError{Op: "add", Kind: KindInvalidSymbol, Err: errEmptyNumeral},
			"add: invalid_symbol: empty numeral",
		},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("Error() = %q, want %q", got, c.want)
		}
	}

	var nilErr *OpError
	if nilErr.Error() != "<nil>" {
		t.Errorf("nil OpError should print <nil>")
	}
}
