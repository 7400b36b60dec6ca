package localemap

import "strconv"

// Arg is a formatting argument for GetFormatted. Exactly three kinds exist:
// a Gender tag or a Qty value selects a message variant (at most one
// selector is honored per call, the last one wins), and Vars supplies
// named placeholder values, merged left to right on collision.
type Arg interface {
	applyArg(c *callArgs)
}

// Gender selects a grammatical-gender message variant.
type Gender int

const (
	Male Gender = iota
	Female
	Neutral
)

// suffix returns the variant key suffix for the gender.
func (g Gender) suffix() string {
	switch g {
	case Female:
		return "_female"
	case Neutral:
		return "_neutral"
	default:
		return "_male"
	}
}

func (g Gender) applyArg(c *callArgs) {
	c.suffix = g.suffix()
	c.qty = nil
}

// Qty selects a quantity message variant: _empty for 0, _one for exactly 1,
// _multiple otherwise (negative values included). The value is also bound to
// the $number placeholder.
type Qty int64

// suffix returns the variant key suffix for the quantity.
func (q Qty) suffix() string {
	switch q {
	case 0:
		return "_empty"
	case 1:
		return "_one"
	default:
		return "_multiple"
	}
}

func (q Qty) applyArg(c *callArgs) {
	c.suffix = q.suffix()
	qty := int64(q)
	c.qty = &qty
}

// Vars supplies named placeholder values for $name tokens.
type Vars map[string]string

func (v Vars) applyArg(c *callArgs) {
	if c.vars == nil {
		c.vars = make(map[string]string, len(v))
	}
	for name, value := range v {
		c.vars[name] = value
	}
}

// callArgs accumulates the effect of a GetFormatted argument list.
type callArgs struct {
	suffix string
	qty    *int64
	vars   map[string]string
}

// collect folds an argument list into its final selector and variables.
// A bare quantity is exposed as $number so templates can display the value
// that selected the variant.
func collect(args []Arg) callArgs {
	var c callArgs
	for _, arg := range args {
		if arg != nil {
			arg.applyArg(&c)
		}
	}

	if c.qty != nil {
		if c.vars == nil {
			c.vars = make(map[string]string, 1)
		}
		if _, ok := c.vars["number"]; !ok {
			c.vars["number"] = strconv.FormatInt(*c.qty, 10)
		}
	}

	return c
}
