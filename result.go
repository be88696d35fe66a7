package comb

// Result is the outcome of a single parse attempt.
//
// On success, Index is the cursor position after the consumed input and
// Value is the produced value. On failure, Index is the furthest cursor
// offset any contributing sub-attempt reached (not necessarily where the
// attempt began) and Expected is a non-empty ordered list of human-readable
// descriptions of what would have matched there.
//
// Results are values: they are created fresh per invocation and never
// mutated after being returned.
type Result struct {
	OK       bool
	Index    int
	Value    any
	Expected []string
}

// Success builds a successful result.
func Success(index int, value any) Result {
	return Result{OK: true, Index: index, Value: value}
}

// Failure builds a failed result. At least one expected description is
// required.
func Failure(index int, expected ...string) Result {
	if len(expected) == 0 {
		panic("comb: Failure requires at least one expected description")
	}
	return Result{Index: index, Expected: expected}
}

// merge decides which of two results to keep: the most recently obtained
// next, or the best one seen so far (nil when there is none). The newer
// result wins outright when it succeeded or failed further into the input
// than the previous best; otherwise the previous failure's index is kept
// and next's expected descriptions are concatenated in front of it, so a
// tie can later be reported as "one of A, B".
//
// The attempt that consumed more input before failing is the better
// diagnostic candidate: it is usually the branch the grammar author meant.
func merge(next Result, prev *Result) Result {
	if prev == nil || next.OK || prev.OK || next.Index > prev.Index {
		return next
	}
	out := *prev
	out.Expected = make([]string, 0, len(next.Expected)+len(prev.Expected))
	out.Expected = append(out.Expected, next.Expected...)
	out.Expected = append(out.Expected, prev.Expected...)
	return out
}
