package core

// Credit returns the balance after adding amount to current. Pure, no
// I/O; persisting the result is the caller's job.
func Credit(current, amount Money) Money {
	return Money{Cents: current.Cents + amount.Cents}
}

// Debit returns the balance after subtracting amount from current. The
// result may be negative; callers enforce the non-negative-balance rule
// before writing anything.
func Debit(current, amount Money) Money {
	return Money{Cents: current.Cents - amount.Cents}
}
