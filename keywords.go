package cron

// Preset expressions for common recurrences. Built once at package init and
// never mutated.
var (
	Yearly   = MustParse("0 0 0 1 1 *")
	Annually = Yearly
	Monthly  = MustParse("0 0 0 1 * *")
	Weekly   = MustParse("0 0 0 * * 0")
	Daily    = MustParse("0 0 0 * * *")
	Hourly   = MustParse("0 0 * * * *")
	Minutely = MustParse("0 * * * * *")

	// Reboot marks a job that is never matched by the clock. Callers that want
	// run-at-startup behavior invoke the job out-of-band at process start.
	Reboot *Expression
)

var keywords map[string]*Expression

func init() {
	keywords = map[string]*Expression{
		"yearly":   Yearly,
		"annually": Annually,
		"monthly":  Monthly,
		"weekly":   Weekly,
		"daily":    Daily,
		"hourly":   Hourly,
		"minutely": Minutely,
		"reboot":   Reboot,
	}
}

// Keyword resolves a preset by name. The boolean reports whether the name is
// known; a known name may still map to a nil expression (reboot).
func Keyword(name string) (*Expression, bool) {
	e, ok := keywords[name]
	return e, ok
}
