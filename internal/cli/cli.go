// Package cli is the presentation layer: thin subcommands that validate
// input, call the ledger service and render its results. All invariants live
// below, in the service.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"

	"tisa/internal/app"
	"tisa/internal/config"
	"tisa/internal/jalali"
)

// Register wires all subcommands to the shared application container.
func Register(commander *subcommands.Commander, a *app.App, cfg *config.Config) {
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&addCmd{app: a}, "ledger")
	commander.Register(&listCmd{app: a}, "ledger")
	commander.Register(&statusCmd{app: a}, "ledger")
	commander.Register(&rmCmd{app: a}, "ledger")
	commander.Register(&logsCmd{app: a}, "ledger")
	commander.Register(&configCmd{app: a}, "notifications")
	commander.Register(&analyzeCmd{app: a, model: cfg.GeminiModel}, "reports")
}

// parseJalaliDate parses "1403/04/15" (also accepts "-" separators) into the
// Gregorian storage instant. The day is clamped to the month's length, the
// rest must be in range.
func parseJalaliDate(s string) (time.Time, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY/MM/DD (Jalali)", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		nums[i] = n
	}
	jy, jm, jd := nums[0], nums[1], nums[2]

	if jy < 1200 || jy > 1600 {
		return time.Time{}, fmt.Errorf("year %d out of supported range", jy)
	}
	if jm < 1 || jm > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", jm)
	}
	if jd < 1 {
		return time.Time{}, fmt.Errorf("day %d out of range", jd)
	}
	if max := jalali.MonthLength(jy, jm); jd > max {
		jd = max
	}

	return jalali.ToGregorian(jy, jm, jd), nil
}

// shortID trims a uuid down to the prefix shown in tables.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
