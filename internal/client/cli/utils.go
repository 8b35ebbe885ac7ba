package cli

import (
	"sort"

	"github.com/pterm/pterm"

	"github.com/dmitrijs2005/campushub/internal/client/models"
	"github.com/dmitrijs2005/campushub/internal/client/validation"
)

// reportError prints field errors one per line, or err itself.
func reportError(err error) {
	fe, ok := validation.AsFieldErrors(err)
	if !ok {
		pterm.Error.Println(err.Error())
		return
	}

	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		pterm.Error.Printfln("%s: %s", f, fe[f])
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// dobDate renders a stored date of birth as YYYY-MM-DD.
func dobDate(dob string) string {
	if dob == "" {
		return ""
	}
	t, err := models.ParseDOB(dob)
	if err != nil {
		return dob
	}
	return t.UTC().Format("2006-01-02")
}
