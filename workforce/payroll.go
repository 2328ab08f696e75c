/*
payroll.go - derives PayrollRecords from title history at the end of
the simulation (spec §3). This mirrors the teacher's
generic/balance.go: a pure derivation over the append-only ledger, run
once rather than maintained incrementally, so the driver can re-derive
payroll deterministically from the same (seed, config) run.
*/
package workforce

import (
	"sort"

	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/shopspring/decimal"
)

// DerivePayroll emits one PayrollRecord per calendar month intersecting
// each title-history window, for every consultant in the store. An entry
// with no end date is treated as ending on its start date, so it yields a
// single record for its start month; open windows are not extended to the
// simulation end. Records
// are returned ordered globally by effective date, matching the
// "ordered globally by effective date at insert time" contract.
func DerivePayroll(store *Store, rng *simrand.Source) []PayrollRecord {
	var records []PayrollRecord
	for _, c := range store.AllConsultants() {
		for _, entry := range store.History(c.ID) {
			records = append(records, payrollForEntry(c.ID, entry, rng)...)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].EffectiveAt.Before(records[j].EffectiveAt) })
	return records
}

func payrollForEntry(consultantID string, entry TitleHistoryEntry, rng *simrand.Source) []PayrollRecord {
	end := entry.Start
	if entry.End != nil {
		end = *entry.End
	}
	var out []PayrollRecord
	ym := entry.Start.YearMonth()
	endYM := end.YearMonth()
	monthlyBase := entry.Salary.Div(decimal.NewFromInt(12))
	for {
		epsilon := 1 + rng.Uniform(-0.05, 0.05)
		out = append(out, PayrollRecord{
			ConsultantID: consultantID,
			Amount:       monthlyBase.MulFloat(epsilon),
			EffectiveAt:  ym.Start(),
		})
		if ym == endYM {
			break
		}
		ym = ym.Next()
	}
	return out
}
