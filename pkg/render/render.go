// Package render formats query results as pretty-printed JSON or as a
// plain-text report.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/intuition-tools/intuctl/pkg/intuition"
	"github.com/intuition-tools/intuctl/pkg/trustscore"
)

// JSON serializes v with two-space indentation. A value that cannot be
// marshalled is stringified rather than dropped, so output always parses.
func JSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		b, _ = json.Marshal(fmt.Sprint(v))
	}
	return string(b)
}

// ErrorLine renders a failure as a single line.
func ErrorLine(msg string) string {
	return "Error: " + msg
}

// TruncateAddress shortens an identifier to its first 10 characters plus an
// ellipsis marker.
func TruncateAddress(addr string) string {
	if len(addr) > 10 {
		addr = addr[:10]
	}
	return addr + "..."
}

// attestorName picks a display label, falling back to a truncated address.
func attestorName(label, address string) string {
	if label != "" {
		return label
	}
	if address == "" {
		return "?"
	}
	return TruncateAddress(address)
}

// amount renders a base-unit quantity with its whole-token conversion.
func amount(v float64) string {
	return fmt.Sprintf("%.0f (%.6f tokens)", v, v/1e18)
}

// Atoms renders search results.
func Atoms(atoms []intuition.Atom) string {
	if len(atoms) == 0 {
		return "No results."
	}
	lines := []string{"Matches:"}
	for i := range atoms {
		a := &atoms[i]
		line := fmt.Sprintf("  - %s [%s] (term %s)", orUnknown(a.Label), orNA(a.Type), a.TermID)
		if a.Vault != nil {
			line += fmt.Sprintf(": stake %s across %d positions", amount(float64(a.Vault.TotalShares)), a.Vault.PositionCount)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Term renders entity detail for an atom or a triple.
func Term(t *intuition.Term) string {
	if t == nil {
		return "No results."
	}
	var lines []string

	switch {
	case t.Atom != nil:
		a := t.Atom
		lines = append(lines,
			"Entity: "+orUnknown(a.Label),
			"Type: "+orNA(a.Type),
			"Term ID: "+a.TermID,
		)
		if a.CreatedAt != "" {
			lines = append(lines, "Created: "+a.CreatedAt)
		}
		if a.Vault != nil {
			lines = append(lines, "", "Metrics:")
			lines = append(lines, vaultLines(a.Vault)...)
			lines = append(lines,
				fmt.Sprintf("  Claims as Subject: %d", a.ClaimsAsSubject()),
				fmt.Sprintf("  Claims as Object: %d", a.ClaimsAsObject()),
			)
		}
	case t.Triple != nil:
		tr := t.Triple
		lines = append(lines,
			"Entity: "+tr.DisplayLabel(),
			"Type: Triple",
			"Term ID: "+tr.TermID,
		)
		if tr.CreatedAt != "" {
			lines = append(lines, "Created: "+tr.CreatedAt)
		}
		lines = append(lines, "", "Claims:", claimLine(tr.Predicate.Label, tr.Object.Label, tr.PositiveStake(), tr.NegativeStake()))
	default:
		return "No results."
	}
	return strings.Join(lines, "\n")
}

// vaultLines renders a vault's stake metrics as indented report lines.
func vaultLines(v *intuition.Vault) []string {
	return []string{
		"  Total Shares: " + amount(float64(v.TotalShares)),
		"  Total Assets: " + amount(float64(v.TotalAssets)),
		"  Market Cap: " + amount(float64(v.MarketCap)),
		fmt.Sprintf("  Position Count: %d", v.PositionCount),
	}
}

// Triples renders a claim list.
func Triples(triples []intuition.Triple) string {
	if len(triples) == 0 {
		return "No results."
	}
	lines := []string{"Claims:"}
	for i := range triples {
		t := &triples[i]
		lines = append(lines, claimLine(t.Predicate.Label, t.Object.Label, t.PositiveStake(), t.NegativeStake()))
	}
	return strings.Join(lines, "\n")
}

// Positions renders a staker list.
func Positions(positions []intuition.Position) string {
	if len(positions) == 0 {
		return "No results."
	}
	lines := []string{"Attestors:"}
	for i := range positions {
		p := &positions[i]
		var label, address string
		if p.Account != nil {
			label, address = p.Account.Label, p.Account.ID
		}
		lines = append(lines, fmt.Sprintf("  - %s: %s", attestorName(label, address), amount(float64(p.Shares))))
	}
	return strings.Join(lines, "\n")
}

// Account renders a wallet profile.
func Account(a *intuition.Account) string {
	if a == nil {
		return "No results."
	}
	lines := []string{fmt.Sprintf("Account: %s (%s)", attestorName(a.Label, a.ID), a.ID)}
	if n := a.EventCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("Activity: %d events", n))
	}
	if len(a.Positions) > 0 {
		lines = append(lines, "", "Positions:")
		for i := range a.Positions {
			p := &a.Positions[i]
			lines = append(lines, fmt.Sprintf("  - term %s: %s", p.TermID, amount(float64(p.Shares))))
		}
	}
	return strings.Join(lines, "\n")
}

// Report renders a trust report with its fixed section order: identity,
// metrics, assessment, claims, attestors. Empty sections are omitted.
func Report(r *trustscore.Report) string {
	var lines []string

	if r.Entity != nil {
		lines = append(lines,
			"Entity: "+orUnknown(r.Entity.Label),
			"Type: "+orNA(r.Entity.Type),
		)
		if r.Entity.CreatedAt != "" {
			lines = append(lines, "Created: "+r.Entity.CreatedAt)
		}
		lines = append(lines, "")
	}

	m := &r.Metrics
	lines = append(lines, "Metrics:",
		"  Total Stake: "+amount(m.TotalStake),
		"  Total Assets: "+amount(m.TotalAssets),
		"  Market Cap: "+amount(m.MarketCap),
		fmt.Sprintf("  Position Count: %d", m.PositionCount),
		fmt.Sprintf("  Claims as Subject: %d", m.ClaimsAsSubject),
		fmt.Sprintf("  Claims as Object: %d", m.ClaimsAsObject),
	)
	if m.TrustRatio != nil {
		lines = append(lines, fmt.Sprintf("  Trust Ratio: %.2f%%", *m.TrustRatio*100))
	}

	if r.Assessment != "" {
		lines = append(lines, "", "Trust Assessment: "+string(r.Assessment))
	}

	if len(r.TopClaims) > 0 {
		lines = append(lines, "", "Top Claims:")
		for _, c := range r.TopClaims {
			lines = append(lines, claimLine(c.Predicate, c.Object, c.PositiveStake, c.NegativeStake))
		}
	}

	if len(r.TopAttestors) > 0 {
		lines = append(lines, "", "Top Attestors:")
		for _, att := range r.TopAttestors {
			lines = append(lines, fmt.Sprintf("  - %s: %s", attestorName(att.Label, att.Address), amount(att.Stake)))
		}
	}

	return strings.Join(lines, "\n")
}

func claimLine(predicate, object string, positive, negative float64) string {
	return fmt.Sprintf("  - %s -> %s (positive: %.0f, negative: %.0f)",
		orUnknown(predicate), orUnknown(object), positive, negative)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
