// Package trustscore derives a trust report for a term by combining entity
// detail, stake positions, and claims into a single record.
package trustscore

import (
	"context"
	"math"

	"github.com/intuition-tools/intuctl/pkg/intuition"
)

// subQueryLimit bounds the positions and claims sub-queries.
const subQueryLimit = 50

// topN caps the claim and attestor lists carried on the report.
const topN = 5

// Tier is a confidence bucket derived from bundled vault metrics.
type Tier string

// Tiers, strongest first.
const (
	TierHigh       Tier = "High"
	TierMedium     Tier = "Medium"
	TierLow        Tier = "Low"
	TierUnverified Tier = "Unverified"
)

// Tier thresholds, in base units (10^18 base units per whole token).
const (
	highAssetFloor   = 1e18
	mediumAssetFloor = 1e17
	highPositions    = 10
	mediumPositions  = 5
)

// Classify buckets an entity by its total staked assets and position count.
// Rules are evaluated strongest first; the first match wins.
func Classify(assets float64, positions int) Tier {
	switch {
	case assets > highAssetFloor && positions > highPositions:
		return TierHigh
	case assets > mediumAssetFloor || positions > mediumPositions:
		return TierMedium
	case assets > 0:
		return TierLow
	default:
		return TierUnverified
	}
}

// Source supplies the three sub-queries the aggregator folds together. The
// intuition client satisfies it; tests substitute stubs.
type Source interface {
	TermDetail(ctx context.Context, id string) (*intuition.Term, error)
	TopPositions(ctx context.Context, termID string, limit int) ([]intuition.Position, error)
	ClaimsAbout(ctx context.Context, subjectID string, limit int) ([]intuition.Triple, error)
}

// EntitySummary identifies the scored entity.
type EntitySummary struct {
	Label     string `json:"label"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Metrics holds the numeric portion of a report. Every field defaults to
// zero so partial sub-query failures never leave a hole.
type Metrics struct {
	TotalStake      float64  `json:"total_stake"`
	TotalAssets     float64  `json:"total_assets"`
	MarketCap       float64  `json:"market_cap"`
	PositionCount   int      `json:"position_count"`
	ClaimsAsSubject int      `json:"claims_as_subject"`
	ClaimsAsObject  int      `json:"claims_as_object"`
	PositiveSignal  float64  `json:"positive_signal"`
	NegativeSignal  float64  `json:"negative_signal"`
	TrustRatio      *float64 `json:"trust_ratio"`
}

// Claim is one row of the top-claims list.
type Claim struct {
	Predicate     string  `json:"predicate"`
	Object        string  `json:"object"`
	PositiveStake float64 `json:"positive_stake"`
	NegativeStake float64 `json:"negative_stake"`
}

// Attestor is one row of the top-attestors list.
type Attestor struct {
	Address string  `json:"address"`
	Label   string  `json:"label,omitempty"`
	Stake   float64 `json:"stake"`
}

// Report is the derived trust record for a single term.
type Report struct {
	TermID       string         `json:"term_id"`
	Entity       *EntitySummary `json:"entity"`
	Metrics      Metrics        `json:"metrics"`
	Assessment   Tier           `json:"assessment,omitempty"`
	TopClaims    []Claim        `json:"top_claims"`
	TopAttestors []Attestor     `json:"top_attestors"`
}

// Aggregator builds trust reports from a Source.
type Aggregator struct {
	src Source
}

// New creates an Aggregator over the given source.
func New(src Source) *Aggregator {
	return &Aggregator{src: src}
}

// Build fetches entity detail, positions, and claims sequentially and folds
// them into a report. A failed sub-query degrades its portion to zero/nil
// defaults; Build always returns a well-formed report.
func (a *Aggregator) Build(ctx context.Context, id string) *Report {
	report := &Report{
		TermID:       id,
		TopClaims:    []Claim{},
		TopAttestors: []Attestor{},
	}

	if term, err := a.src.TermDetail(ctx, id); err == nil && term != nil {
		a.mergeTerm(report, term)
	}

	if positions, err := a.src.TopPositions(ctx, id, subQueryLimit); err == nil {
		a.mergePositions(report, positions)
	}

	if claims, err := a.src.ClaimsAbout(ctx, id, subQueryLimit); err == nil {
		a.mergeClaims(report, claims)
	}

	return report
}

func (a *Aggregator) mergeTerm(report *Report, term *intuition.Term) {
	var vault *intuition.Vault

	switch {
	case term.Atom != nil:
		atom := term.Atom
		report.Entity = &EntitySummary{
			Label:     atom.Label,
			Type:      atom.Type,
			CreatedAt: atom.CreatedAt,
		}
		report.Metrics.ClaimsAsSubject = atom.ClaimsAsSubject()
		report.Metrics.ClaimsAsObject = atom.ClaimsAsObject()
		vault = atom.Vault
	case term.Triple != nil:
		triple := term.Triple
		report.Entity = &EntitySummary{
			Label:     triple.DisplayLabel(),
			Type:      "Triple",
			CreatedAt: triple.CreatedAt,
		}
		vault = triple.Vault
	default:
		return
	}

	if vault != nil {
		report.Metrics.TotalStake = float64(vault.TotalShares)
		report.Metrics.TotalAssets = float64(vault.TotalAssets)
		report.Metrics.MarketCap = float64(vault.MarketCap)
		report.Metrics.PositionCount = vault.PositionCount
	}
	report.Assessment = Classify(report.Metrics.TotalAssets, report.Metrics.PositionCount)
}

func (a *Aggregator) mergePositions(report *Report, positions []intuition.Position) {
	for _, p := range positions {
		if len(report.TopAttestors) == topN {
			break
		}
		attestor := Attestor{Stake: float64(p.Shares)}
		if p.Account != nil {
			attestor.Address = p.Account.ID
			attestor.Label = p.Account.Label
		}
		report.TopAttestors = append(report.TopAttestors, attestor)
	}
}

func (a *Aggregator) mergeClaims(report *Report, claims []intuition.Triple) {
	for i := range claims {
		if len(report.TopClaims) == topN {
			break
		}
		claim := &claims[i]
		positive := claim.PositiveStake()
		negative := claim.NegativeStake()

		report.Metrics.PositiveSignal += positive
		report.Metrics.NegativeSignal += negative
		report.TopClaims = append(report.TopClaims, Claim{
			Predicate:     claim.Predicate.Label,
			Object:        claim.Object.Label,
			PositiveStake: positive,
			NegativeStake: negative,
		})
	}

	total := report.Metrics.PositiveSignal + report.Metrics.NegativeSignal
	if total > 0 {
		ratio := math.Round(report.Metrics.PositiveSignal/total*10000) / 10000
		report.Metrics.TrustRatio = &ratio
	}
}
