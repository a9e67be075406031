// Package intuition defines the typed response schema for the Intuition
// knowledge graph and the six query operations the CLI exposes.
package intuition

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a stake quantity in protocol base units (10^18 base units per
// whole token). The API serializes these variously as JSON numbers, numeric
// strings, or null; all three decode, and null/absent values decode to zero
// so downstream arithmetic never sees a missing metric.
type Amount float64

// UnmarshalJSON accepts a number, a quoted numeric string, or null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("amount %q is not numeric", s)
	}
	*a = Amount(v)
	return nil
}

// Tokens converts from base units to whole tokens.
func (a Amount) Tokens() float64 {
	return float64(a) / 1e18
}

// Vault holds the aggregate stake metrics backing a term.
type Vault struct {
	TotalShares       Amount `json:"total_shares"`
	PositionCount     int    `json:"position_count"`
	CurrentSharePrice Amount `json:"current_share_price,omitempty"`
	TotalAssets       Amount `json:"total_assets,omitempty"`
	MarketCap         Amount `json:"market_cap,omitempty"`
}

// Ref is a minimal reference to another term (used for triple components
// and creators).
type Ref struct {
	TermID string `json:"term_id,omitempty"`
	ID     string `json:"id,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Atom is a plain knowledge-graph node.
type Atom struct {
	TermID      string `json:"term_id"`
	Label       string `json:"label"`
	Type        string `json:"type,omitempty"`
	Image       string `json:"image,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	BlockNumber int64  `json:"block_number,omitempty"`
	Vault       *Vault `json:"vault,omitempty"`
	Creator     *Ref   `json:"creator,omitempty"`

	AsSubject *countAggregate `json:"as_subject_triples_aggregate,omitempty"`
	AsObject  *countAggregate `json:"as_object_triples_aggregate,omitempty"`
}

// ClaimsAsSubject returns the number of triples with this atom as subject.
func (a *Atom) ClaimsAsSubject() int { return a.AsSubject.count() }

// ClaimsAsObject returns the number of triples with this atom as object.
func (a *Atom) ClaimsAsObject() int { return a.AsObject.count() }

// Triple is a subject-predicate-object claim, stakeable for and against.
type Triple struct {
	TermID       string `json:"term_id"`
	CreatedAt    string `json:"created_at,omitempty"`
	Subject      Ref    `json:"subject"`
	Predicate    Ref    `json:"predicate"`
	Object       Ref    `json:"object"`
	Vault        *Vault `json:"vault,omitempty"`
	CounterVault *Vault `json:"counter_vault,omitempty"`
}

// DisplayLabel synthesizes a label from the three component labels.
func (t *Triple) DisplayLabel() string {
	return t.Subject.Label + " - " + t.Predicate.Label + " - " + t.Object.Label
}

// PositiveStake is the supporting stake on the claim.
func (t *Triple) PositiveStake() float64 {
	if t.Vault == nil {
		return 0
	}
	return float64(t.Vault.TotalShares)
}

// NegativeStake is the opposing stake on the claim.
func (t *Triple) NegativeStake() float64 {
	if t.CounterVault == nil {
		return 0
	}
	return float64(t.CounterVault.TotalShares)
}

// Term is a resolved identifier: exactly one of Atom or Triple is set when
// the id exists, neither when it does not.
type Term struct {
	Atom   *Atom   `json:"atom,omitempty"`
	Triple *Triple `json:"triple,omitempty"`
}

// Position is one account's stake against a term's vault.
type Position struct {
	TermID    string `json:"term_id,omitempty"`
	Shares    Amount `json:"shares"`
	CreatedAt string `json:"created_at,omitempty"`
	Account   *Ref   `json:"account,omitempty"`
}

// Account is a wallet profile with its own positions and activity count.
type Account struct {
	ID        string          `json:"id"`
	Label     string          `json:"label,omitempty"`
	Image     string          `json:"image,omitempty"`
	Positions []Position      `json:"positions,omitempty"`
	Events    *countAggregate `json:"events_aggregate,omitempty"`
}

// EventCount returns the account's total on-chain activity count.
func (a *Account) EventCount() int { return a.Events.count() }

type countAggregate struct {
	Aggregate struct {
		Count int `json:"count"`
	} `json:"aggregate"`
}

func (c *countAggregate) count() int {
	if c == nil {
		return 0
	}
	return c.Aggregate.Count
}
