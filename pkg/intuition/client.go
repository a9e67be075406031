package intuition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/intuition-tools/intuctl/pkg/graphql"
)

// DefaultLimit bounds list-returning operations when no limit is given.
const DefaultLimit = 10

// Client translates the logical operations into GraphQL requests. Every
// operation issues exactly one outbound request and never returns a Go
// error: failures travel inside the Result.
type Client struct {
	gql *graphql.Client
}

// NewClient wraps a configured GraphQL client.
func NewClient(gql *graphql.Client) *Client {
	return &Client{gql: gql}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Search matches atoms whose label contains text, case-insensitively,
// ordered by total stake descending.
func (c *Client) Search(ctx context.Context, text string, limit int) *graphql.Result {
	return c.gql.Execute(ctx, searchAtomsQuery, map[string]any{
		"searchTerm": "%" + text + "%",
		"limit":      normalizeLimit(limit),
	})
}

// GetTerm fetches full detail for a term id, resolving it as an atom or a
// triple, whichever the id names.
func (c *Client) GetTerm(ctx context.Context, id string) *graphql.Result {
	return c.gql.Execute(ctx, getTermQuery, map[string]any{
		"termId": id,
	})
}

// TriplesAbout lists claims where the given term is the subject.
func (c *Client) TriplesAbout(ctx context.Context, subjectID string, limit int) *graphql.Result {
	return c.gql.Execute(ctx, triplesAboutQuery, map[string]any{
		"subjectId": subjectID,
		"limit":     normalizeLimit(limit),
	})
}

// Positions lists stakes against a term, ordered by shares descending.
func (c *Client) Positions(ctx context.Context, termID string, limit int) *graphql.Result {
	return c.gql.Execute(ctx, positionsQuery, map[string]any{
		"termId": termID,
		"limit":  normalizeLimit(limit),
	})
}

// Account fetches a wallet profile with its positions and activity count.
func (c *Client) Account(ctx context.Context, address string) *graphql.Result {
	return c.gql.Execute(ctx, accountQuery, map[string]any{
		"address": address,
	})
}

// decode unpacks a result's data into dst. A failed result becomes an error;
// absent data means the query matched nothing and leaves dst untouched.
func decode(r *graphql.Result, dst any) error {
	if r.Failed() {
		return errors.New(r.Error)
	}
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, dst); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}

// DecodeAtoms unpacks a search result.
func DecodeAtoms(r *graphql.Result) ([]Atom, error) {
	var d struct {
		Atoms []Atom `json:"atoms"`
	}
	if err := decode(r, &d); err != nil {
		return nil, err
	}
	return d.Atoms, nil
}

// DecodeTerm unpacks a term-detail result. Returns nil when the id resolved
// to neither an atom nor a triple.
func DecodeTerm(r *graphql.Result) (*Term, error) {
	var d Term
	if err := decode(r, &d); err != nil {
		return nil, err
	}
	if d.Atom == nil && d.Triple == nil {
		return nil, nil
	}
	return &d, nil
}

// DecodeTriples unpacks a triples-about result.
func DecodeTriples(r *graphql.Result) ([]Triple, error) {
	var d struct {
		Triples []Triple `json:"triples"`
	}
	if err := decode(r, &d); err != nil {
		return nil, err
	}
	return d.Triples, nil
}

// DecodePositions unpacks a positions result.
func DecodePositions(r *graphql.Result) ([]Position, error) {
	var d struct {
		Positions []Position `json:"positions"`
	}
	if err := decode(r, &d); err != nil {
		return nil, err
	}
	return d.Positions, nil
}

// DecodeAccount unpacks an account result. Returns nil when the address is
// unknown.
func DecodeAccount(r *graphql.Result) (*Account, error) {
	var d struct {
		Account *Account `json:"account"`
	}
	if err := decode(r, &d); err != nil {
		return nil, err
	}
	return d.Account, nil
}

// TopMatches is the typed form of Search. The candidate list is bounded
// client-side as well, in case the upstream ignores the limit variable.
func (c *Client) TopMatches(ctx context.Context, text string, limit int) ([]Atom, error) {
	limit = normalizeLimit(limit)
	atoms, err := DecodeAtoms(c.Search(ctx, text, limit))
	if err != nil {
		return nil, err
	}
	if len(atoms) > limit {
		atoms = atoms[:limit]
	}
	return atoms, nil
}

// TermDetail is the typed form of GetTerm.
func (c *Client) TermDetail(ctx context.Context, id string) (*Term, error) {
	return DecodeTerm(c.GetTerm(ctx, id))
}

// TopPositions is the typed form of Positions.
func (c *Client) TopPositions(ctx context.Context, termID string, limit int) ([]Position, error) {
	return DecodePositions(c.Positions(ctx, termID, limit))
}

// ClaimsAbout is the typed form of TriplesAbout.
func (c *Client) ClaimsAbout(ctx context.Context, subjectID string, limit int) ([]Triple, error) {
	return DecodeTriples(c.TriplesAbout(ctx, subjectID, limit))
}
