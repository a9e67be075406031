package intuition

// The fixed query documents. Field selections follow the term schema, which
// identifies atoms and triples by a shared string term id. Ordering is done
// upstream (stake descending); callers must not re-sort.

const searchAtomsQuery = `
query SearchAtoms($searchTerm: String!, $limit: Int!) {
    atoms(
        where: { label: { _ilike: $searchTerm } }
        limit: $limit
        order_by: { vault: { total_shares: desc_nulls_last } }
    ) {
        term_id
        label
        type
        image
        created_at
        vault {
            total_shares
            position_count
        }
        creator {
            id
            label
        }
    }
}
`

// getTermQuery resolves either form of a term: exactly one of atom or triple
// comes back non-null.
const getTermQuery = `
query GetTerm($termId: String!) {
    atom(term_id: $termId) {
        term_id
        label
        type
        image
        created_at
        block_number
        vault {
            total_shares
            position_count
            current_share_price
            total_assets
            market_cap
        }
        creator {
            id
            label
        }
        as_subject_triples_aggregate {
            aggregate {
                count
            }
        }
        as_object_triples_aggregate {
            aggregate {
                count
            }
        }
    }
    triple(term_id: $termId) {
        term_id
        created_at
        subject {
            term_id
            label
        }
        predicate {
            term_id
            label
        }
        object {
            term_id
            label
        }
        vault {
            total_shares
            position_count
            total_assets
            market_cap
        }
        counter_vault {
            total_shares
            position_count
        }
    }
}
`

const triplesAboutQuery = `
query GetTriplesAbout($subjectId: String!, $limit: Int!) {
    triples(
        where: { subject_id: { _eq: $subjectId } }
        limit: $limit
        order_by: { vault: { total_shares: desc_nulls_last } }
    ) {
        term_id
        created_at
        subject {
            term_id
            label
        }
        predicate {
            term_id
            label
        }
        object {
            term_id
            label
        }
        vault {
            total_shares
            position_count
        }
        counter_vault {
            total_shares
            position_count
        }
    }
}
`

const positionsQuery = `
query GetPositions($termId: String!, $limit: Int!) {
    positions(
        where: { term_id: { _eq: $termId } }
        limit: $limit
        order_by: { shares: desc }
    ) {
        shares
        created_at
        account {
            id
            label
        }
    }
}
`

const accountQuery = `
query GetAccount($address: String!) {
    account(id: $address) {
        id
        label
        image
        positions(limit: 10, order_by: { shares: desc }) {
            term_id
            shares
        }
        events_aggregate {
            aggregate {
                count
            }
        }
    }
}
`
