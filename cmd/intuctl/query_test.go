package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args against a stub
// endpoint, restoring flag state afterwards so tests stay independent.
func runCommand(t *testing.T, endpoint string, args ...string) (string, error) {
	t.Helper()

	endpointOverride = endpoint
	t.Cleanup(func() {
		endpointOverride = ""
		rootCmd.Flags().Visit(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// stubServer answers every GraphQL request by matching the query name and
// records the operations seen, in order.
func stubServer(t *testing.T, responses map[string]string) (*httptest.Server, *[]string) {
	t.Helper()
	seen := &[]string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		for name, data := range responses {
			if strings.Contains(payload.Query, name) {
				*seen = append(*seen, name)
				_, _ = w.Write([]byte(`{"data":` + data + `}`))
				return
			}
		}
		t.Fatalf("unexpected query: %s", payload.Query)
	}))
	t.Cleanup(server.Close)

	return server, seen
}

func TestNoOperationFlagFails(t *testing.T) {
	_, err := runCommand(t, "http://unused.invalid")
	require.Error(t, err)
}

func TestSearchJSONOutput(t *testing.T) {
	server, seen := stubServer(t, map[string]string{
		"SearchAtoms": `{"atoms":[{"term_id":"0xabc","label":"Uniswap"}]}`,
	})

	out, err := runCommand(t, server.URL, "--search", "Uniswap")
	require.NoError(t, err)
	require.Len(t, *seen, 1, "non-composite operations issue exactly one request")

	var res struct {
		Data struct {
			Atoms []struct {
				TermID string `json:"term_id"`
			} `json:"atoms"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Data.Atoms, 1)
	assert.Equal(t, "0xabc", res.Data.Atoms[0].TermID)
}

func TestSearchTextOutput(t *testing.T) {
	server, _ := stubServer(t, map[string]string{
		"SearchAtoms": `{"atoms":[{"term_id":"0xabc","label":"Uniswap","type":"Thing"}]}`,
	})

	out, err := runCommand(t, server.URL, "--search", "Uniswap", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Matches:")
	assert.Contains(t, out, "Uniswap [Thing] (term 0xabc)")
}

func TestResultErrorStillExitsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	out, err := runCommand(t, server.URL, "--search", "Uniswap", "--format", "text")
	require.NoError(t, err, "a failed query is printed, not converted to a process failure")
	assert.Contains(t, out, "Error: HTTP Error 502: Bad Gateway")
}

func TestInvalidLimitFails(t *testing.T) {
	_, err := runCommand(t, "http://unused.invalid", "--search", "x", "--limit", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestInvalidFormatFails(t *testing.T) {
	_, err := runCommand(t, "http://unused.invalid", "--search", "x", "--format", "xml")
	require.Error(t, err)
}

func TestMutuallyExclusiveOperations(t *testing.T) {
	_, err := runCommand(t, "http://unused.invalid", "--search", "x", "--id", "0xabc")
	require.Error(t, err)
}

func TestTrustScoreSequentialRequests(t *testing.T) {
	server, seen := stubServer(t, map[string]string{
		"GetTerm": `{"atom":{"term_id":"0xabc","label":"Uniswap","type":"Thing",
			"vault":{"total_assets":"2000000000000000000","position_count":12}},"triple":null}`,
		"GetPositions": `{"positions":[{"shares":"1000000000000000000","account":{"id":"0x1234567890abcdef"}}]}`,
		"GetTriplesAbout": `{"triples":[{
			"subject":{"label":"Uniswap"},
			"predicate":{"label":"is"},
			"object":{"label":"audited"},
			"vault":{"total_shares":"85"},
			"counter_vault":{"total_shares":"15"}
		}]}`,
	})

	out, err := runCommand(t, server.URL, "--trust-score", "0xabc", "--format", "text")
	require.NoError(t, err)

	assert.Equal(t, []string{"GetTerm", "GetPositions", "GetTriplesAbout"}, *seen)

	assert.Contains(t, out, "Entity: Uniswap")
	assert.Contains(t, out, "Trust Assessment: High")
	assert.Contains(t, out, "Trust Ratio: 85.00%")
	assert.Contains(t, out, "  - is -> audited (positive: 85, negative: 15)")
	assert.Contains(t, out, "  - 0x12345678...: 1000000000000000000 (1.000000 tokens)")
}

func TestTrustScoreJSONOutput(t *testing.T) {
	server, _ := stubServer(t, map[string]string{
		"GetTerm":         `{"atom":null,"triple":null}`,
		"GetPositions":    `{"positions":[]}`,
		"GetTriplesAbout": `{"triples":[]}`,
	})

	out, err := runCommand(t, server.URL, "--trust-score", "0xmissing")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "0xmissing", report["term_id"])
	assert.Nil(t, report["entity"])

	metrics, ok := report["metrics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), metrics["total_stake"])
	assert.Nil(t, metrics["trust_ratio"])
}

func TestLimitDefault(t *testing.T) {
	assert.Equal(t, "10", rootCmd.Flags().Lookup("limit").DefValue)
	assert.Equal(t, "json", rootCmd.Flags().Lookup("format").DefValue)
}
