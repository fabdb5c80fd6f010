package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	tenant  string
	actor   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookledger-cli",
		Short: "BookLedger CLI tool",
		Long:  `A command line interface for interacting with the BookLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BookLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "Tenant scope for all requests")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", "", "Actor recorded in the audit trail")

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(entriesCmd())
	rootCmd.AddCommand(ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart-of-accounts operations",
	}

	var (
		accountType string
		contra      bool
		code        int64
		parentID    string
	)

	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"name":   args[0],
				"type":   accountType,
				"contra": contra,
			}
			if code != 0 {
				payload["code"] = code
			}
			if parentID != "" {
				payload["parent_account_id"] = parentID
			}
			doRequest(http.MethodPost, "/api/v1/accounts/", payload)
		},
	}
	createCmd.Flags().StringVar(&accountType, "type", "asset", "Account type (asset, liability, equity, revenue, expense)")
	createCmd.Flags().BoolVar(&contra, "contra", false, "Mark the account as contra to its type")
	createCmd.Flags().Int64Var(&code, "code", 0, "Numeric account code")
	createCmd.Flags().StringVar(&parentID, "parent", "", "Parent account ID")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0]), nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/", nil)
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance [id]",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0])+"/balance", nil)
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify [id]",
		Short: "Verify running balance against full recomputation",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0])+"/balance/verify", nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, balanceCmd, verifyCmd)
	return cmd
}

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Entry operations",
	}

	var (
		description string
		debits      []string
		credits     []string
	)

	commitCmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit a balanced entry",
		Long:  "Commit an entry. Amounts are given as account:value pairs, e.g. --debit cash:100.50 --credit revenue:100.50",
		Run: func(cmd *cobra.Command, args []string) {
			debitLines, err := parseAmounts(debits)
			if err != nil {
				fmt.Printf("Invalid debit: %v\n", err)
				os.Exit(1)
			}
			creditLines, err := parseAmounts(credits)
			if err != nil {
				fmt.Printf("Invalid credit: %v\n", err)
				os.Exit(1)
			}
			doRequest(http.MethodPost, "/api/v1/entries/", map[string]any{
				"description": description,
				"debits":      debitLines,
				"credits":     creditLines,
			})
		},
	}
	commitCmd.Flags().StringVar(&description, "description", "", "Entry description")
	commitCmd.Flags().StringArrayVar(&debits, "debit", nil, "Debit line as account:value")
	commitCmd.Flags().StringArrayVar(&credits, "credit", nil, "Credit line as account:value")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an entry by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/entries/"+url.PathEscape(args[0]), nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/entries/", nil)
		},
	}

	cmd.AddCommand(commitCmd, getCmd, listCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger-wide operations",
	}

	trialBalanceCmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Show ledger-wide debit and credit totals",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/ledger/trial-balance", nil)
		},
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	cmd.AddCommand(trialBalanceCmd, consistencyCmd)
	return cmd
}

// parseAmounts splits account:value pairs into request lines.
func parseAmounts(pairs []string) ([]map[string]string, error) {
	lines := make([]map[string]string, 0, len(pairs))
	for _, pair := range pairs {
		account, value, ok := cutLast(pair, ':')
		if !ok || account == "" || value == "" {
			return nil, fmt.Errorf("expected account:value, got %q", pair)
		}
		lines = append(lines, map[string]string{"account_id": account, "value": value})
	}
	return lines, nil
}

// cutLast splits s around the last occurrence of sep so account IDs may
// themselves contain the separator.
func cutLast(s string, sep byte) (string, string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func doRequest(method, path string, payload any) {
	client := &http.Client{Timeout: timeout}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	if actor != "" {
		req.Header.Set("X-Actor", actor)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		fmt.Printf("%s\n", string(data))
		return
	}
	printJSON(result)
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/ledger/consistency", nil)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
