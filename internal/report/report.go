// Package report persists pricing results as JSON and CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/purduemomentum/options-pricing-project/internal/session"
)

func WriteJSON(results []session.PriceResult, outdir string) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "prices.json"), b, 0644)
}

func WriteCSV(results []session.PriceResult, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "prices.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	headers := []string{"request_id", "ticker", "model", "value", "time_to_expiry", "sigma", "sigma_samples", "sigma_defaulted"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.RequestID,
			r.Ticker,
			r.Model,
			fmt.Sprintf("%.4f", r.Value),
			fmt.Sprintf("%.6f", r.TimeToExpiry),
			fmt.Sprintf("%.6f", r.Volatility.Sigma),
			fmt.Sprintf("%d", r.Volatility.Samples),
			fmt.Sprintf("%t", r.Volatility.Defaulted),
		}
		_ = w.Write(row)
	}
	return nil
}
