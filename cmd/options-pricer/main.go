package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/purduemomentum/options-pricing-project/internal/data"
	"github.com/purduemomentum/options-pricing-project/internal/logger"
	"github.com/purduemomentum/options-pricing-project/internal/pricing"
	"github.com/purduemomentum/options-pricing-project/internal/report"
	"github.com/purduemomentum/options-pricing-project/internal/session"
	"github.com/purduemomentum/options-pricing-project/internal/volatility"
)

func main() {
	ticker := flag.String("ticker", "SPY", "underlying ticker")
	strike := flag.Float64("strike", 100, "strike price")
	days := flag.Int("days", 30, "days to expiry")
	optType := flag.String("type", "call", "option type: call or put")
	style := flag.String("style", "european", "exercise style: european or american")
	steps := flag.Int("steps", pricing.DefaultSteps, "binomial tree steps")
	rate := flag.Float64("rate", session.DefaultRates().RiskFree, "risk-free rate")
	dividend := flag.Float64("dividend", session.DefaultRates().DividendYield, "continuous dividend yield")
	spot := flag.Float64("spot", 0, "spot price override (0 = fetch from provider)")
	sigma := flag.Float64("sigma", 0, "volatility override (0 = estimate from history)")
	lookback := flag.Int("lookback", volatility.DefaultLookbackDays, "history lookback in calendar days")
	verbosity := flag.Int("v", int(logger.Info), "verbosity: 0=error 1=info 2=debug 3=trace")
	interactive := flag.Bool("interactive", false, "prompt for contract details")
	rest := flag.Bool("rest", false, "run as REST server (accept pricing jobs)")
	port := flag.String("port", ":8080", "REST server listen address")
	outDir := flag.String("out", "", "write prices.json/prices.csv to this directory")
	flag.Parse()

	logger.SetVerbosity(*verbosity)

	if err := godotenv.Load(); err == nil {
		logger.Debugf("loaded .env")
	}

	// Provider selection: real data when a key is injected, synthetic walk
	// otherwise. The key is never compiled in.
	var prov data.Provider
	if apiKey := os.Getenv("POLYGON_API_KEY"); apiKey != "" {
		prov = data.NewPolygonDataProvider(apiKey, data.NewSyntheticProvider(1, data.DefaultSpot))
		logger.Infof("polygon provider enabled")
	} else {
		prov = data.NewSyntheticProvider(1, data.DefaultSpot)
		logger.Infof("synthetic provider enabled (set POLYGON_API_KEY for live data)")
	}

	estimator := volatility.DefaultEstimator()
	estimator.LookbackDays = *lookback
	rates := session.RateParameters{RiskFree: *rate, DividendYield: *dividend}

	if *rest {
		serveREST(prov, estimator, rates, *steps, *port)
		return
	}

	var results []session.PriceResult
	if *interactive {
		results = runPrompt(prov, estimator, rates, *steps)
	} else {
		inputs := session.MarketInputs{
			Ticker:       strings.ToUpper(*ticker),
			Spot:         *spot,
			Strike:       *strike,
			DaysToExpiry: *days,
			Type:         pricing.OptionType(*optType),
			Style:        pricing.ExerciseStyle(*style),
		}
		res, err := priceOnce(prov, estimator, rates, *steps, inputs, *sigma)
		if err != nil {
			log.Fatalf("pricing failed: %v", err)
		}
		printResult(res)
		results = append(results, res)
	}

	if *outDir != "" && len(results) > 0 {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			logger.Errorf("could not create output dir %s: %v", *outDir, err)
			return
		}
		_ = report.WriteJSON(results, *outDir)
		_ = report.WriteCSV(results, *outDir)
		logger.Infof("wrote %d results to %s", len(results), *outDir)
	}
}

// priceOnce fills in spot and volatility from the provider when the caller
// did not override them, then runs a single session.
func priceOnce(prov data.Provider, estimator volatility.Estimator, rates session.RateParameters,
	steps int, inputs session.MarketInputs, sigmaOverride float64) (session.PriceResult, error) {

	if inputs.Spot <= 0 {
		inputs.Spot = data.SpotOrFallback(prov, inputs.Ticker)
	}

	var vol volatility.Estimate
	if sigmaOverride > 0 {
		vol = volatility.Estimate{Sigma: sigmaOverride}
	} else {
		closes := data.HistoryOrEmpty(prov, inputs.Ticker, estimator.LookbackDays)
		vol = estimator.Estimate(closes)
	}

	sess := session.New(inputs, rates, vol, steps)
	return sess.Evaluate()
}

func printResult(res session.PriceResult) {
	fmt.Printf("%s: %.4f (model=%s, sigma=%.4f", res.Ticker, res.Value, res.Model, res.Volatility.Sigma)
	if res.Volatility.Defaulted {
		fmt.Printf(" [default]")
	}
	fmt.Println(")")
	if res.BlackScholes != nil {
		fmt.Printf("  d1=%.6f d2=%.6f\n", res.BlackScholes.D1, res.BlackScholes.D2)
	}
	if res.Tree != nil {
		fmt.Printf("  u=%.6f d=%.6f p=%.6f steps=%d\n",
			res.Tree.Up, res.Tree.Down, res.Tree.ProbUp, res.Tree.Steps)
	}
}

// runPrompt loops reading contracts from stdin until a blank ticker.
func runPrompt(prov data.Provider, estimator volatility.Estimator, rates session.RateParameters, steps int) []session.PriceResult {
	in := bufio.NewScanner(os.Stdin)
	var results []session.PriceResult
	for {
		ticker := prompt(in, "ticker (blank to quit)")
		if ticker == "" {
			return results
		}
		strike, err := strconv.ParseFloat(prompt(in, "strike"), 64)
		if err != nil {
			fmt.Println("not a number, starting over")
			continue
		}
		days, err := strconv.Atoi(prompt(in, "days to expiry"))
		if err != nil {
			fmt.Println("not a number, starting over")
			continue
		}
		optType := prompt(in, "type (call/put)")
		style := prompt(in, "style (european/american)")

		inputs := session.MarketInputs{
			Ticker:       strings.ToUpper(ticker),
			Strike:       strike,
			DaysToExpiry: days,
			Type:         pricing.OptionType(strings.ToLower(optType)),
			Style:        pricing.ExerciseStyle(strings.ToLower(style)),
		}
		res, err := priceOnce(prov, estimator, rates, steps, inputs, 0)
		if err != nil {
			fmt.Printf("pricing failed: %v\n", err)
			continue
		}
		printResult(res)
		results = append(results, res)
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

// priceRequest is the REST body: market inputs plus optional overrides.
type priceRequest struct {
	session.MarketInputs
	RiskFree      *float64 `json:"risk_free,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	Steps         *int     `json:"steps,omitempty"`
	Sigma         *float64 `json:"sigma,omitempty"`
}

func serveREST(prov data.Provider, estimator volatility.Estimator, defaults session.RateParameters, steps int, port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/price", func(w http.ResponseWriter, r *http.Request) {
		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rates := defaults
		if req.RiskFree != nil {
			rates.RiskFree = *req.RiskFree
		}
		if req.DividendYield != nil {
			rates.DividendYield = *req.DividendYield
		}
		n := steps
		if req.Steps != nil {
			n = *req.Steps
		}
		var sigma float64
		if req.Sigma != nil {
			sigma = *req.Sigma
		}
		res, err := priceOnce(prov, estimator, rates, n, req.MarketInputs, sigma)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	logger.Infof("starting REST server on %s", port)
	log.Fatal(http.ListenAndServe(port, mux))
}
