package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spreadomatic/core/bond"
	"github.com/spreadomatic/core/config"
	"github.com/spreadomatic/core/utils"
)

// reportDecimals trims solver noise from the JSON report.
const reportDecimals = 10

type output struct {
	YTM               float64            `json:"ytm"`
	ZSpread           float64            `json:"z_spread"`
	GSpread           float64            `json:"g_spread"`
	EffectiveDuration float64            `json:"effective_duration"`
	ModifiedDuration  float64            `json:"modified_duration"`
	MacaulayDuration  float64            `json:"macaulay_duration"`
	Convexity         float64            `json:"convexity"`
	SpreadDuration    float64            `json:"spread_duration"`
	KeyRateDurations  map[string]float64 `json:"key_rate_durations"`
	OAS               *float64           `json:"oas,omitempty"`
	Warnings          []string           `json:"warnings,omitempty"`
}

func main() {
	configPath := flag.String("config", "bondcalc.yml", "YAML valuation request path")
	verbose := flag.Bool("v", false, "Log at debug level")
	flag.Parse()

	logger, err := buildLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	conf, err := config.LoadConfiguration(*configPath)
	if err != nil {
		logger.Fatal("load configuration", zap.String("path", *configPath), zap.Error(err))
	}

	in, err := conf.BuildInput()
	if err != nil {
		logger.Fatal("build valuation input", zap.Error(err))
	}

	res, err := bond.Compute(logger, in)
	if err != nil {
		logger.Fatal("compute analytics", zap.Error(err))
	}

	krd := make(map[string]float64, len(res.KeyRateDurations))
	for knot, v := range res.KeyRateDurations {
		krd[fmt.Sprintf("%g", knot)] = utils.RoundTo(v, reportDecimals)
	}
	oas := res.OAS
	if oas != nil {
		rounded := utils.RoundTo(*oas, reportDecimals)
		oas = &rounded
	}

	b, err := json.MarshalIndent(output{
		YTM:               utils.RoundTo(res.YTM, reportDecimals),
		ZSpread:           utils.RoundTo(res.ZSpread, reportDecimals),
		GSpread:           utils.RoundTo(res.GSpread, reportDecimals),
		EffectiveDuration: utils.RoundTo(res.EffectiveDuration, reportDecimals),
		ModifiedDuration:  utils.RoundTo(res.ModifiedDuration, reportDecimals),
		MacaulayDuration:  utils.RoundTo(res.MacaulayDuration, reportDecimals),
		Convexity:         utils.RoundTo(res.Convexity, reportDecimals),
		SpreadDuration:    utils.RoundTo(res.SpreadDuration, reportDecimals),
		KeyRateDurations:  krd,
		OAS:               oas,
		Warnings:          res.Warnings,
	}, "", "  ")
	if err != nil {
		logger.Fatal("marshal output", zap.Error(err))
	}
	fmt.Println(string(b))
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
