package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"loadsim/internal/catalog"
	"loadsim/internal/config"
	"loadsim/internal/engine"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli generate --config examples/config.yaml --out results/profiles.csv")
	fmt.Println("  cli validate --catalog examples/catalog.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - generate writes one CSV row per simulated day, minute_0..minute_1439")
	fmt.Println("  - validate checks a catalog file loads and every appliance satisfies its invariants")
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML run configuration")
	outPath := fs.String("out", "results/profiles.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	uc, err := catalog.LoadCSV(cfg.CatalogFile)
	if err != nil {
		panic(err)
	}

	e := engine.New()
	req := engine.RunRequest{
		UseCase:     uc,
		NumProfiles: cfg.NumProfiles,
		DayType:     cfg.DayType,
		PeakEnlarge: cfg.PeakEnlarge,
		Seed:        cfg.Seed,
		Parallel:    cfg.Parallel,
		Progress: func(done, total int) {
			fmt.Printf("\rgenerating day %d/%d", done, total)
		},
	}

	var result *engine.Result
	if cfg.Rounds > 1 {
		result, err = e.RunAveraged(context.Background(), req, cfg.Rounds)
	} else {
		result, err = e.Run(context.Background(), req)
	}
	fmt.Println()
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := catalog.WriteProfilesCSV(*outPath, result); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d profiles to %s\n", len(result.Profiles), *outPath)
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	catalogPath := fs.String("catalog", "", "Path to appliance catalog CSV")
	_ = fs.Parse(args)

	if *catalogPath == "" {
		fmt.Println("--catalog is required")
		os.Exit(2)
	}

	uc, err := catalog.LoadCSV(*catalogPath)
	if err != nil {
		fmt.Printf("invalid: %v\n", err)
		os.Exit(1)
	}

	total := 0
	names := make([]string, 0, len(uc.Users))
	for _, u := range uc.Users {
		total += len(u.Appliances)
		names = append(names, u.Name)
	}
	fmt.Printf("valid: %d users (%s), %d appliances\n", len(uc.Users), strings.Join(names, ", "), total)
}
