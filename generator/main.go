// Command generator emits random problem instances in the plain-text format
// consumed by loadplan solve and bench.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/openfreight/loadplan/infra/probfile"
)

type genConfig struct {
	Count      int
	Files      int
	Dir        string
	Prefix     string
	Seed       int64
	Span       float64
	MaxMinutes float64
}

func parseFlags() genConfig {
	var cfg genConfig
	flag.IntVar(&cfg.Count, "count", 25, "loads per instance")
	flag.IntVar(&cfg.Files, "files", 1, "number of instances to generate")
	flag.StringVar(&cfg.Dir, "dir", "problems", "output directory")
	flag.StringVar(&cfg.Prefix, "prefix", "problem", "instance file name prefix")
	flag.Int64Var(&cfg.Seed, "seed", 1, "random seed")
	flag.Float64Var(&cfg.Span, "span", 100, "half-width of the coordinate square")
	flag.Float64Var(&cfg.MaxMinutes, "max-minutes", 720, "route duration limit the loads must fit")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()
	if cfg.Files < 1 {
		log.Fatalf("files must be at least 1")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 1; i <= cfg.Files; i++ {
		loads, err := generateLoads(rng, cfg.Count, cfg.Span, cfg.MaxMinutes)
		if err != nil {
			log.Fatalf("generate: %v", err)
		}
		path := filepath.Join(cfg.Dir, fmt.Sprintf("%s_%d.txt", cfg.Prefix, i))
		if err := probfile.WriteFile(path, loads); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Println(path)
	}
}
