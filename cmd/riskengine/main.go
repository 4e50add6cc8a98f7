// Command riskengine is a thin CLI over the analysis pipeline: read a
// contract text file, run Analyze, print the resulting Report as JSON.
// Flags for the handful of knobs that matter, env vars for
// backing-service wiring, structured logging for everything else.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/semaj90/legalrisk/corpus"
	"github.com/semaj90/legalrisk/encoder"
	"github.com/semaj90/legalrisk/frontier"
	"github.com/semaj90/legalrisk/pipeline"
	"github.com/semaj90/legalrisk/store"
	"github.com/semaj90/legalrisk/telemetry"
	"github.com/semaj90/legalrisk/v12"
)

func main() {
	var (
		inputPath      = flag.String("input", "", "path to the contract text file to analyze (required)")
		contractType   = flag.String("contract-type", "msa", "contract type key used for expected-clause analysis")
		enableV12      = flag.Bool("v12", false, "enable the V12 symbolic/RAG/GNN/debate overlay")
		corpusPath     = flag.String("corpus", "", "path to a corpus profile JSON file (created if missing)")
		compareCorpus  = flag.Bool("compare-corpus", false, "compare this analysis against the running corpus profile")
		ingest         = flag.Bool("ingest", false, "fold this analysis into the corpus profile after running it")
		trials         = flag.Int("trials", pipeline.DefaultSimulationTrials, "Monte-Carlo simulation trial count")
		seed           = flag.Int64("seed", 1, "Monte-Carlo simulation RNG seed")
		enableFrontier = flag.Bool("frontier", false, "enable the frontier overlay (silence/archaeology/temporal/strain/social/ambiguity/cartography)")
		playbook       = flag.Bool("playbook", false, "generate a negotiation playbook for the flagged clauses")
		jurisdiction   = flag.String("jurisdiction", "US", "jurisdiction key for market benchmarks")
		industry       = flag.String("industry", "technology", "industry key for market benchmarks")
		ageMonths      = flag.Float64("age-months", 0, "contract age in months, for temporal-decay analysis (0 skips it)")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: riskengine -input contract.txt [-contract-type msa] [-v12]")
		os.Exit(2)
	}

	logger := telemetry.NewLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownTracing, err := telemetry.InitTracing(ctx, "riskengine", logger)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	} else {
		defer shutdownTracing(ctx)
	}

	text, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	enc := buildEncoder(metrics)
	embeddingCache := buildEmbeddingCache(ctx)

	var backing store.ObjectStore
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		backing, err = store.NewPostgresStore(ctx, dsn, *contractType)
		if err != nil {
			log.Fatalf("open postgres corpus store: %v", err)
		}
	} else {
		path := *corpusPath
		if path == "" {
			path = "riskengine_corpus.json"
		}
		backing, err = store.NewFileStore(path)
		if err != nil {
			log.Fatalf("open corpus store: %v", err)
		}
	}
	corpusProfile, err := corpus.New(ctx, backing)
	if err != nil {
		log.Fatalf("load corpus profile: %v", err)
	}

	var v12Engine *v12.Engine
	if *enableV12 {
		v12Engine, err = v12.New(ctx, enc, nil, embeddingCache)
		if err != nil {
			log.Fatalf("build v12 engine: %v", err)
		}
	}

	p, err := pipeline.New(ctx, enc, corpusProfile, v12Engine,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(metrics),
		pipeline.WithEmbeddingCache(embeddingCache),
	)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}

	opts := pipeline.DefaultAnalyzeOptions(*contractType)
	opts.SimulationTrials = *trials
	opts.SimulationSeed = *seed
	opts.CompareToCorpus = *compareCorpus
	if *enableV12 {
		v12Opts := v12.DefaultOptions()
		opts.V12 = &v12Opts
	}
	if *enableFrontier {
		frontierOpts := frontier.DefaultOptions()
		opts.Frontier = &frontierOpts
	}
	opts.Playbook = *playbook
	opts.Jurisdiction = *jurisdiction
	opts.Industry = *industry
	opts.ContractAgeMonths = *ageMonths

	report, err := p.Analyze(ctx, string(text), opts)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	if *ingest {
		if err := p.IngestCorpus(ctx, report); err != nil {
			logger.Warn("corpus ingest failed", zap.Error(err))
		}
	}

	out, err := sonic.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

// buildEncoder wires a Redis-backed embedding cache in front of the
// deterministic fallback encoder when REDIS_ADDR is set, matching
// encoder.CachedEncoder's intended deployment shape; otherwise falls back
// to the dependency-free deterministic encoder so the CLI runs with zero
// external services by default.
func buildEncoder(metrics *telemetry.Metrics) encoder.Encoder {
	base := encoder.NewDeterministic()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return base
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return encoder.NewCachedEncoder(base,
		encoder.WithRedis(client),
		encoder.WithCacheMetrics(metrics.CacheHits, metrics.CacheMisses),
	)
}

// buildEmbeddingCache wires a Postgres/pgvector-backed cache for the
// classifier's prototype embeddings, the rewrite engine's template
// embeddings, and the V12 case-law index's embeddings when POSTGRES_DSN is
// set, so those fixed indexes survive a process restart without
// re-embedding; otherwise nil, meaning each restart re-embeds them fresh
// against enc.
func buildEmbeddingCache(ctx context.Context) encoder.EmbeddingCache {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil
	}
	cache, err := encoder.NewPGVectorCache(ctx, dsn)
	if err != nil {
		log.Fatalf("open pgvector embedding cache: %v", err)
	}
	return cache
}
