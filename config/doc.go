// Package config loads solver configuration from defaults, a YAML file and
// BATCHLAP_* environment variables, in that order of precedence, and turns
// it into a ready batch.Solver.
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("batchlap.yaml").
//	    WithEnvPrefix("BATCHLAP").
//	    Load()
//	solver, err := config.NewSolver(cfg, prometheus.DefaultRegisterer)
package config
