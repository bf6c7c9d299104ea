package main

import "fmt"

// runConfig prints the effective configuration after env, file and flags merge.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("config", args, env.Stderr)
	if err != nil {
		return err
	}

	// The docs dir is not required here, so resolve without it.
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := mergedConfig(flags, envCfg)
	if err != nil {
		return err
	}

	if len(positional) > 0 {
		cfg.Docs.Dir = positional[0]
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
