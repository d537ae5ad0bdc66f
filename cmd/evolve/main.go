package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	ue "upgrade_evolve"

	"github.com/BurntSushi/toml"
)

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for upgrade_evolve tools to use. Defaults to './config.toml'")

var seedOverride *uint = flag.Uint("seed", 0, "Override the configured optimizer seed (0 keeps the config value)")

var save *bool = flag.Bool("save", false, "Archive the run outcome to the configured database")

func main() {
	flag.Parse()

	conffile, err := os.Open(*toolConfigPath)

	if err != nil {
		log.Fatalf("Unable to load upgrade_evolve config: %v", err)
	}

	confDecoder := toml.NewDecoder(conffile)
	var toolConfig ue.ToolConfig
	if _, err = confDecoder.Decode(&toolConfig); err != nil {
		log.Fatalf("Failed to unmarshal tool config: %v", err)
	}
	conffile.Close()

	if toolConfig.Base == nil {
		log.Fatalf("Config must define a [base] character")
	}

	upgrades, _, err := toolConfig.BuildRegistries()
	if err != nil {
		log.Fatalf("Failed to build registries from config: %v", err)
	}

	if *seedOverride != 0 {
		if toolConfig.Optimizer == nil {
			toolConfig.Optimizer = &ue.OptimizerConfig{}
		}
		toolConfig.Optimizer.Seed = uint32(*seedOverride)
	}

	base := toolConfig.Base.ToCharacter()
	optimizer := ue.NewOptimizerFromConfig(toolConfig.Optimizer)

	best, err := optimizer.Optimize(base, upgrades)
	if err != nil {
		log.Fatalf("Optimization failed: %v", err)
	}

	metrics, err := ue.MeasureRun(base, best, upgrades)
	if err != nil {
		log.Fatalf("Failed to measure run: %v", err)
	}

	fmt.Printf("Best genome: %s\n", best)
	fmt.Printf("Fitness: %v (attack %v, defense %v, health %v)\n",
		metrics.BestFitness, metrics.Attack, metrics.Defense, metrics.Health)

	if *save {
		if persist, err := ue.NewPersistence(toolConfig.Persistence); err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		} else {
			defer persist.Shutdown()
			if id, created, err := persist.SaveRun(optimizer.Config, best, metrics); err != nil {
				log.Fatalf("Failed to archive run: %v", err)
			} else if created {
				fmt.Printf("Archived run %d\n", id)
			} else {
				fmt.Printf("Archive already holds a similar genome (run %d), skipped\n", id)
			}
		}
	}
}
