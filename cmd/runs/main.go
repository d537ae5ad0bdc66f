package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	ue "upgrade_evolve"

	"github.com/BurntSushi/toml"
)

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for upgrade_evolve tools to use. Defaults to './config.toml'")

var best *bool = flag.Bool("best", false, "Show only the highest-fitness archived run")

var compare *string = flag.String("compare", "", "Compare two archived runs by id, e.g. '1,2'")

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

	persist, err := ue.NewPersistence(toolConfig.Persistence)
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	if *compare != "" {
		compareRuns(persist, *compare)
		return
	}

	if *best {
		run, err := persist.BestRun()
		if err != nil {
			log.Fatalf("Failed to load best run: %v", err)
		}
		if run == nil {
			fmt.Println("Archive is empty")
			return
		}
		printRun(run)
		return
	}

	runs, err := persist.LoadRuns()
	if err != nil {
		log.Fatalf("Failed to load archived runs: %v", err)
	}
	for i := range runs {
		printRun(&runs[i])
	}
}

func printRun(run *ue.RunRecord) {
	fmt.Printf("%d\tseed=%d pop=%d gen=%d fitness=%v\t%s\n",
		run.ID, run.Seed, run.PopulationSize, run.Generations, run.Fitness, run.Genome)
}

func compareRuns(persist *ue.Persistence, spec string) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		log.Fatalf("Expected -compare in the form 'id,id', got %q", spec)
	}

	records := make([]*ue.RunRecord, 2)
	for i, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			log.Fatalf("Invalid run id %q: %v", part, err)
		}
		run, err := persist.LoadRun(uint(id))
		if err != nil {
			log.Fatalf("Failed to load run %d: %v", id, err)
		}
		if run == nil {
			log.Fatalf("No archived run with id %d", id)
		}
		records[i] = run
	}

	distance := ue.GenomeDistance(records[0].BestGenome(), records[1].BestGenome())
	fmt.Printf("Run %d: %s\n", records[0].ID, records[0].Genome)
	fmt.Printf("Run %d: %s\n", records[1].ID, records[1].Genome)
	fmt.Printf("Genome distance: %d\n", distance)
}
