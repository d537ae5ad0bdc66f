package upgrade_evolve

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`

	// DedupeDistance, when positive, suppresses archiving a run whose
	// genome is within that edit distance of an already archived genome.
	DedupeDistance int `toml:"dedupe_distance"`
}

// RunRecord archives the outcome of a single optimization run.
type RunRecord struct {
	ID             uint
	Seed           uint32
	PopulationSize uint
	Generations    uint
	Genome         string
	Fitness        float64
	Health         float64
	Attack         float64
	Defense        float64
}

// BestGenome rebuilds the archived genome from its joined form.
func (r *RunRecord) BestGenome() Genome {
	return Genome(strings.Fields(r.Genome))
}

// ComboRecord archives an authored combo so a registry can be rebuilt.
type ComboRecord struct {
	ID         uint
	Name       string `gorm:"uniqueIndex"`
	UpgradeIDs string
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	params := make([]string, 0, len(config.SQLitePragmas)+len(config.SQLiteOptions))
	for _, prag := range config.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, config.SQLiteOptions...)

	var dsn strings.Builder
	dsn.WriteString(filepath.Join(config.Path, config.Name))
	if len(params) > 0 {
		dsn.WriteRune('?')
		dsn.WriteString(strings.Join(params, "&"))
	}

	db, err := gorm.Open(sqlite.Open(dsn.String()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	if err := p.DB.AutoMigrate(
		&RunRecord{},
		&ComboRecord{},
	); err != nil {
		return err
	}

	return nil
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

// SaveRun archives a run outcome and returns the record id. With
// DedupeDistance set, a genome too close to an existing record is not
// re-archived; the existing record's id comes back with created=false.
func (p *Persistence) SaveRun(config *OptimizerConfig, best Genome, metrics *RunMetrics) (uint, bool, error) {
	if config == nil || metrics == nil {
		return 0, false, fmt.Errorf("config and metrics cannot be nil")
	}

	if p.Config.DedupeDistance > 0 {
		var existing []RunRecord
		if result := p.DB.Find(&existing); result.Error != nil {
			return 0, false, fmt.Errorf("Failed to query archived runs: %w", result.Error)
		}
		for _, rec := range existing {
			if GenomeDistance(rec.BestGenome(), best) < p.Config.DedupeDistance {
				if DEBUG {
					log.Printf("Run genome %q within distance %d of record %d, skipping",
						best, p.Config.DedupeDistance, rec.ID)
				}
				return rec.ID, false, nil
			}
		}
	}

	rec := &RunRecord{
		Seed:           config.Seed,
		PopulationSize: config.PopulationSize,
		Generations:    config.Generations,
		Genome:         best.String(),
		Fitness:        metrics.BestFitness,
		Health:         metrics.Health,
		Attack:         metrics.Attack,
		Defense:        metrics.Defense,
	}
	if result := p.DB.Create(rec); result.Error != nil {
		return 0, false, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}

	return rec.ID, true, nil
}

// LoadRuns returns all archived runs, best fitness first.
func (p *Persistence) LoadRuns() ([]RunRecord, error) {
	var runs []RunRecord
	if result := p.DB.Order("fitness desc").Find(&runs); result.Error != nil {
		return nil, fmt.Errorf("Failed to load archived runs: %w", result.Error)
	}
	return runs, nil
}

// LoadRun fetches a single archived run by id. Returns nil if absent.
func (p *Persistence) LoadRun(id uint) (*RunRecord, error) {
	var run RunRecord
	result := p.DB.First(&run, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("Failed to load run %d: %w", id, result.Error)
	}
	return &run, nil
}

// BestRun returns the highest-fitness archived run, or nil when the
// archive is empty.
func (p *Persistence) BestRun() (*RunRecord, error) {
	var run RunRecord
	result := p.DB.Order("fitness desc").First(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("Failed to load best run: %w", result.Error)
	}
	return &run, nil
}

// SaveCombo archives a combo definition. No id validation happens here;
// records are validated when reloaded through a live registry.
func (p *Persistence) SaveCombo(c *Combo) error {
	rec := &ComboRecord{Name: c.Name, UpgradeIDs: strings.Join(c.UpgradeIDs, " ")}
	if result := p.DB.Create(rec); result.Error != nil {
		return fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}
	return nil
}

// LoadCombos re-registers every archived combo into reg. Records whose ids
// no longer resolve fail through the registry's ordinary Add validation.
func (p *Persistence) LoadCombos(reg *ComboRegistry) error {
	var records []ComboRecord
	if result := p.DB.Find(&records); result.Error != nil {
		return fmt.Errorf("Failed to load archived combos: %w", result.Error)
	}
	for _, rec := range records {
		combo := &Combo{Name: rec.Name, UpgradeIDs: strings.Fields(rec.UpgradeIDs)}
		if err := reg.Add(combo); err != nil {
			return err
		}
	}
	return nil
}
