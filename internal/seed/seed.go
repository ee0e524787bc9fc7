// Package seed populates a local database with demo projects, tasks, and
// comments by exercising the service layer end to end.
package seed

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	entrypoint "github.com/tasktrail/tasktrail/internal/platform/cmd"
	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
	"github.com/tasktrail/tasktrail/internal/services/tasks/service"
	"github.com/tasktrail/tasktrail/internal/services/tasks/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath  string
	Verbose bool
}

// DefaultConfig returns the seed defaults.
func DefaultConfig() Config {
	return Config{DBPath: filepath.Join("data", "tasks.db")}
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite database")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type fixtureTask struct {
	title    string
	priority domain.Priority
	status   domain.Status
	comment  string
}

type fixtureProject struct {
	name   string
	userID string
	tasks  []fixtureTask
}

var fixtures = []fixtureProject{
	{
		name:   "Website Relaunch",
		userID: "demo-alice",
		tasks: []fixtureTask{
			{title: "Draft landing page copy", priority: domain.PriorityHigh, status: domain.StatusCompleted, comment: "Copy reviewed by marketing"},
			{title: "Migrate DNS records", priority: domain.PriorityMedium, status: domain.StatusInProgress},
			{title: "Set up analytics", priority: domain.PriorityLow, status: domain.StatusPending},
		},
	},
	{
		name:   "Mobile App",
		userID: "demo-bob",
		tasks: []fixtureTask{
			{title: "Fix login crash", priority: domain.PriorityHigh, status: domain.StatusCompleted, comment: "Verified on device farm"},
			{title: "Polish onboarding flow", priority: domain.PriorityMedium, status: domain.StatusPending},
		},
	},
}

// Run seeds the database at cfg.DBPath with the demo fixtures, with
// telemetry configured for the duration of the run.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		return seedFixtures(ctx, cfg)
	})
}

func seedFixtures(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	tasks := service.NewTaskService(store, store, store)
	projects := service.NewProjectService(store)

	for _, fixture := range fixtures {
		project, err := projects.CreateProject(ctx, domain.NewProjectInput{
			Name:   fixture.name,
			UserID: fixture.userID,
		})
		if err != nil {
			return fmt.Errorf("seed project %q: %w", fixture.name, err)
		}
		if cfg.Verbose {
			log.Printf("created project %s (%s)", project.Name, project.ID)
		}

		for _, item := range fixture.tasks {
			task, err := tasks.CreateTask(ctx, domain.NewTaskInput{
				Title:     item.title,
				Priority:  item.priority,
				Status:    domain.StatusPending,
				ProjectID: project.ID,
				UserID:    fixture.userID,
			})
			if err != nil {
				return fmt.Errorf("seed task %q: %w", item.title, err)
			}

			// Status transitions go through UpdateTask so the demo data
			// carries a real audit trail.
			if item.status != domain.StatusPending {
				status := item.status
				if _, err := tasks.UpdateTask(ctx, task.ID, domain.TaskPatch{
					Status:   &status,
					Priority: task.Priority,
				}); err != nil {
					return fmt.Errorf("advance task %q: %w", item.title, err)
				}
			}
			if item.comment != "" {
				if err := tasks.AddComment(ctx, task.ID, item.comment, fixture.userID); err != nil {
					return fmt.Errorf("comment on task %q: %w", item.title, err)
				}
			}
			if cfg.Verbose {
				log.Printf("created task %s (%s)", task.Title, task.ID)
			}
		}
	}
	return nil
}
