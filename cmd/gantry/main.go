package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/gantry/internal/cli"
	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Defaults, then the config file, then GANTRY_* variables.
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return err
	}

	holidays, err := timeline.NewHolidayCalendar(cfg.HolidayRegion)
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	ticketRepo := repository.NewSQLiteTicketRepo(database)
	assigneeRepo := repository.NewSQLiteAssigneeRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, uow, observers...),
		Tickets:   service.NewTicketService(ticketRepo, uow, observers...),
		Assignees: service.NewAssigneeService(assigneeRepo, uow, observers...),
		Planner:   service.NewPlannerService(uow, observers...),
		Dashboard: service.NewDashboardService(projectRepo, ticketRepo, assigneeRepo, cfg.DueSoonDays),
		Import:    service.NewImportService(uow, observers...),
		Config:    cfg,
		Holidays:  holidays,
	}

	// Detect interactive terminal so a bare "gantry" opens the planner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
