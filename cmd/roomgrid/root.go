package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stemsi/roomgrid-backend/internal/cache"
	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/logger"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/repository"
	"github.com/stemsi/roomgrid-backend/internal/service"
	"github.com/stemsi/roomgrid-backend/internal/source"
)

// localTerm is the code under which the offline course file is loaded.
const localTerm = "local"

var rootCmd = &cobra.Command{
	Use:   "roomgrid",
	Short: "Inspect room availability from course exports",
	Long: `roomgrid loads a buildings file and a course export (CSV or JSON),
prints the rooms found per building and, with --room, the weekly
occupancy grid of one room. No database or cache is needed.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("buildings", "b", "data/buildings.json", "Path to buildings.json ([{Code, Description}])")
	rootCmd.Flags().StringP("courses", "c", "", "Course export path or URL")
	rootCmd.Flags().Bool("json", false, "Course export is the JSON API format")
	rootCmd.Flags().StringP("room", "r", "", `Room to project, e.g. "DANA 113"`)
	rootCmd.Flags().Bool("sample", false, "Use generated sample courses instead of an export (also used when the export cannot be loaded)")
	rootCmd.Flags().String("log-level", "warn", "Log level")
}

// staticBuildings serves the building list read from the buildings file.
type staticBuildings []model.Building

func (s staticBuildings) List(context.Context) ([]model.Building, error) {
	return s, nil
}

// staticTerms serves the single local term.
type staticTerms struct{ term model.Term }

func (s staticTerms) List(context.Context) ([]model.Term, error) {
	return []model.Term{s.term}, nil
}

func (s staticTerms) GetByCode(_ context.Context, code string) (*model.Term, error) {
	if !strings.EqualFold(code, s.term.Code) {
		return nil, repository.ErrNotFound
	}
	t := s.term
	return &t, nil
}

type app struct {
	catalog  *service.CatalogService
	rooms    *service.RoomService
	schedule *service.ScheduleService
}

func newApp(ctx context.Context, buildingsFile, coursesPath string, jsonInput, sample bool, log zerolog.Logger) (*app, error) {
	buildings, err := repository.ReadBuildingsFile(buildingsFile)
	if err != nil {
		return nil, err
	}

	term := model.Term{Code: localTerm, Label: "Local export", SourceKind: model.SourceCSV, SourceURL: coursesPath, IsActive: true}
	if jsonInput {
		term.SourceKind = model.SourceJSON
	}

	store := cache.NewMemoryStore()
	catalog := service.NewCatalogService(staticBuildings(buildings), staticTerms{term: term}, log)
	if err := catalog.Load(ctx); err != nil {
		return nil, err
	}

	courses := service.NewCourseService(source.NewFetcher(30*time.Second, "", log), store, log)
	useSample := func() error {
		res := &ingest.Result{Courses: courses.Sample(catalog.Buildings())}
		res.Stats.Parsed = len(res.Courses)
		return store.SetCourses(ctx, localTerm, res, "sample")
	}

	switch {
	case sample:
		if err := useSample(); err != nil {
			return nil, err
		}
	case coursesPath == "":
		return nil, fmt.Errorf("either --courses or --sample is required")
	default:
		// An unreadable or empty export still shows the layout with sample data.
		res, err := courses.Load(ctx, &term)
		if err != nil || res.Empty() {
			log.Warn().Err(err).Str("courses", coursesPath).Msg("No courses loaded, using sample courses")
			if err := useSample(); err != nil {
				return nil, err
			}
		}
	}

	rooms, err := service.NewRoomService(catalog, courses, store, 1, log)
	if err != nil {
		return nil, err
	}
	return &app{
		catalog:  catalog,
		rooms:    rooms,
		schedule: service.NewScheduleService(catalog, courses, log),
	}, nil
}

func run(cmd *cobra.Command, _ []string) error {
	buildingsFile, _ := cmd.Flags().GetString("buildings")
	coursesPath, _ := cmd.Flags().GetString("courses")
	jsonInput, _ := cmd.Flags().GetBool("json")
	room, _ := cmd.Flags().GetString("room")
	sample, _ := cmd.Flags().GetBool("sample")
	level, _ := cmd.Flags().GetString("log-level")

	log := logger.New(os.Stderr, level, "pretty")
	ctx := cmd.Context()

	a, err := newApp(ctx, buildingsFile, coursesPath, jsonInput, sample, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := a.printInventory(ctx, out); err != nil {
		return err
	}
	if room == "" {
		return nil
	}
	return a.printRoom(ctx, out, room)
}

func (a *app) printInventory(ctx context.Context, out io.Writer) error {
	res, err := a.rooms.Inventory(ctx, localTerm)
	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}
	fmt.Fprint(out, renderInventory(a.catalog.BuildingsWithRooms(res.Inventory), res))
	return nil
}

func (a *app) printRoom(ctx context.Context, out io.Writer, room string) error {
	code, number, ok := strings.Cut(strings.TrimSpace(room), " ")
	if !ok {
		return fmt.Errorf("room %q must be <BUILDING> <ROOM>", room)
	}

	rs, err := a.schedule.RoomSchedule(ctx, model.RoomScheduleRequest{Term: localTerm, Building: code, Room: number})
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, renderGrid(rs))
	return nil
}
