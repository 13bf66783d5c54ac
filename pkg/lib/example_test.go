package lib_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/slok/fourd/pkg/lib"
)

// This example shows how to import a schedule and get its critical path.
func Example_criticalPath() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "fourd-example-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{DataDir: dir})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	csv := `ID,Task Name,Start,Finish,Predecessors
A,Excavation,2024-01-01,2024-01-03,
B,Foundations,2024-01-04,2024-01-08,A
C,Scaffolding,2024-01-02,2024-01-04,
`
	res, err := client.ImportSchedule(ctx, "tower", strings.NewReader(csv), nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Imported %d tasks\n", len(res.Created))

	cp, err := client.CriticalPath(ctx, "tower")
	if err != nil {
		panic(err)
	}
	for _, t := range cp.Tasks {
		fmt.Printf("%d %s\n", t.ID, t.Name)
	}
	fmt.Printf("%d days\n", cp.Days)

	// Output:
	// Imported 3 tasks
	// 1 Excavation
	// 2 Foundations
	// 8 days
}

// This example shows how to play a schedule on a viewer.
func Example_play() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "fourd-example-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{Storage: lib.StorageFile, SchedulesDir: filepath.Join(dir, "schedules")})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	name := "Slab"
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	_, err = client.CreateTask(ctx, "annex", lib.TaskOpts{
		Name:     &name,
		Start:    &start,
		End:      &end,
		Elements: []lib.ElementID{41, 42},
	})
	if err != nil {
		panic(err)
	}

	res, err := client.Play(ctx, "annex", &printViewer{}, &lib.PlayOpts{
		Interval:  time.Millisecond,
		NoTheming: true,
		OnProgress: func(p lib.PlayProgress) {
			fmt.Printf("%s %d/%d\n", p.Date.Format(time.DateOnly), p.Index+1, p.Total)
		},
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Finished: %t\n", res.Finished)

	// Output:
	// isolate [41 42]
	// 2024-03-01 1/3
	// isolate [41 42]
	// 2024-03-02 2/3
	// isolate [41 42]
	// 2024-03-03 3/3
	// show all
	// Finished: true
}

// This example shows how to handle errors.
func Example_errorHandling() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "fourd-example-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{DataDir: dir})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	_, err = client.GetSchedule(ctx, "missing")
	if errors.Is(err, lib.ErrNotFound) {
		fmt.Println("Schedule not found")
	}

	// Output:
	// Schedule not found
}

type printViewer struct{}

func (printViewer) Isolate(ids []lib.ElementID) error {
	fmt.Printf("isolate %v\n", ids)
	return nil
}

func (printViewer) ShowAll() error {
	fmt.Println("show all")
	return nil
}

func (printViewer) SetThemingColor(lib.ElementID, lib.Color) error { return nil }
func (printViewer) ClearTheming() error                           { return nil }
