// Package lib provides a Go SDK for 4D construction scheduling with fourd.
//
// This package allows applications to manage the construction schedule of a
// 3D model, draw it as a Gantt chart and play it day by day on a model viewer,
// without shelling out to the fourd CLI binary. It is useful to connect fourd
// to a viewer or to automate schedule updates.
//
// # Quick Start
//
// Create a client, import a schedule and render it:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	f, _ := os.Open("schedule.csv")
//	defer f.Close()
//	res, err := client.ImportSchedule(ctx, "tower-a", f, nil)
//
//	out, _ := os.Create("tower-a.svg")
//	defer out.Close()
//	client.RenderGantt(ctx, "tower-a", out, nil)
//
// # Tasks
//
// Tasks can be managed one by one, the elements of a task can come from the
// current viewer selection:
//
//	name := "Slab"
//	start := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
//	end := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
//	task, _ := client.CreateTask(ctx, "tower-a", lib.TaskOpts{
//	    Name:      &name,
//	    Start:     &start,
//	    End:       &end,
//	    Selection: mySelection,
//	})
//	fifty := 50
//	client.UpdateTask(ctx, "tower-a", task.ID, lib.TaskOpts{PercentComplete: &fifty})
//	client.DeleteTask(ctx, "tower-a", task.ID)
//
// # Playback
//
// Implement [Viewer] to drive your model viewer, [Client.Play] isolates the
// elements of the tasks active on every simulated day:
//
//	res, err := client.Play(ctx, "tower-a", myViewer, &lib.PlayOpts{
//	    Interval: time.Second,
//	    OnProgress: func(p lib.PlayProgress) {
//	        fmt.Printf("%s %.0f%%\n", p.Date.Format(time.DateOnly), p.Fraction*100)
//	    },
//	})
//
// # Storage
//
// Schedules are stored on a SQLite database by default. Use [StorageFile] to
// store every schedule as a JSON file instead.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Schedule or task does not exist.
//   - [ErrNotValid]: Invalid input.
//   - [ErrInvalidDate]: A date could not be parsed.
//   - [ErrCyclicDependency]: The task dependencies form a cycle.
//   - [ErrPrecondition]: The operation is not allowed on the current state.
//
// # Testing
//
// Use a temporary database path to write tests:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    DBPath: filepath.Join(t.TempDir(), "test.db"),
//	})
//	defer client.Close()
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. The underlying
// storage uses SQLite with WAL mode, and services are created per-operation.
package lib
