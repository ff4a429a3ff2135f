// Package exec runs external tools, make in particular.
//
// An Executor runs a command with context cancellation, a working
// directory and extra environment. Output is either streamed to the
// configured writers (Run) or captured (Capture), in which case a non-zero
// exit status is part of the Result rather than an error:
//
//	executor := exec.NewExecutor(&exec.Options{Dir: dir, Spinner: true})
//	res, err := executor.Capture(ctx, "make", "-f", "Makefile")
//	if err != nil {
//	    return err // make could not be started
//	}
//	fmt.Println(res.ExitCode)
//
// MakeRunner builds on that to run a Makefile and produce the report shown
// to the user.
package exec
