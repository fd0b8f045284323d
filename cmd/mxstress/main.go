package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domiot-io/another-mutex/pkg/config"
	"github.com/domiot-io/another-mutex/pkg/logging"
	"github.com/domiot-io/another-mutex/pkg/run"
)

func getParams(filename string) (config.Params, error) {
	if filename == "" {
		return config.NewDefaultParams(), nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return config.Params{}, err
	}
	defer file.Close()
	var params config.Params
	err = config.NewJSONConfigLoader().LoadParams(file, &params)
	return params, err
}

type cliOptions struct {
	configFilename  string
	logFilename     string
	cpuProfFilename string
	memProfFilename string
	traceFilename   string
	dumpConfig      bool
	tasks           int
	workers         int
	duration        float64
	mutexFraction   int
	blockFraction   int
}

func getOptions() cliOptions {
	var result cliOptions
	flag.StringVar(&result.configFilename, "config", "", "a JSON file with the run parameters (defaults are used when empty)")
	flag.StringVar(&result.logFilename, "log", "stdout", "the log file, \"stdout\" or \"stderr\"")
	flag.BoolVar(&result.dumpConfig, "dump", false, "print the effective parameters as JSON and exit")
	flag.IntVar(&result.tasks, "tasks", 0, "number of tasks in the ordered run (overrides the config)")
	flag.IntVar(&result.workers, "workers", 0, "number of workers in the stress run (overrides the config)")
	flag.Float64Var(&result.duration, "duration", 0, "length of the stress run in seconds (overrides the config)")
	flag.StringVar(&result.cpuProfFilename, "cpuprof", "", "the name of the file with cpu-profile results")
	flag.StringVar(&result.memProfFilename, "memprof", "", "the name of the file with mem-profile results")
	flag.StringVar(&result.traceFilename, "trace", "", "the name of the file with trace-profile results")
	flag.IntVar(&result.mutexFraction, "mf", 0, "the sampling fraction of mutex contention events")
	flag.IntVar(&result.blockFraction, "bf", 0, "the sampling fraction of goroutine blocking events")
	flag.Parse()
	return result
}

func main() {
	options := getOptions()

	params, err := getParams(options.configFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config file \"%s\", because: %s.\n", options.configFilename, err.Error())
		os.Exit(1)
	}
	if options.tasks != 0 {
		params.Tasks = options.tasks
	}
	if options.workers != 0 {
		params.Workers = options.workers
	}
	if options.duration != 0 {
		params.Duration = float32(options.duration)
	}
	if err := config.Valid(params); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters because: %s.\n", err.Error())
		os.Exit(1)
	}
	if options.dumpConfig {
		if err := config.NewJSONConfigWriter().StoreParams(os.Stdout, &params); err != nil {
			fmt.Fprintf(os.Stderr, "Storing parameters failed because: %s.\n", err.Error())
			os.Exit(1)
		}
		return
	}

	err = logging.InitLogger(logging.LogConfig{
		Level:    params.LogLevel,
		Path:     options.logFilename,
		DiodeBuf: params.LogBuffer,
		TimeUnit: time.Millisecond,
		Human:    params.LogHuman,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating log file \"%s\" failed because: %s.\n", options.logFilename, err.Error())
		os.Exit(1)
	}

	// set up profilers
	if options.cpuProfFilename != "" {
		f, err := os.Create(options.cpuProfFilename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Creating cpu-profile file \"%s\" failed because: %s.\n", options.cpuProfFilename, err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Cpu-profile failed to start because: %s", err.Error())
		}
		defer pprof.StopCPUProfile()
		runtime.SetMutexProfileFraction(options.mutexFraction)
		runtime.SetBlockProfileRate(options.blockFraction)
	}
	if options.traceFilename != "" {
		f, err := os.Create(options.traceFilename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Creating trace-profile file \"%s\" failed because: %s.\n", options.traceFilename, err.Error())
		}
		defer f.Close()
		trace.Start(f)
		defer trace.Stop()
	}

	fmt.Fprintln(os.Stderr, "Starting run...")
	report, err := run.Process(params, log.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed with %s.\n", err.Error())
	}

	// dump profiles
	if options.memProfFilename != "" {
		f, err := os.Create(options.memProfFilename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Creating mem-profile file \"%s\" failed because: %s.\n", options.memProfFilename, err.Error())
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Mem-profile failed to start because: %s", err.Error())
		}
	}

	// give the diode a chance to flush
	time.Sleep(100 * time.Millisecond)
	fmt.Fprintf(os.Stderr, "Rounds: %d, timed out: %d, mean wait: %v, max wait: %v.\n",
		report.Rounds, report.TimedOut, report.Stats.MeanWait, report.Stats.MaxWait)
}
