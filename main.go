package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nhollis/flowdeck/logging"
)

const Version = "0.3.0"

var (
	logFile   = flag.String("debug", "", "Write Debug Logs to file")
	measure   = flag.String("measure", "Volume", "numeric measure field name")
	originLat = flag.String("origin-lat", "OriginLat", "origin latitude field name")
	originLon = flag.String("origin-lon", "OriginLon", "origin longitude field name")
	destLat   = flag.String("dest-lat", "DestLat", "destination latitude field name")
	destLon   = flag.String("dest-lon", "DestLon", "destination longitude field name")
	viewFile  = flag.String("view", "", "restore a saved view snapshot on startup")
)

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")

	flag.Parse()

	// --- EARLY EXIT ---
	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	// Anything below here should NOT run if --version was provided.
	cleanup, err := logging.SetupLogging(*logFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	log.Println("flowdeck: Started")

	paths := flag.Args()
	if len(paths) < 1 {
		fmt.Println("Usage: flowdeck [--debug debug.log] [--measure Volume] <flows.csv> [more.csv ...]")
		os.Exit(1)
	}

	fields := FieldConfig{
		Measure:   *measure,
		OriginLat: *originLat,
		OriginLon: *originLon,
		DestLat:   *destLat,
		DestLon:   *destLon,
	}

	store := loadDatasets(paths)
	if store.TotalRecords() == 0 {
		logging.Warnf("all datasets empty, starting with a blank view")
	}

	m := newModel(store, fields, paths)

	if *viewFile != "" {
		if err := LoadViewState(m, *viewFile); err != nil {
			log.Fatalf("Failed to restore view %q: %v", *viewFile, err)
		}
		logging.Infof("restored view from %q", *viewFile)
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		log.Printf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}
