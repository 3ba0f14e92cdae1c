package astro

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// ExportConfig configures where a trajectory history is persisted.
type ExportConfig struct {
	Filename  string
	OutputDir string
}

// IsUseless returns whether this export config will export anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// WriteTrajectoryCSV writes the samples as CSV, one row per state vector.
func WriteTrajectoryCSV(w io.Writer, samples []State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rx", "ry", "rz", "vx", "vy", "vz"}); err != nil {
		return err
	}
	record := make([]string, 6)
	for _, s := range samples {
		for i, val := range s.Vector() {
			record[i] = strconv.FormatFloat(val, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportTrajectory writes the samples to <OutputDir>/<Filename>.csv.
func ExportTrajectory(conf ExportConfig, samples []State) error {
	f, err := os.Create(filepath.Join(conf.OutputDir, conf.Filename+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTrajectoryCSV(f, samples)
}
