package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Lineup is the strategy kind of every seat of an evaluation.
type Lineup struct {
	ID    int
	Kinds []string
}

type GameRecord struct {
	ID     int
	Lineup int // Lineup.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter writes to a subfolder of root/name named by the current time.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) write(file, what string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", what, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", what, err)
	}
	return nil
}

func (w *Writer) WriteLineups(lineups []Lineup) error {
	rows := make([][]string, len(lineups))
	for i, l := range lineups {
		rows[i] = []string{strconv.Itoa(l.ID), strings.Join(l.Kinds, ";")}
	}
	return w.write("lineups.csv", "lineups", []string{"id", "kinds"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{
		"id", "lineup", "round", "players", "starter", "loser", "aborted",
		"start_time", "end_time", "duration", "total_plays", "total_turns",
	}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Lineup),
			record.Round,
			strings.Join(record.Players, ";"),
			record.Starter,
			record.Loser,
			strconv.FormatBool(record.Aborted),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalPlays),
			strconv.Itoa(record.TotalTurns),
		}
	}
	return w.write("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "duration", "episodes", "cutoff", "full_playouts", "nodes", "is_tree_reset"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Cutoff),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Nodes),
			strconv.FormatBool(record.IsTreeReset),
		}
	}
	return w.write("move_records.csv", "move records", header, rows)
}
