package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"datalab/adapters/chart"
	"datalab/adapters/datareadiness/coercer"
	"datalab/adapters/stats/engine"
	"datalab/app"
	"datalab/domain/dataset"
	"datalab/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	welcomeBanner = "***************** Welcome to the Data Analysis App **********"
	goodbyeBanner = "*************** Thanks for using the Data Analysis App **********"
)

// Config holds what the menus offer
type Config struct {
	DataDir  string
	Datasets []dataset.Descriptor
}

// Services are the collaborators a session uses
type Services struct {
	Loader   ports.TableLoader
	Renderer ports.ChartRenderer
	Coercer  *coercer.ColumnCoercer
	Engine   *engine.StatsEngine
}

// Driver runs the interactive dataset and column menus
type Driver struct {
	config    Config
	services  Services
	out       io.Writer
	lines     <-chan string
	done      chan struct{}
	stopOnce  sync.Once
	sessionID string
	logger    *zap.Logger
}

// NewDriver creates a driver reading choices from in and printing to out.
// Input is consumed line by line in the background so that a cancelled
// context ends the session even while waiting for input.
func NewDriver(in io.Reader, out io.Writer, config Config, services Services) *Driver {
	if len(config.Datasets) == 0 {
		config.Datasets = dataset.Datasets()
	}
	sessionID := uuid.NewString()
	done := make(chan struct{})
	return &Driver{
		config:    config,
		services:  services,
		out:       out,
		lines:     readLines(in, done),
		done:      done,
		sessionID: sessionID,
		logger:    zap.L().Named("menu").With(zap.String("session", sessionID)),
	}
}

// SessionID returns the id attached to this session's log lines
func (d *Driver) SessionID() string {
	return d.sessionID
}

// Run shows the main menu until the user exits or input ends. It returns
// ctx.Err() when the context is cancelled first. Input left unread when Run
// returns is dropped.
func (d *Driver) Run(ctx context.Context) error {
	defer d.stop()
	d.logger.Info("Session started", zap.String("data_dir", d.config.DataDir))
	d.println(welcomeBanner)

	exitChoice := strconv.Itoa(len(d.config.Datasets) + 1)
	for {
		d.println()
		d.println("Select the file you want to analyze:")
		for i, ds := range d.config.Datasets {
			d.printf("%d. %s\n", i+1, ds.Title)
		}
		d.printf("%s. Exit the Program\n", exitChoice)
		d.printf("Enter your choice (1-%s): ", exitChoice)

		choice, ok, err := d.readChoice(ctx)
		if err != nil {
			return err
		}
		if !ok {
			choice = exitChoice
		}

		if choice == exitChoice {
			d.println(goodbyeBanner)
			d.logger.Info("Session ended")
			return nil
		}

		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(d.config.Datasets) {
			d.printf("Invalid choice. Please enter %s.\n", choiceList(numberChoices(len(d.config.Datasets)+1)))
			continue
		}

		if err := d.datasetSession(ctx, d.config.Datasets[n-1]); err != nil {
			return err
		}
	}
}

// datasetSession loads ds and runs its column menu
func (d *Driver) datasetSession(ctx context.Context, ds dataset.Descriptor) error {
	path := filepath.Join(d.config.DataDir, ds.File)
	logger := d.logger.With(zap.String("dataset", string(ds.ID)))

	table, err := d.services.Loader.Load(path)
	if err != nil {
		logger.Warn("Failed to load dataset", zap.String("path", path), zap.Error(err))
		d.printf("Error reading %s CSV file: %v\n", ds.Label, err)
		return nil
	}
	logger.Debug("Dataset loaded", zap.Int("rows", table.Len()))

	analyzer := app.NewDataAnalyzer(table, d.services.Coercer, d.services.Engine)
	d.printf("You have entered %s.\n", ds.Title)

	letters := columnLetters(len(ds.Columns) + 1)
	exitLetter := letters[len(letters)-1]
	for {
		d.println()
		d.println("Select the Column you want to analyze:")
		for i, column := range ds.Columns {
			d.printf("%s. %s\n", letters[i], column)
		}
		d.printf("%s. Exit Column\n", exitLetter)
		d.printf("Enter your choice (a-%s): ", exitLetter)

		choice, ok, err := d.readChoice(ctx)
		if err != nil {
			return err
		}
		choice = strings.ToLower(choice)
		if !ok {
			choice = exitLetter
		}

		if choice == exitLetter {
			d.println("You selected to exit the column menu.")
			return nil
		}

		idx := indexOf(letters[:len(ds.Columns)], choice)
		if idx < 0 {
			d.printf("Invalid column choice. Please enter a valid option (%s).\n", choiceList(letters))
			continue
		}

		d.analyzeColumn(analyzer, ds.Columns[idx], logger)
	}
}

// analyzeColumn prints the summary of column and renders its histogram
func (d *Driver) analyzeColumn(analyzer *app.DataAnalyzer, column string, logger *zap.Logger) {
	d.printf("You selected %s\n", column)

	analysis, err := analyzer.Analyze(column)
	if err != nil {
		logger.Warn("Column analysis failed", zap.String("column", column), zap.Error(err))
		d.printf("Error processing column %s : %v\n", column, err)
		return
	}
	if n := len(analysis.Report.Rejected); n > 0 {
		logger.Warn("Skipped non-numeric cells", zap.String("column", column), zap.Int("count", n))
		d.printf("Skipped %d non-numeric value(s) in %s\n", n, column)
	}

	s := analysis.Summary
	d.println("The statistics for this column are:")
	d.printf("Count = %d\n", s.Count)
	d.printf("Mean = %s\n", FormatFloat(s.Mean))
	d.printf("Standard Deviation = %s\n", FormatFloat(s.StdDev))
	d.printf("Min = %s\n", FormatFloat(s.Min))
	d.printf("Max = %s\n", FormatFloat(s.Max))
	d.printf("Displaying histogram for %s ...\n", column)

	if err := chart.RenderLabeled(d.services.Renderer, analysis.Histogram, "Histogram of "+column, column); err != nil {
		logger.Warn("Histogram rendering failed", zap.String("column", column), zap.Error(err))
		d.printf("Error plotting histogram for %s : %v\n", column, err)
	}
}

// readChoice returns the next trimmed input line. ok is false at end of
// input; err is set only when ctx is cancelled.
func (d *Driver) readChoice(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	select {
	case <-ctx.Done():
		d.println()
		return "", false, ctx.Err()
	case line, ok := <-d.lines:
		if !ok {
			d.println()
			return "", false, nil
		}
		return strings.TrimSpace(line), true, nil
	}
}

func (d *Driver) println(a ...interface{}) {
	fmt.Fprintln(d.out, a...)
}

func (d *Driver) printf(format string, a ...interface{}) {
	fmt.Fprintf(d.out, format, a...)
}

// stop releases the input reader once the session is over
func (d *Driver) stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// readLines sends each line of in until in ends or done is closed
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

func columnLetters(n int) []string {
	letters := make([]string, n)
	for i := range letters {
		letters[i] = string(rune('a' + i))
	}
	return letters
}

func numberChoices(n int) []string {
	numbers := make([]string, n)
	for i := range numbers {
		numbers[i] = strconv.Itoa(i + 1)
	}
	return numbers
}

func indexOf(options []string, choice string) int {
	for i, option := range options {
		if option == choice {
			return i
		}
	}
	return -1
}
