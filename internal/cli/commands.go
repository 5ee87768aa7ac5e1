package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pfrederiksen/exam-calendar/internal/calendar"
	"github.com/pfrederiksen/exam-calendar/internal/exam"
	"github.com/pfrederiksen/exam-calendar/internal/filter"
	"github.com/pfrederiksen/exam-calendar/internal/logger"
	"github.com/pfrederiksen/exam-calendar/internal/storage"
	"github.com/spf13/cobra"
)

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the exam calendar, print it as JSON and save a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.storage()
			if err != nil {
				return err
			}

			catalog, err := opts.fetchCatalog(cmd.Context())
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(catalog, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding catalog: %w", err)
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
				return fmt.Errorf("writing catalog: %w", err)
			}

			logChanges(store, catalog)

			if err := store.SaveCatalog(catalog); err != nil {
				return fmt.Errorf("saving catalog: %w", err)
			}
			logger.Info("Saved exam catalog", logger.Fields{
				"path":      store.SnapshotPath(),
				"semesters": catalog.Len(),
			})
			return nil
		},
	}
}

// logChanges reports how a freshly fetched catalog differs from the saved one
func logChanges(store *storage.Storage, catalog *exam.Catalog) {
	previous, err := store.LoadCatalog()
	if err != nil {
		if !errors.Is(err, storage.ErrNoSnapshot) {
			logger.Warn("Ignoring unreadable saved catalog", logger.Fields{"error": err.Error()})
		}
		previous = nil
	}

	diff := exam.Diff(previous, catalog)
	if diff.Empty() {
		logger.Info("Exam catalog unchanged", nil)
		return
	}
	for _, label := range diff.NewSemesters {
		logger.Info("New semester", logger.Fields{"semester": label})
	}
	for _, c := range diff.Changes {
		fields := logger.Fields{
			"semester": c.Semester,
			"class":    exam.EncodeClass(c.Class),
			"change":   string(c.Type),
		}
		if c.Old != nil {
			fields["old_date"] = c.Old.Date.String()
		}
		if c.New != nil {
			fields["new_date"] = c.New.Date.String()
		}
		logger.Info("Exam changed", fields)
	}
	logger.IncrCounterBy("catalog.changes", int64(len(diff.Changes)))
}

func newSemestersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "semesters",
		Short: "List semesters on the exam calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := opts.outputFormat()

			catalog, err := opts.catalog(cmd.Context())
			if err != nil {
				return err
			}
			return WriteSemesters(cmd.OutOrStdout(), filter.Semesters(catalog), format)
		},
	}
}

func newClassesCmd(opts *options) *cobra.Command {
	var (
		flagSemester string
		flagDays     string
		flagSearch   string
	)

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the classes a semester's exam calendar covers",
		Long: `List the classes a semester's exam calendar covers.

Use --days to list only the start times offered on those days, and --search
to list only named classes whose label contains the term.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := opts.outputFormat()

			catalog, err := opts.catalog(cmd.Context())
			if err != nil {
				return err
			}
			label, cal, err := semester(catalog, flagSemester)
			if err != nil {
				return err
			}

			var selected exam.WeekdaySet
			if flagDays != "" {
				if selected, err = filter.ParseDays(flagDays); err != nil {
					return err
				}
			}

			result := &ClassesResult{
				Semester: label,
				Days:     weekdayNames(filter.Days(cal)),
				Times:    clockNames(filter.TimesFor(cal, selected)),
				Spans:    rangeNames(filter.Spans(cal)),
			}
			if flagSearch != "" {
				result.Names = make([]string, 0)
				for _, c := range filter.Search(cal, flagSearch) {
					result.Names = append(result.Names, c.Label())
				}
			} else {
				result.Names = filter.Names(cal)
			}
			if !selected.Empty() {
				result.Selected = selected.Code()
			}

			return WriteClasses(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVar(&flagSemester, "semester", "", "Semester, e.g. 'Fall 2023' (required)")
	cmd.Flags().StringVar(&flagDays, "days", "", "Only list times for classes meeting on these days, e.g. MWF")
	cmd.Flags().StringVar(&flagSearch, "search", "", "Only list named classes containing this term")
	cmd.MarkFlagRequired("semester")

	return cmd
}

func newLookupCmd(opts *options) *cobra.Command {
	var (
		flagSemester string
		flagICS      string
		query        filter.Query
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find the final exam for a class",
		Long: `Find the final exam for a class.

A class is given one of three ways:
  --name "CH 101"
  --days MWF --time "9:00 a.m."
  --span "6:00 p.m. and later"`,
		Example: `  exam-calendar lookup --semester "Fall 2023" --days TuTh --time "10:15 a.m."
  exam-calendar lookup --semester "Fall 2023" --name "CH 101" --ics ch101.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := opts.outputFormat()

			catalog, err := opts.catalog(cmd.Context())
			if err != nil {
				return err
			}
			label, cal, err := semester(catalog, flagSemester)
			if err != nil {
				return err
			}

			class, found, err := filter.Lookup(cal, query)
			if err != nil {
				return err
			}
			logger.Debug("Exam found", logger.Fields{
				"semester": label,
				"class":    exam.EncodeClass(class),
				"date":     found.Date.String(),
			})

			if flagICS != "" {
				if err := writeICS(flagICS, label, class, found, opts); err != nil {
					return err
				}
				logger.Info("Wrote calendar file", logger.Fields{"path": flagICS})
			}

			return WriteLookup(cmd.OutOrStdout(), NewLookupResult(label, class, found), format)
		},
	}

	cmd.Flags().StringVar(&flagSemester, "semester", "", "Semester, e.g. 'Fall 2023' (required)")
	cmd.Flags().StringVar(&query.Name, "name", "", "Course label, e.g. 'CH 101'")
	cmd.Flags().StringVar(&query.Days, "days", "", "Meeting days, e.g. MWF or TuTh")
	cmd.Flags().StringVar(&query.Time, "time", "", "Class start time, e.g. '9:00 a.m.'")
	cmd.Flags().StringVar(&query.Span, "span", "", "Class time span, e.g. '6:00 p.m. and later'")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Also write the exam to this iCalendar file")
	cmd.MarkFlagRequired("semester")
	cmd.MarkFlagsMutuallyExclusive("name", "days")
	cmd.MarkFlagsMutuallyExclusive("name", "span")
	cmd.MarkFlagsMutuallyExclusive("days", "span")
	cmd.MarkFlagsRequiredTogether("days", "time")

	return cmd
}

func writeICS(path, semester string, class exam.Class, found exam.Exam, opts *options) error {
	loc, err := opts.cfg.Location()
	if err != nil {
		return err
	}

	data := calendar.GenerateICS(semester, []calendar.Entry{{Class: class, Exam: found}}, loc)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing calendar file: %w", err)
	}
	return nil
}
